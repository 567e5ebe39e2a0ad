package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"

	"github.com/solverlab/iterrec/datarecording"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <database>",
	Short: "Print the run metadata and iterations in a recording database.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	// Opening a missing path would create an empty database.
	_, err := os.Stat(args[0])
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", args[0], err)
	}

	db, err := sql.Open("sqlite3", args[0])
	if err != nil {
		return err
	}

	reader := datarecording.NewReaderWithDB(db)
	defer reader.Close()

	ctx := cmd.Context()

	tables, err := existingTables(ctx, db)
	if err != nil {
		return err
	}

	if tables[datarecording.RunInfoTable] {
		err = printRunInfo(ctx, cmd, reader)
		if err != nil {
			return err
		}
	}

	if tables[datarecording.DriverIterationTable] {
		err = printDriverIterations(ctx, cmd, reader)
		if err != nil {
			return err
		}
	}

	if tables[datarecording.SolverIterationTable] {
		err = printSolverIterations(ctx, cmd, reader)
		if err != nil {
			return err
		}
	}

	return nil
}

func existingTables(
	ctx context.Context,
	db *sql.DB,
) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx,
		"SELECT name FROM sqlite_master WHERE type='table'")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tables := make(map[string]bool)

	for rows.Next() {
		var name string

		err := rows.Scan(&name)
		if err != nil {
			return nil, err
		}

		tables[name] = true
	}

	return tables, rows.Err()
}

func printRunInfo(
	ctx context.Context,
	cmd *cobra.Command,
	reader datarecording.DataReader,
) error {
	reader.MapTable(datarecording.RunInfoTable, datarecording.RunInfo{})

	results, _, err := reader.Query(ctx,
		datarecording.RunInfoTable, datarecording.QueryParams{})
	if err != nil {
		return err
	}

	cmd.Println("Run:")
	for _, result := range results {
		info := result.(*datarecording.RunInfo)
		cmd.Printf("  %-18s %s\n", info.Property, info.Value)
	}

	return nil
}

func printDriverIterations(
	ctx context.Context,
	cmd *cobra.Command,
	reader datarecording.DataReader,
) error {
	reader.MapTable(
		datarecording.DriverIterationTable, datarecording.IterationEntry{})

	results, total, err := reader.Query(ctx,
		datarecording.DriverIterationTable, datarecording.QueryParams{})
	if err != nil {
		return err
	}

	cmd.Printf("Driver iterations (%d):\n", total)
	for _, result := range results {
		entry := result.(*datarecording.IterationEntry)
		cmd.Printf("  %s  %s\n", entry.Timestamp, entry.Coordinate)
	}

	return nil
}

func printSolverIterations(
	ctx context.Context,
	cmd *cobra.Command,
	reader datarecording.DataReader,
) error {
	reader.MapTable(
		datarecording.SolverIterationTable,
		datarecording.SolverIterationEntry{})

	results, total, err := reader.Query(ctx,
		datarecording.SolverIterationTable, datarecording.QueryParams{})
	if err != nil {
		return err
	}

	cmd.Printf("Solver iterations (%d):\n", total)
	for _, result := range results {
		entry := result.(*datarecording.SolverIterationEntry)
		cmd.Printf("  %s  %s  abs=%g rel=%g\n",
			entry.Timestamp, entry.Coordinate,
			entry.AbsError, entry.RelError)
	}

	return nil
}
