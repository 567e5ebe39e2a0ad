// The iterrec command inspects recording databases produced by the
// datarecording package.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "iterrec",
	Short: "iterrec works with iteration recording databases.",
	Long: `iterrec works with the SQLite databases produced by the iterrec ` +
		`recording backend. It can list the recorded runs and the driver and ` +
		`solver iterations they contain, labeled with their iteration ` +
		`coordinates.`,
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
