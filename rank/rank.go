// Package rank resolves the identity of the current process within a
// distributed run. The rank is an external fact injected through the
// environment. Processes outside any distributed context report rank 0.
package rank

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// A Provider reports the rank of the current process. The second return
// value is false when the process is not part of a distributed context.
type Provider interface {
	Rank() (int, bool)
}

// rankVars are checked in order. The first value that parses as an integer
// wins.
var rankVars = []string{
	"ITERREC_RANK",
	"OMPI_COMM_WORLD_RANK",
	"PMI_RANK",
	"SLURM_PROCID",
}

// FromEnv returns a Provider that resolves the rank from the process
// environment. A .env file in the working directory is loaded first when
// present.
func FromEnv() Provider {
	_ = godotenv.Load()

	return envProvider{}
}

type envProvider struct{}

func (envProvider) Rank() (int, bool) {
	for _, name := range rankVars {
		value, ok := os.LookupEnv(name)
		if !ok {
			continue
		}

		rank, err := strconv.Atoi(value)
		if err != nil {
			continue
		}

		return rank, true
	}

	return 0, false
}

// Fixed returns a Provider that always reports the given rank.
func Fixed(rank int) Provider {
	return fixedProvider(rank)
}

type fixedProvider int

func (p fixedProvider) Rank() (int, bool) {
	return int(p), true
}

// RankOrZero collapses the no-distributed-context case to rank 0, the
// value used when formatting coordinates. A nil provider also maps to 0.
func RankOrZero(p Provider) int {
	if p == nil {
		return 0
	}

	rank, ok := p.Rank()
	if !ok {
		return 0
	}

	return rank
}
