package battle

import "golang.org/x/exp/rand"

// Source is the randomness the opponent draws from. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewSource returns a deterministic source for reproducible games and tests.
// It is not safe for concurrent use; scope one to a single resolution.
func NewSource(seed uint64) Source {
	return rand.New(rand.NewSource(seed))
}

// globalSource delegates to the process-wide generator, which is safe for
// concurrent use and gives no ordering guarantee across requests.
type globalSource struct{}

func (globalSource) Intn(n int) int                     { return rand.Intn(n) }
func (globalSource) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// DefaultSource returns the process-wide source used in production.
func DefaultSource() Source {
	return globalSource{}
}
