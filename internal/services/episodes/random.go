package episodes

import (
	"math/rand/v2"
	"sync"
)

type globalRandom struct{}

func (globalRandom) Float64() float64 { return rand.Float64() }
func (globalRandom) IntN(n int) int   { return rand.IntN(n) }

// DefaultRandom returns the process-wide random source
func DefaultRandom() Random {
	return globalRandom{}
}

// lockedRandom serializes access to a seeded generator
type lockedRandom struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSeededRandom returns a deterministic source, safe for concurrent use
func NewSeededRandom(seed uint64) Random {
	return &lockedRandom{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (l *lockedRandom) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *lockedRandom) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

// shuffled returns a Fisher-Yates shuffled copy of items
func shuffled[T any](r Random, items []T) []T {
	out := append([]T(nil), items...)
	for i := len(out) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// sample returns up to n items drawn uniformly without replacement,
// or every item in original order when there are n or fewer
func sample[T any](r Random, items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return shuffled(r, items)[:n]
}

// popRandom removes and returns a random element of pool
func popRandom[T any](r Random, pool []T) (T, []T) {
	i := r.IntN(len(pool))
	picked := pool[i]
	pool = append(pool[:i], pool[i+1:]...)
	return picked, pool
}
