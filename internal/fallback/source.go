package fallback

import (
	"math/rand/v2"
	"sync"
)

// Source supplies the randomness the engine needs. Tests pass a seeded
// source so selections are reproducible.
type Source interface {
	// Uniform returns a float in [0, 1)
	Uniform() float64
	// Sample returns k distinct indexes drawn uniformly from [0, n)
	Sample(n, k int) []int
	// Shuffle permutes n elements through swap
	Shuffle(n int, swap func(i, j int))
}

type randSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSource returns a deterministic source for the given seed
func NewSource(seed uint64) Source {
	return &randSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewRandomSource returns a source seeded from the runtime
func NewRandomSource() Source {
	return &randSource{r: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

func (s *randSource) Uniform() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

func (s *randSource) Sample(n, k int) []int {
	if k > n {
		k = n
	}
	if k <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	// partial Fisher-Yates over the index space
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + s.r.IntN(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:k]
}

func (s *randSource) Shuffle(n int, swap func(i, j int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.r.Shuffle(n, swap)
}

func choose(src Source, n int) int {
	i := int(src.Uniform() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

func sample(src Source, pool []string, k int) []string {
	picked := src.Sample(len(pool), k)
	out := make([]string, 0, len(picked))
	for _, i := range picked {
		out = append(out, pool[i])
	}
	return out
}

// Pick returns a uniformly chosen item, or "" for an empty slice
func Pick(src Source, items []string) string {
	if len(items) == 0 {
		return ""
	}
	return items[choose(src, len(items))]
}
