package quantum

import (
	cryptorand "crypto/rand"
	"fmt"
	"math/rand/v2"
	"sync"
)

// Source yields uniformly distributed values in [0, 1). *rand.Rand from
// math/rand/v2 satisfies it.
type Source interface {
	Float64() float64
}

// NewSeededSource returns a deterministic source. Two sources built from the
// same seed produce the same sequence.
func NewSeededSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewEntropySource returns a source seeded from the operating system's
// cryptographic random reader.
func NewEntropySource() (Source, error) {
	var seed [32]byte
	if _, err := cryptorand.Read(seed[:]); err != nil {
		return nil, fmt.Errorf("random source failed: %w", err)
	}
	return rand.New(rand.NewChaCha8(seed)), nil
}

// LockedSource serialises access to a Source so one source can back
// concurrent runs.
type LockedSource struct {
	mu  sync.Mutex
	src Source
}

func NewLockedSource(src Source) *LockedSource {
	if locked, ok := src.(*LockedSource); ok {
		return locked
	}
	return &LockedSource{src: src}
}

func (s *LockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Float64()
}
