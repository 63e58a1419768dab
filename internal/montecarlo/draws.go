// Package montecarlo runs the demand solver across a synthetic
// heterogeneous population and aggregates usage, bills, and revenue.
package montecarlo

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// DefaultSampleSize is the population size used when the caller doesn't
// specify draws.
const DefaultSampleSize = 3000

// Draws are two equal-length arrays of independent standard-normal seeds:
// one spreads per-individual baseline usage, the other per-individual
// elasticity. Generate once when the baseline is frozen and reuse across
// scenario recomputations so comparisons run over the same synthetic
// individuals; regenerating between comparable runs breaks apples-to-apples.
// Safe for concurrent readers; never mutate after generation.
type Draws struct {
	Usage      []float64
	Elasticity []float64
}

// Len is the population size the draws support.
func (d Draws) Len() int {
	if len(d.Usage) < len(d.Elasticity) {
		return len(d.Usage)
	}
	return len(d.Elasticity)
}

// GenerateDraws produces count pairs of standard-normal seeds from an
// OS-entropy-seeded generator.
func GenerateDraws(count int) Draws {
	return GenerateDrawsSeeded(count, randomSeed())
}

// GenerateDrawsSeeded is the reproducible variant: the same seed yields
// the same population.
func GenerateDrawsSeeded(count int, seed uint64) Draws {
	if count <= 0 {
		count = DefaultSampleSize
	}
	r := rand.New(rand.NewPCG(seed, 0))
	d := Draws{
		Usage:      make([]float64, count),
		Elasticity: make([]float64, count),
	}
	for i := 0; i < count; i++ {
		d.Usage[i] = r.NormFloat64()
		d.Elasticity[i] = r.NormFloat64()
	}
	return d
}

func randomSeed() uint64 {
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		return rand.Uint64()
	}
	return binary.BigEndian.Uint64(buf[:])
}
