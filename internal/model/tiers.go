package model

import (
	"fmt"
	"math"
	"sort"
)

// Tier is one price band of a tiered rate schedule.
// Units:
// - Lower/Upper: kgal per connection per billing period
// - Price: $/kgal
//
// Upper == math.Inf(1) marks the open-ended top tier.
type Tier struct {
	Lower float64
	Upper float64
	Price float64
}

// Unbounded reports whether the tier has no upper limit.
func (t Tier) Unbounded() bool {
	return math.IsInf(t.Upper, 1)
}

// Width is the usage span covered by the tier (infinite for the top tier).
func (t Tier) Width() float64 {
	return t.Upper - t.Lower
}

// Contains reports whether usage falls in the tier's half-open
// interval [Lower, Upper).
func (t Tier) Contains(usage float64) bool {
	return usage >= t.Lower && usage < t.Upper
}

// TierSet is an ordered, contiguous partition of usage space into price
// bands. A TierSet only comes out of ValidateTiers; treat it as immutable
// and build a new one for every edit.
type TierSet struct {
	Tiers []Tier
}

// TierValidation is the outcome of ValidateTiers. Tiers is always usable:
// when the input fails an invariant it holds the single-tier fallback and
// Message explains the first violation.
type TierValidation struct {
	Tiers   TierSet
	Valid   bool
	Message string
}

const (
	// tierRoundDecimals absorbs floating noise in user-entered bounds.
	tierRoundDecimals = 4
	// contiguityTol is the slack allowed between one tier's upper and the
	// next tier's lower before the set counts as gapped or overlapping.
	contiguityTol = 1e-6
)

// ValidateTiers normalizes a raw tier list and checks the TierSet
// invariants: sorted ascending by lower bound, contiguous starting at zero,
// strictly positive widths, and exactly one unbounded top tier. It never
// fails hard: an invalid input yields a flat single-tier fallback priced at
// the first offending tier's rate, plus a descriptive message.
func ValidateTiers(raw []Tier) TierValidation {
	tiers := make([]Tier, len(raw))
	for i, t := range raw {
		tiers[i] = Tier{
			Lower: roundTo(math.Max(0, t.Lower), tierRoundDecimals),
			Upper: t.Upper,
			Price: roundTo(math.Max(0, t.Price), tierRoundDecimals),
		}
		if !tiers[i].Unbounded() {
			tiers[i].Upper = roundTo(tiers[i].Upper, tierRoundDecimals)
		}
	}
	sort.SliceStable(tiers, func(i, j int) bool {
		return tiers[i].Lower < tiers[j].Lower
	})

	if len(tiers) == 0 {
		return fallback(0, "no tiers supplied")
	}
	if tiers[0].Lower != 0 {
		return fallback(tiers[0].Price, fmt.Sprintf("first tier must start at 0, got %.4f", tiers[0].Lower))
	}
	for i, t := range tiers {
		last := i == len(tiers)-1
		if t.Unbounded() != last {
			if last {
				return fallback(t.Price, fmt.Sprintf("last tier must be open-ended, got upper %.4f", t.Upper))
			}
			return fallback(t.Price, fmt.Sprintf("tier %d is open-ended but not last", i+1))
		}
		if !t.Unbounded() && t.Upper <= t.Lower {
			return fallback(t.Price, fmt.Sprintf("tier %d has upper %.4f <= lower %.4f", i+1, t.Upper, t.Lower))
		}
		if i > 0 {
			prev := tiers[i-1]
			if math.Abs(t.Lower-prev.Upper) > contiguityTol {
				return fallback(t.Price, fmt.Sprintf("tier %d starts at %.4f but previous tier ends at %.4f", i+1, t.Lower, prev.Upper))
			}
			// Snap to the previous upper so downstream billing math sees an
			// exact partition.
			tiers[i].Lower = prev.Upper
		}
	}

	return TierValidation{Tiers: TierSet{Tiers: tiers}, Valid: true}
}

// FallbackTiers is the flat single-tier schedule substituted when
// validation fails.
func FallbackTiers(price float64) TierSet {
	return TierSet{Tiers: []Tier{{Lower: 0, Upper: math.Inf(1), Price: math.Max(0, price)}}}
}

func fallback(price float64, msg string) TierValidation {
	return TierValidation{
		Tiers:   FallbackTiers(price),
		Valid:   false,
		Message: msg,
	}
}

func roundTo(x float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(x*scale) / scale
}
