// Package bundle allocates one aggregate purchase price across the
// titles of a multi-title purchase. All strategies are pure functions;
// fetching reference prices and choosing a strategy is the caller's job.
//
// Allocations are keyed by title, so titles within a single purchase
// are assumed distinct; a duplicate title would collapse onto one key.
package bundle

import (
	"errors"
	"math"
)

// Tolerance for comparing a sum of allocations against the aggregate.
const Tolerance = 0.01

var ErrNoWeights = errors.New("bundle: reference prices sum to zero")

// EqualSplit divides total evenly across titles. The parts may not sum
// exactly to total; callers must tolerate Tolerance per title.
func EqualSplit(titles []string, total float64) map[string]float64 {
	out := make(map[string]float64, len(titles))
	if len(titles) == 0 {
		return out
	}
	per := total / float64(len(titles))
	for _, t := range titles {
		out[t] = per
	}
	return out
}

// WeightedSplit allocates total proportionally to each title's reference
// price. Every title must have a price; a zero price sum makes the
// strategy inapplicable and the caller falls back to EqualSplit.
func WeightedSplit(titles []string, total float64, refPrices map[string]float64) (map[string]float64, error) {
	sum := 0.0
	for _, t := range titles {
		p, ok := refPrices[t]
		if !ok || p < 0 {
			return nil, errors.New("bundle: missing reference price for " + t)
		}
		sum += p
	}
	if sum <= 0 {
		return nil, ErrNoWeights
	}
	out := make(map[string]float64, len(titles))
	for _, t := range titles {
		out[t] = total * (refPrices[t] / sum)
	}
	return out, nil
}

// CheckManualSplit validates human-entered per-title amounts: all parts
// must be non-negative, and the sum is compared against total. A sum
// mismatch beyond Tolerance is reported via ok=false together with the
// difference; it is a confirmable warning, not a hard failure.
func CheckManualSplit(parts map[string]float64, total float64) (diff float64, ok bool, err error) {
	sum := 0.0
	for t, p := range parts {
		if p < 0 {
			return 0, false, errors.New("bundle: negative amount for " + t)
		}
		sum += p
	}
	diff = sum - total
	return diff, math.Abs(diff) <= Tolerance, nil
}
