package mutils

import (
	"math"

	"golang.org/x/exp/constraints"
)

func Clamp[T constraints.Integer | constraints.Float](x, lo, hi T) T {
	return min(hi, max(lo, x))
}

// RoundHalfUp rounds .5 towards positive infinity, unlike math.Round.
func RoundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}
