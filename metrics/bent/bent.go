// Package bent classifies S-boxes that meet the bent-function bound.
package bent

import "math"

// Tolerance is the absolute slack allowed when comparing the scaled correlation
// against 2^(n/2).
const Tolerance = 1e-9

// Classify reports whether an n-bit to m-bit S-box with the given maximum
// absolute linear correlation is bent.
//
// That requires n even, m == n/2, and correlation * 2^n == 2^(n/2) within
// Tolerance. Every non-trivial component of such a map then has the flat Walsh
// magnitude 2^(n/2).
func Classify(n, m int, correlation float64) bool {
	if n < 0 || n%2 != 0 || m != n/2 {
		return false
	}
	if math.IsNaN(correlation) || math.IsInf(correlation, 0) {
		return false
	}
	scaled := correlation * math.Ldexp(1, n)
	return math.Abs(scaled-math.Ldexp(1, n/2)) < Tolerance
}

// ClassifyOptional is Classify for a correlation that may be absent. An absent
// correlation is never bent.
func ClassifyOptional(n, m int, correlation *float64) bool {
	if correlation == nil {
		return false
	}
	return Classify(n, m, *correlation)
}
