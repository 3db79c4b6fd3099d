// Package domain checks a flattened S-box against its claimed input and output widths.
package domain

import (
	"fmt"

	sboxeval "github.com/themarkrogers/ai-s-box"
	"github.com/themarkrogers/ai-s-box/utils"
)

// Consistency records how a flattened S-box relates to its claimed widths.
type Consistency struct {
	DomainSize         int
	ExpectedDomainSize int // 2^n
	RangeSize          int // 2^m
	MaxOutputValue     int // 0 for an empty S-box

	// DomainConsistent holds when DomainSize == 2^n. The DDT needs it.
	DomainConsistent bool
	// RangeConsistent holds when every output is < 2^m. The Walsh spectrum needs
	// it together with DomainConsistent.
	RangeConsistent bool
	// Bijective holds when the domain is consistent, n == m and no output repeats.
	Bijective bool
}

// Check computes the consistency flags for sbox with the given domain size and
// claimed widths n (input) and m (output).
func Check(sbox sboxeval.SBox, domainSize, n, m int) (Consistency, error) {
	expected, err := utils.Pow2(n)
	if err != nil {
		return Consistency{}, fmt.Errorf("input width %d: %w", n, err)
	}
	rangeSize, err := utils.Pow2(m)
	if err != nil {
		return Consistency{}, fmt.Errorf("output width %d: %w", m, err)
	}

	maxOut := sbox.Max()
	c := Consistency{
		DomainSize:         domainSize,
		ExpectedDomainSize: expected,
		RangeSize:          rangeSize,
		MaxOutputValue:     maxOut,
		DomainConsistent:   domainSize == expected && len(sbox) == expected,
		RangeConsistent:    maxOut < rangeSize,
	}
	if c.DomainConsistent && c.RangeConsistent && n == m {
		c.Bijective = isPermutation(sbox)
	}
	return c, nil
}

// Applicable reports whether the Walsh spectrum is well-defined.
func (c Consistency) Applicable() bool {
	return c.DomainConsistent && c.RangeConsistent
}

func isPermutation(sbox sboxeval.SBox) bool {
	seen := make([]bool, len(sbox))
	for _, v := range sbox {
		if v < 0 || v >= len(sbox) || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}
