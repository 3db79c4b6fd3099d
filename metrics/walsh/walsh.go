// Package walsh computes the Walsh spectrum of a vectorial Boolean function and
// the linear-approximation metrics derived from it.
//
// For an S-box S: {0,1}^n -> {0,1}^m the spectrum holds
//
//	W(a, b) = sum over x of (-1)^(a.x XOR b.S(x))
//
// for every input mask a in [0, 2^n) and output mask b in [0, 2^m).
package walsh

import (
	"context"
	"errors"
	"fmt"
	"math/bits"
	"strings"

	sboxeval "github.com/themarkrogers/ai-s-box"
	"github.com/themarkrogers/ai-s-box/utils"
)

var (
	// ErrDomainMismatch is returned when the S-box length is not 2^n.
	ErrDomainMismatch = errors.New("s-box length does not match input width")

	// ErrRangeMismatch is returned when an output does not fit in m bits.
	ErrRangeMismatch = errors.New("s-box output exceeds output width")
)

const serialBelow = 16

// Algorithm selects how the spectrum is computed.
type Algorithm int

const (
	// Fast applies an in-place fast Walsh-Hadamard transform per output mask,
	// O(2^m * n * 2^n).
	Fast Algorithm = iota
	// Naive evaluates the defining sum directly, O(2^m * 4^n).
	Naive
)

func (a Algorithm) String() string {
	switch a {
	case Fast:
		return "fast"
	case Naive:
		return "naive"
	default:
		return fmt.Sprintf("algorithm(%d)", int(a))
	}
}

// ParseAlgorithm parses "fast" or "naive". The empty string means Fast.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "fast", "fwht":
		return Fast, nil
	case "naive", "direct":
		return Naive, nil
	default:
		return Fast, fmt.Errorf("unknown walsh algorithm: %q", name)
	}
}

// Spectrum is the full Walsh spectrum, indexed by (input mask, output mask).
type Spectrum struct {
	inputBits  int
	inputSize  int
	outputSize int
	cells      []int // row-major: cells[a*outputSize+b]
}

// Compute returns the Walsh spectrum of sbox. sbox must hold exactly 2^n values,
// each below 2^m. Both algorithms produce identical spectra.
func Compute(ctx context.Context, sbox sboxeval.SBox, n, m int, alg Algorithm) (*Spectrum, error) {
	inputSize, err := utils.Pow2(n)
	if err != nil {
		return nil, fmt.Errorf("input width %d: %w", n, err)
	}
	if len(sbox) != inputSize {
		return nil, fmt.Errorf("%w: %d values, want %d", ErrDomainMismatch, len(sbox), inputSize)
	}
	outputSize, err := utils.Pow2(m)
	if err != nil {
		return nil, fmt.Errorf("output width %d: %w", m, err)
	}
	for x, y := range sbox {
		if y < 0 || y >= outputSize {
			return nil, fmt.Errorf("%w: S(%d) = %d, want < %d", ErrRangeMismatch, x, y, outputSize)
		}
	}
	if err := utils.CheckTableSize(inputSize, outputSize); err != nil {
		return nil, err
	}

	s := &Spectrum{
		inputBits:  n,
		inputSize:  inputSize,
		outputSize: outputSize,
		cells:      make([]int, inputSize*outputSize),
	}

	switch alg {
	case Fast:
		err = s.fast(ctx, sbox)
	case Naive:
		err = s.naive(ctx, sbox)
	default:
		return nil, fmt.Errorf("unknown walsh algorithm: %s", alg)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// fast fills one column per output mask b: load (-1)^(b.S(x)) and butterfly.
func (s *Spectrum) fast(ctx context.Context, sbox sboxeval.SBox) error {
	return utils.ParallelFor(ctx, s.outputSize, serialBelow, func(b int) {
		f := make([]int, s.inputSize)
		for x, y := range sbox {
			f[x] = sign(b & y)
		}
		for h := 1; h < len(f); h <<= 1 {
			for i := 0; i < len(f); i += h << 1 {
				for j := i; j < i+h; j++ {
					u, v := f[j], f[j+h]
					f[j], f[j+h] = u+v, u-v
				}
			}
		}
		for a, w := range f {
			s.cells[a*s.outputSize+b] = w
		}
	})
}

// naive fills one row per input mask a.
func (s *Spectrum) naive(ctx context.Context, sbox sboxeval.SBox) error {
	return utils.ParallelFor(ctx, s.inputSize, serialBelow, func(a int) {
		row := s.cells[a*s.outputSize : (a+1)*s.outputSize]
		for b := range row {
			sum := 0
			for x, y := range sbox {
				sum += sign((a & x) ^ (b & y))
			}
			row[b] = sum
		}
	})
}

// sign returns (-1)^parity(v).
func sign(v int) int {
	if bits.OnesCount(uint(v))&1 == 1 {
		return -1
	}
	return 1
}

// InputSize returns 2^n.
func (s *Spectrum) InputSize() int { return s.inputSize }

// OutputSize returns 2^m.
func (s *Spectrum) OutputSize() int { return s.outputSize }

// At returns W(a, b).
func (s *Spectrum) At(a, b int) int {
	return s.cells[a*s.outputSize+b]
}

// LAT returns the linear approximation table entry W(a, b) / 2, the count of
// inputs where the approximation a.x = b.S(x) holds minus 2^(n-1).
func (s *Spectrum) LAT(a, b int) int {
	return s.At(a, b) / 2
}

// MaxAbs returns the largest |W(a, b)| over all (a, b) != (0, 0). W(0, 0) is
// always 2^n and carries no information.
func (s *Spectrum) MaxAbs() int {
	max := 0
	for i, w := range s.cells {
		if i == 0 {
			continue
		}
		if w < 0 {
			w = -w
		}
		if w > max {
			max = w
		}
	}
	return max
}

// Correlation returns MaxAbs / 2^n.
func (s *Spectrum) Correlation() float64 {
	return float64(s.MaxAbs()) / float64(s.inputSize)
}

// Nonlinearity returns 2^(n-1) - max|W(a, b)| / 2 over b != 0, the minimum
// Hamming distance from any non-trivial component to an affine function.
// With no non-zero output mask (m = 0) it returns 0.
func (s *Spectrum) Nonlinearity() int {
	if s.outputSize < 2 {
		return 0
	}
	max := 0
	for a := 0; a < s.inputSize; a++ {
		for b := 1; b < s.outputSize; b++ {
			w := s.At(a, b)
			if w < 0 {
				w = -w
			}
			if w > max {
				max = w
			}
		}
	}
	return s.inputSize/2 - max/2
}
