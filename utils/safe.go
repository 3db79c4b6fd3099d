// Package utils provides utility functions for the S-box evaluation engine.
// This file contains safe arithmetic and allocation helpers that keep table
// construction from overflowing or allocating unbounded memory.

package utils

import (
	"errors"
	"fmt"
	"math"
)

// Maximum allowed sizes to prevent DoS via large allocations.
const (
	// MaxShift is the largest exponent accepted by Pow2.
	MaxShift = 62

	// MaxTableCells is the maximum number of cells in a DDT or Walsh table.
	MaxTableCells = 1 << 24 // 16M cells
)

var (
	// ErrOverflow indicates an integer overflow occurred.
	ErrOverflow = errors.New("integer overflow")

	// ErrExceedsLimit indicates a value exceeds the allowed limit.
	ErrExceedsLimit = errors.New("value exceeds allowed limit")

	// ErrInvalidLength indicates an invalid length value.
	ErrInvalidLength = errors.New("invalid length")
)

// SafeMultiply multiplies two non-negative integers and returns an error if overflow occurs.
func SafeMultiply(a, b int) (int, error) {
	if a < 0 || b < 0 {
		return 0, ErrInvalidLength
	}
	if a == 0 || b == 0 {
		return 0, nil
	}
	// Check for overflow before multiplying
	if a > math.MaxInt/b {
		return 0, ErrOverflow
	}
	return a * b, nil
}

// Pow2 returns 2^bits. bits must be in [0, MaxShift].
func Pow2(bits int) (int, error) {
	if bits < 0 {
		return 0, ErrInvalidLength
	}
	if bits > MaxShift {
		return 0, ErrOverflow
	}
	return 1 << uint(bits), nil
}

// CheckTableSize validates that a rows x cols table fits within MaxTableCells.
func CheckTableSize(rows, cols int) error {
	cells, err := SafeMultiply(rows, cols)
	if err != nil {
		return err
	}
	if cells > MaxTableCells {
		return fmt.Errorf("%w: %dx%d table has %d cells (max %d)", ErrExceedsLimit, rows, cols, cells, MaxTableCells)
	}
	return nil
}
