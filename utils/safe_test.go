package utils

import (
	"errors"
	"testing"
)

func TestSafeMultiply(t *testing.T) {
	// Normal cases
	result, err := SafeMultiply(10, 20)
	if err != nil || result != 200 {
		t.Errorf("SafeMultiply(10, 20) = %d, %v; want 200, nil", result, err)
	}

	// Zero cases
	result, err = SafeMultiply(0, 100)
	if err != nil || result != 0 {
		t.Errorf("SafeMultiply(0, 100) = %d, %v; want 0, nil", result, err)
	}

	// Negative input should error
	_, err = SafeMultiply(-1, 10)
	if !errors.Is(err, ErrInvalidLength) {
		t.Errorf("SafeMultiply(-1, 10) error = %v; want ErrInvalidLength", err)
	}

	// Large values that would overflow on 64-bit (need values > sqrt(MaxInt))
	_, err = SafeMultiply(1<<32, 1<<32)
	if !errors.Is(err, ErrOverflow) {
		t.Errorf("SafeMultiply with overflow error = %v; want ErrOverflow", err)
	}
}

func TestPow2(t *testing.T) {
	for bits, want := range map[int]int{0: 1, 1: 2, 4: 16, 8: 256, 20: 1 << 20} {
		got, err := Pow2(bits)
		if err != nil || got != want {
			t.Errorf("Pow2(%d) = %d, %v; want %d, nil", bits, got, err, want)
		}
	}

	if _, err := Pow2(-1); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("Pow2(-1) error = %v; want ErrInvalidLength", err)
	}
	if _, err := Pow2(MaxShift + 1); !errors.Is(err, ErrOverflow) {
		t.Errorf("Pow2(MaxShift+1) error = %v; want ErrOverflow", err)
	}
}

func TestCheckTableSize(t *testing.T) {
	if err := CheckTableSize(256, 256); err != nil {
		t.Errorf("CheckTableSize(256, 256) failed: %v", err)
	}
	if err := CheckTableSize(0, 0); err != nil {
		t.Errorf("CheckTableSize(0, 0) failed: %v", err)
	}

	err := CheckTableSize(1<<13, 1<<13)
	if !errors.Is(err, ErrExceedsLimit) {
		t.Errorf("CheckTableSize(2^13, 2^13) error = %v; want ErrExceedsLimit", err)
	}

	if err := CheckTableSize(-1, 4); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("CheckTableSize(-1, 4) error = %v; want ErrInvalidLength", err)
	}
}
