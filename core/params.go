// Package core provides parameter presets and validation for S-box evaluation.
package core

import (
	"errors"
	"fmt"
	"sort"

	sboxeval "github.com/themarkrogers/ai-s-box"
)

// MaxBitWidth bounds the claimed input and output widths and their sum, so a
// 2^n by 2^m table always fits within utils.MaxTableCells.
const MaxBitWidth = 24

// ErrInvalidParams is returned by ValidateParams for unusable parameter sets.
var ErrInvalidParams = errors.New("invalid evaluation parameters")

// AESParams describes the AES (Rijndael) S-box written as a 16x16 hex table.
var AESParams = sboxeval.Params{
	Name:       "aes",
	InputBits:  8,
	OutputBits: 8,
	Symbols:    16,
	Indexing:   sboxeval.NibbleInterleaved,
}

// DESParams describes a single DES S-box: 6-bit input, 4-bit output, 4x16 table.
var DESParams = sboxeval.Params{
	Name:       "des",
	InputBits:  6,
	OutputBits: 4,
	Symbols:    2,
	Indexing:   sboxeval.RowMajor,
}

// NibbleParams describes a 4-bit to 4-bit S-box (PRESENT, GOST rows, Serpent).
var NibbleParams = sboxeval.Params{
	Name:       "nibble",
	InputBits:  4,
	OutputBits: 4,
	Symbols:    16,
	Indexing:   sboxeval.RowMajor,
}

// Bent4Params describes a 4-bit to 2-bit function, the smallest vectorial shape
// for which the bent criterion applies beyond the Boolean n=2 case.
var Bent4Params = sboxeval.Params{
	Name:       "bent4",
	InputBits:  4,
	OutputBits: 2,
	Symbols:    4,
	Indexing:   sboxeval.RowMajor,
}

var presets = map[string]sboxeval.Params{
	AESParams.Name:    AESParams,
	DESParams.Name:    DESParams,
	NibbleParams.Name: NibbleParams,
	Bent4Params.Name:  Bent4Params,
}

// GetParams returns the preset with the given name.
func GetParams(name string) (sboxeval.Params, error) {
	p, ok := presets[name]
	if !ok {
		return sboxeval.Params{}, fmt.Errorf("unknown preset: %s", name)
	}
	return p, nil
}

// Presets returns the preset names in sorted order.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidateParams validates the parameter set for consistency.
func ValidateParams(params sboxeval.Params) error {
	if params.InputBits < 0 || params.InputBits > MaxBitWidth {
		return fmt.Errorf("%w: input width %d outside [0, %d]", ErrInvalidParams, params.InputBits, MaxBitWidth)
	}
	if params.OutputBits < 0 || params.OutputBits > MaxBitWidth {
		return fmt.Errorf("%w: output width %d outside [0, %d]", ErrInvalidParams, params.OutputBits, MaxBitWidth)
	}
	if params.InputBits+params.OutputBits > MaxBitWidth {
		return fmt.Errorf("%w: input width %d plus output width %d exceeds %d",
			ErrInvalidParams, params.InputBits, params.OutputBits, MaxBitWidth)
	}
	if params.Symbols < 0 {
		return fmt.Errorf("%w: symbol count must not be negative", ErrInvalidParams)
	}
	if !params.Indexing.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidParams, params.Indexing)
	}
	return nil
}
