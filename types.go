package sboxeval

import (
	"fmt"
	"strings"
)

// =============================================================================
// Candidate Types
// =============================================================================

// Table is a candidate S-box as rows of symbol tokens. Tokens are opaque text:
// hex digits, binary digits or arbitrary strings. All rows must have equal length.
type Table [][]string

// SBox is a flattened S-box: SBox[x] is the output for input x.
type SBox []int

// Max returns the largest output value, or 0 for an empty S-box.
func (s SBox) Max() int {
	max := 0
	for _, v := range s {
		if v > max {
			max = v
		}
	}
	return max
}

// =============================================================================
// Indexing
// =============================================================================

// Indexing selects how a (row, col) cell of a Table maps to an input value.
type Indexing int

const (
	// RowMajor maps (row, col) to row*cols + col.
	RowMajor Indexing = iota
	// NibbleInterleaved maps (row, col) to (row << 4) XOR col, the layout of
	// byte-oriented tables such as the AES S-box printed as 16x16 hex.
	NibbleInterleaved
)

// String returns the canonical name of the indexing convention.
func (i Indexing) String() string {
	switch i {
	case RowMajor:
		return "row-major"
	case NibbleInterleaved:
		return "nibble"
	default:
		return fmt.Sprintf("indexing(%d)", int(i))
	}
}

// Valid reports whether i is a known convention.
func (i Indexing) Valid() bool {
	return i == RowMajor || i == NibbleInterleaved
}

// MarshalText implements encoding.TextMarshaler.
func (i Indexing) MarshalText() ([]byte, error) {
	if !i.Valid() {
		return nil, fmt.Errorf("unknown indexing: %d", int(i))
	}
	return []byte(i.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *Indexing) UnmarshalText(text []byte) error {
	parsed, err := ParseIndexing(string(text))
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

// ParseIndexing parses an indexing name. The empty string means RowMajor.
func ParseIndexing(name string) (Indexing, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "row-major", "rowmajor", "row":
		return RowMajor, nil
	case "nibble", "nibble-interleaved", "interleaved":
		return NibbleInterleaved, nil
	default:
		return RowMajor, fmt.Errorf("unknown indexing: %q", name)
	}
}

// =============================================================================
// Parameter Types
// =============================================================================

// Params describes the claimed shape of a candidate.
type Params struct {
	Name       string   `json:"name,omitempty" yaml:"name,omitempty"`
	InputBits  int      `json:"input_bits" yaml:"input_bits"`   // n: claimed input width
	OutputBits int      `json:"output_bits" yaml:"output_bits"` // m: claimed output width
	Symbols    int      `json:"symbols,omitempty" yaml:"symbols,omitempty"` // informational alphabet size
	Indexing   Indexing `json:"indexing" yaml:"indexing"`
}

// =============================================================================
// Report
// =============================================================================

// Report is the result of one evaluation. Pointer fields are nil when the metric is
// not well-defined for the observed shape (absent), which is distinct from zero.
// A Report is built once and must not be modified by callers.
type Report struct {
	InputBits  int      `json:"input_bits"`
	OutputBits int      `json:"output_bits"`
	Indexing   Indexing `json:"indexing"`

	DomainSize         int  `json:"domain_size"`
	ExpectedDomainSize int  `json:"expected_domain_size"`
	DomainConsistent   bool `json:"domain_consistency"`
	RangeConsistent    bool `json:"range_consistency"`
	MaxOutputValue     int  `json:"max_output_value"`
	DistinctSymbols    int  `json:"distinct_symbols"`
	ClaimedSymbols     int  `json:"claimed_symbols,omitempty"`

	// MaxDDTEntry is the differential uniformity (max DDT cell with dx != 0).
	MaxDDTEntry *int `json:"max_ddt_entry"`
	// MaxLinearCorrelation is max |W(a,b)| over (a,b) != (0,0), divided by 2^n.
	MaxLinearCorrelation *float64 `json:"max_linear_correlation"`
	// MaxWalshMagnitude is the same maximum before normalization.
	MaxWalshMagnitude *int `json:"max_walsh_magnitude"`
	// Nonlinearity is 2^(n-1) - max|W|/2 over non-zero output masks.
	Nonlinearity *int `json:"nonlinearity"`

	IsBent        bool   `json:"is_bent"`
	IsPermutation bool   `json:"is_permutation"`
	Fingerprint   string `json:"fingerprint,omitempty"`
}

// DifferentialUniformity returns MaxDDTEntry and whether it is present.
func (r Report) DifferentialUniformity() (int, bool) {
	if r.MaxDDTEntry == nil {
		return 0, false
	}
	return *r.MaxDDTEntry, true
}

// LinearCorrelation returns MaxLinearCorrelation and whether it is present.
func (r Report) LinearCorrelation() (float64, bool) {
	if r.MaxLinearCorrelation == nil {
		return 0, false
	}
	return *r.MaxLinearCorrelation, true
}
