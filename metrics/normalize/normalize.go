// Package normalize flattens a candidate table of symbol tokens into an S-box of
// non-negative integers.
package normalize

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	sboxeval "github.com/themarkrogers/ai-s-box"
)

// ErrShape is the sentinel matched by every ShapeError.
var ErrShape = errors.New("malformed candidate table")

// ShapeError describes why a table cannot be flattened.
type ShapeError struct {
	Row    int // offending row, -1 when the whole table is at fault
	Got    int // observed column count
	Want   int // expected column count
	Reason string
}

func (e *ShapeError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("%s: %s", ErrShape, e.Reason)
	}
	return fmt.Sprintf("%s: row %d has %d columns, want %d (%s)", ErrShape, e.Row, e.Got, e.Want, e.Reason)
}

func (e *ShapeError) Unwrap() error { return ErrShape }

// Parser converts one token to an integer, reporting false when it does not apply.
type Parser func(token string) (int, bool)

// ParseHex parses a base-16 token with an optional 0x prefix.
func ParseHex(token string) (int, bool) {
	return parseBase(token, 16, "0x", "0X")
}

// ParseBinary parses a base-2 token with an optional 0b prefix.
func ParseBinary(token string) (int, bool) {
	return parseBase(token, 2, "0b", "0B")
}

// ParseDecimal parses a base-10 token.
func ParseDecimal(token string) (int, bool) {
	return parseBase(token, 10)
}

func parseBase(token string, base int, prefixes ...string) (int, bool) {
	s := strings.TrimSpace(token)
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			s = s[len(p):]
			break
		}
	}
	if s == "" {
		return 0, false
	}
	// 63 bits keeps every accepted value a non-negative int.
	v, err := strconv.ParseUint(s, base, 63)
	if err != nil {
		return 0, false
	}
	return int(v), true
}

// DefaultParsers returns the standard order: hexadecimal, then binary.
// Tokens neither accepts are assigned ordinals.
//
// Every binary string is also valid hex, so with this order a table of "0010"
// style tokens reads as hex. Use BinaryFirstParsers for such tables.
func DefaultParsers() []Parser {
	return []Parser{ParseHex, ParseBinary}
}

// BinaryFirstParsers tries binary before hexadecimal (DES-style tables).
func BinaryFirstParsers() []Parser {
	return []Parser{ParseBinary, ParseHex}
}

// Result is a flattened table.
type Result struct {
	SBox       sboxeval.SBox
	DomainSize int // rows * cols
	Rows       int
	Cols       int
	// DistinctSymbols counts distinct tokens after trimming whitespace.
	DistinctSymbols int
	// Ordinals maps every token no parser accepted to its assigned value.
	Ordinals map[string]int
}

// Normalize flattens table under the given indexing. Each token is passed to the
// parsers in order and the first success wins; tokens no parser accepts get the
// smallest integer not already used by a parsed value or an earlier ordinal, in
// first-seen row-major order. The ordinal assignment lives only for this call.
//
// A table with zero rows yields an empty S-box and domain size 0. Zero columns in a
// non-empty table, ragged rows, or a nibble-interleaved table that is not 16 columns
// wide with at most 16 rows yield a *ShapeError.
func Normalize(table sboxeval.Table, indexing sboxeval.Indexing, parsers ...Parser) (Result, error) {
	if len(parsers) == 0 {
		parsers = DefaultParsers()
	}

	rows := len(table)
	if rows == 0 {
		return Result{SBox: sboxeval.SBox{}, Ordinals: map[string]int{}}, nil
	}

	cols := len(table[0])
	if cols == 0 {
		return Result{}, &ShapeError{Row: 0, Got: 0, Want: 0, Reason: "empty first row"}
	}
	for r, row := range table {
		if len(row) != cols {
			return Result{}, &ShapeError{Row: r, Got: len(row), Want: cols, Reason: "ragged rows"}
		}
	}

	index, err := indexer(indexing, rows, cols)
	if err != nil {
		return Result{}, err
	}

	// First pass: parse what can be parsed and remember which values are taken.
	values := make([]int, rows*cols)
	parsed := make([]bool, rows*cols)
	used := make(map[int]struct{})
	distinct := make(map[string]struct{})
	for r, row := range table {
		for c, token := range row {
			pos := r*cols + c
			token = strings.TrimSpace(token)
			distinct[token] = struct{}{}
			for _, parse := range parsers {
				if v, ok := parse(token); ok {
					values[pos] = v
					parsed[pos] = true
					used[v] = struct{}{}
					break
				}
			}
		}
	}

	// Second pass: ordinals for everything else, skipping taken values.
	ordinals := make(map[string]int)
	next := 0
	for r, row := range table {
		for c, token := range row {
			pos := r*cols + c
			if parsed[pos] {
				continue
			}
			token = strings.TrimSpace(token)
			v, ok := ordinals[token]
			if !ok {
				for {
					if _, taken := used[next]; !taken {
						break
					}
					next++
				}
				v = next
				ordinals[token] = v
				used[v] = struct{}{}
			}
			values[pos] = v
		}
	}

	sbox := make(sboxeval.SBox, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			sbox[index(r, c)] = values[r*cols+c]
		}
	}

	return Result{
		SBox:            sbox,
		DomainSize:      rows * cols,
		Rows:            rows,
		Cols:            cols,
		DistinctSymbols: len(distinct),
		Ordinals:        ordinals,
	}, nil
}

func indexer(indexing sboxeval.Indexing, rows, cols int) (func(r, c int) int, error) {
	switch indexing {
	case sboxeval.RowMajor:
		return func(r, c int) int { return r*cols + c }, nil
	case sboxeval.NibbleInterleaved:
		if cols != 16 {
			return nil, &ShapeError{Row: -1, Got: cols, Want: 16, Reason: fmt.Sprintf("nibble indexing needs 16 columns, got %d", cols)}
		}
		if rows > 16 {
			return nil, &ShapeError{Row: -1, Got: rows, Want: 16, Reason: fmt.Sprintf("nibble indexing allows at most 16 rows, got %d", rows)}
		}
		return func(r, c int) int { return (r << 4) ^ c }, nil
	default:
		return nil, fmt.Errorf("unknown indexing: %s", indexing)
	}
}

// ParsersByName builds a parser list from names such as "hex", "bin" and "dec".
func ParsersByName(names ...string) ([]Parser, error) {
	parsers := make([]Parser, 0, len(names))
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "hex", "16":
			parsers = append(parsers, ParseHex)
		case "bin", "binary", "2":
			parsers = append(parsers, ParseBinary)
		case "dec", "decimal", "10":
			parsers = append(parsers, ParseDecimal)
		default:
			return nil, fmt.Errorf("unknown parser: %q", name)
		}
	}
	return parsers, nil
}
