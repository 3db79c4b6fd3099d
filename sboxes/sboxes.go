// Package sboxes provides well-known reference S-boxes as candidate tables, for
// examples, tests and the CLI's builtin evaluations.
package sboxes

import (
	"fmt"
	"math/bits"
	"sort"

	sboxeval "github.com/themarkrogers/ai-s-box"
	"github.com/themarkrogers/ai-s-box/core"
)

// aesForward is the FIPS-197 S-box (Figure 7), generated from GF(2⁸) arithmetic.
var aesForward = func() (sbox [256]byte) {
	var p, q uint8 = 1, 1
	for {
		// multiply p by 3
		if p&0x80 != 0 {
			p ^= (p << 1) ^ 0x1b
		} else {
			p ^= p << 1
		}

		// divide q by 3 (equals multiplication by 0xf6)
		q ^= q << 1
		q ^= q << 2
		q ^= q << 4
		if q&0x80 != 0 {
			q ^= 0x09
		}

		// affine transformation
		xformed := q ^ bits.RotateLeft8(q, 1) ^ bits.RotateLeft8(q, 2) ^ bits.RotateLeft8(q, 3) ^ bits.RotateLeft8(q, 4)
		sbox[p] = xformed ^ 0x63

		if p == 1 {
			break
		}
	}

	// 0 has no inverse
	sbox[0] = 0x63
	return sbox
}()

var aesInverse = func() (inv [256]byte) {
	for x, y := range aesForward {
		inv[y] = byte(x)
	}
	return inv
}()

// presentSBox is the 4-bit S-box of the PRESENT block cipher.
var presentSBox = []int{0xC, 0x5, 0x6, 0xB, 0x9, 0x0, 0xA, 0xD, 0x3, 0xE, 0xF, 0x8, 0x4, 0x7, 0x1, 0x2}

// gostSBox holds the 8 GOST 28147-89 S-boxes (4-bit input -> 4-bit output).
var gostSBox = [8][16]int{
	{4, 10, 9, 2, 13, 8, 0, 14, 6, 11, 1, 12, 7, 15, 5, 3},
	{14, 11, 4, 12, 6, 13, 15, 10, 2, 3, 8, 1, 0, 7, 5, 9},
	{5, 8, 1, 13, 10, 3, 4, 2, 14, 15, 12, 7, 6, 0, 9, 11},
	{7, 13, 10, 1, 0, 8, 9, 15, 14, 4, 6, 12, 11, 2, 5, 3},
	{6, 12, 7, 1, 5, 15, 13, 8, 4, 10, 9, 14, 0, 3, 11, 2},
	{4, 11, 10, 0, 7, 2, 1, 13, 3, 6, 8, 5, 9, 12, 15, 14},
	{13, 11, 4, 1, 3, 15, 5, 9, 0, 10, 14, 7, 6, 8, 2, 12},
	{1, 15, 13, 0, 5, 7, 10, 4, 9, 2, 3, 14, 6, 11, 8, 12},
}

// desS5 is DES S-box 5 as printed in FIPS 46-3: 4 rows of 16 columns.
var desS5 = [4][16]int{
	{2, 12, 4, 1, 7, 10, 11, 6, 8, 5, 3, 15, 13, 0, 14, 9},
	{14, 11, 2, 12, 4, 7, 13, 1, 5, 0, 15, 10, 3, 9, 8, 6},
	{4, 2, 1, 11, 10, 13, 7, 8, 15, 9, 12, 5, 6, 3, 0, 14},
	{11, 8, 12, 7, 1, 14, 2, 13, 6, 15, 0, 9, 10, 4, 5, 3},
}

// AESValues returns the AES S-box as integers.
func AESValues() []int {
	out := make([]int, 256)
	for i, v := range aesForward {
		out[i] = int(v)
	}
	return out
}

// AES returns the AES S-box as the usual 16x16 table of two-digit hex tokens.
// Cell (row, col) holds S((row << 4) | col).
func AES() sboxeval.Table {
	return HexTable(AESValues(), 16, 2)
}

// AESInverse returns the inverse AES S-box as a 16x16 hex table.
func AESInverse() sboxeval.Table {
	values := make([]int, 256)
	for i, v := range aesInverse {
		values[i] = int(v)
	}
	return HexTable(values, 16, 2)
}

// PRESENT returns the PRESENT S-box as a single row of hex digits.
func PRESENT() sboxeval.Table {
	return HexTable(presentSBox, 16, 1)
}

// GOST returns GOST 28147-89 S-box k (0-7) as a single row of hex digits.
func GOST(k int) (sboxeval.Table, error) {
	if k < 0 || k >= len(gostSBox) {
		return nil, fmt.Errorf("gost s-box index %d out of range [0, %d)", k, len(gostSBox))
	}
	return HexTable(gostSBox[k][:], 16, 1), nil
}

// DESS5 returns DES S-box 5 as 4 rows of 4-digit binary strings. The table is
// flattened row-major, which is not the DES outer/inner bit selection.
func DESS5() sboxeval.Table {
	table := make(sboxeval.Table, len(desS5))
	for r, row := range desS5 {
		table[r] = make([]string, len(row))
		for c, v := range row {
			table[r][c] = fmt.Sprintf("%04b", v)
		}
	}
	return table
}

// Identity returns the identity map on n bits as rows of 16 hex tokens (or one
// shorter row when 2^n < 16).
func Identity(n int) sboxeval.Table {
	size := 1 << uint(n)
	values := make([]int, size)
	for i := range values {
		values[i] = i
	}
	width := (n + 3) / 4
	if width == 0 {
		width = 1
	}
	return HexTable(values, 16, width)
}

// HexTable lays values out row-major, cols per row, formatting each as zero-padded
// lowercase hex of the given width. The last row is short when len(values) is not
// a multiple of cols.
func HexTable(values []int, cols, width int) sboxeval.Table {
	if len(values) < cols {
		cols = len(values)
	}
	if cols == 0 {
		return sboxeval.Table{}
	}
	table := make(sboxeval.Table, 0, (len(values)+cols-1)/cols)
	for start := 0; start < len(values); start += cols {
		end := start + cols
		if end > len(values) {
			end = len(values)
		}
		row := make([]string, 0, end-start)
		for _, v := range values[start:end] {
			row = append(row, fmt.Sprintf("%0*x", width, v))
		}
		table = append(table, row)
	}
	return table
}

// Builtin is a named reference S-box with the parameters it is meant to be
// evaluated under.
type Builtin struct {
	Name        string
	Description string
	Table       sboxeval.Table
	Params      sboxeval.Params
	// BinaryFirst marks tables written as binary strings.
	BinaryFirst bool
}

// Builtins returns every reference S-box keyed by name.
func Builtins() map[string]Builtin {
	present := core.NibbleParams
	present.Name = "present"
	identity := core.NibbleParams
	identity.Name = "identity4"
	aesInv := core.AESParams
	aesInv.Name = "aes-inverse"

	builtins := map[string]Builtin{
		"aes": {
			Name: "aes", Description: "AES (Rijndael) forward S-box, 16x16 hex",
			Table: AES(), Params: core.AESParams,
		},
		"aes-inverse": {
			Name: "aes-inverse", Description: "AES inverse S-box, 16x16 hex",
			Table: AESInverse(), Params: aesInv,
		},
		"present": {
			Name: "present", Description: "PRESENT 4-bit S-box",
			Table: PRESENT(), Params: present,
		},
		"des-s5": {
			Name: "des-s5", Description: "DES S-box 5, 4x16 binary strings",
			Table: DESS5(), Params: core.DESParams, BinaryFirst: true,
		},
		"identity4": {
			Name: "identity4", Description: "identity map on 4 bits",
			Table: Identity(4), Params: identity,
		},
	}
	for k := range gostSBox {
		name := fmt.Sprintf("gost-%d", k+1)
		table, _ := GOST(k)
		params := core.NibbleParams
		params.Name = name
		builtins[name] = Builtin{
			Name: name, Description: fmt.Sprintf("GOST 28147-89 S-box %d", k+1),
			Table: table, Params: params,
		}
	}
	return builtins
}

// Lookup returns the builtin with the given name.
func Lookup(name string) (Builtin, error) {
	b, ok := Builtins()[name]
	if !ok {
		return Builtin{}, fmt.Errorf("unknown builtin s-box: %s", name)
	}
	return b, nil
}

// Names returns the builtin names in sorted order.
func Names() []string {
	builtins := Builtins()
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
