// Package ddt builds the Difference Distribution Table of an S-box.
package ddt

import (
	"context"
	"errors"
	"fmt"

	sboxeval "github.com/themarkrogers/ai-s-box"
	"github.com/themarkrogers/ai-s-box/utils"
)

var (
	// ErrDomainMismatch is returned when the S-box length is not 2^n.
	ErrDomainMismatch = errors.New("s-box length does not match input width")

	// ErrNegativeOutput is returned when an S-box value is below zero.
	ErrNegativeOutput = errors.New("s-box output is negative")
)

// serialBelow is the number of input differences under which rows are built inline.
const serialBelow = 64

// Table is a Difference Distribution Table. Cell (dx, dy) counts the inputs x
// with S(x) XOR S(x XOR dx) == dy. Rows are indexed by the input difference.
//
// When every output fits in m bits the table is dense: 2^n rows of 2^m cells.
// Otherwise output differences can be arbitrarily large, so only the per-row
// maximum and the differential spectrum are kept and individual cells are
// recounted on demand.
type Table struct {
	inputSize  int
	outputSize int
	sbox       sboxeval.SBox

	dense    []int // row-major: dense[dx*outputSize+dy]; nil when sparse
	rowMax   []int
	spectrum []map[int]int // per row, non-zero cells only; nil when dense
}

// Compute builds the DDT of sbox, which must hold exactly 2^n values.
//
// Outputs of 2^m or more switch the table to sparse rows, so out-of-range
// outputs never grow the allocation. Rows are built in parallel over dx; ctx
// cancellation aborts with ctx.Err().
func Compute(ctx context.Context, sbox sboxeval.SBox, n, m int) (*Table, error) {
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
		if y < 0 {
			return nil, fmt.Errorf("%w: S(%d) = %d", ErrNegativeOutput, x, y)
		}
	}

	t := &Table{
		inputSize:  inputSize,
		outputSize: outputSize,
		sbox:       append(sboxeval.SBox(nil), sbox...),
		rowMax:     make([]int, inputSize),
	}

	if sbox.Max() < outputSize {
		if err := utils.CheckTableSize(inputSize, outputSize); err != nil {
			return nil, err
		}
		t.dense = make([]int, inputSize*outputSize)
		err = utils.ParallelFor(ctx, inputSize, serialBelow, t.denseRow)
	} else {
		t.spectrum = make([]map[int]int, inputSize)
		err = utils.ParallelFor(ctx, inputSize, serialBelow, t.sparseRow)
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Table) denseRow(dx int) {
	row := t.dense[dx*t.outputSize : (dx+1)*t.outputSize]
	for x, y := range t.sbox {
		row[y^t.sbox[x^dx]]++
	}
	for _, v := range row {
		if v > t.rowMax[dx] {
			t.rowMax[dx] = v
		}
	}
}

func (t *Table) sparseRow(dx int) {
	counts := t.countRow(dx)
	spectrum := make(map[int]int)
	for _, v := range counts {
		spectrum[v]++
		if v > t.rowMax[dx] {
			t.rowMax[dx] = v
		}
	}
	t.spectrum[dx] = spectrum
}

func (t *Table) countRow(dx int) map[int]int {
	counts := make(map[int]int)
	for x, y := range t.sbox {
		counts[y^t.sbox[x^dx]]++
	}
	return counts
}

// InputSize returns the number of rows (2^n).
func (t *Table) InputSize() int { return t.inputSize }

// OutputSize returns 2^m, the number of columns of a dense table.
func (t *Table) OutputSize() int { return t.outputSize }

// Dense reports whether every cell is stored, which holds when all outputs
// are below 2^m.
func (t *Table) Dense() bool { return t.dense != nil }

// At returns the count for input difference dx and output difference dy.
func (t *Table) At(dx, dy int) int {
	if t.dense != nil {
		if dy < 0 || dy >= t.outputSize {
			return 0
		}
		return t.dense[dx*t.outputSize+dy]
	}
	count := 0
	for x, y := range t.sbox {
		if y^t.sbox[x^dx] == dy {
			count++
		}
	}
	return count
}

// Row returns a copy of the row for input difference dx, or nil for a sparse table.
func (t *Table) Row(dx int) []int {
	if t.dense == nil {
		return nil
	}
	row := make([]int, t.outputSize)
	copy(row, t.dense[dx*t.outputSize:(dx+1)*t.outputSize])
	return row
}

// RowCounts returns the non-zero cells of row dx keyed by output difference.
func (t *Table) RowCounts(dx int) map[int]int {
	if t.dense == nil {
		return t.countRow(dx)
	}
	counts := make(map[int]int)
	for dy, v := range t.dense[dx*t.outputSize : (dx+1)*t.outputSize] {
		if v != 0 {
			counts[dy] = v
		}
	}
	return counts
}

// RowSum returns the sum of the row for dx. It is always 2^n.
func (t *Table) RowSum(dx int) int {
	sum := 0
	for _, v := range t.RowCounts(dx) {
		sum += v
	}
	return sum
}

// DifferentialUniformity returns the largest cell over all dx != 0.
// The dx = 0 row is excluded because it always concentrates 2^n at dy = 0.
// A 1-entry S-box has no non-zero difference and returns 0.
func (t *Table) DifferentialUniformity() int {
	max := 0
	for _, v := range t.rowMax[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// Spectrum returns the differential spectrum: for each cell value occurring in a
// row dx != 0, the number of cells holding it. A sparse table has no bounded
// output axis, so its spectrum leaves out zero cells.
func (t *Table) Spectrum() map[int]int {
	spectrum := make(map[int]int)
	if t.dense != nil {
		for _, v := range t.dense[t.outputSize:] {
			spectrum[v]++
		}
		return spectrum
	}
	for _, row := range t.spectrum[1:] {
		for v, count := range row {
			spectrum[v] += count
		}
	}
	return spectrum
}
