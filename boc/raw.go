// Package boc implements the bag-of-cells binary envelope: the flat,
// topologically-sorted wire form of a cell DAG (§4.6), its binary
// reader/writer, and parallel hash verification.
package boc

import (
	"github.com/ton-core/cellkit/cell"
	"github.com/ton-core/cellkit/cellhash"
	"github.com/ton-core/cellkit/errs"
)

// Magic values identifying the three envelope variants a reader must
// accept: the generic (flag byte) form and two legacy "lean" forms.
const (
	GenericMagic uint32 = 0xb5ee9c72
	LeanMagic     uint32 = 0x68ff65f3
	LeanCRCMagic  uint32 = 0xacc3a728
)

// RawBoC is the flat, topologically-sorted form of a bag of cells: every
// reference is an index into Cells, strictly greater than the referencing
// cell's own index (spec §4.6).
type RawBoC struct {
	Cells []RawCell
	Roots []int
}

// RawCell is one flattened cell: its type, payload, and the indices of its
// children within the enclosing RawBoC.
type RawCell struct {
	Type        cellhash.CellType
	Data        []byte
	DataBitsLen uint
	RefIndices  []int
	LevelMask   cellhash.LevelMask
}

// ToCells assembles the flat form into a live cell.Cell DAG, grounded on
// the reverse-iteration algorithm used by reference TON implementations:
// process cells from the last index to the first so that every child has
// already been built by the time its parent needs it.
func (r *RawBoC) ToCells() ([]*cell.Cell, error) {
	n := len(r.Cells)
	built := make([]*cell.Cell, n) // built[i] holds the cell for original index i

	for i := n - 1; i >= 0; i-- {
		raw := r.Cells[i]
		refs := make([]*cell.Cell, len(raw.RefIndices))
		for j, refIdx := range raw.RefIndices {
			if refIdx <= i {
				return nil, errs.New(errs.BocBackReference, "cell %d references %d, which is not strictly forward", i, refIdx)
			}
			refs[j] = built[refIdx]
		}

		var c *cell.Cell
		var err error
		if raw.Type.IsExotic() {
			c, err = cell.NewExotic(raw.Type, raw.Data, raw.DataBitsLen, refs)
		} else {
			c, err = cell.New(raw.Data, raw.DataBitsLen, refs)
		}
		if err != nil {
			return nil, err
		}
		built[i] = c
	}

	roots := make([]*cell.Cell, len(r.Roots))
	for i, idx := range r.Roots {
		roots[i] = built[idx]
	}
	return roots, nil
}
