package cell

import (
	"github.com/ton-core/cellkit/bits"
	"github.com/ton-core/cellkit/cellhash"
	"github.com/ton-core/cellkit/errs"
)

// Cell is the immutable DAG node at the heart of the TON data model: a type
// tag, up to 1023 bits of payload, and up to 4 child references. Every
// field is set once at construction and never mutated afterward — a Cell's
// hash is valid for its entire lifetime (spec §3, §5).
type Cell struct {
	typ         cellhash.CellType
	data        []byte
	dataBitsLen uint
	refs        []*Cell
	meta        Meta
}

// empty is the canonical zero-bit, zero-ref Ordinary cell, built once.
var empty = &Cell{typ: cellhash.Ordinary, meta: EmptyCellMeta()}

// Empty returns the well-known empty cell (spec property 7).
func Empty() *Cell { return empty }

// New validates and constructs an Ordinary cell from raw bits and children.
// Exotic cells must go through NewExotic so their tag byte is checked
// against typ.
func New(data []byte, dataBitsLen uint, refs []*Cell) (*Cell, error) {
	return newTyped(cellhash.Ordinary, data, dataBitsLen, refs)
}

// NewExotic validates and constructs a cell of an exotic type (PrunedBranch,
// Library, MerkleProof, MerkleUpdate). The first payload byte must already
// carry the type's tag.
func NewExotic(typ cellhash.CellType, data []byte, dataBitsLen uint, refs []*Cell) (*Cell, error) {
	if !typ.IsExotic() {
		return nil, errs.New(errs.UnknownExoticTag, "%s is not an exotic cell type", typ)
	}
	return newTyped(typ, data, dataBitsLen, refs)
}

func newTyped(typ cellhash.CellType, data []byte, dataBitsLen uint, refs []*Cell) (*Cell, error) {
	meta, err := computeMeta(typ, data, dataBitsLen, refs)
	if err != nil {
		return nil, err
	}
	owned := make([]byte, (dataBitsLen+7)/8)
	copy(owned, data)
	ownedRefs := make([]*Cell, len(refs))
	copy(ownedRefs, refs)
	return &Cell{typ: typ, data: owned, dataBitsLen: dataBitsLen, refs: ownedRefs, meta: meta}, nil
}

// FromBuilder finalizes a bits.Builder plus its collected child references
// into an Ordinary cell, the common case for TL-B writers.
func FromBuilder(b *bits.Builder, refs []*Cell) (*Cell, error) {
	return New(b.Bytes(), b.BitsLen(), refs)
}

// Type reports the cell's type tag.
func (c *Cell) Type() cellhash.CellType { return c.typ }

// IsExotic reports whether this is anything but an Ordinary cell.
func (c *Cell) IsExotic() bool { return c.typ.IsExotic() }

// Data returns the raw payload bytes, padded to a byte boundary. Callers
// must not mutate the returned slice.
func (c *Cell) Data() []byte { return c.data }

// DataBitsLen reports how many of Data's bits are significant.
func (c *Cell) DataBitsLen() uint { return c.dataBitsLen }

// Refs returns the cell's child references in order. Callers must not
// mutate the returned slice.
func (c *Cell) Refs() []*Cell { return c.refs }

// RefsCount reports the number of child references.
func (c *Cell) RefsCount() int { return len(c.refs) }

// LevelMask reports which of the four representation levels this cell
// publishes.
func (c *Cell) LevelMask() cellhash.LevelMask { return c.meta.LevelMask }

// Hash returns the cell's representation hash at the given level (0 for the
// ordinary, unpruned case — the one callers almost always want).
func (c *Cell) Hash(level int) cellhash.Hash { return c.meta.HashAt(level) }

// Depth returns the cell's representation depth at the given level.
func (c *Cell) Depth(level int) uint16 { return c.meta.DepthAt(level) }

// Meta exposes the full computed meta for callers that need every level at once.
func (c *Cell) Meta() Meta { return c.meta }

// Parser returns a fresh bits.Parser positioned at the start of this cell's
// data and references — the entry point for TL-B reading.
func (c *Cell) Parser() *bits.Parser {
	return bits.NewParser(c.data, c.dataBitsLen, len(c.refs))
}

// Slice returns a read-only, independently-cursored view over this cell,
// the convenience type original TON libraries call a "cell slice".
func (c *Cell) Slice() *Slice {
	return &Slice{cell: c, p: c.Parser()}
}

// Equal compares two cells by representation hash at level 0 — the
// content-addressing identity the data model defines (spec §3).
func (c *Cell) Equal(other *Cell) bool {
	if c == other {
		return true
	}
	if other == nil {
		return false
	}
	return c.Hash(0) == other.Hash(0)
}
