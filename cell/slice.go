package cell

import (
	"github.com/ton-core/cellkit/bits"
	"github.com/ton-core/cellkit/numeric"
)

// Slice is a read-only, independently-cursored view over a Cell's bits and
// references — the type TL-B readers actually operate on, keeping the Cell
// itself parser-free and reusable across concurrent reads (spec §5).
type Slice struct {
	cell *Cell
	p    *bits.Parser
}

// Cell returns the underlying cell this slice reads from.
func (s *Slice) Cell() *Cell { return s.cell }

// BitsLeft reports how many unread payload bits remain.
func (s *Slice) BitsLeft() uint { return s.p.BitsLeft() }

// RefsLeft reports how many unread references remain.
func (s *Slice) RefsLeft() int { return s.p.RefsLeft() }

// ReadBit consumes and returns one bit.
func (s *Slice) ReadBit() (bool, error) { return s.p.ReadBit() }

// ReadBits consumes n bits, MSB-first, into a minimal byte slice.
func (s *Slice) ReadBits(n uint) ([]byte, error) { return s.p.ReadBits(n) }

// ReadUint reads an n-bit unsigned machine integer.
func (s *Slice) ReadUint(n uint) (numeric.Machine, error) { return s.p.ReadUint(n) }

// ReadInt reads an n-bit two's-complement signed machine integer.
func (s *Slice) ReadInt(n uint) (numeric.Machine, error) { return s.p.ReadInt(n) }

// ReadNum reads an n-bit value, dispatching between the machine and
// big-integer representations the same way the builder's WriteNum does.
func (s *Slice) ReadNum(n uint, signed bool) (numeric.Value, error) { return s.p.ReadNum(n, signed) }

// EnsureEmpty succeeds iff every bit and ref has been consumed.
func (s *Slice) EnsureEmpty() error { return s.p.EnsureEmpty() }

// Snapshot captures the slice's cursor for a speculative read that might
// need to roll back (TL-B prefix dispatch, spec property 4).
func (s *Slice) Snapshot() bits.Snapshot { return s.p.Snapshot() }

// Restore rewinds the slice's cursor to a previously captured snapshot.
func (s *Slice) Restore(snap bits.Snapshot) { s.p.Restore(snap) }

// NextRef consumes and returns the next child cell.
func (s *Slice) NextRef() (*Cell, error) {
	idx, err := s.p.NextRefIndex()
	if err != nil {
		return nil, err
	}
	return s.cell.refs[idx], nil
}
