package dict

import (
	"github.com/ton-core/cellkit/bits"
	"github.com/ton-core/cellkit/cell"
	"github.com/ton-core/cellkit/errs"
)

// HashMap embeds a required Hashmap n X as a TLB field: the current cell
// IS the dictionary root, no presence bit and no boxing ref. KeyBits and
// Val must be set before Read/WriteDefinition is called.
type HashMap[T any] struct {
	KeyBits int
	Val     ValAdapter[T]
	Entries []Entry[T]
}

func (m *HashMap[T]) ReadDefinition(s *cell.Slice) error {
	out := make([]Entry[T], 0)
	if err := walkSlice(s, nil, m.KeyBits, m.Val, &out); err != nil {
		return err
	}
	m.Entries = out
	return nil
}

func (m *HashMap[T]) WriteDefinition(b *bits.Builder, refs *[]*cell.Cell) error {
	if len(m.Entries) == 0 {
		return errs.New(errs.CellNotEmpty, "required hashmap must have at least one entry")
	}
	internal, err := toInternal(m.Entries, m.KeyBits, m.Val)
	if err != nil {
		return err
	}
	return buildEdgeInto(b, refs, internal, m.KeyBits)
}

// Get looks up key by a linear scan of the in-memory Entries (as filled by
// ReadDefinition or set by the caller); it does not consult any cell.
func (m *HashMap[T]) Get(key []bool) (T, bool, error) {
	var zero T
	if len(m.Entries) == 0 {
		return zero, false, nil
	}
	for _, e := range m.Entries {
		if boolsEqual(e.Key, key) {
			return e.Value, true, nil
		}
	}
	return zero, false, nil
}

// HashMapE embeds an optional HashmapE n X: a present bit, then (if set)
// the dictionary root boxed in a child cell.
type HashMapE[T any] struct {
	KeyBits int
	Val     ValAdapter[T]
	Entries []Entry[T]
}

func (m *HashMapE[T]) ReadDefinition(s *cell.Slice) error {
	present, err := s.ReadBit()
	if err != nil {
		return err
	}
	if !present {
		m.Entries = nil
		return nil
	}
	child, err := s.NextRef()
	if err != nil {
		return err
	}
	out := make([]Entry[T], 0)
	if err := walk(child, nil, m.KeyBits, m.Val, &out); err != nil {
		return err
	}
	m.Entries = out
	return nil
}

func (m *HashMapE[T]) WriteDefinition(b *bits.Builder, refs *[]*cell.Cell) error {
	if len(m.Entries) == 0 {
		return b.WriteBit(false)
	}
	if err := b.WriteBit(true); err != nil {
		return err
	}
	root, err := Build(m.Entries, m.KeyBits, m.Val)
	if err != nil {
		return err
	}
	*refs = append(*refs, root)
	return nil
}

func boolsEqual(a, b []bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
