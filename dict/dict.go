// Package dict implements the dictionary codec: a binary Patricia tree
// with compressed labels, serialized into cells, mapping fixed-width keys
// to adapter-typed values (spec §4.7).
package dict

import (
	"sort"

	"github.com/ton-core/cellkit/bits"
	"github.com/ton-core/cellkit/cell"
	"github.com/ton-core/cellkit/errs"
)

// Entry is one key/value pair to build into a dictionary. Key must be
// exactly keyBits long and is consumed MSB-first.
type Entry[T any] struct {
	Key   []bool
	Value T
}

// entry is the adapter-erased internal form used by the label/tree
// machinery so it doesn't need to be generic over T.
type entry struct {
	key    []bool
	encode func(b *bits.Builder, refs *[]*cell.Cell) error
}

// Build serializes entries into the root cell of a Patricia tree keyed
// over keyBits bits. entries must have unique keys, each exactly keyBits
// long; Build sorts them internally so callers don't have to. A required
// Hashmap is never empty — use HashMapE for the optional, possibly-empty
// variant.
func Build[T any](entries []Entry[T], keyBits int, val ValAdapter[T]) (*cell.Cell, error) {
	if len(entries) == 0 {
		return nil, errs.New(errs.CellNotEmpty, "dictionary must have at least one entry")
	}
	internal, err := toInternal(entries, keyBits, val)
	if err != nil {
		return nil, err
	}
	b := bits.NewBuilder()
	var refs []*cell.Cell
	if err := buildEdgeInto(b, &refs, internal, keyBits); err != nil {
		return nil, err
	}
	return cell.FromBuilder(b, refs)
}

func toInternal[T any](entries []Entry[T], keyBits int, val ValAdapter[T]) ([]entry, error) {
	out := make([]entry, len(entries))
	seen := make(map[string]bool, len(entries))
	for i, e := range entries {
		if len(e.Key) != keyBits {
			return nil, errs.New(errs.DataOverflow, "entry %d key is %d bits, expected %d", i, len(e.Key), keyBits)
		}
		k := boolsToString(e.Key)
		if seen[k] {
			return nil, errs.New(errs.CellNotEmpty, "duplicate dictionary key at entry %d", i)
		}
		seen[k] = true
		value := e.Value
		out[i] = entry{
			key: e.Key,
			encode: func(b *bits.Builder, refs *[]*cell.Cell) error {
				return val.Write(b, refs, value)
			},
		}
	}
	sort.Slice(out, func(i, j int) bool { return lessBools(out[i].key, out[j].key) })
	return out, nil
}

func boolsToString(bs []bool) string {
	buf := make([]byte, len(bs))
	for i, b := range bs {
		if b {
			buf[i] = '1'
		} else {
			buf[i] = '0'
		}
	}
	return string(buf)
}

func lessBools(a, b []bool) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return !a[i] && b[i]
		}
	}
	return len(a) < len(b)
}

// buildEdge builds one Patricia node as its own cell — used for fork
// children, which the grammar always boxes in a ref.
func buildEdge(entries []entry, m int) (*cell.Cell, error) {
	b := bits.NewBuilder()
	var refs []*cell.Cell
	if err := buildEdgeInto(b, &refs, entries, m); err != nil {
		return nil, err
	}
	return cell.FromBuilder(b, refs)
}

// buildEdgeInto writes one Patricia node directly into an existing
// builder: a label covering the common prefix of entries' remaining
// keys, then either a value (leaf, when the label consumes every
// remaining bit) or two child refs (fork), one per value of the next key
// bit. Writing into a caller-supplied builder lets a Hashmap embedded as
// a TLB field share its parent's cell instead of always boxing itself.
func buildEdgeInto(b *bits.Builder, refs *[]*cell.Cell, entries []entry, m int) error {
	l := commonPrefixLen(entries, m)
	label := entries[0].key[:l]
	if err := writeLabel(b, label, m); err != nil {
		return err
	}

	if l == m {
		if len(entries) != 1 {
			return errs.New(errs.CellNotEmpty, "dictionary keys collide after full prefix match")
		}
		return entries[0].encode(b, refs)
	}

	var left, right []entry
	for _, e := range entries {
		rest := e.key[l+1:]
		stripped := entry{key: rest, encode: e.encode}
		if e.key[l] {
			right = append(right, stripped)
		} else {
			left = append(left, stripped)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return errs.New(errs.CellNotEmpty, "common-prefix computation produced an empty branch")
	}

	leftCell, err := buildEdge(left, m-l-1)
	if err != nil {
		return err
	}
	rightCell, err := buildEdge(right, m-l-1)
	if err != nil {
		return err
	}
	*refs = append(*refs, leftCell, rightCell)
	return nil
}

// Get looks up key (exactly keyBits long) in a dictionary rooted at root,
// descending cell by cell without decoding the whole tree.
func Get[T any](root *cell.Cell, key []bool, keyBits int, val ValAdapter[T]) (T, bool, error) {
	var zero T
	if len(key) != keyBits {
		return zero, false, errs.New(errs.DataOverflow, "key is %d bits, expected %d", len(key), keyBits)
	}
	return getSlice(root.Slice(), key, keyBits, val)
}

func getSlice[T any](s *cell.Slice, key []bool, m int, val ValAdapter[T]) (T, bool, error) {
	var zero T
	pos := 0
	for {
		label, err := readLabel(s, m)
		if err != nil {
			return zero, false, err
		}
		if len(label) > m {
			return zero, false, errTooManyKeyBits(len(label), m)
		}
		for i, bit := range label {
			if key[pos+i] != bit {
				return zero, false, nil
			}
		}
		pos += len(label)
		m -= len(label)

		if m == 0 {
			v, err := val.Read(s)
			if err != nil {
				return zero, false, err
			}
			return v, true, nil
		}

		bit := key[pos]
		pos++
		m--
		left, err := s.NextRef()
		if err != nil {
			return zero, false, err
		}
		right, err := s.NextRef()
		if err != nil {
			return zero, false, err
		}
		if bit {
			s = right.Slice()
		} else {
			s = left.Slice()
		}
	}
}

// Entries decodes every key/value pair from a dictionary rooted at root,
// in ascending key order (Patricia traversal always visits 0-branches
// before 1-branches).
func Entries[T any](root *cell.Cell, keyBits int, val ValAdapter[T]) ([]Entry[T], error) {
	var out []Entry[T]
	err := walkSlice(root.Slice(), nil, keyBits, val, &out)
	return out, err
}

func walk[T any](c *cell.Cell, prefix []bool, m int, val ValAdapter[T], out *[]Entry[T]) error {
	return walkSlice(c.Slice(), prefix, m, val, out)
}

func walkSlice[T any](s *cell.Slice, prefix []bool, m int, val ValAdapter[T], out *[]Entry[T]) error {
	label, err := readLabel(s, m)
	if err != nil {
		return err
	}
	if len(label) > m {
		return errTooManyKeyBits(len(label), m)
	}
	key := append(append([]bool{}, prefix...), label...)
	remaining := m - len(label)

	if remaining == 0 {
		v, err := val.Read(s)
		if err != nil {
			return err
		}
		*out = append(*out, Entry[T]{Key: key, Value: v})
		return nil
	}

	left, err := s.NextRef()
	if err != nil {
		return err
	}
	right, err := s.NextRef()
	if err != nil {
		return err
	}
	if err := walk(left, append(append([]bool{}, key...), false), remaining-1, val, out); err != nil {
		return err
	}
	return walk(right, append(append([]bool{}, key...), true), remaining-1, val, out)
}
