// Package tlb implements the TL-B schema contract on top of cells: the
// TLB interface every schema type satisfies, the adapters that compose
// them (references, optionals, either, fixed/variable-length fields,
// snake bytes), and the recoverable-prefix sum-type dispatch described in
// §4.2 and §4.3 of the core specification.
package tlb

import (
	"fmt"

	"github.com/ton-core/cellkit/bits"
	"github.com/ton-core/cellkit/cell"
	"github.com/ton-core/cellkit/errs"
)

// TLB is satisfied by any Go type that can read and write its own TL-B
// definition against a cell slice. Implementations read/write only their
// own fields — the generic adapters in this package handle composition
// (references, options, sum types) around them.
type TLB interface {
	ReadDefinition(s *cell.Slice) error
	WriteDefinition(b *bits.Builder, refs *[]*cell.Cell) error
}

// ToCell builds a fresh cell by writing v's definition into a new builder.
func ToCell(v TLB) (*cell.Cell, error) {
	b := bits.NewBuilder()
	var refs []*cell.Cell
	if err := v.WriteDefinition(b, &refs); err != nil {
		return nil, err
	}
	for range refs {
		if err := b.ReserveRef(); err != nil {
			return nil, err
		}
	}
	return cell.FromBuilder(b, refs)
}

// FromCell reads v's definition from c's full contents and requires every
// bit and ref to be consumed (spec §4.2: no silent trailing data).
func FromCell(v TLB, c *cell.Cell) error {
	s := c.Slice()
	if err := v.ReadDefinition(s); err != nil {
		return err
	}
	return s.EnsureEmpty()
}

// TryVariants attempts to read one of several sum-type constructors in
// order, rolling the slice cursor back to its pre-attempt position after
// every WrongPrefix/OutOfOptions failure so the next variant starts clean
// (spec property 4). readers must return errs.WrongPrefix (or propagate one)
// when their discriminator doesn't match; any other error aborts the scan.
//
// A variant's own reader may itself dispatch a nested TryVariants, which
// exhausts to OutOfOptions rather than WrongPrefix once its inner options
// run out — that's still a "this variant didn't match" signal at the outer
// level, so OutOfOptions is recovered from exactly like WrongPrefix. Only
// the call site with no remaining readers turns it into a hard error.
func TryVariants(s *cell.Slice, readers ...func(*cell.Slice) error) error {
	for _, read := range readers {
		snap := s.Snapshot()
		err := read(s)
		if err == nil {
			return nil
		}
		if errs.Is(err, errs.WrongPrefix) || errs.Is(err, errs.OutOfOptions) {
			s.Restore(snap)
			continue
		}
		return err
	}
	return errs.New(errs.OutOfOptions, "no TL-B variant matched")
}

// ExpectPrefix reads n bits and requires them to equal want, returning a
// recoverable WrongPrefix error (and rewinding the read) on mismatch.
func ExpectPrefix(s *cell.Slice, want uint64, n uint) error {
	snap := s.Snapshot()
	v, err := s.ReadUint(n)
	if err != nil {
		return err
	}
	if v.Uint64() != want {
		s.Restore(snap)
		return errs.NewWrongPrefix(prefixLabel(want, n), prefixLabel(v.Uint64(), n))
	}
	return nil
}

func prefixLabel(v uint64, n uint) string {
	return fmt.Sprintf("0b%b (%d bits)", v, n)
}
