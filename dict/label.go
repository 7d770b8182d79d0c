package dict

import (
	stdbits "math/bits"

	"github.com/ton-core/cellkit/bits"
	"github.com/ton-core/cellkit/cell"
	"github.com/ton-core/cellkit/errs"
	"github.com/ton-core/cellkit/numeric"
	"github.com/ton-core/cellkit/tlb"
)

// fixedWidthBits is ⌈log2(m+1)⌉, the width of the `#<= m` field the long
// and same label encodings use for their length — 0 when m is 0, since the
// only representable value is then 0 itself.
func fixedWidthBits(m int) uint {
	if m <= 0 {
		return 0
	}
	return uint(stdbits.Len(uint(m)))
}

// commonPrefixLen returns the number of leading bits every key in entries
// agrees on, capped at m.
func commonPrefixLen(entries []entry, m int) int {
	if len(entries) == 1 {
		return m
	}
	l := m
	first := entries[0].key
	for _, e := range entries[1:] {
		k := 0
		for k < l && k < len(first) && k < len(e.key) && first[k] == e.key[k] {
			k++
		}
		if k < l {
			l = k
		}
	}
	return l
}

func isUniform(label []bool) (bit bool, uniform bool) {
	if len(label) == 0 {
		return false, true
	}
	v := label[0]
	for _, b := range label[1:] {
		if b != v {
			return false, false
		}
	}
	return v, true
}

const (
	labelShort = iota
	labelLong
	labelSame
)

// chooseLabel picks the cheapest label encoding for this label against a
// subtree of remaining length m, breaking ties in short > long > same
// order (spec §4.7).
func chooseLabel(label []bool, m int) int {
	l := len(label)
	fw := int(fixedWidthBits(m))

	best := labelShort
	bestCost := 2*l + 2

	longCost := 2 + fw + l
	if longCost < bestCost {
		best = labelLong
		bestCost = longCost
	}

	if _, uniform := isUniform(label); uniform {
		sameCost := 3 + fw
		if sameCost < bestCost {
			best = labelSame
		}
	}
	return best
}

func writeLabel(b *bits.Builder, label []bool, m int) error {
	switch chooseLabel(label, m) {
	case labelShort:
		if err := b.WriteBit(false); err != nil {
			return err
		}
		if err := (tlb.Unary{}).Write(b, uint(len(label))); err != nil {
			return err
		}
		return writeRawBits(b, label)
	case labelLong:
		if err := b.WriteBit(true); err != nil {
			return err
		}
		if err := b.WriteBit(false); err != nil {
			return err
		}
		fw := fixedWidthBits(m)
		if err := b.WriteNum(numeric.FromUint64At(uint64(len(label)), fw), fw); err != nil {
			return err
		}
		return writeRawBits(b, label)
	default: // labelSame
		if err := b.WriteBit(true); err != nil {
			return err
		}
		if err := b.WriteBit(true); err != nil {
			return err
		}
		bit, _ := isUniform(label)
		if err := b.WriteBit(bit); err != nil {
			return err
		}
		fw := fixedWidthBits(m)
		return b.WriteNum(numeric.FromUint64At(uint64(len(label)), fw), fw)
	}
}

func writeRawBits(b *bits.Builder, label []bool) error {
	for _, bit := range label {
		if err := b.WriteBit(bit); err != nil {
			return err
		}
	}
	return nil
}

func readLabel(s *cell.Slice, m int) ([]bool, error) {
	tag0, err := s.ReadBit()
	if err != nil {
		return nil, err
	}
	if !tag0 {
		n, err := (tlb.Unary{}).Read(s)
		if err != nil {
			return nil, err
		}
		return readRawBits(s, n)
	}
	tag1, err := s.ReadBit()
	if err != nil {
		return nil, err
	}
	fw := fixedWidthBits(m)
	if !tag1 {
		nVal, err := s.ReadUint(fw)
		if err != nil {
			return nil, err
		}
		return readRawBits(s, uint(nVal.Uint64()))
	}
	bit, err := s.ReadBit()
	if err != nil {
		return nil, err
	}
	nVal, err := s.ReadUint(fw)
	if err != nil {
		return nil, err
	}
	n := uint(nVal.Uint64())
	label := make([]bool, n)
	for i := range label {
		label[i] = bit
	}
	return label, nil
}

func readRawBits(s *cell.Slice, n uint) ([]bool, error) {
	out := make([]bool, n)
	for i := range out {
		bit, err := s.ReadBit()
		if err != nil {
			return nil, err
		}
		out[i] = bit
	}
	return out, nil
}

// errTooManyKeyBits guards against malformed input claiming a label longer
// than the remaining key length.
func errTooManyKeyBits(l, m int) error {
	return errs.New(errs.DataOverflow, "label length %d exceeds remaining key length %d", l, m)
}
