package boc

import (
	"encoding/binary"
	"hash/crc32"
	"math/bits"

	"github.com/ton-core/cellkit/cell"
	"github.com/ton-core/cellkit/cellhash"
	"github.com/ton-core/cellkit/errs"
)

// WriteOptions controls the shape of the envelope WriteBoC produces.
type WriteOptions struct {
	// WithCRC appends a trailing little-endian CRC-32C of everything before
	// it, using the generic magic's flag bit.
	WithCRC bool
	// WithIndex emits the optional per-cell byte-offset index.
	WithIndex bool
}

// WriteBoC serializes one or more root cells into a bag-of-cells envelope,
// grounded on the reference depth-first topological sort: every cell is
// assigned an index strictly less than any cell it references, so the
// result round-trips through ReadBoC/ToCells without a back-reference error.
func WriteBoC(roots []*cell.Cell, opts WriteOptions) ([]byte, error) {
	if len(roots) == 0 {
		return nil, errs.New(errs.BocSingleRootExpected, "at least one root cell is required")
	}

	order, index, err := topoSort(roots)
	if err != nil {
		return nil, err
	}

	cellsNum := len(order)
	sizeBytes := byteWidth(cellsNum)

	records := make([][]byte, cellsNum)
	totCellsSize := 0
	for i, c := range order {
		rec := cellRecord(c, index, sizeBytes)
		records[i] = rec
		totCellsSize += len(rec)
	}

	offsetBytes := byteWidth(totCellsSize)

	rootIdx := make([]int, len(roots))
	for i, r := range roots {
		rootIdx[i] = index[r.Hash(0)]
	}

	var flags byte
	if opts.WithIndex {
		flags |= 0x80
	}
	if opts.WithCRC {
		flags |= 0x40
	}
	flags |= byte(sizeBytes)

	buf := make([]byte, 0, 32+totCellsSize+offsetBytes*cellsNum)
	buf = appendUint32(buf, GenericMagic)
	buf = append(buf, flags, byte(offsetBytes))
	buf = appendUint(buf, uint64(cellsNum), sizeBytes)
	buf = appendUint(buf, uint64(len(roots)), sizeBytes)
	buf = appendUint(buf, 0, sizeBytes) // absent cells: unsupported, always zero
	buf = appendUint(buf, uint64(totCellsSize), offsetBytes)
	for _, idx := range rootIdx {
		buf = appendUint(buf, uint64(idx), sizeBytes)
	}

	if opts.WithIndex {
		offset := 0
		for _, rec := range records {
			buf = appendUint(buf, uint64(offset), offsetBytes)
			offset += len(rec)
		}
	}
	for _, rec := range records {
		buf = append(buf, rec...)
	}

	if opts.WithCRC {
		sum := crc32.Checksum(buf, crcTable)
		var crcBuf [4]byte
		binary.LittleEndian.PutUint32(crcBuf[:], sum)
		buf = append(buf, crcBuf[:]...)
	}
	return buf, nil
}

// topoSort performs a post-order depth-first traversal from each root,
// visiting every distinct cell (by level-0 hash) once, and then numbers the
// cells in reverse post-order. A cell finishes only after everything it
// references has finished, so every reference index is strictly greater
// than the index of the cell holding it — even when a shared subtree is
// reached through several paths — exactly what ToCells' reverse-assembly
// loop requires, and shared subtrees are emitted once.
func topoSort(roots []*cell.Cell) ([]*cell.Cell, map[cellhash.Hash]int, error) {
	var post []*cell.Cell
	index := make(map[cellhash.Hash]int)

	var visit func(c *cell.Cell) error
	visit = func(c *cell.Cell) error {
		h := c.Hash(0)
		if _, ok := index[h]; ok {
			return nil
		}
		index[h] = -1 // visited; the final index is assigned below
		for _, r := range c.Refs() {
			if err := visit(r); err != nil {
				return err
			}
		}
		post = append(post, c)
		return nil
	}
	for _, r := range roots {
		if err := visit(r); err != nil {
			return nil, nil, err
		}
	}
	order := make([]*cell.Cell, len(post))
	for i, c := range post {
		pos := len(post) - 1 - i
		order[pos] = c
		index[c.Hash(0)] = pos
	}
	return order, index, nil
}

func cellRecord(c *cell.Cell, index map[cellhash.Hash]int, refIndexSize int) []byte {
	refs := c.Refs()
	var d1 byte = byte(len(refs))
	if c.IsExotic() {
		d1 |= 0x08
	}
	d1 |= byte(c.LevelMask()) << 5

	bitsLen := c.DataBitsLen()
	fullBytes := bitsLen / 8
	rem := bitsLen % 8
	d2 := byte(fullBytes * 2)
	if rem != 0 {
		d2++
	}

	payload := completionPadded(c.Data(), bitsLen)

	rec := make([]byte, 0, 2+len(payload)+len(refs)*refIndexSize)
	rec = append(rec, d1, d2)
	rec = append(rec, payload...)
	for _, r := range refs {
		rec = appendUint(rec, uint64(index[r.Hash(0)]), refIndexSize)
	}
	return rec
}

// completionPadded mirrors cell package's internal padding so the wire
// form carries the same completion tag a reader expects.
func completionPadded(data []byte, bitsLen uint) []byte {
	fullBytes := int(bitsLen / 8)
	rem := bitsLen % 8
	if rem == 0 {
		return data[:fullBytes]
	}
	out := make([]byte, fullBytes+1)
	copy(out, data[:fullBytes+1])
	completionBit := byte(1) << (7 - rem)
	keepMask := ^(completionBit - 1)
	out[fullBytes] = (out[fullBytes] & keepMask) | completionBit
	return out
}

func byteWidth(n int) int {
	if n == 0 {
		return 1
	}
	w := (bits.Len(uint(n)) + 7) / 8
	if w == 0 {
		w = 1
	}
	return w
}

func appendUint(buf []byte, v uint64, n int) []byte {
	for i := n - 1; i >= 0; i-- {
		buf = append(buf, byte(v>>(uint(i)*8)))
	}
	return buf
}

func appendUint32(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}
