// Package cell implements the immutable cell node (§3) and the
// representation-hash procedure that computes its meta (§4.4): the level
// mask, up to four (hash, depth) pairs, and reference count, computed once
// at construction time and memoized forever after.
package cell

import (
	"encoding/binary"

	sha256simd "github.com/minio/sha256-simd"

	"github.com/ton-core/cellkit/cellhash"
	"github.com/ton-core/cellkit/errs"
)

// MaxDepth is the protocol-defined cap on a cell's computed depth at any
// level. Exceeding it is fatal (spec §4.4).
const MaxDepth = 1024

// Meta is the computed, immutable metadata attached to every Cell at
// build() time: level mask, up to four representation hashes and depths,
// and the reference count.
type Meta struct {
	LevelMask cellhash.LevelMask
	Hashes    [4]cellhash.Hash
	Depths    [4]uint16
	RefsCount int
}

// EmptyCellMeta is the canonical meta of a cell with zero bits and zero
// refs — the well-known TON empty-cell constant (spec property 7),
// grounded on the original implementation's `EMPTY_CELL_META`.
func EmptyCellMeta() Meta {
	m := Meta{LevelMask: cellhash.NewLevelMask(0)}
	for i := range m.Hashes {
		m.Hashes[i] = cellhash.EmptyCellHash
	}
	return m
}

// HashAt returns the representation hash a cell publishes at the given
// level, clamped to the highest level it actually computed.
func (m Meta) HashAt(level int) cellhash.Hash {
	return m.Hashes[m.slot(level)]
}

// DepthAt returns the representation depth a cell publishes at the given level.
func (m Meta) DepthAt(level int) uint16 {
	return m.Depths[m.slot(level)]
}

func (m Meta) slot(level int) int {
	idx := m.LevelMask.HashIndex(level)
	if idx >= m.LevelMask.HashCount() {
		idx = m.LevelMask.HashCount() - 1
	}
	return idx
}

// computeMeta runs the full validate -> level-mask -> hash/depth pipeline
// described in spec §4.4, for a cell of type typ with payload data (packed
// MSB-first, dataBitsLen significant bits) and children refs.
func computeMeta(typ cellhash.CellType, data []byte, dataBitsLen uint, refs []*Cell) (Meta, error) {
	if err := validateShape(typ, data, dataBitsLen, refs); err != nil {
		return Meta{}, err
	}
	levelMask, err := calcLevelMask(typ, data, refs)
	if err != nil {
		return Meta{}, err
	}
	hashes, depths, err := calcHashesAndDepths(typ, data, dataBitsLen, refs, levelMask)
	if err != nil {
		return Meta{}, err
	}
	return Meta{LevelMask: levelMask, Hashes: hashes, Depths: depths, RefsCount: len(refs)}, nil
}

func validateShape(typ cellhash.CellType, data []byte, dataBitsLen uint, refs []*Cell) error {
	if dataBitsLen > 1023 {
		return errs.New(errs.DataOverflow, "cell data_bits_len %d exceeds 1023", dataBitsLen)
	}
	if len(refs) > 4 {
		return errs.New(errs.RefsOverflow, "cell has %d refs, max is 4", len(refs))
	}
	if typ.IsExotic() {
		tag, _ := typ.Tag()
		if len(data) == 0 || data[0] != tag {
			return errs.New(errs.UnknownExoticTag, "exotic cell type %s requires first payload byte 0x%02x", typ, tag)
		}
		switch typ {
		case cellhash.PrunedBranch:
			if len(data) < 2 {
				return errs.New(errs.UnknownExoticTag, "pruned branch payload too short for mask byte")
			}
			mask := cellhash.NewLevelMask(data[1])
			need := 2 + mask.HashCount()*(cellhash.Size+2)
			if len(data) < need {
				return errs.New(errs.UnknownExoticTag, "pruned branch payload too short for its mask (%d levels)", mask.HashCount())
			}
		case cellhash.Library:
			if len(data) != 1+cellhash.Size {
				return errs.New(errs.UnknownExoticTag, "library cell payload must be exactly 33 bytes")
			}
		case cellhash.MerkleProof:
			if len(refs) != 1 {
				return errs.New(errs.UnknownExoticTag, "merkle proof cell must have exactly one ref")
			}
		case cellhash.MerkleUpdate:
			if len(refs) != 2 {
				return errs.New(errs.UnknownExoticTag, "merkle update cell must have exactly two refs")
			}
		}
	}
	return nil
}

func calcLevelMask(typ cellhash.CellType, data []byte, refs []*Cell) (cellhash.LevelMask, error) {
	switch typ {
	case cellhash.PrunedBranch:
		return cellhash.NewLevelMask(data[1]), nil
	case cellhash.MerkleProof, cellhash.MerkleUpdate:
		mask := cellhash.NewLevelMask(0)
		for _, r := range refs {
			mask = mask.Or(r.meta.LevelMask)
		}
		return cellhash.NewLevelMask(uint8(mask) >> 1), nil
	case cellhash.Library:
		return cellhash.NewLevelMask(0), nil
	default:
		mask := cellhash.NewLevelMask(0)
		for _, r := range refs {
			mask = mask.Or(r.meta.LevelMask)
		}
		return mask, nil
	}
}

// calcHashesAndDepths computes the (hash, depth) pair for every level the
// mask publishes, filling any unused trailing slots by repeating the
// highest computed representation — the convention reference
// implementations use so HashAt/DepthAt can be indexed for any level 0..3.
func calcHashesAndDepths(typ cellhash.CellType, data []byte, dataBitsLen uint, refs []*Cell, mask cellhash.LevelMask) ([4]cellhash.Hash, [4]uint16, error) {
	var hashes [4]cellhash.Hash
	var depths [4]uint16
	hashCount := mask.HashCount()

	for level := 0; level < hashCount; level++ {
		h, d, err := representationAt(typ, data, dataBitsLen, refs, mask, level)
		if err != nil {
			return hashes, depths, err
		}
		hashes[level] = h
		depths[level] = d
	}
	for level := hashCount; level < 4; level++ {
		hashes[level] = hashes[hashCount-1]
		depths[level] = depths[hashCount-1]
	}
	return hashes, depths, nil
}

func representationAt(typ cellhash.CellType, data []byte, dataBitsLen uint, refs []*Cell, mask cellhash.LevelMask, level int) (cellhash.Hash, uint16, error) {
	switch typ {
	case cellhash.PrunedBranch:
		return prunedRepresentation(data, mask, level)
	case cellhash.MerkleProof, cellhash.MerkleUpdate:
		if level == 0 {
			// Level 0 of a Merkle cell is the hash/depth of its first child,
			// not of the Merkle cell itself (spec §4.4).
			child := refs[0]
			return child.meta.HashAt(0), child.meta.DepthAt(0), nil
		}
		return ordinaryRepresentation(typ, data, dataBitsLen, refs, mask, level-1, level)
	default:
		return ordinaryRepresentation(typ, data, dataBitsLen, refs, mask, level, level)
	}
}

// ordinaryRepresentation builds the canonical descriptor stream for a
// non-pruned cell and hashes it. childLevel is the level used to look up
// each child's own (hash, depth) — equal to level for Ordinary/Library
// cells, and to level-1 (clamped) for Merkle cells past level 0.
func ordinaryRepresentation(typ cellhash.CellType, data []byte, dataBitsLen uint, refs []*Cell, mask cellhash.LevelMask, childLevel, level int) (cellhash.Hash, uint16, error) {
	d1 := byte(len(refs))
	if typ.IsExotic() {
		d1 |= 0b1000
	}
	d1 |= byte(mask.Apply(level)) << 5

	fullBytes := dataBitsLen / 8
	rem := dataBitsLen % 8
	d2 := byte(fullBytes * 2)
	if rem != 0 {
		d2++
	}

	payload := completedPayload(data, dataBitsLen)

	buf := make([]byte, 0, 2+len(payload)+len(refs)*(2+cellhash.Size))
	buf = append(buf, d1, d2)
	buf = append(buf, payload...)

	maxChildDepth := 0
	for _, r := range refs {
		d := int(r.meta.DepthAt(childLevel))
		var depthBuf [2]byte
		binary.BigEndian.PutUint16(depthBuf[:], uint16(d))
		buf = append(buf, depthBuf[:]...)
		if d > maxChildDepth {
			maxChildDepth = d
		}
	}
	for _, r := range refs {
		h := r.meta.HashAt(childLevel)
		buf = append(buf, h[:]...)
	}

	depth := 0
	if len(refs) > 0 {
		depth = maxChildDepth + 1
	}
	if depth > MaxDepth {
		return cellhash.Hash{}, 0, errs.New(errs.DepthExceeded, "cell depth %d exceeds max %d", depth, MaxDepth)
	}

	sum := sha256simd.Sum256(buf)
	return cellhash.Hash(sum), uint16(depth), nil
}

// completedPayload pads data with a single 1-bit followed by zeros to the
// next octet boundary, as spec §4.4 requires whenever dataBitsLen is not a
// multiple of 8. Byte-aligned payloads are returned unchanged (trimmed to
// their exact byte length).
func completedPayload(data []byte, dataBitsLen uint) []byte {
	fullBytes := int(dataBitsLen / 8)
	rem := dataBitsLen % 8
	if rem == 0 {
		return data[:fullBytes]
	}
	out := make([]byte, fullBytes+1)
	copy(out, data[:fullBytes+1])
	lastByte := out[fullBytes]
	completionBit := byte(1) << (7 - rem)
	mask := ^(completionBit - 1) // keep top `rem` bits, zero the rest
	out[fullBytes] = (lastByte & mask) | completionBit
	return out
}

// prunedRepresentation extracts the pruned (hash, depth) pair stored
// directly in a PrunedBranch cell's payload for the given level, rather
// than descending into children (pruned branches have none).
func prunedRepresentation(data []byte, mask cellhash.LevelMask, level int) (cellhash.Hash, uint16, error) {
	hashCount := mask.HashCount()
	idx := level
	if idx >= hashCount {
		idx = hashCount - 1
	}
	base := 2 // tag byte + mask byte
	hashesStart := base + idx*cellhash.Size
	depthsStart := base + hashCount*cellhash.Size + idx*2
	if depthsStart+2 > len(data) {
		return cellhash.Hash{}, 0, errs.New(errs.UnknownExoticTag, "pruned branch payload truncated")
	}
	var h cellhash.Hash
	copy(h[:], data[hashesStart:hashesStart+cellhash.Size])
	d := binary.BigEndian.Uint16(data[depthsStart : depthsStart+2])
	return h, d, nil
}
