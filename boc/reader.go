package boc

import (
	"encoding/binary"
	"hash/crc32"
	"math/bits"

	"github.com/ton-core/cellkit/cellhash"
	"github.com/ton-core/cellkit/errs"
)

var crcTable = crc32.MakeTable(crc32.Castagnoli)

type header struct {
	hasIdx     bool
	hasCRC     bool
	sizeBytes  int
	offsetBytes int
	cellsNum   int
	rootsNum   int
	totCellsSize int
	roots      []int
	rest       []byte // cells data onward, magic/flags/counters already consumed
}

// ReadBoC parses a bag-of-cells binary envelope into its flat RawBoC form,
// accepting the generic magic (with its flag byte) and both legacy "lean"
// magics tonweb and early toncenter clients still emit.
func ReadBoC(data []byte) (*RawBoC, error) {
	h, err := parseHeader(data)
	if err != nil {
		return nil, err
	}

	cellsData := h.rest
	cells := make([]RawCell, h.cellsNum)
	for i := 0; i < h.cellsNum; i++ {
		c, residue, err := parseCell(cellsData, h.sizeBytes)
		if err != nil {
			return nil, err
		}
		cells[i] = c
		cellsData = residue
	}
	if len(cellsData) != 0 {
		return nil, errs.New(errs.TruncatedPayload, "%d trailing bytes after cell data", len(cellsData))
	}

	return &RawBoC{Cells: cells, Roots: h.roots}, nil
}

func parseHeader(data []byte) (*header, error) {
	if len(data) < 5 {
		return nil, errs.New(errs.TruncatedPayload, "too short for a BoC magic and flag byte")
	}
	magic := binary.BigEndian.Uint32(data[0:4])
	rest := data[4:]

	var hasIdx, hasCRC bool
	var sizeBytes int

	switch magic {
	case GenericMagic:
		flags := rest[0]
		hasIdx = flags&0x80 != 0
		hasCRC = flags&0x40 != 0
		sizeBytes = int(flags & 0x07)
		rest = rest[1:]
	case LeanMagic:
		hasIdx = true
		hasCRC = false
		sizeBytes = int(rest[0])
		rest = rest[1:]
	case LeanCRCMagic:
		hasIdx = true
		hasCRC = true
		sizeBytes = int(rest[0])
		rest = rest[1:]
	default:
		return nil, errs.New(errs.BocWrongMagic, "unrecognized BoC magic 0x%08x", magic)
	}

	if sizeBytes == 0 || sizeBytes > 8 {
		return nil, errs.New(errs.TruncatedPayload, "invalid ref-size-bytes %d", sizeBytes)
	}
	if len(rest) < 1+3*sizeBytes {
		return nil, errs.New(errs.TruncatedPayload, "too short for cell/root counters")
	}

	offsetBytes := int(rest[0])
	rest = rest[1:]
	if offsetBytes == 0 || offsetBytes > 8 {
		return nil, errs.New(errs.TruncatedPayload, "invalid offset-size-bytes %d", offsetBytes)
	}

	cellsNum := int(readUint(rest, sizeBytes))
	rest = rest[sizeBytes:]
	rootsNum := int(readUint(rest, sizeBytes))
	rest = rest[sizeBytes:]
	_ = readUint(rest, sizeBytes) // absent cells count, unused (no absent-cell support)
	rest = rest[sizeBytes:]

	if len(rest) < offsetBytes {
		return nil, errs.New(errs.TruncatedPayload, "too short for total cells size")
	}
	totCellsSize := int(readUint(rest, offsetBytes))
	rest = rest[offsetBytes:]

	if len(rest) < rootsNum*sizeBytes {
		return nil, errs.New(errs.TruncatedPayload, "too short for root index list")
	}
	roots := make([]int, rootsNum)
	for i := 0; i < rootsNum; i++ {
		roots[i] = int(readUint(rest, sizeBytes))
		rest = rest[sizeBytes:]
	}

	if hasIdx {
		if len(rest) < offsetBytes*cellsNum {
			return nil, errs.New(errs.TruncatedPayload, "too short for the cell offset index")
		}
		rest = rest[offsetBytes*cellsNum:] // index is a pure seek aid; we reparse cells sequentially
	}

	if len(rest) < totCellsSize {
		return nil, errs.New(errs.TruncatedPayload, "too short for cell data (%d bytes expected)", totCellsSize)
	}
	cellsData := rest[:totCellsSize]
	rest = rest[totCellsSize:]

	if hasCRC {
		if len(rest) < 4 {
			return nil, errs.New(errs.TruncatedPayload, "too short for trailing CRC-32C")
		}
		got := binary.LittleEndian.Uint32(rest[0:4])
		want := crc32.Checksum(data[:len(data)-4], crcTable)
		if got != want {
			return nil, errs.New(errs.ChecksumMismatch, "BoC CRC-32C mismatch: got %08x, want %08x", got, want)
		}
		rest = rest[4:]
	}
	if len(rest) != 0 {
		return nil, errs.New(errs.TruncatedPayload, "%d unexpected trailing bytes", len(rest))
	}

	return &header{
		hasIdx: hasIdx, hasCRC: hasCRC, sizeBytes: sizeBytes, offsetBytes: offsetBytes,
		cellsNum: cellsNum, rootsNum: rootsNum, totCellsSize: totCellsSize,
		roots: roots, rest: cellsData,
	}, nil
}

func readUint(b []byte, n int) uint64 {
	var v uint64
	for i := 0; i < n; i++ {
		v = v<<8 | uint64(b[i])
	}
	return v
}

// parseCell decodes one cell record (descriptor bytes, payload, ref index
// list) and returns the unconsumed remainder of cellsData.
func parseCell(cellsData []byte, refIndexSize int) (RawCell, []byte, error) {
	if len(cellsData) < 2 {
		return RawCell{}, nil, errs.New(errs.TruncatedPayload, "too short for cell descriptor bytes")
	}
	d1, d2 := cellsData[0], cellsData[1]
	rest := cellsData[2:]

	isExotic := d1&0x08 != 0
	refsCount := int(d1 & 0x07)
	levelMask := cellhash.NewLevelMask(d1 >> 5)
	dataBytes := int(d2/2) + int(d2%2)
	fullyUsed := d2%2 == 0

	need := dataBytes + refIndexSize*refsCount
	if len(rest) < need {
		return RawCell{}, nil, errs.New(errs.TruncatedPayload, "too short for cell payload+refs")
	}
	payload := rest[:dataBytes]
	rest = rest[dataBytes:]

	dataBitsLen := uint(dataBytes * 8)
	if !fullyUsed {
		dataBitsLen, payload = trimCompletionTag(payload)
	}

	typ := cellhash.Ordinary
	if isExotic {
		if len(payload) == 0 {
			return RawCell{}, nil, errs.New(errs.UnknownExoticTag, "exotic cell has empty payload")
		}
		t, err := cellhash.CellTypeFromTag(payload[0])
		if err != nil {
			return RawCell{}, nil, err
		}
		typ = t
	}

	refIndices := make([]int, refsCount)
	for i := 0; i < refsCount; i++ {
		refIndices[i] = int(readUint(rest, refIndexSize))
		rest = rest[refIndexSize:]
	}

	return RawCell{
		Type: typ, Data: payload, DataBitsLen: dataBitsLen,
		RefIndices: refIndices, LevelMask: levelMask,
	}, rest, nil
}

// trimCompletionTag finds the trailing 1-bit completion marker (the
// highest set bit of the last byte) and returns the true bit length along
// with the unchanged byte slice (still padded with the marker and zeros —
// cell.New only reads the first dataBitsLen of it).
func trimCompletionTag(payload []byte) (uint, []byte) {
	if len(payload) == 0 {
		return 0, payload
	}
	last := payload[len(payload)-1]
	trailingZeros := bits.TrailingZeros8(last)
	// the completion bit itself is the lowest set bit; bits below it are padding
	significant := 8 - trailingZeros - 1
	return uint((len(payload)-1)*8 + significant), payload
}
