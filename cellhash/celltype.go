package cellhash

import "github.com/ton-core/cellkit/errs"

// CellType distinguishes an Ordinary cell from the four exotic kinds, each
// identified by the first payload byte when Exotic() is true.
type CellType uint8

const (
	Ordinary CellType = iota
	PrunedBranch
	Library
	MerkleProof
	MerkleUpdate
)

// Tag bytes that mark the first octet of an exotic cell's payload.
const (
	TagPrunedBranch = 0x01
	TagLibrary      = 0x02
	TagMerkleProof  = 0x03
	TagMerkleUpdate = 0x04
)

func (t CellType) String() string {
	switch t {
	case Ordinary:
		return "Ordinary"
	case PrunedBranch:
		return "PrunedBranch"
	case Library:
		return "Library"
	case MerkleProof:
		return "MerkleProof"
	case MerkleUpdate:
		return "MerkleUpdate"
	default:
		return "Unknown"
	}
}

// IsExotic reports whether the cell type is anything but Ordinary.
func (t CellType) IsExotic() bool {
	return t != Ordinary
}

// CellTypeFromTag maps an exotic cell's leading payload byte to its CellType.
func CellTypeFromTag(tag byte) (CellType, error) {
	switch tag {
	case TagPrunedBranch:
		return PrunedBranch, nil
	case TagLibrary:
		return Library, nil
	case TagMerkleProof:
		return MerkleProof, nil
	case TagMerkleUpdate:
		return MerkleUpdate, nil
	default:
		return Ordinary, errs.New(errs.UnknownExoticTag, "unknown exotic tag byte 0x%02x", tag)
	}
}

// Tag returns the leading payload byte for an exotic cell type. Ordinary
// cells have no tag byte; calling Tag on Ordinary returns 0, false.
func (t CellType) Tag() (byte, bool) {
	switch t {
	case PrunedBranch:
		return TagPrunedBranch, true
	case Library:
		return TagLibrary, true
	case MerkleProof:
		return TagMerkleProof, true
	case MerkleUpdate:
		return TagMerkleUpdate, true
	default:
		return 0, false
	}
}
