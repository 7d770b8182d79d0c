package bits

import (
	"math/big"

	"github.com/ton-core/cellkit/errs"
	"github.com/ton-core/cellkit/numeric"
)

// Parser is a cursor over a cell's bits and references. A fresh Parser
// yields the same read sequence every time — parsers hold no state beyond
// the two cursors.
type Parser struct {
	data    []byte
	bitsLen uint
	bitPos  uint
	refsLen int
	refPos  int
}

// NewParser returns a Parser positioned at the start of data/refsLen.
func NewParser(data []byte, bitsLen uint, refsLen int) *Parser {
	return &Parser{data: data, bitsLen: bitsLen, refsLen: refsLen}
}

// BitsLeft reports how many unread payload bits remain.
func (p *Parser) BitsLeft() uint { return p.bitsLen - p.bitPos }

// RefsLeft reports how many unread references remain.
func (p *Parser) RefsLeft() int { return p.refsLen - p.refPos }

// BitPos returns the current bit cursor, for snapshot/restore around
// recoverable TL-B prefix checks (spec property 4).
func (p *Parser) BitPos() uint { return p.bitPos }

// RefPos returns the current ref cursor.
func (p *Parser) RefPos() int { return p.refPos }

// Snapshot captures both cursors so a failed speculative read (e.g. a TL-B
// prefix mismatch) can be rolled back without re-parsing from scratch.
type Snapshot struct {
	bitPos uint
	refPos int
}

func (p *Parser) Snapshot() Snapshot {
	return Snapshot{bitPos: p.bitPos, refPos: p.refPos}
}

func (p *Parser) Restore(s Snapshot) {
	p.bitPos = s.bitPos
	p.refPos = s.refPos
}

func (p *Parser) ensure(n uint) error {
	if p.bitPos+n > p.bitsLen {
		return errs.New(errs.DataUnderflow, "need %d bits, only %d remain", n, p.BitsLeft())
	}
	return nil
}

func (p *Parser) bitAt(pos uint) byte {
	return (p.data[pos/8] >> (7 - pos%8)) & 1
}

// ReadBit consumes and returns one bit.
func (p *Parser) ReadBit() (bool, error) {
	if err := p.ensure(1); err != nil {
		return false, err
	}
	v := p.bitAt(p.bitPos) == 1
	p.bitPos++
	return v, nil
}

// ReadBits consumes n bits and returns them MSB-first, packed into a
// minimal byte slice (unused low bits of the last byte are zero).
func (p *Parser) ReadBits(n uint) ([]byte, error) {
	if err := p.ensure(n); err != nil {
		return nil, err
	}
	out := make([]byte, (n+7)/8)
	for i := uint(0); i < n; i++ {
		if p.bitAt(p.bitPos+i) == 1 {
			out[i/8] |= 1 << (7 - i%8)
		}
	}
	p.bitPos += n
	return out, nil
}

// SeekBits advances the bit cursor by n without returning the bits.
func (p *Parser) SeekBits(n uint) error {
	if err := p.ensure(n); err != nil {
		return err
	}
	p.bitPos += n
	return nil
}

// ReadUint reads an n-bit unsigned machine integer (n<=64).
func (p *Parser) ReadUint(n uint) (numeric.Machine, error) {
	return p.readMachine(n, false)
}

// ReadInt reads an n-bit two's-complement signed machine integer (n<=64).
func (p *Parser) ReadInt(n uint) (numeric.Machine, error) {
	return p.readMachine(n, true)
}

func (p *Parser) readMachine(n uint, signed bool) (numeric.Machine, error) {
	if n > 64 {
		return numeric.Machine{}, errs.New(errs.NumericOverflow, "machine read of %d bits exceeds 64", n)
	}
	if err := p.ensure(n); err != nil {
		return numeric.Machine{}, err
	}
	var raw uint64
	for i := uint(0); i < n; i++ {
		raw = raw<<1 | uint64(p.bitAt(p.bitPos+i))
	}
	p.bitPos += n
	if signed {
		return numeric.FromInt64At(signExtend(raw, n), n), nil
	}
	return numeric.FromUint64At(raw, n), nil
}

func signExtend(raw uint64, n uint) int64 {
	if n == 0 || n >= 64 {
		return int64(raw)
	}
	signBit := uint64(1) << (n - 1)
	if raw&signBit != 0 {
		return int64(raw | (^uint64(0) << n))
	}
	return int64(raw)
}

// ReadBigNum reads an n-bit big-integer value (n>64), two's complement if signed.
func (p *Parser) ReadBigNum(n uint, signed bool) (numeric.Big, error) {
	if err := p.ensure(n); err != nil {
		return numeric.Big{}, err
	}
	v := new(big.Int)
	for i := uint(0); i < n; i++ {
		v.Lsh(v, 1)
		if p.bitAt(p.bitPos+i) == 1 {
			v.Or(v, big.NewInt(1))
		}
	}
	p.bitPos += n
	if signed {
		signBit := new(big.Int).Lsh(big.NewInt(1), n-1)
		if v.Cmp(signBit) >= 0 {
			mod := new(big.Int).Lsh(big.NewInt(1), n)
			v.Sub(v, mod)
		}
	}
	return numeric.FromBigInt(v, signed), nil
}

// ReadNum reads an n-bit value, dispatching to the machine fast path for
// n<=64 and the big-integer path otherwise — mirroring WriteNum.
func (p *Parser) ReadNum(n uint, signed bool) (numeric.Value, error) {
	if n <= 64 {
		return p.readMachine(n, signed)
	}
	return p.ReadBigNum(n, signed)
}

// EnsureEmpty succeeds iff both cursors are at the end — used by
// prefix-tagged records that must not leave trailing data (spec §4.2).
func (p *Parser) EnsureEmpty() error {
	if p.bitPos != p.bitsLen || p.refPos != p.refsLen {
		return errs.New(errs.CellNotEmpty, "parser has %d bits and %d refs remaining", p.BitsLeft(), p.RefsLeft())
	}
	return nil
}

// NextRefIndex returns the index of the next unread reference and advances
// the ref cursor, failing RefsUnderflow when exhausted. The cell package
// uses this to index into its own ref slice — bits stays ignorant of the
// concrete reference type.
func (p *Parser) NextRefIndex() (int, error) {
	if p.refPos >= p.refsLen {
		return 0, errs.New(errs.RefsUnderflow, "no more references (%d total)", p.refsLen)
	}
	idx := p.refPos
	p.refPos++
	return idx, nil
}
