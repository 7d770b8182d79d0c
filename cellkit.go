// Package cellkit is the entry point callers embed: it exposes cells
// from bytes/hex/base64 BoC envelopes and the inverse encoders, plus the
// generic value↔cell↔bytes round trip for TL-B types (spec §6).
package cellkit

import (
	"encoding/base64"
	"encoding/hex"

	"github.com/ton-core/cellkit/boc"
	"github.com/ton-core/cellkit/cell"
	"github.com/ton-core/cellkit/errs"
	"github.com/ton-core/cellkit/tlb"
)

// FromBocBytes decodes a single-root BoC envelope and returns its root
// cell. Multi-root envelopes are rejected — callers needing the other
// roots should use boc.ReadBoC directly.
func FromBocBytes(data []byte) (*cell.Cell, error) {
	raw, err := boc.ReadBoC(data)
	if err != nil {
		return nil, err
	}
	if len(raw.Roots) != 1 {
		return nil, errs.New(errs.BocSingleRootExpected, "BoC has %d roots, expected 1", len(raw.Roots))
	}
	cells, err := raw.ToCells()
	if err != nil {
		return nil, err
	}
	return cells[raw.Roots[0]], nil
}

// FromBocHex decodes a hex-encoded single-root BoC envelope.
func FromBocHex(s string) (*cell.Cell, error) {
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, errs.Wrap(errs.TruncatedPayload, err, "invalid hex BoC")
	}
	return FromBocBytes(data)
}

// FromBocB64 decodes a base64-encoded single-root BoC envelope.
func FromBocB64(s string) (*cell.Cell, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, errs.Wrap(errs.TruncatedPayload, err, "invalid base64 BoC")
	}
	return FromBocBytes(data)
}

// ToBocBytes serializes c as a single-root BoC envelope.
func ToBocBytes(c *cell.Cell, opts boc.WriteOptions) ([]byte, error) {
	return boc.WriteBoC([]*cell.Cell{c}, opts)
}

// ToBocHex serializes c as a hex-encoded single-root BoC envelope.
func ToBocHex(c *cell.Cell, opts boc.WriteOptions) (string, error) {
	data, err := ToBocBytes(c, opts)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(data), nil
}

// ToBocB64 serializes c as a base64-encoded single-root BoC envelope.
func ToBocB64(c *cell.Cell, opts boc.WriteOptions) (string, error) {
	data, err := ToBocBytes(c, opts)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// ValueToBytes writes v's TL-B definition into its own cell and serializes
// that cell as a single-root BoC envelope.
func ValueToBytes(v tlb.TLB, opts boc.WriteOptions) ([]byte, error) {
	c, err := tlb.ToCell(v)
	if err != nil {
		return nil, err
	}
	return ToBocBytes(c, opts)
}

// ValueFromBytes decodes a single-root BoC envelope and reads v's TL-B
// definition from its root cell.
func ValueFromBytes(v tlb.TLB, data []byte) error {
	c, err := FromBocBytes(data)
	if err != nil {
		return err
	}
	return tlb.FromCell(v, c)
}
