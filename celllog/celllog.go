// Package celllog adapts structured logging for the optional
// benchmarking/fuzzing harness around the codec packages. The core codec
// packages (cell, boc, tlb, dict) never import this package and never log
// on their own (spec §7) — callers that want visibility wrap their own
// calls with a Logger the way the teacher's espresso.Client does.
package celllog

import "github.com/ethereum/go-ethereum/log"

// Logger is the structured key/value logger the harness accepts. It's a
// type alias for go-ethereum/log.Logger so callers can pass their own
// root logger straight through.
type Logger = log.Logger

// Noop returns a Logger that discards everything, for callers that don't
// want instrumentation but still need a non-nil Logger to pass around.
func Noop() Logger {
	l := log.New()
	l.SetHandler(log.DiscardHandler())
	return l
}

// BocEncode logs one BoC serialization: root count, byte size, and
// whether a CRC trailer was attached.
func BocEncode(l Logger, roots int, bytes int, withCRC bool) {
	l.Debug("boc encode", "roots", roots, "bytes", bytes, "crc", withCRC)
}

// BocDecode logs one BoC parse: cell count, root count, and magic used.
func BocDecode(l Logger, cells int, roots int, magic uint32) {
	l.Debug("boc decode", "cells", cells, "roots", roots, "magic", magic)
}

// DictBuild logs one dictionary build: entry count, key width, and the
// resulting tree's serialized cell count.
func DictBuild(l Logger, entries int, keyBits int, cells int) {
	l.Debug("dict build", "entries", entries, "keyBits", keyBits, "cells", cells)
}

// Error logs a failed codec operation, mirroring the teacher's
// "err"-keyed error logging.
func Error(l Logger, op string, err error) {
	l.Error("codec operation failed", "op", op, "err", err)
}
