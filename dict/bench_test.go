package dict_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/ton-core/cellkit/boc"
	"github.com/ton-core/cellkit/cell"
	"github.com/ton-core/cellkit/cellmetrics"
	"github.com/ton-core/cellkit/dict"
)

func buildEntries(n int) []dict.Entry[uint32] {
	entries := make([]dict.Entry[uint32], n)
	for i := 0; i < n; i++ {
		entries[i] = dict.Entry[uint32]{Key: dict.KeyUint(uint64(i), 32), Value: uint32(i)}
	}
	return entries
}

func BenchmarkDictBuild100(b *testing.B) {
	val := dict.ValNum[uint32]{Bits: 32}
	entries := buildEntries(100)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := dict.Build(entries, 32, val); err != nil {
			b.Fatal(err)
		}
	}
}

// TestDictBuildRecordsMetrics exercises cellmetrics against a real
// dictionary build instead of leaving it as a decorative dependency: it's
// the harness a caller wraps dict.Build with when it wants build-size
// visibility in production (spec §9's "100k-entry dictionaries" perf note).
func TestDictBuildRecordsMetrics(t *testing.T) {
	m := cellmetrics.New("cellkit_test_dict", prometheus.NewRegistry())

	val := dict.ValNum[uint32]{Bits: 32}
	entries := buildEntries(100)
	root, err := dict.Build(entries, 32, val)
	require.NoError(t, err)

	raw, err := boc.WriteBoC([]*cell.Cell{root}, boc.WriteOptions{})
	require.NoError(t, err)
	back, err := boc.ReadBoC(raw)
	require.NoError(t, err)

	require.NotPanics(t, func() {
		m.RecordDictBuild(len(entries), len(back.Cells))
	})
}

func BenchmarkDictBuild400k(b *testing.B) {
	val := dict.ValNum[uint32]{Bits: 32}
	entries := buildEntries(400_000)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := dict.Build(entries, 32, val); err != nil {
			b.Fatal(err)
		}
	}
}
