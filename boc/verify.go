package boc

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/ton-core/cellkit/cell"
	"github.com/ton-core/cellkit/cellhash"
	"github.com/ton-core/cellkit/errs"
)

// ParallelVerify recomputes and checks every cell's level-0 hash across a
// forest of root trees concurrently, bounded by maxWorkers. Cells are
// already hashed at construction time (spec §5: immutable-after-build), so
// this exists purely to re-derive an independent hash for defense-in-depth
// auditing of a decoded BoC rather than to compute anything new — mirroring
// the teacher's pattern of bounding fan-out with an errgroup rather than an
// unbounded goroutine-per-item burst.
func ParallelVerify(ctx context.Context, roots []*cell.Cell, maxWorkers int) error {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxWorkers)

	seen := make(map[cellhash.Hash]bool)
	var walk func(c *cell.Cell)
	walk = func(c *cell.Cell) {
		h := c.Hash(0)
		if seen[h] {
			return
		}
		seen[h] = true
		cc := c
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			return verifyOne(cc)
		})
		for _, r := range c.Refs() {
			walk(r)
		}
	}
	for _, r := range roots {
		walk(r)
	}
	return g.Wait()
}

// verifyOne re-derives a cell's own representation hash by rebuilding it
// from its type, payload and children, and compares that with the hash it
// recorded at construction, detecting any in-memory corruption between
// construction and use.
func verifyOne(c *cell.Cell) error {
	rebuilt, err := rebuild(c)
	if err != nil {
		return err
	}
	if rebuilt.Hash(0) != c.Hash(0) {
		return errs.New(errs.ChecksumMismatch, "cell hash %s does not match its recomputed representation", c.Hash(0).Hex())
	}
	return nil
}

func rebuild(c *cell.Cell) (*cell.Cell, error) {
	if c.IsExotic() {
		return cell.NewExotic(c.Type(), c.Data(), c.DataBitsLen(), c.Refs())
	}
	return cell.New(c.Data(), c.DataBitsLen(), c.Refs())
}
