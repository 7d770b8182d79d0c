package cell

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ton-core/cellkit/cellhash"
)

// Pool interns cells by their level-0 representation hash so that
// structurally identical subtrees retrieved repeatedly (e.g. while decoding
// a BoC with many repeated dictionary branches) share one allocation
// instead of being rebuilt and rehashed on every reference (spec §5,
// "Concurrency & Resource Model" — dedup is an optimization, never required
// for correctness).
type Pool struct {
	cache *lru.Cache[cellhash.Hash, *Cell]
}

// NewPool returns a Pool holding up to capacity distinct cells.
func NewPool(capacity int) (*Pool, error) {
	c, err := lru.New[cellhash.Hash, *Cell](capacity)
	if err != nil {
		return nil, err
	}
	return &Pool{cache: c}, nil
}

// Intern returns the pool's existing cell for c's hash if one is present,
// otherwise stores and returns c itself. The argument is never mutated.
func (p *Pool) Intern(c *Cell) *Cell {
	h := c.Hash(0)
	if existing, ok := p.cache.Get(h); ok {
		return existing
	}
	p.cache.Add(h, c)
	return c
}

// Get looks up a previously interned cell by its level-0 hash.
func (p *Pool) Get(h cellhash.Hash) (*Cell, bool) {
	return p.cache.Get(h)
}

// Len reports how many distinct cells are currently interned.
func (p *Pool) Len() int { return p.cache.Len() }
