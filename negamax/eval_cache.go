package negamax

import (
	"math"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"
)

const (
	cacheEntrySize = 24
	minCachePow    = 10
	maxCachePow    = 22
)

type cacheEntry struct {
	key   uint64
	score int
	valid bool
}

// EvalCache remembers static evaluations by zobrist key. It lives only for
// one Solve call; the solver resets it at the start of every search.
type EvalCache struct {
	entries  []cacheEntry
	sizeMask uint64

	lookups uint64
	hits    uint64
}

// NewEvalCache sizes the cache to roughly fractionOfMemory of the system's
// memory, rounded down to a power of two and kept between 2^10 and 2^22
// entries.
func NewEvalCache(fractionOfMemory float64) *EvalCache {
	totalMem := memory.TotalMemory()
	desiredNElems := fractionOfMemory * (float64(totalMem) / float64(cacheEntrySize))
	pow := minCachePow
	if desiredNElems >= 1 {
		pow = int(math.Log2(desiredNElems))
	}
	pow = max(minCachePow, min(maxCachePow, pow))
	c := newEvalCache(pow)
	log.Info().Int("num-elems", len(c.entries)).
		Float64("desired-num-elems", desiredNElems).
		Int("estimated-total-memory-bytes", len(c.entries)*cacheEntrySize).
		Uint64("total-system-memory-bytes", totalMem).
		Msg("eval-cache-size")
	return c
}

func newEvalCache(pow int) *EvalCache {
	n := 1 << pow
	return &EvalCache{entries: make([]cacheEntry, n), sizeMask: uint64(n - 1)}
}

func (c *EvalCache) lookup(key uint64) (int, bool) {
	c.lookups++
	e := &c.entries[key&c.sizeMask]
	if !e.valid || e.key != key {
		return 0, false
	}
	c.hits++
	return e.score, true
}

func (c *EvalCache) store(key uint64, score int) {
	// just overwrite whatever is there.
	c.entries[key&c.sizeMask] = cacheEntry{key: key, score: score, valid: true}
}

func (c *EvalCache) Reset() {
	clear(c.entries)
	c.lookups = 0
	c.hits = 0
}

func (c *EvalCache) Size() int {
	return len(c.entries)
}

// Stats returns the lookups and hits since the last reset.
func (c *EvalCache) Stats() (lookups, hits uint64) {
	return c.lookups, c.hits
}
