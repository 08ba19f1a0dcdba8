package heuristic

import "renju-engine/internal/board"

// entry caches one side's line-shape score for a given position hash.
type entry struct {
	key   uint64
	black int16
	white int16
	valid bool
}

// Cache memoizes LineScore per position hash per side, the way the
// teacher's PawnTable memoizes pawn-structure scores per pawn hash key.
// Gomoku has no separable "structure-only" subkey the way chess pawn
// structure does, so the cache is keyed on the full incremental position
// hash instead of a narrower pawn key.
type Cache struct {
	entries []entry
	mask    uint64
}

// NewCache creates a line-shape cache sized in megabytes, rounded down to
// a power of two entry count.
func NewCache(sizeMB int) *Cache {
	const entrySize = 13 // 8 + 2 + 2 + 1, rounded
	numEntries := (sizeMB * 1024 * 1024) / entrySize
	size := 1
	for size*2 <= numEntries {
		size *= 2
	}
	if size < 1 {
		size = 1
	}
	return &Cache{
		entries: make([]entry, size),
		mask:    uint64(size - 1),
	}
}

// Probe returns the cached black/white line scores for hash, if present.
func (c *Cache) Probe(hash uint64) (black, white int, found bool) {
	e := &c.entries[hash&c.mask]
	if e.valid && e.key == hash {
		return int(e.black), int(e.white), true
	}
	return 0, 0, false
}

// Store saves the black/white line scores for hash.
func (c *Cache) Store(hash uint64, black, white int) {
	e := &c.entries[hash&c.mask]
	e.key = hash
	e.black = int16(clamp(black))
	e.white = int16(clamp(white))
	e.valid = true
}

// Clear empties the cache.
func (c *Cache) Clear() {
	for i := range c.entries {
		c.entries[i] = entry{}
	}
}

func clamp(v int) int {
	const lim = 1<<15 - 1
	if v > lim {
		return lim
	}
	if v < -lim {
		return -lim
	}
	return v
}

// EvaluateCached is Evaluate backed by a Cache: line scores for both sides
// are computed once per distinct position hash and reused for both sides'
// perspectives (LineScore itself is side-symmetric work). Each side's line
// score is clamped to ±32767, the range a cache entry holds, on the first
// call as well as on cache hits, so the result equals Evaluate only while
// both line scores lie in that range.
func EvaluateCached(pos *board.Position, s board.Side, cache *Cache) int {
	opp := s.Other()

	black, white, found := cache.Probe(pos.Hash)
	if !found {
		black = clamp(LineScore(pos, board.Black))
		white = clamp(LineScore(pos, board.White))
		cache.Store(pos.Hash, black, white)
	}

	own, theirs := black, white
	if s == board.White {
		own, theirs = white, black
	}

	score := own - theirs
	score += captureTerm(pos, s, opp)
	score += centerTerm(pos, s) - centerTerm(pos, opp)
	return score
}
