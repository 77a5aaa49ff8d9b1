package engine

import (
	"github.com/chessteg/chessteg/board"
)

type EntryType uint8

const DefaultHashTableSize = 1 << 18 // number of entries

const (
	EntryTypeUnknown EntryType = iota
	EntryTypeExact
	EntryTypeLowerBound
	EntryTypeUpperBound
)

func (t EntryType) String() string {
	switch t {
	case EntryTypeExact:
		return "exact"
	case EntryTypeLowerBound:
		return "lower"
	case EntryTypeUpperBound:
		return "upper"
	default:
		return "unknown"
	}
}

// TranspositionTable caches search results by Zobrist hash. Entries written
// before the latest NewSearch are ignored.
type TranspositionTable struct {
	table    []entry
	maskHash uint64
	gen      uint8

	// stats
	hits   int
	misses int
	writes int
}

type entry struct {
	hash  uint64
	mv    board.Move
	score int32
	depth uint8
	typ   EntryType
	gen   uint8
}

func NewTranspositionTable(size uint64) *TranspositionTable {
	if size == 0 {
		size = DefaultHashTableSize
	}
	// round down to a power of two so the hash can be masked
	for size&(size-1) != 0 {
		size &= size - 1
	}
	return &TranspositionTable{
		table:    make([]entry, size),
		maskHash: size - 1,
		gen:      1,
	}
}

// NewSearch invalidates every stored entry.
func (t *TranspositionTable) NewSearch() {
	t.gen++
	if t.gen == 0 {
		for i := range t.table {
			t.table[i] = entry{}
		}
		t.gen = 1
	}
	t.ResetStats()
}

func (t *TranspositionTable) Set(hash uint64, ply uint8, typ EntryType, mv board.Move, score int32, depth uint8) {
	e := &t.table[hash&t.maskHash]
	if e.gen == t.gen && e.hash != hash && e.depth > depth {
		return
	}
	t.writes++
	*e = entry{
		hash:  hash,
		mv:    mv,
		score: scoreToTT(score, ply),
		depth: depth,
		typ:   typ,
		gen:   t.gen,
	}
}

func (t *TranspositionTable) Get(hash uint64, ply uint8) (EntryType, board.Move, int32, uint8, bool) {
	e, ok := t.probe(hash)
	if !ok {
		t.misses++
		return EntryTypeUnknown, board.Move{}, 0, 0, false
	}
	t.hits++
	return e.typ, e.mv, scoreFromTT(e.score, ply), e.depth, true
}

// probe looks an entry up without touching the stats.
func (t *TranspositionTable) probe(hash uint64) (*entry, bool) {
	e := &t.table[hash&t.maskHash]
	if e.typ == EntryTypeUnknown || e.gen != t.gen || e.hash != hash {
		return nil, false
	}
	return e, true
}

func (t *TranspositionTable) ResetStats() {
	t.hits = 0
	t.misses = 0
	t.writes = 0
}

func (t *TranspositionTable) Stats() (int, int, int) {
	return t.hits, t.misses, t.writes
}

// Mate scores are stored relative to the node so they stay correct when the
// same position is reached at a different ply.
func scoreToTT(score int32, ply uint8) int32 {
	switch {
	case score >= scoreMateBound:
		return score + int32(ply)
	case score <= -scoreMateBound:
		return score - int32(ply)
	default:
		return score
	}
}

func scoreFromTT(score int32, ply uint8) int32 {
	switch {
	case score >= scoreMateBound:
		return score - int32(ply)
	case score <= -scoreMateBound:
		return score + int32(ply)
	default:
		return score
	}
}
