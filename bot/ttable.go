package bot

import "fourline/game"

type ttFlag uint8

const (
	ttExact ttFlag = iota
	ttLower
	ttUpper
)

// ttEntry is a cached search result. Flag records whether Value is the
// true negamax value or only a bound left over from an alpha-beta cutoff.
type ttEntry struct {
	Depth int
	Value int
	Flag  ttFlag
}

// transpositionTable memoizes search results by position code for the
// duration of one decision. Entries are only reusable when they were
// computed at least as deep as the probing node requires; the store
// policy is overwrite-always, so the most recent result wins.
type transpositionTable struct {
	table   map[game.Bitboard]ttEntry
	lookups uint64
	hits    uint64
	stores  uint64
}

func newTranspositionTable(sizeHint int) *transpositionTable {
	return &transpositionTable{
		table: make(map[game.Bitboard]ttEntry, sizeHint),
	}
}

func (t *transpositionTable) lookup(code game.Bitboard, depth int) (ttEntry, bool) {
	t.lookups++
	entry, ok := t.table[code]
	if !ok || entry.Depth < depth {
		return ttEntry{}, false
	}
	t.hits++
	return entry, true
}

func (t *transpositionTable) store(code game.Bitboard, entry ttEntry) {
	t.table[code] = entry
	t.stores++
}
