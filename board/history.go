package board

// HistoryLimit is the number of plies kept for undo; older entries are dropped.
const HistoryLimit = 50

type historyEntry struct {
	before snapshot
	move   Move
}

// History is a bounded ring of applied moves. Entries past the cursor are
// the redo tail and are discarded by the next push.
type History struct {
	entries [HistoryLimit]historyEntry
	head    int // oldest entry
	size    int
	cursor  int // number of entries currently applied
}

func (h *History) at(i int) *historyEntry {
	return &h.entries[(h.head+i)%HistoryLimit]
}

func (h *History) push(e historyEntry) {
	h.size = h.cursor
	if h.size == HistoryLimit {
		h.head = (h.head + 1) % HistoryLimit
		h.size--
	}
	*h.at(h.size) = e
	h.size++
	h.cursor = h.size
}

func (h *History) undo() (historyEntry, bool) {
	if h.cursor == 0 {
		return historyEntry{}, false
	}
	h.cursor--
	return *h.at(h.cursor), true
}

func (h *History) redo() (historyEntry, bool) {
	if h.cursor == h.size {
		return historyEntry{}, false
	}
	e := *h.at(h.cursor)
	h.cursor++
	return e, true
}

func (h *History) last() Move {
	if h.cursor == 0 {
		return Move{}
	}
	return h.at(h.cursor - 1).move
}

func (h *History) moves() []Move {
	mvs := make([]Move, 0, h.cursor)
	for i := 0; i < h.cursor; i++ {
		mvs = append(mvs, h.at(i).move)
	}
	return mvs
}
