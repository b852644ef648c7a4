package engine

// Snapshot captures the undoable part of a State.
type Snapshot struct {
	Tiles []Tile
	Tray  []TrayTile
	Score int
}

// History is a bounded stack of snapshots. It is a value: Push and Pop
// return a new History and never write into storage shared with the
// receiver, so older States keep their history intact.
type History struct {
	entries []Snapshot
	limit   int
}

// NewHistory returns an empty history holding at most limit snapshots.
func NewHistory(limit int) History {
	return History{limit: max(limit, 1)}
}

// Len returns the number of stored snapshots.
func (h History) Len() int {
	return len(h.entries)
}

// Limit returns the maximum depth.
func (h History) Limit() int {
	return h.limit
}

// Push returns h with snap on top, evicting the oldest snapshot when the
// limit is reached.
func (h History) Push(snap Snapshot) History {
	limit := max(h.limit, 1)
	keep := h.entries
	if len(keep) >= limit {
		keep = keep[len(keep)-limit+1:]
	}
	entries := make([]Snapshot, 0, len(keep)+1)
	entries = append(entries, keep...)
	entries = append(entries, snap)
	return History{entries: entries, limit: limit}
}

// Pop returns h without its top snapshot, and that snapshot.
// ok is false when h is empty.
func (h History) Pop() (rest History, snap Snapshot, ok bool) {
	if len(h.entries) == 0 {
		return h, Snapshot{}, false
	}
	n := len(h.entries) - 1
	return History{entries: h.entries[:n:n], limit: h.limit}, h.entries[n], true
}
