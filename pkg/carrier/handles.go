package carrier

// Handle is a small integer standing in for a block's string id. Grid
// snapshots copy a flat []Handle cell array plus a short owned-cells index;
// using handles instead of strings keeps that copy cheap, per the core's
// "deep-copy snapshots of the grid" design note.
type Handle int32

// Empty marks a cell with no owner.
const Empty Handle = -1

// interner is a process-local, append-only string<->handle table. Entries
// are never removed: a block that is placed, removed, and placed again
// reuses its original handle.
type interner struct {
	idToHandle map[string]Handle
	handleToID []string
}

func newInterner() *interner {
	return &interner{idToHandle: make(map[string]Handle)}
}

// intern returns the handle for id, allocating a new one on first sight.
func (in *interner) intern(id string) Handle {
	if h, ok := in.idToHandle[id]; ok {
		return h
	}
	h := Handle(len(in.handleToID))
	in.handleToID = append(in.handleToID, id)
	in.idToHandle[id] = h
	return h
}

// lookup recovers id belonging to handle h, if any.
func (in *interner) lookup(h Handle) (string, bool) {
	if h < 0 || int(h) >= len(in.handleToID) {
		return "", false
	}
	return in.handleToID[h], true
}
