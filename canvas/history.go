package canvas

// DefaultHistoryDepth is the number of snapshots kept when no depth is given.
const DefaultHistoryDepth = 10

// History is a bounded stack of canvas snapshots, oldest first.
// Once the stack holds more than its depth, the oldest snapshot is dropped.
type History struct {
	snapshots [][]byte
	maxDepth  int
}

// NewHistory creates a history keeping at most maxDepth snapshots.
func NewHistory(maxDepth int) *History {
	if maxDepth <= 0 {
		maxDepth = DefaultHistoryDepth
	}
	return &History{maxDepth: maxDepth}
}

// Push stores a copy of pix as the newest snapshot.
func (h *History) Push(pix []byte) {
	snap := make([]byte, len(pix))
	copy(snap, pix)
	h.snapshots = append(h.snapshots, snap)

	if len(h.snapshots) > h.maxDepth {
		excess := len(h.snapshots) - h.maxDepth
		// Release evicted snapshots for the garbage collector.
		for i := 0; i < excess; i++ {
			h.snapshots[i] = nil
		}
		h.snapshots = h.snapshots[excess:]
	}
}

// Pop removes and returns the newest snapshot.
// It returns false when the history is empty.
func (h *History) Pop() ([]byte, bool) {
	if len(h.snapshots) == 0 {
		return nil, false
	}
	last := len(h.snapshots) - 1
	snap := h.snapshots[last]
	h.snapshots[last] = nil
	h.snapshots = h.snapshots[:last]
	return snap, true
}

// Len returns the number of stored snapshots.
func (h *History) Len() int {
	return len(h.snapshots)
}
