package views

const DefaultHistorySize = 50

// History keeps the most recent positions, newest first, dropping the oldest beyond its capacity.
type History struct {
	positions []Position
	size      int
}

func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{
		positions: make([]Position, 0, size),
		size:      size,
	}
}

func (h *History) Push(position Position) {
	if len(h.positions) >= h.size {
		h.positions = h.positions[:h.size-1]
	}
	h.positions = append([]Position{position}, h.positions...)
}

// Pop removes and returns the newest position.
func (h *History) Pop() (Position, bool) {
	if len(h.positions) == 0 {
		return Position{}, false
	}
	position := h.positions[0]
	h.positions = h.positions[1:]
	return position, true
}

func (h *History) Len() int {
	return len(h.positions)
}

// Positions returns a copy of the history, newest first.
func (h *History) Positions() []Position {
	return append([]Position(nil), h.positions...)
}

func (h *History) Clear() {
	h.positions = h.positions[:0]
}
