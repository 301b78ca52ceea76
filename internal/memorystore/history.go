package memorystore

import "sync"

// History is a fixed-capacity FIFO of base prices.
// Pushing onto a full history evicts the oldest value.
type History struct {
	mu     sync.Mutex
	values []float64
	start  int // index of the oldest value
	size   int
}

func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{
		values: make([]float64, capacity),
	}
}

// NewSeededHistory returns a full history whose i-th oldest value is seed(i).
func NewSeededHistory(capacity int, seed func(i int) float64) *History {
	h := NewHistory(capacity)
	for i := 0; i < len(h.values); i++ {
		h.values[i] = seed(i)
	}
	h.size = len(h.values)
	return h
}

// Push appends v. When the history is full the oldest value is evicted
// and returned with ok=true.
func (h *History) Push(v float64) (evicted float64, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	capacity := len(h.values)
	if h.size < capacity {
		h.values[(h.start+h.size)%capacity] = v
		h.size++
		return 0, false
	}

	evicted = h.values[h.start]
	h.values[h.start] = v
	h.start = (h.start + 1) % capacity
	return evicted, true
}

// Values returns a copy ordered oldest first.
func (h *History) Values() []float64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]float64, h.size)
	for i := 0; i < h.size; i++ {
		out[i] = h.values[(h.start+i)%len(h.values)]
	}
	return out
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.size
}
