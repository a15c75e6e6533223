package training

// Window is a fixed-capacity rolling window over recent episode distances.
// The sum is kept incrementally so Average is O(1).
type Window struct {
	buf  []int
	next int
	n    int
	sum  int64
}

// NewWindow returns an empty window holding at most capacity values.
// A non-positive capacity is treated as 1.
func NewWindow(capacity int) *Window {
	if capacity < 1 {
		capacity = 1
	}
	return &Window{buf: make([]int, capacity)}
}

// Add pushes a distance, evicting the oldest once the window is full.
func (w *Window) Add(distance int) {
	if w.n == len(w.buf) {
		w.sum -= int64(w.buf[w.next])
	} else {
		w.n++
	}
	w.buf[w.next] = distance
	w.sum += int64(distance)
	w.next = (w.next + 1) % len(w.buf)
}

// Average returns the mean of the values currently held, or 0 when empty.
func (w *Window) Average() float64 {
	if w.n == 0 {
		return 0
	}
	return float64(w.sum) / float64(w.n)
}

// Len returns how many values the window holds.
func (w *Window) Len() int { return w.n }

// Cap returns the window capacity.
func (w *Window) Cap() int { return len(w.buf) }
