package main

// ring keeps the last cap(buf) values pushed.
type ring[T any] struct {
	buf  []T
	next int
	fill int
}

func newRing[T any](n int) *ring[T] {
	if n < 1 {
		n = 1
	}
	return &ring[T]{buf: make([]T, n)}
}

func (r *ring[T]) Push(v T) {
	r.buf[r.next] = v
	r.next = (r.next + 1) % len(r.buf)
	if r.fill < len(r.buf) {
		r.fill++
	}
}

func (r *ring[T]) Len() int { return r.fill }

// Items returns the retained values, oldest first.
func (r *ring[T]) Items() []T {
	out := make([]T, 0, r.fill)
	start := (r.next - r.fill + len(r.buf)) % len(r.buf)
	for i := 0; i < r.fill; i++ {
		out = append(out, r.buf[(start+i)%len(r.buf)])
	}
	return out
}

// tail adapts a byte ring to io.Writer.
type tail struct{ *ring[byte] }

func (t tail) Write(p []byte) (int, error) {
	for _, b := range p {
		t.Push(b)
	}
	return len(p), nil
}
