package render

import "strings"

// Builder accumulates rendered markup. Appends are amortized O(1) and
// String hands over the accumulated bytes without copying. A Builder is
// finished once String is called; any further write panics.
type Builder struct {
	sb   strings.Builder
	done bool
}

// NewBuilder returns a Builder with room for at least sizeHint bytes.
func NewBuilder(sizeHint int) *Builder {
	b := &Builder{}
	if sizeHint > 0 {
		b.sb.Grow(sizeHint)
	}
	return b
}

func (b *Builder) check() {
	if b.done {
		panic("render: write to finished Builder")
	}
}

// WriteString appends s.
func (b *Builder) WriteString(s string) (int, error) {
	b.check()
	return b.sb.WriteString(s)
}

// WriteByte appends c.
func (b *Builder) WriteByte(c byte) error {
	b.check()
	return b.sb.WriteByte(c)
}

// Write appends p. It implements io.Writer.
func (b *Builder) Write(p []byte) (int, error) {
	b.check()
	return b.sb.Write(p)
}

// Len returns the number of bytes written so far.
func (b *Builder) Len() int {
	return b.sb.Len()
}

// String finishes the Builder and returns its contents.
func (b *Builder) String() string {
	b.check()
	b.done = true
	return b.sb.String()
}
