package bitbuf

import "github.com/zeebo/mon"

// NewMapped is like New but the cells live in an anonymous memory mapping
// instead of the go heap. Close must be called to release the mapping, and
// the buffer must not be used afterwards.
func NewMapped[L Layout](bits, capacity uint) (b *Buffer[L], err error) {
	defer mon.Start().Stop(&err)

	n, err := cellCount[L](bits, capacity)
	if err != nil {
		return nil, err
	}

	buf, mem, err := mapCells(n)
	if err != nil {
		return nil, err
	}

	return &Buffer[L]{
		c:   newCells(buf, bits),
		cap: capacity,
		mem: mem,
	}, nil
}

// Mapped reports if the cells live in a memory mapping.
func (b *Buffer[L]) Mapped() bool { return b.mem != nil }

// Close releases the memory mapping backing the buffer, if any. It is a no-op
// for heap backed buffers.
func (b *Buffer[L]) Close() (err error) {
	if b.mem == nil {
		return nil
	}
	defer mon.Start().Stop(&err)

	mem := b.mem
	b.mem, b.c.buf = nil, nil
	return unmapCells(mem)
}
