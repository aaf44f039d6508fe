package bitbuf

// cells are 64 bit words, always

const (
	wordBits  = 64
	wordBytes = wordBits / 8
	maxBits   = wordBits
)

// maskOf returns a mask with the low bits set. it is zero for zero bits.
func maskOf(bits uint) uint64 {
	if bits >= wordBits {
		return ^uint64(0)
	}
	return 1<<bits - 1
}

// ceilDiv returns n / d rounded up without overflowing. d must be non-zero.
func ceilDiv(n, d uint) uint {
	q := n / d
	if n%d != 0 {
		q++
	}
	return q
}

// cells is the backing storage and the derived constants every layout needs
// to address into it. it is computed once at construction.
type cells struct {
	buf  []uint64
	bits uint   // bits per element
	mask uint64 // 1 << bits - 1
	epc  uint   // elements per cell. exact when aligned.
}

func newCells(buf []uint64, bits uint) cells {
	c := cells{
		buf:  buf,
		bits: bits,
		mask: maskOf(bits),
	}
	if bits > 0 {
		c.epc = wordBits / bits
	}
	return c
}

func (c *cells) clear() {
	for i := range c.buf {
		c.buf[i] = 0
	}
}
