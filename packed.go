package bitbuf

// Packed stores elements back to back with no padding, so an element may
// have its low bits at the top of one cell and its high bits at the bottom of
// the next.
type Packed struct{}

// cellCount does not need a guard cell: the high cell is only touched when
// the element crosses into it, and the last element ends inside the last
// cell.
func (Packed) cellCount(capacity, bits uint) uint {
	return ceilDiv(capacity*bits, wordBits)
}

func (Packed) exactBits(c *cells, capacity uint) uint {
	return capacity * c.bits
}

func (Packed) paddingBits(c *cells) uint { return 0 }

func (Packed) locate(c *cells, index uint) Location {
	b := index * c.bits
	low := b % wordBits

	loc := Location{
		Cell:       b / wordBits,
		Offset:     low,
		OffsetHigh: (b + c.bits) % wordBits,
		Mask:       c.mask << low,
	}

	// crossing implies low > 0, so the shift is always less than 64.
	if low+c.bits > wordBits {
		loc.MaskHigh = c.mask >> (wordBits - low)
	}

	return loc
}

func (p Packed) get(c *cells, index uint) uint64 {
	loc := p.locate(c, index)

	v := c.buf[loc.Cell] & loc.Mask >> loc.Offset
	if loc.MaskHigh != 0 {
		v |= c.buf[loc.Cell+1] & loc.MaskHigh << (c.bits - loc.OffsetHigh)
	}

	return v
}

func (p Packed) set(c *cells, index uint, value uint64) {
	loc := p.locate(c, index)
	value &= c.mask

	v := c.buf[loc.Cell]
	v &^= loc.Mask
	v |= value << loc.Offset
	c.buf[loc.Cell] = v

	if loc.MaskHigh != 0 {
		v = c.buf[loc.Cell+1]
		v &^= loc.MaskHigh
		v |= value >> (c.bits - loc.OffsetHigh)
		c.buf[loc.Cell+1] = v
	}
}
