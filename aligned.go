package bitbuf

// Aligned stores elements in groups that never cross a cell boundary. A cell
// holds 64 / bits elements and any leftover high bits are padding.
type Aligned struct{}

func (Aligned) cellCount(capacity, bits uint) uint {
	return ceilDiv(capacity, wordBits/bits)
}

func (Aligned) exactBits(c *cells, capacity uint) uint {
	return uint(len(c.buf)) * c.epc * c.bits
}

func (Aligned) paddingBits(c *cells) uint {
	return uint(len(c.buf)) * (wordBits - c.epc*c.bits)
}

func (Aligned) locate(c *cells, index uint) Location {
	offset := index % c.epc * c.bits
	return Location{
		Cell:   index / c.epc,
		Offset: offset,
		Mask:   c.mask << offset,
	}
}

func (a Aligned) get(c *cells, index uint) uint64 {
	loc := a.locate(c, index)
	return c.buf[loc.Cell] & loc.Mask >> loc.Offset
}

func (a Aligned) set(c *cells, index uint, value uint64) {
	loc := a.locate(c, index)
	v := c.buf[loc.Cell]
	v &^= loc.Mask
	v |= value & c.mask << loc.Offset
	c.buf[loc.Cell] = v
}
