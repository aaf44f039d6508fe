package bitbuf

import "fmt"

// Layout is the way elements are arranged into the backing cells. It is a
// closed set: Aligned or Packed.
type Layout interface {
	Aligned | Packed

	// cellCount returns how many cells are needed to hold capacity elements
	// of the given number of bits. bits is never zero.
	cellCount(capacity, bits uint) uint

	// exactBits returns the number of bits that hold elements.
	exactBits(c *cells, capacity uint) uint

	// paddingBits returns the number of bits inside of cells that can never
	// hold an element.
	paddingBits(c *cells) uint

	// locate returns where the element at index lives. the index is not
	// required to be valid.
	locate(c *cells, index uint) Location

	// get and set require the index to be valid.
	get(c *cells, index uint) uint64
	set(c *cells, index uint, value uint64)
}

// Location describes where the bits of an element live in the backing cells.
// The high fields are only used by elements that cross into the next cell.
type Location struct {
	Cell       uint   // index of the (first) cell
	Offset     uint   // bit offset of the element in Cell
	OffsetHigh uint   // bit offset one past the element in Cell+1
	Mask       uint64 // element bits in Cell
	MaskHigh   uint64 // element bits in Cell+1. zero if it does not cross.
}

// Crosses reports if the element spans two cells.
func (l Location) Crosses() bool { return l.MaskHigh != 0 }

// String renders the location for debugging.
func (l Location) String() string {
	if !l.Crosses() {
		return fmt.Sprintf("[#%d <<%d &%b]", l.Cell, l.Offset, l.Mask)
	}
	return fmt.Sprintf("[#%d <<h%dl%d &h%bl%b]",
		l.Cell, l.OffsetHigh, l.Offset, l.MaskHigh, l.Mask)
}
