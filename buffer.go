// Package bitbuf provides fixed capacity buffers of unsigned integers that
// are all some number of bits wide, packed into 64 bit cells.
//
// A buffer is parameterized by its Layout. Aligned layouts never split an
// element across cells and pay for it with padding when the width does not
// divide 64. Packed layouts have no padding and split elements across two
// cells when they have to.
//
// Buffers are not safe for concurrent mutation.
package bitbuf

import (
	"strconv"
	"strings"

	"github.com/zeebo/mon"
)

// Buffer holds capacity elements of bits bits each, laid out by L.
//
// A zero bit buffer allocates nothing: every element reads as zero and only
// zero can be written.
type Buffer[L Layout] struct {
	c   cells
	cap uint
	mem []byte // non-nil if the cells are memory mapped
}

// AlignedBuffer and PackedBuffer name the two kinds of buffer.
type (
	AlignedBuffer = Buffer[Aligned]
	PackedBuffer  = Buffer[Packed]
)

// Source produces values for bulk loads. Iterators are sources.
type Source interface {
	Next() bool
	Value() uint64
}

// New constructs a zero filled buffer of capacity elements that are bits
// wide.
func New[L Layout](bits, capacity uint) (*Buffer[L], error) {
	n, err := cellCount[L](bits, capacity)
	if err != nil {
		return nil, err
	}
	var buf []uint64
	if n > 0 {
		buf = make([]uint64, n)
	}
	return &Buffer[L]{
		c:   newCells(buf, bits),
		cap: capacity,
	}, nil
}

// NewAligned is New with the Aligned layout.
func NewAligned(bits, capacity uint) (*AlignedBuffer, error) {
	return New[Aligned](bits, capacity)
}

// NewPacked is New with the Packed layout.
func NewPacked(bits, capacity uint) (*PackedBuffer, error) {
	return New[Packed](bits, capacity)
}

// NewWithDefault constructs a buffer where every element is value.
func NewWithDefault[L Layout](bits, capacity uint, value uint64) (*Buffer[L], error) {
	b, err := New[L](bits, capacity)
	if err != nil {
		return nil, err
	}
	// already zero filled
	if value != 0 {
		if err := b.Fill(value); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// NewFromValues constructs a buffer and loads as many of the values as fit.
// Elements past the end of values are zero.
func NewFromValues[L Layout](bits, capacity uint, values []uint64) (*Buffer[L], error) {
	b, err := New[L](bits, capacity)
	if err != nil {
		return nil, err
	}
	if _, err := b.Load(values); err != nil {
		return nil, err
	}
	return b, nil
}

// NewFromSlice constructs a buffer with exactly as many elements as values.
func NewFromSlice[L Layout](bits uint, values []uint64) (*Buffer[L], error) {
	return NewFromValues[L](bits, uint(len(values)), values)
}

// NewFromSource constructs a buffer and loads it from the source until
// either runs out.
func NewFromSource[L Layout](bits, capacity uint, src Source) (*Buffer[L], error) {
	b, err := New[L](bits, capacity)
	if err != nil {
		return nil, err
	}
	if _, err := b.LoadFrom(src); err != nil {
		return nil, err
	}
	return b, nil
}

// cellCount validates the parameters and returns the number of cells the
// layout needs for them.
func cellCount[L Layout](bits, capacity uint) (uint, error) {
	if capacity == 0 {
		return 0, ZeroCapacity.New("cannot create buffer of 0 capacity")
	}
	if bits > maxBits {
		return 0, BitWidthOverflow.New("cannot store %d bits in a %d bit cell", bits, wordBits)
	}
	if bits == 0 {
		return 0, nil
	}
	if capacity > ^uint(0)/bits {
		return 0, Error.New("%d elements of %d bits overflows", capacity, bits)
	}
	var l L
	return l.cellCount(capacity, bits), nil
}

//
// introspection
//

// Bits returns the width of every element.
func (b *Buffer[L]) Bits() uint { return b.c.bits }

// Mask returns the mask of bits a value may use.
func (b *Buffer[L]) Mask() uint64 { return b.c.mask }

// Cap returns the number of elements.
func (b *Buffer[L]) Cap() uint { return b.cap }

// ElementsPerCell is exact for Aligned buffers and a lower bound for Packed.
func (b *Buffer[L]) ElementsPerCell() uint { return b.c.epc }

// RawLen returns the number of cells backing the buffer.
func (b *Buffer[L]) RawLen() uint { return uint(len(b.c.buf)) }

// RawByteLen returns the number of bytes backing the buffer.
func (b *Buffer[L]) RawByteLen() uint { return uint(len(b.c.buf)) * wordBytes }

// Raw returns the backing cells. Writes through it bypass every check.
func (b *Buffer[L]) Raw() []uint64 { return b.c.buf }

// ExactBits returns the number of bits able to hold elements.
func (b *Buffer[L]) ExactBits() uint {
	if b.c.bits == 0 {
		return 0
	}
	var l L
	return l.exactBits(&b.c, b.cap)
}

// PaddingBits returns the number of bits inside of cells that sit between
// elements and can never be used. It is always zero for Packed buffers.
func (b *Buffer[L]) PaddingBits() uint {
	if b.c.bits == 0 {
		return 0
	}
	var l L
	return l.paddingBits(&b.c)
}

// TotalBits is ExactBits plus PaddingBits.
func (b *Buffer[L]) TotalBits() uint { return b.ExactBits() + b.PaddingBits() }

// SlackBits returns the bits of the backing cells past the end of TotalBits.
func (b *Buffer[L]) SlackBits() uint { return b.RawLen()*wordBits - b.TotalBits() }

// Fits reports if the value can be stored.
func (b *Buffer[L]) Fits(value uint64) bool { return value&b.c.mask == value }

// IsIndex reports if the index is in [0, Cap()).
func (b *Buffer[L]) IsIndex(index uint) bool { return index < b.cap }

// IsCell reports if the cell is in [0, RawLen()).
func (b *Buffer[L]) IsCell(cell uint) bool { return cell < uint(len(b.c.buf)) }

// Location returns where the element at index lives. The index does not have
// to be valid.
func (b *Buffer[L]) Location(index uint) Location {
	if b.c.bits == 0 {
		return Location{}
	}
	var l L
	return l.locate(&b.c, index)
}

//
// checked access
//

// Get returns the element at index and false if the index is out of bounds.
func (b *Buffer[L]) Get(index uint) (uint64, bool) {
	if index >= b.cap {
		return 0, false
	}
	return b.GetUnchecked(index), true
}

// Set stores value at index. The buffer is unchanged if an error is
// returned.
func (b *Buffer[L]) Set(index uint, value uint64) error {
	if !b.Fits(value) {
		return ValueTooWide.New("0x%x does not fit in %d bits", value, b.c.bits)
	}
	if index >= b.cap {
		return IndexOutOfBounds.New("index %d >= capacity %d", index, b.cap)
	}
	b.SetUnchecked(index, value)
	return nil
}

//
// unchecked access
//

// GetUnchecked returns the element at index. The caller must ensure that
// IsIndex(index) is true. Other indexes return unspecified values or panic.
func (b *Buffer[L]) GetUnchecked(index uint) uint64 {
	if b.c.bits == 0 {
		return 0
	}
	var l L
	return l.get(&b.c, index)
}

// SetUnchecked stores the low Bits() bits of value at index. The caller must
// ensure that IsIndex(index) and Fits(value) are true. Other indexes may
// clobber unused bits or panic.
func (b *Buffer[L]) SetUnchecked(index uint, value uint64) {
	if b.c.bits == 0 {
		return
	}
	var l L
	l.set(&b.c, index, value)
}

//
// bulk operations
//

var (
	fillThunk mon.Thunk
	loadThunk mon.Thunk
)

// Fill sets every element to value. Filling with zero clears the cells
// directly.
func (b *Buffer[L]) Fill(value uint64) (err error) {
	if !b.Fits(value) {
		return ValueTooWide.New("0x%x does not fit in %d bits", value, b.c.bits)
	}
	if value == 0 {
		b.Clear()
		return nil
	}

	timer := fillThunk.Start()
	defer timer.Stop(&err)

	for i := uint(0); i < b.cap; i++ {
		b.SetUnchecked(i, value)
	}
	return nil
}

// Clear sets every element to zero.
func (b *Buffer[L]) Clear() { b.c.clear() }

// Load stores values starting at index 0 until either the values or the
// buffer run out, returning how many were stored. It stops at the first
// value that does not fit.
func (b *Buffer[L]) Load(values []uint64) (n int, err error) {
	timer := loadThunk.Start()
	defer timer.Stop(&err)

	if uint(len(values)) > b.cap {
		values = values[:b.cap]
	}
	for i, v := range values {
		if !b.Fits(v) {
			return i, ValueTooWide.New("value %d (0x%x) does not fit in %d bits", i, v, b.c.bits)
		}
		b.SetUnchecked(uint(i), v)
	}
	return len(values), nil
}

// LoadFrom is like Load but pulls values from the source. Values past the
// capacity are not consumed.
func (b *Buffer[L]) LoadFrom(src Source) (n int, err error) {
	timer := loadThunk.Start()
	defer timer.Stop(&err)

	for i := uint(0); i < b.cap && src.Next(); i++ {
		v := src.Value()
		if !b.Fits(v) {
			return n, ValueTooWide.New("value %d (0x%x) does not fit in %d bits", i, v, b.c.bits)
		}
		b.SetUnchecked(i, v)
		n++
	}
	return n, nil
}

// Values returns every element in order.
func (b *Buffer[L]) Values() []uint64 {
	out := make([]uint64, b.cap)
	for i := range out {
		out[i] = b.GetUnchecked(uint(i))
	}
	return out
}

// Clone returns a heap backed copy of the buffer.
func (b *Buffer[L]) Clone() *Buffer[L] {
	var buf []uint64
	if len(b.c.buf) > 0 {
		buf = append([]uint64(nil), b.c.buf...)
	}
	return &Buffer[L]{
		c:   newCells(buf, b.c.bits),
		cap: b.cap,
	}
}

// String renders the buffer as [u<bits>; <capacity>; v0, v1, ...].
func (b *Buffer[L]) String() string {
	var sb strings.Builder
	sb.WriteString("[u")
	sb.WriteString(strconv.FormatUint(uint64(b.c.bits), 10))
	sb.WriteString("; ")
	sb.WriteString(strconv.FormatUint(uint64(b.cap), 10))
	sb.WriteString(";")
	for i := uint(0); i < b.cap; i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte(' ')
		sb.WriteString(strconv.FormatUint(b.GetUnchecked(i), 10))
	}
	sb.WriteByte(']')
	return sb.String()
}

//
// iterator
//

// Iterator walks the elements of a buffer in order.
type Iterator[L Layout] struct {
	b   *Buffer[L]
	pos uint
	idx uint
	val uint64
}

// Iter returns an iterator positioned before the first element.
func (b *Buffer[L]) Iter() Iterator[L] { return Iterator[L]{b: b} }

// Next advances to the next element and reports if there was one.
func (it *Iterator[L]) Next() bool {
	if it.pos >= it.b.cap {
		return false
	}
	it.idx, it.val = it.pos, it.b.GetUnchecked(it.pos)
	it.pos++
	return true
}

// Index returns the index of the current element.
func (it *Iterator[L]) Index() uint { return it.idx }

// Value returns the current element.
func (it *Iterator[L]) Value() uint64 { return it.val }

// Len returns how many elements are left.
func (it *Iterator[L]) Len() uint { return it.b.cap - it.pos }
