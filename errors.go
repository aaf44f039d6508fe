package bitbuf

import "github.com/zeebo/errs"

var (
	// Error is the class of errors that are not caused by the caller.
	Error = errs.Class("bitbuf")

	// ValueTooWide is returned when a value uses bits outside of the mask.
	ValueTooWide = errs.Class("value too wide")

	// IndexOutOfBounds is returned when an index is not less than the
	// capacity.
	IndexOutOfBounds = errs.Class("index out of bounds")

	// ZeroCapacity is returned when constructing a buffer that can hold
	// nothing.
	ZeroCapacity = errs.Class("zero capacity")

	// BitWidthOverflow is returned when constructing a buffer with elements
	// wider than a cell.
	BitWidthOverflow = errs.Class("bit width overflow")
)
