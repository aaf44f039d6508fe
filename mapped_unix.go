//go:build linux || darwin || freebsd || netbsd || openbsd

package bitbuf

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// mapCells maps enough anonymous memory to hold n cells, rounded up to the
// next page. the mapping starts zeroed.
func mapCells(n uint) ([]uint64, []byte, error) {
	if n == 0 {
		return nil, nil, nil
	}

	pageSize := uint(unix.Getpagesize())
	size := ceilDiv(n*wordBytes, pageSize) * pageSize

	mem, err := unix.Mmap(-1, 0, int(size),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, nil, Error.Wrap(err)
	}

	return unsafe.Slice((*uint64)(unsafe.Pointer(&mem[0])), n), mem, nil
}

func unmapCells(mem []byte) error {
	return Error.Wrap(unix.Munmap(mem))
}
