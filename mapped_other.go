//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package bitbuf

func mapCells(n uint) ([]uint64, []byte, error) {
	return nil, nil, Error.New("memory mapped buffers are not supported")
}

func unmapCells(mem []byte) error { return nil }
