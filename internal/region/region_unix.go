//go:build unix

package region

import (
	"os"

	"golang.org/x/sys/unix"
)

func newRegion(f *os.File, size int) (*Region, error) {
	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		return nil, err
	}
	return &Region{data: data, f: f, mapped: true}, nil
}

func unmap(data []byte) error {
	return unix.Munmap(data)
}
