//go:build !unix

package region

import (
	"io"
	"os"
)

// Platforms without mmap support read the whole file instead. The Region
// contract is unchanged; only the paging behavior differs.
func newRegion(f *os.File, size int) (*Region, error) {
	data := make([]byte, size)
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, err
	}
	// The handle is no longer needed once the contents are in memory,
	// but Region keeps it so Close semantics match the mapped path.
	return &Region{data: data, f: f, mapped: false}, nil
}

func unmap(data []byte) error { return nil }
