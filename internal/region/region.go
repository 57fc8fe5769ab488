// Package region provides read-only views of whole files for scanning.
//
// On unix platforms a Region is a private read-only memory mapping, so
// large files are paged in on demand rather than read up front. Other
// platforms fall back to reading the file into memory; behavior is the
// same either way.
//
// A Region is owned by exactly one goroutine. Bytes must not be used
// after Close.
package region

import (
	"errors"
	"fmt"
	"os"
)

// ErrEmptyFile is returned by Open for zero-length files, which can never
// contain a match and cannot be mapped.
var ErrEmptyFile = errors.New("region: empty file")

// Region is a read-only view of one file's full contents.
type Region struct {
	data   []byte
	f      *os.File // nil on the read fallback
	mapped bool
}

// Open opens path read-only and establishes a view of its entire
// contents, sized to the file's length at open time. The caller must
// Close the Region on every exit path.
func Open(path string) (*Region, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	size := fi.Size()
	if size == 0 {
		f.Close()
		return nil, ErrEmptyFile
	}
	if size != int64(int(size)) {
		f.Close()
		return nil, fmt.Errorf("region: %s: file too large to map (%d bytes)", path, size)
	}

	r, err := newRegion(f, int(size))
	if err != nil {
		f.Close()
		return nil, &os.PathError{Op: "mmap", Path: path, Err: err}
	}
	return r, nil
}

// Bytes returns the file contents. The slice aliases the mapping and is
// invalid after Close.
func (r *Region) Bytes() []byte {
	if r == nil {
		return nil
	}
	return r.data
}

// Len returns the view length in bytes.
func (r *Region) Len() int {
	if r == nil {
		return 0
	}
	return len(r.data)
}

// Close releases the mapping and the file handle. It is safe to call on
// every exit path, including after a partial failure; second and later
// calls are no-ops.
func (r *Region) Close() error {
	if r == nil {
		return nil
	}
	var err error
	if r.data != nil && r.mapped {
		err = unmap(r.data)
	}
	r.data = nil
	if r.f != nil {
		if cerr := r.f.Close(); err == nil {
			err = cerr
		}
		r.f = nil
	}
	return err
}
