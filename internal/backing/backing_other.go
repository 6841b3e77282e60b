//go:build !unix

package backing

import "fmt"

// acquire falls back to a heap-allocated slice on platforms without an
// anonymous-mmap syscall.
func acquire(n uint64) ([]byte, error) {
	if n == 0 {
		return nil, fmt.Errorf("backing: zero-length region")
	}

	return make([]byte, n), nil
}

func release([]byte) error {
	return nil
}
