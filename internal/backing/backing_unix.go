//go:build unix

package backing

import (
	"fmt"
	"math"

	"golang.org/x/sys/unix"
)

// acquire maps an anonymous, private region directly from the kernel —
// the same kind of call a native allocator would use to grow its own
// arena, rather than routing through Go's garbage-collected heap.
func acquire(n uint64) ([]byte, error) {
	if n == 0 {
		return nil, fmt.Errorf("backing: zero-length region")
	}

	if n > uint64(math.MaxInt) {
		return nil, fmt.Errorf("backing: region of %d bytes exceeds platform limit", n)
	}

	buf, err := unix.Mmap(-1, 0, int(n), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("backing: mmap %d bytes: %w", n, err)
	}

	return buf, nil
}

func release(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}

	if err := unix.Munmap(buf); err != nil {
		return fmt.Errorf("backing: munmap: %w", err)
	}

	return nil
}
