package allocator

import "errors"

// Status codes surfaced by every operation that can fail, in order of
// severity as laid out by the design. Callers should compare with
// errors.Is rather than matching on formatted text, since every returned
// error wraps one of these with call-site context via fmt.Errorf's %w.
var (
	// ErrAlreadyInitialized is returned when Registry.Init is called on an
	// already-initialized registry. Nothing is corrupted; the caller has a
	// programming bug.
	ErrAlreadyInitialized = errors.New("suballoc: registry already initialized")

	// ErrNoSpace is returned when no free region is large enough to satisfy
	// an allocation request. This is a normal exhaustion signal, not a bug.
	ErrNoSpace = errors.New("suballoc: no free region large enough for request")

	// ErrNotFound is returned when the gap index is asked to remove a
	// descriptor it does not hold. Surfacing this usually indicates a
	// corrupted invariant elsewhere in the caller's use of the package.
	ErrNotFound = errors.New("suballoc: descriptor not present in gap index")

	// ErrNotFreed is returned when Close is attempted on a pool that still
	// has live (reserved) allocations.
	ErrNotFreed = errors.New("suballoc: pool has live allocations")

	// ErrFail covers underlying system allocation failure during growth,
	// an internal precondition violation, or an invalid handle passed to
	// Free. It never terminates the process; the failing operation returns
	// it and leaves existing state untouched.
	ErrFail = errors.New("suballoc: operation failed")
)
