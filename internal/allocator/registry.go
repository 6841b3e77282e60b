package allocator

import (
	"fmt"

	"github.com/suballoc/suballoc/internal/backing"
)

// Registry is the pool registry (C6): the process-wide table of live
// pools, injected explicitly rather than kept as package-level mutable
// state (per the design notes). A Registry starts uninitialized and is
// initialized by Init; Init is not idempotent, but Open calls it
// implicitly on first use so callers that never need explicit control
// don't have to. Shutdown returns the registry to the uninitialized
// state, after which it can be initialized again.
type Registry struct {
	cfg *Config

	slots    []*Pool
	freeList []int
	capacity int
	count    int
	nextFree int

	initialized bool
}

// NewRegistry builds an uninitialized registry. Call Init explicitly to
// observe ErrAlreadyInitialized on a repeat call, or just call Open,
// which initializes on demand.
func NewRegistry(opts ...Option) *Registry {
	return &Registry{cfg: buildConfig(opts...)}
}

// Init allocates the registry's initial slot table. Calling Init twice
// returns ErrAlreadyInitialized without altering the existing table.
func (r *Registry) Init() error {
	if r.initialized {
		return fmt.Errorf("registry: %w", ErrAlreadyInitialized)
	}

	capacity := int(r.cfg.RegistryInitialCapacity)
	if capacity <= 0 {
		capacity = 1
	}

	r.slots = make([]*Pool, capacity)
	r.capacity = capacity
	r.count = 0
	r.nextFree = 0
	r.freeList = nil
	r.initialized = true

	return nil
}

func (r *Registry) ensureInitialized() error {
	if r.initialized {
		return nil
	}

	return r.Init()
}

func (r *Registry) ensureCapacity() error {
	for float64(r.count+1)/float64(r.capacity) > r.cfg.LoadFactor {
		newCap := r.capacity * int(r.cfg.GrowthFactor)
		if newCap <= r.capacity {
			return fmt.Errorf("registry: %w: pool table capacity overflow", ErrFail)
		}

		newSlots := make([]*Pool, newCap)
		copy(newSlots, r.slots)
		r.slots = newSlots
		r.capacity = newCap
	}

	return nil
}

func (r *Registry) allocSlot() int {
	if n := len(r.freeList); n > 0 {
		idx := r.freeList[n-1]
		r.freeList = r.freeList[:n-1]
		r.count++

		return idx
	}

	idx := r.nextFree
	r.nextFree++
	r.count++

	return idx
}

// Open ensures the registry is initialized, ensures the slot table has
// room, acquires a backing buffer of size bytes from the system, and
// returns a new pool manager containing a single free region covering
// the whole pool. size must be positive.
func (r *Registry) Open(size uint64, policy PlacementPolicy) (*Pool, error) {
	if size == 0 {
		return nil, fmt.Errorf("registry: %w: pool size must be positive", ErrFail)
	}

	if err := r.ensureInitialized(); err != nil {
		return nil, err
	}

	if err := r.ensureCapacity(); err != nil {
		return nil, err
	}

	buf, err := backing.Acquire(size)
	if err != nil {
		return nil, fmt.Errorf("registry: %w: %v", ErrFail, err)
	}

	pool, err := newPool(buf, size, policy, r.cfg)
	if err != nil {
		_ = backing.Release(buf)

		return nil, err
	}

	idx := r.allocSlot()
	r.slots[idx] = pool
	pool.registryIndex = idx

	return pool, nil
}

// Close releases a pool's backing buffer, arena, and gap index together
// and retires its registry slot. Close fails with ErrNotFreed if the
// pool still has any reserved allocation.
func (r *Registry) Close(p *Pool) error {
	if p.numAllocs != 0 {
		return fmt.Errorf("registry: %w", ErrNotFreed)
	}

	if err := backing.Release(p.backing); err != nil {
		return fmt.Errorf("registry: %w: %v", ErrFail, err)
	}

	r.slots[p.registryIndex] = nil
	r.freeList = append(r.freeList, p.registryIndex)
	r.count--

	return nil
}

// Shutdown closes every open pool, then releases the registry itself.
// If any pool cannot be closed (because it still has live allocations),
// Shutdown closes everything it can and returns the first such error.
func (r *Registry) Shutdown() error {
	if !r.initialized {
		return nil
	}

	var firstErr error

	for _, p := range r.slots {
		if p == nil {
			continue
		}

		if err := r.Close(p); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	r.slots = nil
	r.freeList = nil
	r.capacity = 0
	r.count = 0
	r.nextFree = 0
	r.initialized = false

	return firstErr
}

// OpenPools returns the number of pools currently open in the registry.
func (r *Registry) OpenPools() int {
	return r.count
}
