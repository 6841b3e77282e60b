package allocator

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// region is a descriptor slot: one contiguous sub-range of a pool's
// backing buffer, either reserved or free. next/prev are slot identities
// (indices into the owning arena), not pointers, so they remain valid
// across arena growth — the arena never relocates a live descriptor's
// identity, only the backing slice it lives in.
type region struct {
	size     uint64
	offset   uint64
	reserved bool
	next     int32
	prev     int32
}

const nilID int32 = -1

// arena is the node arena (C1): a contiguous, growable buffer of region
// descriptors addressed by stable slot identity. Slots are reused — a
// released slot is pushed onto freeList and handed back out by the next
// reserveSlot call.
type arena struct {
	slots     []region
	live      *bitset.BitSet
	freeList  []int32
	cfg       *Config
	capacity  int
	liveCount int
	nextFresh int32
}

func newArena(cfg *Config) *arena {
	capacity := int(cfg.ArenaInitialCapacity)
	if capacity <= 0 {
		capacity = 1
	}

	return &arena{
		slots:    make([]region, capacity),
		live:     bitset.New(uint(capacity)),
		capacity: capacity,
		cfg:      cfg,
	}
}

// ensureCapacityFor pre-flights room for n additional live descriptors,
// growing now if admitting them would exceed the load factor. Callers use
// this to fail an operation before any state is mutated, per the
// no-partial-growth rule.
func (a *arena) ensureCapacityFor(n int) error {
	for float64(a.liveCount+n)/float64(a.capacity) > a.cfg.LoadFactor {
		if err := a.grow(); err != nil {
			return err
		}
	}

	return nil
}

func (a *arena) grow() error {
	newCap := a.capacity * int(a.cfg.GrowthFactor)
	if newCap <= a.capacity {
		return fmt.Errorf("allocator: %w: node arena capacity overflow", ErrFail)
	}

	newSlots := make([]region, newCap)
	copy(newSlots, a.slots)
	a.slots = newSlots
	a.capacity = newCap

	return nil
}

// reserveSlot grows the arena if needed and returns a fresh or reused
// slot identity, marked live with a zeroed descriptor.
func (a *arena) reserveSlot() (int32, error) {
	if err := a.ensureCapacityFor(1); err != nil {
		return nilID, err
	}

	var id int32
	if n := len(a.freeList); n > 0 {
		id = a.freeList[n-1]
		a.freeList = a.freeList[:n-1]
	} else {
		if int(a.nextFresh) >= a.capacity {
			return nilID, fmt.Errorf("allocator: %w: node arena exhausted", ErrFail)
		}

		id = a.nextFresh
		a.nextFresh++
	}

	a.slots[id] = region{next: nilID, prev: nilID}
	a.live.Set(uint(id))
	a.liveCount++

	return id, nil
}

// releaseSlot marks id vacant and makes it available for reuse.
func (a *arena) releaseSlot(id int32) {
	a.live.Clear(uint(id))
	a.liveCount--
	a.freeList = append(a.freeList, id)
}

func (a *arena) get(id int32) *region {
	return &a.slots[id]
}

func (a *arena) isLive(id int32) bool {
	return a.live.Test(uint(id))
}
