package allocator

import "sort"

// gapEntry is one (size, descriptor identity) pair in the gap index.
type gapEntry struct {
	size uint64
	id   int32
}

// gapIndex is the gap index (C3): a dense array covering exactly the
// free regions of a pool, kept sorted by size descending with a stable
// tie-break on descriptor identity. Position 0 is always the largest
// free region.
type gapIndex struct {
	entries  []gapEntry
	cfg      *Config
	capacity int
	count    int
}

func newGapIndex(cfg *Config) *gapIndex {
	capacity := int(cfg.GapIndexInitialCapacity)
	if capacity <= 0 {
		capacity = 1
	}

	return &gapIndex{
		entries:  make([]gapEntry, capacity),
		capacity: capacity,
		cfg:      cfg,
	}
}

// ensureCapacityFor pre-flights room for n additional entries, growing
// now rather than failing mid-insert.
func (g *gapIndex) ensureCapacityFor(n int) error {
	for float64(g.count+n)/float64(g.capacity) > g.cfg.LoadFactor {
		if err := g.grow(); err != nil {
			return err
		}
	}

	return nil
}

func (g *gapIndex) grow() error {
	newCap := g.capacity * int(g.cfg.GrowthFactor)
	if newCap <= g.capacity {
		return ErrFail
	}

	newEntries := make([]gapEntry, newCap)
	copy(newEntries, g.entries[:g.count])
	g.entries = newEntries
	g.capacity = newCap

	return nil
}

// insert grows if needed, appends the entry, and restores sort order.
// Callers are expected to have called ensureCapacityFor beforehand as
// part of a larger atomic operation; insert grows defensively anyway so
// it is safe to call on its own.
func (g *gapIndex) insert(size uint64, id int32) error {
	if err := g.ensureCapacityFor(1); err != nil {
		return err
	}

	g.entries[g.count] = gapEntry{size: size, id: id}
	g.count++
	g.sort()

	return nil
}

// remove finds the entry for id by linear scan, swaps it with the last
// logical entry, shrinks the count, and restores sort order. Returns
// ErrNotFound if id is not present.
func (g *gapIndex) remove(id int32) error {
	pos := -1

	for i := 0; i < g.count; i++ {
		if g.entries[i].id == id {
			pos = i

			break
		}
	}

	if pos == -1 {
		return ErrNotFound
	}

	last := g.count - 1
	g.entries[pos] = g.entries[last]
	g.entries[last] = gapEntry{}
	g.count--
	g.sort()

	return nil
}

// sort restores the size-descending, identity-ascending order required
// after every mutation. Any stable sort satisfies the contract; this uses
// the standard library's.
func (g *gapIndex) sort() {
	entries := g.entries[:g.count]
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].size != entries[j].size {
			return entries[i].size > entries[j].size
		}

		return entries[i].id < entries[j].id
	})
}

// largest returns the entry at position 0, the biggest free region, or
// ok=false if the index is empty.
func (g *gapIndex) largest() (gapEntry, bool) {
	if g.count == 0 {
		return gapEntry{}, false
	}

	return g.entries[0], true
}

// bestFit scans the size-descending index for the smallest free region
// whose size is at least want, returning its gap entry. Because the
// index is sorted descending, the qualifying entries form a prefix; the
// smallest sufficient one is the last entry in that prefix.
func (g *gapIndex) bestFit(want uint64) (gapEntry, bool) {
	best := -1

	for i := 0; i < g.count; i++ {
		if g.entries[i].size < want {
			break
		}

		best = i

		if g.entries[i].size == want {
			break
		}
	}

	if best == -1 {
		return gapEntry{}, false
	}

	return g.entries[best], true
}
