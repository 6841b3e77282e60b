package allocator

import "fmt"

// AllocHandle refers to one reserved region of a specific Pool. It is
// opaque: callers reach its client-visible memory and size only through
// Bytes and Size, never through its fields directly.
type AllocHandle struct {
	pool *Pool
	id   int32
}

// Bytes returns the client-visible sub-slice of the pool's backing
// buffer that this allocation reserves.
func (h AllocHandle) Bytes() []byte {
	node := h.pool.arena.get(h.id)

	return h.pool.backing[node.offset : node.offset+node.size]
}

// Size returns the number of bytes this allocation reserves.
func (h AllocHandle) Size() uint64 {
	return h.pool.arena.get(h.id).size
}

// Allocate is the placement engine (C4). It selects a free region under
// the pool's policy, splits it, and returns a handle to the reserved
// prefix. size must be positive; zero-byte allocation is rejected.
//
// On any failure, Allocate returns a zero AllocHandle and an error; the
// pool's state is left exactly as it was before the call.
func (p *Pool) Allocate(size uint64) (AllocHandle, error) {
	if size == 0 {
		return AllocHandle{}, fmt.Errorf("allocator: %w: zero-byte allocation is undefined", ErrFail)
	}

	if p.gaps.count == 0 {
		return AllocHandle{}, fmt.Errorf("allocator: %w", ErrNoSpace)
	}

	// Pre-flight both structures that might need to grow to admit a
	// remainder region, before mutating anything.
	if err := p.arena.ensureCapacityFor(1); err != nil {
		return AllocHandle{}, fmt.Errorf("allocator: %w", err)
	}

	if err := p.gaps.ensureCapacityFor(1); err != nil {
		return AllocHandle{}, fmt.Errorf("allocator: %w", err)
	}

	gapID, gapSize, ok := p.selectFreeRegion(size)
	if !ok {
		return AllocHandle{}, fmt.Errorf("allocator: %w", ErrNoSpace)
	}

	if err := p.gaps.remove(gapID); err != nil {
		return AllocHandle{}, fmt.Errorf("allocator: %w", err)
	}

	chosen := p.arena.get(gapID)
	chosen.reserved = true
	chosen.size = size

	remainder := gapSize - size
	if remainder > 0 {
		if err := p.splitOffRemainder(gapID, remainder); err != nil {
			return AllocHandle{}, fmt.Errorf("allocator: %w", err)
		}
	}

	p.numAllocs++
	p.allocSize += size
	p.numGaps = uint64(p.gaps.count)

	return AllocHandle{pool: p, id: gapID}, nil
}

// selectFreeRegion implements the two placement policies: best-fit via
// the gap index, first-fit via an address-ordered list walk.
func (p *Pool) selectFreeRegion(size uint64) (id int32, regionSize uint64, ok bool) {
	switch p.policy {
	case FirstFit:
		return p.firstFit(size)
	default:
		entry, found := p.gaps.bestFit(size)
		if !found {
			return nilID, 0, false
		}

		return entry.id, entry.size, true
	}
}

// firstFit walks the region list in address order — the only
// address-ordered traversal, per the design's resolution of the source's
// arena-slot-order ambiguity — and returns the first free region large
// enough.
func (p *Pool) firstFit(size uint64) (id int32, regionSize uint64, ok bool) {
	for cur := p.head; cur != nilID; {
		node := p.arena.get(cur)
		if !node.reserved && node.size >= size {
			return cur, node.size, true
		}

		cur = node.next
	}

	return nilID, 0, false
}

// splitOffRemainder acquires a fresh descriptor for the bytes left over
// after reserving gapID's prefix, splices it into the region list right
// after gapID, and adds it to the gap index.
func (p *Pool) splitOffRemainder(gapID int32, remainder uint64) error {
	reservedNode := p.arena.get(gapID)

	remID, err := p.arena.reserveSlot()
	if err != nil {
		return err
	}

	rem := p.arena.get(remID)
	rem.size = remainder
	rem.offset = reservedNode.offset + reservedNode.size
	rem.reserved = false

	p.insertAfter(gapID, remID)

	if err := p.gaps.insert(remainder, remID); err != nil {
		p.unlink(remID)
		p.arena.releaseSlot(remID)

		return err
	}

	return nil
}
