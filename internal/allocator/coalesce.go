package allocator

import "fmt"

// Free is the coalescing engine (C5). It validates that h refers to a
// live reserved region of this pool, flips it to free, and merges it
// with any adjacent free neighbors so that no two adjacent regions are
// ever both free.
//
// Free returns ErrFail if h does not correspond to a live reserved
// descriptor of this pool; in that case no state is mutated.
func (p *Pool) Free(h AllocHandle) error {
	if h.pool != p {
		return fmt.Errorf("allocator: %w: handle belongs to a different pool", ErrFail)
	}

	if !p.arena.isLive(h.id) {
		return fmt.Errorf("allocator: %w: handle refers to a vacant descriptor", ErrFail)
	}

	node := p.arena.get(h.id)
	if !node.reserved {
		return fmt.Errorf("allocator: %w: handle does not refer to a reserved region", ErrFail)
	}

	// Freeing this region can add at most one net entry to the gap index
	// (if neither neighbor is free to absorb it); pre-flight that growth
	// before mutating anything.
	if err := p.gaps.ensureCapacityFor(1); err != nil {
		return fmt.Errorf("allocator: %w", err)
	}

	node.reserved = false
	p.numAllocs--
	p.allocSize -= node.size

	result := h.id

	if node.next != nilID {
		next := p.arena.get(node.next)
		if !next.reserved {
			if err := p.gaps.remove(node.next); err != nil {
				return fmt.Errorf("allocator: %w", err)
			}

			node.size += next.size
			absorbed := node.next
			p.unlink(absorbed)
			p.arena.releaseSlot(absorbed)
		}
	}

	if node.prev != nilID {
		prev := p.arena.get(node.prev)
		if !prev.reserved {
			if err := p.gaps.remove(node.prev); err != nil {
				return fmt.Errorf("allocator: %w", err)
			}

			prev.size += node.size
			absorbed := result
			result = node.prev
			p.unlink(absorbed)
			p.arena.releaseSlot(absorbed)
		}
	}

	if err := p.gaps.insert(p.arena.get(result).size, result); err != nil {
		return fmt.Errorf("allocator: %w", err)
	}

	p.numGaps = uint64(p.gaps.count)

	return nil
}
