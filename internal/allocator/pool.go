package allocator

import "fmt"

// Pool is a pool manager: a backing buffer, total size, and placement
// policy, plus the running counters and bookkeeping structures (C1–C3)
// that track which sub-ranges are free versus reserved. A Pool is itself
// the opaque pool handle: its record fields are
// reached only through the accessor methods below, never directly.
//
// Pool carries no internal synchronization; see the package doc comment.
type Pool struct {
	backing []byte
	arena   *arena
	gaps    *gapIndex

	policy    PlacementPolicy
	totalSize uint64
	allocSize uint64
	numAllocs uint64
	numGaps   uint64

	head, tail int32

	registryIndex int
}

// newPool builds a pool manager over an already-acquired backing buffer,
// with a single free region spanning the whole pool.
func newPool(backing []byte, size uint64, policy PlacementPolicy, cfg *Config) (*Pool, error) {
	p := &Pool{
		backing:   backing,
		arena:     newArena(cfg),
		gaps:      newGapIndex(cfg),
		policy:    policy,
		totalSize: size,
	}

	rootID, err := p.arena.reserveSlot()
	if err != nil {
		return nil, fmt.Errorf("allocator: %w: could not seed pool", err)
	}

	root := p.arena.get(rootID)
	root.size = size
	root.offset = 0
	root.reserved = false

	p.head = rootID
	p.tail = rootID

	if err := p.gaps.insert(size, rootID); err != nil {
		return nil, fmt.Errorf("allocator: %w: could not seed gap index", err)
	}

	p.numGaps = 1

	return p, nil
}

// Policy returns the pool's placement policy.
func (p *Pool) Policy() PlacementPolicy { return p.policy }

// TotalSize returns the pool's total byte size.
func (p *Pool) TotalSize() uint64 { return p.totalSize }

// AllocSize returns the sum of bytes in currently reserved regions.
func (p *Pool) AllocSize() uint64 { return p.allocSize }

// NumAllocs returns the number of currently reserved regions.
func (p *Pool) NumAllocs() uint64 { return p.numAllocs }

// NumGaps returns the number of currently free regions.
func (p *Pool) NumGaps() uint64 { return p.numGaps }
