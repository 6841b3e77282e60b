// Package allocator implements a user-space suballocator: given a
// contiguous backing buffer obtained from the underlying system, it
// services fine-grained allocate/free requests within it.
//
// The package is organized around the five bookkeeping structures a pool
// manager owns: a node arena (arena.go), a positional region list
// (region.go), a size-ordered gap index (gapindex.go), a placement engine
// that splits free regions on allocate (placement.go), and a coalescing
// engine that merges free neighbors on free (coalesce.go). A Registry
// (registry.go) owns the process-wide collection of open pools.
//
// The core is single-owner: none of its types synchronize internally.
// Callers that share a Pool or Registry across goroutines must add their
// own mutual exclusion.
package allocator
