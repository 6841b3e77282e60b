// Command suballoc-bench drives a single pool through a synthetic
// allocate/free workload and prints its final bookkeeping state. It is a
// thin external collaborator, not part of the library: everything it
// does is reachable through the exported allocator API.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/suballoc/suballoc/internal/allocator"
)

func main() {
	var (
		poolSize   uint64
		ops        int
		minAlloc   uint64
		maxAlloc   uint64
		policyName string
		seed       int64
	)

	flag.Uint64Var(&poolSize, "pool-size", 1<<20, "backing buffer size in bytes")
	flag.IntVar(&ops, "ops", 1000, "number of allocate/free operations to issue")
	flag.Uint64Var(&minAlloc, "min-alloc", 16, "minimum allocation size in bytes")
	flag.Uint64Var(&maxAlloc, "max-alloc", 4096, "maximum allocation size in bytes")
	flag.StringVar(&policyName, "policy", "best-fit", "placement policy: best-fit|first-fit")
	flag.Int64Var(&seed, "seed", 1, "random seed")
	flag.Parse()

	policy, err := parsePolicy(policyName)
	if err != nil {
		fatal(err)
	}

	registry := allocator.NewRegistry()
	defer registry.Shutdown()

	pool, err := registry.Open(poolSize, policy)
	if err != nil {
		fatal(fmt.Errorf("open pool: %w", err))
	}

	rng := rand.New(rand.NewSource(seed))
	live := make([]allocator.AllocHandle, 0, ops)

	var (
		allocated, failed, freed int
	)

	for i := 0; i < ops; i++ {
		if len(live) > 0 && rng.Intn(2) == 0 {
			idx := rng.Intn(len(live))
			h := live[idx]
			live[idx] = live[len(live)-1]
			live = live[:len(live)-1]

			if err := pool.Free(h); err != nil {
				fatal(fmt.Errorf("free: %w", err))
			}

			freed++

			continue
		}

		size := minAlloc
		if maxAlloc > minAlloc {
			size += uint64(rng.Int63n(int64(maxAlloc - minAlloc + 1)))
		}

		h, err := pool.Allocate(size)
		if err != nil {
			failed++

			continue
		}

		live = append(live, h)
		allocated++
	}

	fmt.Printf("policy:      %s\n", pool.Policy())
	fmt.Printf("pool size:   %d bytes\n", pool.TotalSize())
	fmt.Printf("allocated:   %d (alloc_size=%d bytes)\n", allocated, pool.AllocSize())
	fmt.Printf("freed:       %d\n", freed)
	fmt.Printf("failed:      %d (no free region large enough)\n", failed)
	fmt.Printf("live allocs: %d\n", pool.NumAllocs())
	fmt.Printf("free gaps:   %d\n", pool.NumGaps())

	for _, h := range live {
		if err := pool.Free(h); err != nil {
			fatal(fmt.Errorf("final free: %w", err))
		}
	}

	if err := registry.Close(pool); err != nil {
		fatal(fmt.Errorf("close pool: %w", err))
	}
}

func parsePolicy(name string) (allocator.PlacementPolicy, error) {
	switch name {
	case "best-fit":
		return allocator.BestFit, nil
	case "first-fit":
		return allocator.FirstFit, nil
	default:
		return 0, fmt.Errorf("unknown policy %q", name)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "suballoc-bench: %v\n", err)
	os.Exit(1)
}
