package allocator

import "testing"

func TestArenaReserveReusesReleasedSlots(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ArenaInitialCapacity = 4

	a := newArena(cfg)

	first, err := a.reserveSlot()
	if err != nil {
		t.Fatalf("reserveSlot: %v", err)
	}

	a.releaseSlot(first)

	if a.isLive(first) {
		t.Fatal("released slot should not be live")
	}

	second, err := a.reserveSlot()
	if err != nil {
		t.Fatalf("reserveSlot: %v", err)
	}

	if second != first {
		t.Fatalf("expected the released slot %d to be reused, got %d", first, second)
	}

	if !a.isLive(second) {
		t.Fatal("reused slot should be live")
	}
}

func TestArenaGrowsUnderLoadFactor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ArenaInitialCapacity = 2
	cfg.LoadFactor = 0.75
	cfg.GrowthFactor = 2

	a := newArena(cfg)

	ids := make([]int32, 0, 8)

	for i := 0; i < 8; i++ {
		id, err := a.reserveSlot()
		if err != nil {
			t.Fatalf("reserveSlot %d: %v", i, err)
		}

		ids = append(ids, id)
	}

	if a.capacity < 8 {
		t.Fatalf("expected arena to have grown to hold 8 live slots, capacity=%d", a.capacity)
	}

	for _, id := range ids {
		if !a.isLive(id) {
			t.Fatalf("slot %d should still be live after growth", id)
		}
	}
}

func TestArenaIdentityStableAcrossGrowth(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ArenaInitialCapacity = 1
	cfg.LoadFactor = 0.75
	cfg.GrowthFactor = 2

	a := newArena(cfg)

	id, err := a.reserveSlot()
	if err != nil {
		t.Fatalf("reserveSlot: %v", err)
	}

	a.get(id).size = 42

	for i := 0; i < 16; i++ {
		if _, err := a.reserveSlot(); err != nil {
			t.Fatalf("reserveSlot %d: %v", i, err)
		}
	}

	if got := a.get(id).size; got != 42 {
		t.Fatalf("descriptor identity %d did not survive growth: size=%d, want 42", id, got)
	}
}
