package allocator

// PlacementPolicy selects the rule the placement engine (C4) uses to
// choose a free region for an allocation request.
type PlacementPolicy int

const (
	// BestFit chooses the smallest free region that is still large enough,
	// scanning the gap index (which is sorted by size descending).
	BestFit PlacementPolicy = iota

	// FirstFit chooses the first free region encountered while walking the
	// region list in address order.
	FirstFit
)

// String implements fmt.Stringer for diagnostics and the CLI driver.
func (p PlacementPolicy) String() string {
	switch p {
	case BestFit:
		return "best-fit"
	case FirstFit:
		return "first-fit"
	default:
		return "unknown-policy"
	}
}
