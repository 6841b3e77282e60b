package allocator

// Config holds the package's configuration constants. None of these
// are runtime-adjustable once a Registry or Pool has been built from a
// Config; they are fixed at construction time via Option values,
// matching the Option/Config pattern used throughout the rest of the
// suballoc ambient stack.
type Config struct {
	// RegistryInitialCapacity is the number of pool slots the registry
	// allocates on first Init. Default 20.
	RegistryInitialCapacity uint32

	// ArenaInitialCapacity is the number of descriptor slots a new pool's
	// node arena starts with. Default 40.
	ArenaInitialCapacity uint32

	// GapIndexInitialCapacity is the number of entries a new pool's gap
	// index starts with. Default 40.
	GapIndexInitialCapacity uint32

	// LoadFactor is the live/capacity ratio that triggers doubling of the
	// registry, arena, or gap index, each measured independently. Default
	// 0.75.
	LoadFactor float64

	// GrowthFactor is the multiplier applied to capacity when the load
	// factor is exceeded. Default 2.
	GrowthFactor uint32
}

// Option mutates a Config. Options are applied in order over
// DefaultConfig's result.
type Option func(*Config)

// DefaultConfig returns the package's default configuration constants.
func DefaultConfig() *Config {
	return &Config{
		RegistryInitialCapacity: 20,
		ArenaInitialCapacity:    40,
		GapIndexInitialCapacity: 40,
		LoadFactor:              0.75,
		GrowthFactor:            2,
	}
}

func buildConfig(opts ...Option) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// WithRegistryInitialCapacity overrides the registry's initial slot count.
func WithRegistryInitialCapacity(n uint32) Option {
	return func(c *Config) { c.RegistryInitialCapacity = n }
}

// WithArenaInitialCapacity overrides a pool's initial node-arena capacity.
func WithArenaInitialCapacity(n uint32) Option {
	return func(c *Config) { c.ArenaInitialCapacity = n }
}

// WithGapIndexInitialCapacity overrides a pool's initial gap-index capacity.
func WithGapIndexInitialCapacity(n uint32) Option {
	return func(c *Config) { c.GapIndexInitialCapacity = n }
}

// WithLoadFactor overrides the load factor that triggers growth.
func WithLoadFactor(f float64) Option {
	return func(c *Config) { c.LoadFactor = f }
}

// WithGrowthFactor overrides the capacity-doubling multiplier.
func WithGrowthFactor(n uint32) Option {
	return func(c *Config) { c.GrowthFactor = n }
}
