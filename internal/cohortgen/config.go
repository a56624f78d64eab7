package cohortgen

import "time"

// Config holds generator settings.
type Config struct {
	Wallets int   // number of wallets to generate
	Seed    int64 // PRNG seed; 0 draws a random seed
	Now     int64 // analysis end date for every wallet, epoch seconds
}

// Option configures a generator run.
type Option func(*Config)

// WithWallets sets the number of wallets.
func WithWallets(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.Wallets = n
		}
	}
}

// WithSeed makes the output reproducible.
func WithSeed(seed int64) Option {
	return func(c *Config) { c.Seed = seed }
}

// WithNow pins the analysis end date.
func WithNow(t time.Time) Option {
	return func(c *Config) {
		if !t.IsZero() {
			c.Now = t.Unix()
		}
	}
}

// NewConfig applies opts over the defaults: 100 wallets ending now.
func NewConfig(opts ...Option) Config {
	c := Config{Wallets: defaultWallets, Now: time.Now().Unix()}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Stats reports what a run produced.
type Stats struct {
	Generated int             `json:"generated"`
	Seed      int64           `json:"seed"`
	ByProfile map[Profile]int `json:"byProfile"`
}
