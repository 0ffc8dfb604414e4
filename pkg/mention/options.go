package mention

// Option configures Parse and ParseWith.
type Option func(*parseConfig)

type parseConfig struct {
	aliases  []Aliases
	allowed  []string
	restrict bool
	dedupe   bool
}

func newParseConfig(opts []Option) parseConfig {
	cfg := parseConfig{dedupe: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithAliases adds caller aliases on top of the default synonym table.
// The same table is used by the selectors of the resulting Result.
func WithAliases(aliases Aliases) Option {
	return func(c *parseConfig) {
		if len(aliases) > 0 {
			c.aliases = append(c.aliases, aliases)
		}
	}
}

// WithAllowedTypes restricts parsing to the given types, normalized with the
// same aliases as the payload. Calling it with no types accepts nothing.
func WithAllowedTypes(types ...string) Option {
	return func(c *parseConfig) {
		c.restrict = true
		c.allowed = append(c.allowed, types...)
	}
}

// WithDedupe toggles dropping repeated (type, id) pairs. Enabled by default;
// the first occurrence and its label win.
func WithDedupe(enabled bool) Option {
	return func(c *parseConfig) {
		c.dedupe = enabled
	}
}
