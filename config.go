package acmatch

// Config controls the byte-level acceleration of an automaton.
//
// None of these options change which matches are reported or in which order;
// they only decide how much of the input the traversal engine can skip.
// Acceleration applies to automata whose element type is byte when the input
// is supplied as Bytes. Every other combination uses plain traversal.
//
// Example:
//
//	config := acmatch.DefaultConfig()
//	config.RejectMinLen = 1 << 20 // only pre-check inputs of 1 MiB or more
//	ac, err := acmatch.NewWithConfig[byte, acmatch.String](config)
type Config struct {
	// EnablePrefilter enables the start-byte prefilter. While the automaton
	// sits in its root state, traversal jumps straight to the next byte that
	// begins at least one pattern.
	// Default: true
	EnablePrefilter bool

	// EnableRejectFilter enables a whole-range pre-check. Before traversal,
	// ranges of at least RejectMinLen bytes are tested for any pattern
	// occurrence, and ranges without one return immediately.
	// Default: true
	EnableRejectFilter bool

	// RejectMinLen is the smallest range length the reject filter runs on.
	// Shorter ranges are cheaper to traverse than to pre-check.
	// Default: 65536
	RejectMinLen int
}

// DefaultConfig returns the configuration used by New.
func DefaultConfig() Config {
	return Config{
		EnablePrefilter:    true,
		EnableRejectFilter: true,
		RejectMinLen:       64 * 1024,
	}
}

// Validate checks if the configuration is valid.
//
// Valid ranges:
//   - RejectMinLen: 1 to 1<<30 (only checked when EnableRejectFilter is set)
func (c Config) Validate() error {
	if c.EnableRejectFilter {
		if c.RejectMinLen < 1 || c.RejectMinLen > 1<<30 {
			return &ConfigError{
				Field:   "RejectMinLen",
				Message: "must be between 1 and 1073741824",
			}
		}
	}
	return nil
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "acmatch: invalid config: " + e.Field + ": " + e.Message
}
