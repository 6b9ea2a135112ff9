package svgo

import "fmt"

// ConfigError reports an unknown job name, unknown option key, or an
// option value outside its schema. Reported once before any work
// begins; no document is mutated (§7).
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string { return "svgo: config: " + e.Message }

// ParseError wraps an input that could not be tokenised as XML. No
// output is produced when this is returned.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("svgo: parse: %v", e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }
