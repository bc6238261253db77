package config

import "fmt"

// ConfigurationError reports a missing or malformed setting. It is fatal.
type ConfigurationError struct {
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Key, e.Reason)
}
