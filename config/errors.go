package config

import "errors"

// ErrInvalidConfig is returned when a configuration is missing a required
// field or holds an invalid value.
var ErrInvalidConfig = errors.New("config: invalid signature configuration")
