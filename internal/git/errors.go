package git

import "errors"

// ConfigError indicates a required branch or identity is missing.
// Unrecoverable without user intervention.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string { return e.Reason }

// ErrStashConflict indicates that restoring a stash produced conflicts.
// Callers must surface this for manual resolution, never auto-retry.
var ErrStashConflict = errors.New("stash pop produced conflicts")
