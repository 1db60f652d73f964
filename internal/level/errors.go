package level

import (
	"errors"
	"fmt"
)

// Sentinel causes wrapped by LoadError.
var (
	ErrNotFound    = errors.New("level not found")
	ErrMalformed   = errors.New("malformed level data")
	ErrUnreachable = errors.New("level source unreachable")
)

// LoadError reports level data that is missing, unreachable or malformed.
// A session cannot start from a source that returned a LoadError.
type LoadError struct {
	Source  string // file, directory or pack name
	LevelID int    // 0 when the failure is not tied to a level
	Err     error
}

func (e *LoadError) Error() string {
	switch {
	case e.Source != "" && e.LevelID != 0:
		return fmt.Sprintf("level %d (%s): %v", e.LevelID, e.Source, e.Err)
	case e.Source != "":
		return fmt.Sprintf("level source %s: %v", e.Source, e.Err)
	case e.LevelID != 0:
		return fmt.Sprintf("level %d: %v", e.LevelID, e.Err)
	default:
		return fmt.Sprintf("level: %v", e.Err)
	}
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// malformed builds a LoadError wrapping ErrMalformed with detail.
func malformed(source string, id int, format string, args ...any) *LoadError {
	return &LoadError{
		Source:  source,
		LevelID: id,
		Err:     fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...)),
	}
}
