package export

import (
	"fmt"
	"strings"

	"github.com/anoideaopen/mx/core/config"
)

// Behavior decides what Register does when the name is already taken.
type Behavior int

const (
	// FailOnExisting returns ErrRegistrationConflict.
	FailOnExisting Behavior = iota
	// SkipExisting keeps the registered resource and reports success.
	SkipExisting
	// ReplaceExisting unregisters the registered resource first.
	ReplaceExisting
)

func (b Behavior) String() string {
	switch b {
	case FailOnExisting:
		return config.BehaviorFail
	case SkipExisting:
		return config.BehaviorSkip
	case ReplaceExisting:
		return config.BehaviorReplace
	default:
		return fmt.Sprintf("Behavior(%d)", int(b))
	}
}

// ParseBehavior parses fail, skip or replace.
func ParseBehavior(s string) (Behavior, error) {
	switch strings.ToLower(s) {
	case config.BehaviorFail:
		return FailOnExisting, nil
	case config.BehaviorSkip:
		return SkipExisting, nil
	case config.BehaviorReplace:
		return ReplaceExisting, nil
	default:
		return FailOnExisting, fmt.Errorf("%w: '%s'", config.ErrUnknownBehavior, s)
	}
}
