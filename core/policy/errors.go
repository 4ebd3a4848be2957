package policy

import "errors"

var (
	ErrMemberNotFound   = errors.New("member not found")
	ErrUnknownPolicy    = errors.New("unknown policy")
	ErrMissingParameter = errors.New("missing parameter marker")
)
