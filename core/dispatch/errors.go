package dispatch

import "errors"

var (
	ErrValidation    = errors.New("validation failed")
	ErrTypeNotFound  = errors.New("type not found")
	ErrAmbiguousType = errors.New("ambiguous type name")
	ErrAmbiguous     = errors.New("ambiguous operation")
)
