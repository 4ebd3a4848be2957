package descriptor

import (
	"fmt"
	"strings"
)

// Access is the read/write capability of an attribute.
type Access uint8

const (
	AccessRead  Access = 1 << iota // Readable
	AccessWrite                    // Writable
)

const (
	AccessNone      Access = 0
	AccessReadOnly         = AccessRead
	AccessWriteOnly        = AccessWrite
	AccessReadWrite        = AccessRead | AccessWrite
)

// CanRead returns true if the access allows reading.
func (a Access) CanRead() bool {
	return a&AccessRead != 0
}

// CanWrite returns true if the access allows writing.
func (a Access) CanWrite() bool {
	return a&AccessWrite != 0
}

func (a Access) String() string {
	switch a {
	case AccessNone:
		return "none"
	case AccessReadOnly:
		return "ro"
	case AccessWriteOnly:
		return "wo"
	case AccessReadWrite:
		return "rw"
	default:
		return fmt.Sprintf("Access(%d)", uint8(a))
	}
}

// ParseAccess parses ro, wo, rw or none, ignoring case.
func ParseAccess(s string) (Access, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return AccessNone, nil
	case "ro", "read", "readonly":
		return AccessReadOnly, nil
	case "wo", "write", "writeonly":
		return AccessWriteOnly, nil
	case "rw", "readwrite":
		return AccessReadWrite, nil
	default:
		return AccessNone, fmt.Errorf("%w: '%s'", ErrUnknownAccess, s)
	}
}
