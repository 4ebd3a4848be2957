package naming

import (
	"encoding/binary"
	"reflect"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/google/uuid"
	"golang.org/x/crypto/sha3"
)

// IdentityKey is the key property appended to make a name unique.
const IdentityKey = "identity"

const identityLength = 12

// Identity returns a short token identifying v. Values with an address (pointers,
// maps, channels, functions, slices) get a token derived from that address, stable
// for the life of the value. Other values get a random token on every call.
func Identity(v any) string {
	var seed []byte

	rv := reflect.ValueOf(v)
	switch rv.Kind() { //nolint:exhaustive
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Slice, reflect.UnsafePointer:
		seed = binary.BigEndian.AppendUint64(nil, uint64(rv.Pointer()))
	default:
		id := uuid.New()
		seed = id[:]
	}

	sum := sha3.Sum256(seed)
	return base58.Encode(sum[:])[:identityLength]
}

// WithIdentity appends identity=Identity(v) to n.
func WithIdentity(n ObjectName, v any) (ObjectName, error) {
	return n.With(IdentityKey, Identity(v))
}
