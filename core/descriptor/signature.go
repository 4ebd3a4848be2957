package descriptor

import (
	"reflect"
	"strings"

	"github.com/anoideaopen/mx/core/reflectx"
)

// Signature identifies an operation: its export name and parameter type names,
// rendered as name(t1, t2).
type Signature string

// NewSignature builds the signature of an operation taking the given types.
func NewSignature(name string, params ...reflect.Type) Signature {
	names := make([]string, len(params))
	for i, t := range params {
		names[i] = t.String()
	}
	return SignatureOf(name, names...)
}

// SignatureOf builds a signature from type names.
func SignatureOf(name string, typeNames ...string) Signature {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('(')
	b.WriteString(strings.Join(typeNames, ", "))
	b.WriteByte(')')
	return Signature(b.String())
}

// operationKey identifies an operation by name and parameter types, spelling
// each type by its package path. Two operations may share a Signature but never a key.
func operationKey(name string, params ...reflect.Type) string {
	names := make([]string, len(params))
	for i, t := range params {
		names[i] = reflectx.QualifiedName(t)
	}
	return string(SignatureOf(name, names...))
}

// Name returns the operation name part.
func (s Signature) Name() string {
	name, _, _ := strings.Cut(string(s), "(")
	return name
}
