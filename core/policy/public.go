package policy

import (
	"reflect"

	"github.com/anoideaopen/mx/core/introspect"
	"github.com/anoideaopen/mx/core/stringsx"
)

// ObjectMembers are the methods nearly every type carries through fmt.Stringer,
// fmt.GoStringer and error.
var ObjectMembers = []string{"String", "GoString", "Error"}

// Public manages the whole exported surface of a type.
type Public struct {
	Skeleton

	// ExposeObjectMembers keeps ObjectMembers as operations and accessors.
	ExposeObjectMembers bool
}

// NewPublic returns a Public policy exposing object members.
func NewPublic() Public {
	return Public{ExposeObjectMembers: true}
}

func (p Public) IncludeField(_ reflect.Type, f introspect.Field) bool {
	return f.IsExported()
}

func (p Public) IncludeProperty(_ reflect.Type, prop *introspect.Property) bool {
	if read, ok := prop.ReadMethod(); ok && p.hidden(read.Name) {
		prop.ClearReadable()
	}
	if write, ok := prop.WriteMethod(); ok && p.hidden(write.Name) {
		prop.ClearWritable()
	}
	return prop.Readable() || prop.Writable()
}

func (p Public) IncludeMethod(_ reflect.Type, m introspect.Method) bool {
	return !p.hidden(m.Name)
}

func (p Public) hidden(method string) bool {
	return !p.ExposeObjectMembers && stringsx.OneOf(method, ObjectMembers...)
}
