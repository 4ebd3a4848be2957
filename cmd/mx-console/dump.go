package main

import (
	"io"
	"reflect"

	"github.com/anoideaopen/mx/core/descriptor"
	"github.com/davecgh/go-spew/spew"
)

// resourceDump is the printable form of a descriptor, free of reflection handles.
type resourceDump struct {
	Type        string
	Description string
	Attributes  []attributeDump
	Operations  []operationDump
}

type attributeDump struct {
	Name        string
	Type        string
	Access      string
	Description string
	Fields      descriptor.Fields
}

type parameterDump struct {
	Name        string
	Type        string
	Description string
}

type operationDump struct {
	Signature   string
	Role        string
	Description string
	Params      []parameterDump
	Results     []string
	Fields      descriptor.Fields
}

func newResourceDump(d *descriptor.Descriptor) resourceDump {
	out := resourceDump{Type: d.TypeName(), Description: d.Description()}

	for _, a := range d.Attributes() {
		out.Attributes = append(out.Attributes, attributeDump{
			Name:        a.Name,
			Type:        typeName(a.Type),
			Access:      a.Access.String(),
			Description: a.Description,
			Fields:      a.Fields,
		})
	}

	for _, o := range d.Operations() {
		op := operationDump{
			Signature:   string(o.Signature),
			Role:        string(o.Role),
			Description: o.Description,
			Fields:      o.Fields,
		}
		for _, p := range o.Params {
			op.Params = append(op.Params, parameterDump{Name: p.Name, Type: typeName(p.Type), Description: p.Description})
		}
		for _, r := range o.Results {
			op.Results = append(op.Results, typeName(r))
		}
		out.Operations = append(out.Operations, op)
	}

	return out
}

func dump(w io.Writer, d *descriptor.Descriptor) {
	cfg := spew.ConfigState{
		Indent:                  "  ",
		DisableMethods:          true,
		DisablePointerAddresses: true,
		DisableCapacities:       true,
		SortKeys:                true,
	}
	cfg.Fdump(w, newResourceDump(d))
}

func typeName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	return t.String()
}
