// Package marker reads the declarative metadata attached to managed types.
//
// A type opts in by embedding Bean. Fields are marked with an `mx` tag; methods,
// properties and method parameters are marked with blank fields of type Op, Prop
// and Param whose `on` tag names the member:
//
//	type Queue struct {
//	    marker.Bean `objectName:"app:type=Queue" description:"job queue"`
//
//	    Workers int `mx:"" description:"worker count" access:"rw"`
//
//	    _ marker.Op    `on:"Push" description:"enqueue a job"`
//	    _ marker.Param `on:"Push" index:"0" name:"job"`
//	    _ marker.Prop  `on:"depth" metric:"gauge" unit:"jobs"`
//	}
package marker

import (
	"errors"
	"reflect"
)

// Bean marks a struct type as described by markers. Tags: objectName, mx (object
// name shorthand), description, policy.
type Bean struct{}

// Op marks the method named by the `on` tag as an operation.
type Op struct{}

// Prop marks the property named by the `on` tag as an attribute.
type Prop struct{}

// Param describes parameter `index` of the method named by the `on` tag.
type Param struct{}

// Tag keys.
const (
	TagValue       = "mx"
	TagName        = "name"
	TagDescription = "description"
	TagAccess      = "access"
	TagOn          = "on"
	TagIndex       = "index"
	TagObjectName  = "objectName"
	TagPolicy      = "policy"
	TagMetric      = "metric"
	TagUnit        = "unit"
	TagCategory    = "category"
)

var ErrMalformedMarker = errors.New("malformed marker")

var (
	beanType  = reflect.TypeOf(Bean{})
	opType    = reflect.TypeOf(Op{})
	propType  = reflect.TypeOf(Prop{})
	paramType = reflect.TypeOf(Param{})
)

// IsMarkerType reports whether t is one of the marker types.
func IsMarkerType(t reflect.Type) bool {
	return t == beanType || t == opType || t == propType || t == paramType
}
