package descriptor

// Fields carries the extra metadata of an attribute or operation, the way a
// management console expects it.
type Fields map[string]any

// Well known field names.
const (
	FieldDisplayName    = "displayName"
	FieldEnabled        = "enabled"
	FieldVisibility     = "visibility"
	FieldRole           = "role"
	FieldGetMethod      = "getMethod"
	FieldSetMethod      = "setMethod"
	FieldUnits          = "units"
	FieldMetricCategory = "metricCategory"
	FieldMetricType     = "metricType"
)

// VisibilityAccessor is the visibility given to operations that are property accessors.
const VisibilityAccessor = 4

// Role tells plain operations from property accessors.
type Role string

const (
	RoleOperation Role = "operation"
	RoleGetter    Role = "getter"
	RoleSetter    Role = "setter"
)

// String returns the value of a string field, or "".
func (f Fields) String(key string) string {
	s, _ := f[key].(string)
	return s
}

// Clone returns a shallow copy.
func (f Fields) Clone() Fields {
	c := make(Fields, len(f))
	for k, v := range f {
		c[k] = v
	}
	return c
}
