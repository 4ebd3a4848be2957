// Package introspect collects the manageable members of a type: exported fields,
// exported methods and the properties formed by Get/Is/Set accessor methods.
//
// Results are computed once per reflect.Type and cached for the process lifetime.
// Properties are handed out as copies, so callers may demote them freely.
package introspect
