// Package policy provides the inclusion policies deciding which members of a type
// are managed:
//
//   - Public manages every exported field, property and method.
//   - Marker manages the members marked with package marker.
//   - AllowList manages an explicit list of members.
//   - Delegating picks one of the above per type from its bean marker.
package policy
