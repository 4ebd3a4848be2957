package stringsx

import "strings"

// HasPrefix checks if the given string s has any prefix from the provided list of prefixes.
func HasPrefix(s string, prefixes ...string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

// TrimFirstPrefix removes the first matching non-empty prefix from s.
// It returns s unchanged when nothing matches.
func TrimFirstPrefix(s string, prefixes ...string) string {
	for _, prefix := range prefixes {
		if prefix == "" {
			continue
		}
		if strings.HasPrefix(s, prefix) {
			return s[len(prefix):]
		}
	}
	return s
}

// OneOf checks if s is present within ss.
func OneOf(s string, ss ...string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
