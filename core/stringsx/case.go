package stringsx

import (
	"unicode"
	"unicode/utf8"
)

// LowerFirstChar returns s with its first rune converted to lower case.
// Property names are derived from accessor suffixes this way: GetMaxSize -> maxSize.
func LowerFirstChar(s string) string {
	if s == "" {
		return ""
	}

	first, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(first)) + s[size:]
}

// UpperFirstChar returns s with its first rune converted to upper case.
func UpperFirstChar(s string) string {
	if s == "" {
		return ""
	}

	first, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(first)) + s[size:]
}

// StartsUpper reports whether the first rune of s is an upper case letter.
func StartsUpper(s string) bool {
	first, _ := utf8.DecodeRuneInString(s)
	return first != utf8.RuneError && unicode.IsUpper(first)
}

// EqualFold1 compares two identifiers ignoring the case of their first rune only.
func EqualFold1(a, b string) bool {
	return LowerFirstChar(a) == LowerFirstChar(b)
}
