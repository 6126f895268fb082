package model

import "strings"

// ParseMultiValue decodes the bracketed, comma separated encoding used by
// multi-value columns ("{GCU,SVU}") into an ordered slice.  Surrounding
// braces are stripped and double quotes around individual elements are
// removed.  Empty input and "{}" both yield an empty, non-nil slice.
func ParseMultiValue(s string) []string {
	inner := strings.Trim(strings.TrimSpace(s), "{}")
	if inner == "" {
		return []string{}
	}
	parts := strings.Split(inner, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.Trim(p, `"`))
	}
	return out
}

// FormatMultiValue is the inverse of ParseMultiValue for elements that
// contain no commas, braces or quotes.
func FormatMultiValue(values []string) string {
	return "{" + strings.Join(values, ",") + "}"
}

// MultiValue converts a raw column value into a string slice.  The
// driver hands back text for enum arrays it does not know, but a decoded
// list for registered array types; both shapes are accepted.  NULL (nil)
// yields an empty slice.
func MultiValue(v any) []string {
	switch t := v.(type) {
	case nil:
		return []string{}
	case string:
		return ParseMultiValue(t)
	case []byte:
		return ParseMultiValue(string(t))
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	case []any:
		out := make([]string, 0, len(t))
		for _, x := range t {
			if x == nil {
				continue
			}
			out = append(out, Text(x))
		}
		return out
	}
	return ParseMultiValue(Text(v))
}
