package httpmetrics

import "strings"

// normalizePath collapses numeric path segments so per-resource URLs do not
// explode label cardinality ("/api/devices/42" -> "/api/devices/{id}").
func normalizePath(path string) string {
	segments := strings.Split(path, "/")
	changed := false

	for i, s := range segments {
		if s != "" && isNumeric(s) {
			segments[i] = "{id}"
			changed = true
		}
	}

	if !changed {
		return path
	}
	return strings.Join(segments, "/")
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
