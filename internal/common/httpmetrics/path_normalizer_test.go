package httpmetrics

import "testing"

func TestNormalizePath(t *testing.T) {
	testCases := []struct {
		path string
		want string
	}{
		{"/api/devices", "/api/devices"},
		{"/api/devices/42", "/api/devices/{id}"},
		{"/api/devices/42/extra", "/api/devices/{id}/extra"},
		{"/api/user", "/api/user"},
		{"/health", "/health"},
		{"/", "/"},
		{"/api/devices/LM-0001", "/api/devices/LM-0001"},
	}

	for _, tc := range testCases {
		if got := normalizePath(tc.path); got != tc.want {
			t.Errorf("normalizePath(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}
