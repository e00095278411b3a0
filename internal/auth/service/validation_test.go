package service

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateRegistration(t *testing.T) {
	testCases := []struct {
		name     string
		username string
		email    string
		password string
		wantErr  bool
	}{
		{"valid", "alice", "alice@example.com", "password123", false},
		{"valid with separators", "alice_smith-1", "alice@example.com", "password123", false},
		{"minimum lengths", "abc", "a@b.co", "12345678", false},
		{"username too short", "ab", "alice@example.com", "password123", true},
		{"username too long", strings.Repeat("a", 33), "alice@example.com", "password123", true},
		{"username leading dash", "-alice", "alice@example.com", "password123", true},
		{"username trailing underscore", "alice_", "alice@example.com", "password123", true},
		{"username with space", "a lice", "alice@example.com", "password123", true},
		{"email missing", "alice", "", "password123", true},
		{"email without domain", "alice", "alice@", "password123", true},
		{"password too short", "alice", "alice@example.com", "1234567", true},
		{"password too long", "alice", "alice@example.com", strings.Repeat("x", 129), true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateRegistration(tc.username, tc.email, tc.password)
			if tc.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Errorf("expected ErrValidation, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}
