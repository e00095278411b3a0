package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// Stored credential format: "<derivedKeyHex>.<saltHex>". The salt is 16 random
// bytes, hex-encoded, generated fresh for every Hash call. The hex string
// itself is fed to the KDF as the salt, matching the records this service
// inherits from earlier deployments.
const (
	saltSize = 16
	keySize  = 64

	scryptN = 1 << 14
	scryptR = 8
	scryptP = 1
)

var (
	ErrPasswordMismatch    = errors.New("password mismatch")
	ErrMalformedStoredHash = errors.New("malformed stored hash")
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(storedHash string, password string) error
}

type ScryptHasher struct{}

func NewScryptHasher() *ScryptHasher {
	return &ScryptHasher{}
}

func (h *ScryptHasher) Hash(password string) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	saltHex := hex.EncodeToString(salt)
	key, err := scrypt.Key([]byte(password), []byte(saltHex), scryptN, scryptR, scryptP, keySize)
	if err != nil {
		return "", fmt.Errorf("failed to derive key: %w", err)
	}

	return hex.EncodeToString(key) + "." + saltHex, nil
}

// Compare re-derives the key with the stored salt and compares it to the
// stored key in constant time. A malformed stored hash is reported as
// ErrMalformedStoredHash, never a panic.
func (h *ScryptHasher) Compare(storedHash string, password string) error {
	keyHex, saltHex, found := strings.Cut(storedHash, ".")
	if !found || keyHex == "" || saltHex == "" {
		return ErrMalformedStoredHash
	}

	storedKey, err := hex.DecodeString(keyHex)
	if err != nil {
		return ErrMalformedStoredHash
	}

	derived, err := scrypt.Key([]byte(password), []byte(saltHex), scryptN, scryptR, scryptP, keySize)
	if err != nil {
		return fmt.Errorf("failed to derive key: %w", err)
	}

	// ConstantTimeCompare rejects length mismatches without inspecting
	// content, so truncated stored keys still fail safely.
	if subtle.ConstantTimeCompare(storedKey, derived) != 1 {
		return ErrPasswordMismatch
	}

	return nil
}
