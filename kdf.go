package anonymask

import (
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

// Argon2Params configures Argon2id key derivation.
type Argon2Params struct {
	Time    uint32 // Number of iterations
	Memory  uint32 // Memory usage in KiB
	Threads uint8  // Parallelism factor
	KeyLen  uint32 // Output key length
	SaltLen uint32 // Salt length produced by NewSalt
}

// DefaultArgon2Params returns the OWASP-recommended Argon2id parameters
// with a 32-byte key, sized for AES-256 and XChaCha20.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Time:    1,
		Memory:  64 * 1024, // 64 MiB
		Threads: 4,
		KeyLen:  32,
		SaltLen: 16,
	}
}

// NewSalt returns a random salt of the default length. Store it next to the
// sealed mapping; it is not secret.
func NewSalt() ([]byte, error) {
	salt := make([]byte, DefaultArgon2Params().SaltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// DeriveKey stretches a passphrase into a 32-byte key with default parameters.
func DeriveKey(passphrase, salt []byte) ([]byte, error) {
	return DeriveKeyWithParams(passphrase, salt, DefaultArgon2Params())
}

// DeriveKeyWithParams stretches a passphrase into a key with custom parameters.
func DeriveKeyWithParams(passphrase, salt []byte, params Argon2Params) ([]byte, error) {
	if len(passphrase) == 0 {
		return nil, fmt.Errorf("%w: empty passphrase", ErrInvalidKeySize)
	}
	if len(salt) < 8 {
		return nil, fmt.Errorf("%w: salt must be at least 8 bytes, got %d", ErrInvalidKeySize, len(salt))
	}
	return argon2.IDKey(passphrase, salt, params.Time, params.Memory, params.Threads, params.KeyLen), nil
}
