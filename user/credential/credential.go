package credential

import "errors"

// SpecialCharacters is the fixed set a new password must draw at least
// one character from.
const SpecialCharacters = "!@#$%^&*"

// GeneratedLength is the length of generated high-entropy passwords
// (external-identity signups and scrambled credentials).
const GeneratedLength = 24

var (
	ErrPasswordTooShort = errors.New("Password is too short")
	ErrPasswordTooWeak  = errors.New("Password must contain a lowercase letter, an uppercase letter, a digit, and a special character")
)

// Service owns the password policy and the opaque credential encoding.
// Plaintext passwords never leave this boundary; everything else in the
// system only ever sees the encoded hash.
type Service interface {
	// ValidateNew checks a candidate password against the creation-time
	// policy. Every violated rule is reported, not just the first.
	// Stateless; never inspects previously set passwords.
	ValidateNew(password string) error
	// Hash derives an opaque encoded credential (hash + salt) from a plaintext password
	Hash(password string) (string, error)
	// Compare reports whether password matches the encoded credential
	Compare(password string, encoded string) error
	// Generate returns a random password that always satisfies ValidateNew
	Generate() (string, error)
}
