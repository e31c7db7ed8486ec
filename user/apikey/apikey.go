// Package apikey issues the opaque keys programmatic clients authenticate
// with. Keys are rotated whenever the owning account's password changes so
// the two factors never go stale together.
package apikey

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/commercekit/account/internal"
)

// KeyLength is the number of random bytes in a key; keys are hex encoded
// so the stored value is twice this long.
const KeyLength = 24

// Rotator mints replacement API keys. Old keys are invalidated simply by
// being overwritten on the account record.
type Rotator interface {
	Regenerate() (string, error)
}

type rotator struct{}

func New() Rotator {
	return &rotator{}
}

func (r *rotator) Regenerate() (string, error) {
	buf := make([]byte, KeyLength)
	if _, err := rand.Read(buf); err != nil {
		return "", internal.WrapErrorf(err, internal.ErrorCodeInternal, "Failed to generate a new api key")
	}
	return hex.EncodeToString(buf), nil
}
