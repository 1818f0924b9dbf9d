package sandbox

import (
	"github.com/google/uuid"
	"github.com/mr-tron/base58"
)

// NewHash returns a fresh "oo"-prefixed base58 hash for a standalone session.
func NewHash() string {
	a, b := uuid.New(), uuid.New()
	return "oo" + base58.Encode(append(a[:], b[:]...))
}
