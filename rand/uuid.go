package rand

import (
	"io"

	"github.com/relaywire/relay/internal/uuid"
)

// UUID provides a utility to get a version4 UUID at random.
type UUID struct {
	randSrc io.Reader
}

// NewUUID returns a new UUID value that will use the given reader as its
// source of random bytes.
func NewUUID(reader io.Reader) *UUID {
	return &UUID{randSrc: reader}
}

// GetUUID returns a new random UUID value that is version 4 and variant
// 2 (RFC 4122) compliant.
func (r *UUID) GetUUID() (string, error) {
	var b [16]byte
	if _, err := io.ReadFull(r.randSrc, b[:]); err != nil {
		return "", err
	}
	return uuid.Format(toUUIDV4(b)), nil
}

func toUUIDV4(u [16]byte) [16]byte {
	// Set version to 4 (random).
	u[6] = (u[6] & 0x0f) | 0x40
	// Set variant to RFC 4122.
	u[8] = (u[8] & 0x3f) | 0x80
	return u
}
