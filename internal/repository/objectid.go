package repository

import (
	"encoding/binary"
	"encoding/hex"
	"regexp"
	"time"

	"github.com/google/uuid"
)

var objectIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// NewObjectID returns a 24-hex identifier: four bytes of unix seconds followed
// by eight random bytes, so ids sort roughly by creation time.
func NewObjectID(now time.Time) string {
	var b [12]byte
	binary.BigEndian.PutUint32(b[:4], uint32(now.Unix()))
	r := uuid.New()
	copy(b[4:], r[:8])
	return hex.EncodeToString(b[:])
}

// IsObjectID reports whether id has the store's identifier shape.
func IsObjectID(id string) bool {
	return objectIDPattern.MatchString(id)
}
