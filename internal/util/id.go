// Package util provides identifier and time helpers shared by the
// repositories, services and views.
package util

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// IDGenerator produces time-ordered UUIDv7 strings. IDs created within the
// same millisecond are ordered by a counter.
type IDGenerator struct {
	mu       sync.Mutex
	lastTime int64
	counter  uint16
}

// NewIDGenerator creates a new ID generator.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

// NewID returns the next identifier.
func (g *IDGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now().UnixMilli()
	switch {
	case now > g.lastTime:
		g.lastTime = now
		g.counter = 0
	case g.counter == 0x0FFF:
		// counter exhausted, borrow the next millisecond
		g.lastTime++
		g.counter = 0
	default:
		g.counter++
	}

	return uuidV7(g.lastTime, g.counter)
}

var defaultGenerator = NewIDGenerator()

// NewID returns a time-ordered identifier from the shared generator.
func NewID() string {
	return defaultGenerator.NewID()
}

// PrefixedID returns prefix + "-" + NewID(), used where the kind of record
// should be visible in the identifier.
func PrefixedID(prefix string) string {
	return prefix + "-" + NewID()
}

func uuidV7(unixMilli int64, counter uint16) string {
	var id uuid.UUID

	binary.BigEndian.PutUint32(id[0:4], uint32(unixMilli>>16))
	binary.BigEndian.PutUint16(id[4:6], uint16(unixMilli))
	id[6] = 0x70 | byte(counter>>8)&0x0F
	id[7] = byte(counter)

	rand.Read(id[8:])
	id[8] = id[8]&0x3F | 0x80

	return id.String()
}

// IsValidID checks if a string is a valid UUID, with or without a prefix
// added by PrefixedID.
func IsValidID(s string) bool {
	if len(s) > 36 {
		s = s[len(s)-36:]
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// ParseID validates and normalizes a UUID string.
func ParseID(s string) (string, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid ID format: %w", err)
	}
	return id.String(), nil
}
