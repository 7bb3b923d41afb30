// Package gameid generates sortable round identifiers.
//
// IDs are UUIDv7 values rendered as 26 lowercase Crockford base32 characters,
// so they sort by creation time and are safe to use as file names.
package gameid

import (
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/coder/quartz"
)

// Base32 alphabet used by TypeID (Crockford's base32)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the number of characters in an encoded ID
const Length = 26

// RandSource interface for dependency injection of randomness
type RandSource interface {
	IntN(n int) int
}

// Generator creates IDs from a clock and a source of randomness
type Generator struct {
	clock      quartz.Clock
	randSource RandSource
}

// NewGenerator creates a generator. A nil clock uses the real clock and a nil
// RandSource uses crypto/rand.
func NewGenerator(clock quartz.Clock, randSource RandSource) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Generator{clock: clock, randSource: randSource}
}

// Generate creates a new ID using the real clock and crypto/rand
func Generate() string {
	return NewGenerator(nil, nil).Generate()
}

// Generate creates a new ID
func (g *Generator) Generate() string {
	return encodeBase32(g.uuidV7())
}

func (g *Generator) uuidV7() [16]byte {
	var uuid [16]byte

	// 48-bit big-endian millisecond timestamp
	now := g.clock.Now().UnixMilli()
	for i := range 6 {
		uuid[i] = byte(now >> (40 - 8*i))
	}

	if g.randSource != nil {
		for i := 6; i < 16; i++ {
			uuid[i] = byte(g.randSource.IntN(256))
		}
	} else if _, err := rand.Read(uuid[6:]); err != nil {
		panic("failed to generate random bytes: " + err.Error())
	}

	uuid[6] = (uuid[6] & 0x0f) | 0x70 // version 7
	uuid[8] = (uuid[8] & 0x3f) | 0x80 // variant 10

	return uuid
}

// encodeBase32 renders 128 bits as 26 characters, padding with two leading
// zero bits so the first character is always 0-7.
func encodeBase32(data [16]byte) string {
	out := make([]byte, 0, Length)
	var acc uint32
	bits := 2
	for _, b := range data {
		acc = acc<<8 | uint32(b)
		bits += 8
		for bits >= 5 {
			bits -= 5
			out = append(out, alphabet[(acc>>bits)&0x1f])
		}
	}
	return string(out)
}

// Validate checks if an ID is valid (26 characters, valid base32)
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("round ID must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("round ID first character must be 0-7, got %c", id[0])
	}
	for i, char := range id {
		if !strings.ContainsRune(alphabet, char) {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}
	return nil
}
