// Package roundid generates sortable identifiers for blackjack rounds.
// IDs are UUIDv7 values in lower-case Crockford base32, so they sort by
// creation time and fit on one log line.
package roundid

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"

	"github.com/coder/quartz"
)

// Length is the size of an encoded round ID
const Length = 26

const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

var encoding = base32.NewEncoding(alphabet).WithPadding(base32.NoPadding)

// RandSource supplies the random bits of an ID
type RandSource interface {
	IntN(n int) int
}

// Generator creates round IDs from a clock and a random source
type Generator struct {
	clock quartz.Clock
	rand  RandSource
}

// NewGenerator creates a generator. A nil clock uses the real clock and a
// nil rand source uses crypto/rand.
func NewGenerator(clock quartz.Clock, rand RandSource) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Generator{clock: clock, rand: rand}
}

// Generate returns a fresh round ID
func Generate() string {
	return NewGenerator(nil, nil).Generate()
}

// Generate returns a fresh round ID
func (g *Generator) Generate() string {
	var id [16]byte

	ms := g.clock.Now("roundid").UnixMilli()
	for i := range 6 {
		id[i] = byte(ms >> (40 - 8*i))
	}

	if g.rand != nil {
		for i := 6; i < len(id); i++ {
			id[i] = byte(g.rand.IntN(256))
		}
	} else if _, err := rand.Read(id[6:]); err != nil {
		panic("roundid: failed to read random bytes: " + err.Error())
	}

	id[6] = (id[6] & 0x0f) | 0x70 // version 7
	id[8] = (id[8] & 0x3f) | 0x80 // RFC 4122 variant

	return encoding.EncodeToString(id[:])
}

// Validate checks that id is a well formed round ID
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("round ID must be exactly %d characters, got %d", Length, len(id))
	}
	if id != strings.ToLower(id) {
		return fmt.Errorf("round ID must be lower case: %s", id)
	}
	raw, err := encoding.DecodeString(id)
	if err != nil {
		return fmt.Errorf("invalid round ID %s: %w", id, err)
	}
	if raw[6]>>4 != 7 {
		return fmt.Errorf("round ID %s is not version 7", id)
	}
	return nil
}
