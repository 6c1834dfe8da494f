// Package gameid generates sortable identifiers for finished games so log
// lines, exports and the live feed can refer to the same game.
package gameid

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// Base32 alphabet used by TypeID (Crockford's base32)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// encodedLen is the length of a 130-bit value in base32.
const encodedLen = 26

// Generator produces game IDs from a source of random bytes.
type Generator struct {
	rand io.Reader
}

// NewGenerator returns a generator reading randomness from r. A nil reader
// uses crypto/rand.
func NewGenerator(r io.Reader) *Generator {
	return &Generator{rand: r}
}

// Generate creates a new game ID using crypto/rand.
func Generate() string {
	return NewGenerator(nil).Generate()
}

// Generate creates a UUIDv7 and encodes it as a 26-character base32 string.
// IDs from one process sort in creation order.
func (g *Generator) Generate() string {
	var (
		id  uuid.UUID
		err error
	)
	if g.rand == nil {
		id, err = uuid.NewV7()
	} else {
		id, err = uuid.NewV7FromReader(g.rand)
	}
	if err != nil {
		panic("gameid: failed to generate random bytes: " + err.Error())
	}
	return Encode(id)
}

// Encode renders a UUID as base32 with two leading zero pad bits, so the
// first character is always 0-7.
func Encode(id uuid.UUID) string {
	var out [encodedLen]byte
	for i := range out {
		var v byte
		for b := 0; b < 5; b++ {
			bit := i*5 + b - 2
			v <<= 1
			if bit >= 0 && id[bit/8]&(0x80>>(bit%8)) != 0 {
				v |= 1
			}
		}
		out[i] = alphabet[v]
	}
	return string(out[:])
}

// Decode parses an encoded game ID back into its UUID.
func Decode(s string) (uuid.UUID, error) {
	var id uuid.UUID
	if err := Validate(s); err != nil {
		return id, err
	}
	for i := 0; i < encodedLen; i++ {
		v := strings.IndexByte(alphabet, s[i])
		for b := 0; b < 5; b++ {
			bit := i*5 + b - 2
			if bit < 0 || v&(0x10>>b) == 0 {
				continue
			}
			id[bit/8] |= 0x80 >> (bit % 8)
		}
	}
	return id, nil
}

// Validate checks if a game ID is valid (26 characters, valid base32)
func Validate(id string) error {
	if len(id) != encodedLen {
		return fmt.Errorf("game ID must be exactly %d characters, got %d", encodedLen, len(id))
	}

	// The two pad bits must be zero
	if id[0] > '7' {
		return fmt.Errorf("game ID first character must be 0-7, got %c", id[0])
	}

	for i := 0; i < len(id); i++ {
		if strings.IndexByte(alphabet, id[i]) < 0 {
			return fmt.Errorf("invalid character %c at position %d", id[i], i)
		}
	}

	return nil
}
