// Package secureid produces unpredictable identifiers for channels and messages.
package secureid

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"secure-bridge/errors"
)

// Size is the number of random bytes behind every identifier (32 hex characters).
const Size = 16

type Generator struct {
	reader io.Reader
	size   int
}

func NewGenerator() *Generator {
	return &Generator{reader: rand.Reader, size: Size}
}

// NewGeneratorFrom reads randomness from r instead of crypto/rand.
// Only meant for tests that need to simulate a failing source.
func NewGeneratorFrom(r io.Reader) *Generator {
	return &Generator{reader: r, size: Size}
}

// Generate returns a lowercase hexadecimal identifier.
// Collisions are negligible but not impossible.
func (g *Generator) Generate() (string, error) {
	buf := make([]byte, g.size)
	if _, err := io.ReadFull(g.reader, buf); err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrIDGeneration, err)
	}
	return hex.EncodeToString(buf), nil
}
