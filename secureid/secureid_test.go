package secureid

import (
	"bytes"
	"regexp"
	"secure-bridge/errors"
	"testing"

	"github.com/stretchr/testify/require"
)

var hexID = regexp.MustCompile(`^[0-9a-f]{32}$`)

func TestGenerator_Generate_LowercaseHex(t *testing.T) {
	req := require.New(t)
	gen := NewGenerator()

	id, err := gen.Generate()

	req.NoError(err)
	req.Regexp(hexID, id)
}

func TestGenerator_Generate_Unique(t *testing.T) {
	req := require.New(t)
	gen := NewGenerator()
	seen := make(map[string]struct{})

	for i := 0; i < 1000; i++ {
		id, err := gen.Generate()
		req.NoError(err)
		_, dup := seen[id]
		req.False(dup, "duplicate identifier %s", id)
		seen[id] = struct{}{}
	}
}

func TestGenerator_Generate_DeterministicReader(t *testing.T) {
	req := require.New(t)
	gen := NewGeneratorFrom(bytes.NewReader(bytes.Repeat([]byte{0xab}, Size)))

	id, err := gen.Generate()

	req.NoError(err)
	req.Equal("abababababababababababababababab", id)
}

func TestGenerator_Generate_ShortSource(t *testing.T) {
	req := require.New(t)
	// Given a source exhausted before Size bytes
	gen := NewGeneratorFrom(bytes.NewReader([]byte{0x01, 0x02}))

	_, err := gen.Generate()

	req.ErrorIs(err, errors.ErrIDGeneration)
}
