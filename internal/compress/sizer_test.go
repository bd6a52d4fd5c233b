// Package compress measures how large a bundle would be under the standard
// transfer encodings.
package compress

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizes(t *testing.T) {
	t.Run("reports both standard algorithms", func(t *testing.T) {
		sizes, err := Sizes([]byte(strings.Repeat("const answer = 42;\n", 500)))

		require.NoError(t, err)
		assert.Contains(t, sizes, AlgoGzip)
		assert.Contains(t, sizes, AlgoBrotli)
	})

	t.Run("repetitive input compresses well", func(t *testing.T) {
		data := []byte(strings.Repeat("aaaaaaaaaa", 1000))

		sizes, err := Sizes(data)

		require.NoError(t, err)
		assert.Less(t, sizes[AlgoGzip], int64(len(data)))
		assert.Less(t, sizes[AlgoBrotli], int64(len(data)))
		assert.Positive(t, sizes[AlgoGzip])
		assert.Positive(t, sizes[AlgoBrotli])
	})

	t.Run("empty input still yields headers", func(t *testing.T) {
		sizes, err := Sizes(nil)

		require.NoError(t, err)
		assert.Positive(t, sizes[AlgoGzip])
	})
}
