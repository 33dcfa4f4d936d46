package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQueueWeights(t *testing.T) {
	t.Run("parses names and weights", func(t *testing.T) {
		got := parseQueueWeights("default=3,ops=1")
		assert.Equal(t, map[string]int{"default": 3, "ops": 1}, got)
	})

	t.Run("missing weight defaults to one", func(t *testing.T) {
		got := parseQueueWeights("default,ops=2")
		assert.Equal(t, map[string]int{"default": 1, "ops": 2}, got)
	})

	t.Run("ignores blanks and bad weights", func(t *testing.T) {
		got := parseQueueWeights(" , default=0 , ops=x ,=5")
		assert.Equal(t, map[string]int{"default": 1, "ops": 1}, got)
	})

	t.Run("empty input parses to nothing", func(t *testing.T) {
		assert.Empty(t, parseQueueWeights(""))
	})
}
