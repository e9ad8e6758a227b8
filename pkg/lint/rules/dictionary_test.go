package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinDictionary(t *testing.T) {
	t.Parallel()

	dict := builtinDictionary()
	require.Greater(t, len(dict.words), 100_000)
	assert.Len(t, dict.freq, len(dict.words))

	for _, word := range []string{
		"the", "documentation", "authentication", "linting", "configure",
		"endpoint", "repository", "middleware", "namespace", "shouldn't",
		"hello", "world", "database",
	} {
		assert.True(t, dict.contains(word), word)
	}

	for _, word := range []string{"yellowly", "youngly", "heloo", "wrld", "asdf"} {
		assert.False(t, dict.contains(word), word)
	}
	assert.Same(t, dict, builtinDictionary())
}

func TestBuiltinDictionary_Shape(t *testing.T) {
	t.Parallel()

	dict := builtinDictionary()
	for _, word := range dict.words {
		assert.Equal(t, strings.ToLower(word), word)
		assert.Positive(t, dict.freq[word], word)
		assert.False(t, strings.HasSuffix(word, "'s"), word)
	}

	// Ordered by descending frequency.
	assert.Equal(t, "the", dict.words[0])
	assert.GreaterOrEqual(t, dict.freq["the"], dict.freq["documentation"])
	assert.GreaterOrEqual(t, dict.freq["documentation"], dict.freq["linting"])
}

func TestParseDictionary(t *testing.T) {
	t.Parallel()

	dict := parseDictionary("hello 10\nworld\n\nhello 20\n")
	assert.Equal(t, []string{"hello", "world"}, dict.words)
	assert.Equal(t, 20, dict.freq["hello"])
	assert.Equal(t, 1, dict.freq["world"])
}
