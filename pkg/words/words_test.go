package words_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/rope"
	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/words"
)

type expectedWord struct {
	offset int
	text   string
}

func collect(text string, opts words.Options) []words.Word {
	return words.NewStringIterator(text, 0, opts).All()
}

func assertWords(t *testing.T, got []words.Word, want []expectedWord) {
	t.Helper()

	require.Len(t, got, len(want))
	for i, w := range want {
		assert.Equal(t, w.offset, got[i].Offset, "offset of word %d", i)
		assert.Equal(t, w.text, got[i].Text, "text of word %d", i)
	}
}

func TestIterator_Words(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []expectedWord
	}{
		{"simple", "hello world", []expectedWord{{0, "hello"}, {6, "world"}}},
		{"punctuation", "hello, world!", []expectedWord{{0, "hello"}, {7, "world"}}},
		{"repeated whitespace", "hello   world", []expectedWord{{0, "hello"}, {8, "world"}}},
		{"numbers", "test123 456", []expectedWord{{0, "test123"}, {8, "456"}}},
		{"quotes", "hello \"world\"", []expectedWord{{0, "hello"}, {7, "world"}}},
		{"bare prefix", "pre- and post-world", []expectedWord{{0, "pre-"}, {5, "and"}, {9, "post-world"}}},
		{"emoji", "hello 🤝 world", []expectedWord{{0, "hello"}, {6, "🤝"}, {11, "world"}}},
		{"non-latin", "hello 你好 world", []expectedWord{{0, "hello"}, {6, "你好"}, {13, "world"}}},
		{"hyphenated", "hello-world", []expectedWord{{0, "hello-world"}}},
		{"em dash", "one—two", []expectedWord{{0, "one"}, {6, "two"}}},
		{"empty", "", nil},
		{"only punctuation", " ... !", nil},
		{"multi-line", "first line\nsecond", []expectedWord{{0, "first"}, {6, "line"}, {11, "second"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assertWords(t, collect(tt.input, words.Options{}), tt.want)
		})
	}
}

func TestIterator_Contractions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []expectedWord
	}{
		{"negation", "couldn't stop", []expectedWord{{0, "couldn't"}, {9, "stop"}}},
		{"possessive", "the server's data", []expectedWord{{0, "the"}, {4, "server's"}, {13, "data"}}},
		{"have", "we've gone", []expectedWord{{0, "we've"}, {6, "gone"}}},
		{"will", "you'll see.", []expectedWord{{0, "you'll"}, {7, "see"}}},
		{"uppercase", "DON'T", []expectedWord{{0, "DON'T"}}},
		{"curly apostrophe", "can’t stop", []expectedWord{{0, "can’t"}, {8, "stop"}}},
		{"suffix followed by letters", "it'sy", []expectedWord{{0, "it"}, {3, "sy"}}},
		{"plural possessive", "students' work", []expectedWord{{0, "students"}, {10, "work"}}},
		{"not a suffix", "rock'n'roll", []expectedWord{{0, "rock"}, {5, "n"}, {7, "roll"}}},
		{"suffix then punctuation", "it's.", []expectedWord{{0, "it's"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assertWords(t, collect(tt.input, words.Options{}), tt.want)
		})
	}
}

func TestIterator_BreakOnHyphen(t *testing.T) {
	t.Parallel()

	got := collect("hello-world", words.Options{BreakOnPunctuation: words.BreakHyphen})
	assertWords(t, got, []expectedWord{{0, "hello"}, {6, "world"}})
}

func TestIterator_Capitalization(t *testing.T) {
	t.Parallel()

	t.Run("initial", func(t *testing.T) {
		t.Parallel()

		got := collect("hello world", words.Options{InitialCapitalize: true})
		require.Len(t, got, 2)
		assert.True(t, got[0].Capitalize)
		assert.False(t, got[1].Capitalize)
	})

	t.Run("after sentence end", func(t *testing.T) {
		t.Parallel()

		got := collect("some thing. Sentence. World.", words.Options{})
		assertWords(t, got, []expectedWord{{0, "some"}, {5, "thing"}, {12, "Sentence"}, {22, "World"}})
		assert.False(t, got[0].Capitalize)
		assert.False(t, got[1].Capitalize)
		assert.True(t, got[2].Capitalize)
		assert.True(t, got[3].Capitalize)
	})

	t.Run("colon", func(t *testing.T) {
		t.Parallel()

		standard := collect("hello: world", words.Options{})
		require.Len(t, standard, 2)
		assert.False(t, standard[1].Capitalize)

		withColon := collect("hello: world", words.Options{CapitalizeTriggerPunctuation: words.TriggerPlusColon})
		require.Len(t, withColon, 2)
		assert.True(t, withColon[1].Capitalize)
	})
}

func TestIterator_ComplexSentence(t *testing.T) {
	t.Parallel()

	input := "Each of these open source tools are amazing, but they all had a major drawback - " +
		"we couldn't use Postgres as the server's datastore. If you haven't noticed yet, " +
		"our team likes Postgres a lot 😉."

	got := collect(input, words.Options{})

	offsets := []int{
		0, 5, 8, 14, 19, 26, 32, 36, 45, 49, 54, 58, 62, 64, 70, 81, 84, 93, 97, 106,
		109, 113, 122, 133, 136, 140, 148, 156, 161, 165, 170, 176, 185, 187, 191,
	}
	require.Len(t, got, len(offsets))

	var texts []string
	for i, w := range got {
		assert.Equal(t, offsets[i], w.Offset, "offset of %q", w.Text)
		assert.Equal(t, i == 23, w.Capitalize, "capitalize of %q", w.Text)
		texts = append(texts, w.Text)
	}

	assert.Contains(t, texts, "couldn't")
	assert.Contains(t, texts, "server's")
	assert.Contains(t, texts, "haven't")
	assert.Equal(t, "If", texts[23])
	assert.Equal(t, "😉", texts[34])
}

func TestIterator_ParentOffset(t *testing.T) {
	t.Parallel()

	r := rope.FromString("# Title\n\nhello world")
	it := words.NewIterator(r.Slice(9, r.Len()), 9, words.Options{})

	got := it.All()
	assertWords(t, got, []expectedWord{{9, "hello"}, {15, "world"}})
}

func TestIterator_CollectRemainder(t *testing.T) {
	t.Parallel()

	it := words.NewStringIterator("hello everybody in the world", 0, words.Options{})

	_, ok := it.Next()
	require.True(t, ok)

	rest, ok := it.CollectRemainder()
	require.True(t, ok)
	assert.Equal(t, "everybody in the world", rest)

	it.All()
	_, ok = it.CollectRemainder()
	assert.False(t, ok)
}

func TestIterator_Prepend(t *testing.T) {
	t.Parallel()

	it := words.NewStringIterator("hello world keep going", 0, words.Options{})

	first, ok := it.Next()
	require.True(t, ok)
	second, ok := it.Next()
	require.True(t, ok)

	idx, ok := it.CurrIndex()
	require.True(t, ok)
	assert.Equal(t, 12, idx)

	it.Prepend(first, second)

	var offsets []int
	for _, w := range it.All() {
		offsets = append(offsets, w.Offset)
	}
	assert.Equal(t, []int{0, 6, 12, 17}, offsets)
}

// Every word lies inside the input and is non-empty.
func TestIterator_Coverage(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"Plain text with (parentheses) and [brackets].",
		"Quotes: “curly” and ‘single’ — dashes – too.",
		"Escapes \\*like\\* this and a trailing \\",
		"Mixed 123abc, emoji 🎉! And CJK 文字。",
	}

	for _, input := range inputs {
		for _, w := range collect(input, words.Options{}) {
			assert.NotEmpty(t, w.Text)
			require.LessOrEqual(t, w.End(), len(input))
			assert.Equal(t, w.Text, input[w.Offset:w.End()])
			assert.False(t, strings.ContainsAny(w.Text, " \t\n"))
		}
	}
}

func TestIsSentenceStart(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		offset int
		want   bool
	}{
		{"beginning", "Hello world! What a wonderful day. What's up?", 0, true},
		{"mid-sentence", "Hello world! What a wonderful day. What's up?", 6, false},
		{"not a word offset", "Hello world! What a wonderful day. What's up?", 11, false},
		{"inside punctuation", "Hello world! What a wonderful day. What's up?", 12, false},
		{"after exclamation", "Hello world! What a wonderful day. What's up?", 13, true},
		{"after period", "Hello world! What a wonderful day. What's up?", 35, true},
		{"lowercase after period", "Hello world! What a wonderful day. What's up?", 40, false},
		{"ellipsis lowercase", "Hello... world!", 9, false},
		{"ellipsis uppercase", "Hello... World!", 9, true},
		{"mixed marks", "Hello?!?!?! World!", 12, true},
		{"period mixed with others", "Hello.!?. What?", 10, false},
		{"quote after period", "He said \"stop.\" Then left.", 16, true},
		{"empty", "", 0, false},
		{"out of bounds", "Hello", 100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, words.IsSentenceStart(tt.text, tt.offset, true))
		})
	}
}

func TestIsSentenceStart_WithoutBeginning(t *testing.T) {
	t.Parallel()

	assert.False(t, words.IsSentenceStart("Hello world", 0, false))
}
