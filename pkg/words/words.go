// Package words splits prose into words for the rules that inspect text.
//
// The Iterator is a pull-based tokenizer over a rope slice. It strips
// punctuation around words, keeps contractions and possessives whole, and
// tracks whether each word is expected to be capitalized because it follows
// sentence-ending punctuation.
package words

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/supabase-community/supa-mdx-lint-sub000/pkg/rope"
)

// BreakOnPunctuation selects which punctuation splits a word in two.
type BreakOnPunctuation uint8

const (
	// BreakNone keeps hyphenated words together.
	BreakNone BreakOnPunctuation = iota
	// BreakHyphen splits words at hyphens.
	BreakHyphen
)

// CapitalizeTrigger selects the punctuation after which the next word is
// expected to be capitalized.
type CapitalizeTrigger uint8

const (
	// TriggerStandard capitalizes after '.', '!' and '?'.
	TriggerStandard CapitalizeTrigger = iota
	// TriggerPlusColon also capitalizes after ':'.
	TriggerPlusColon
)

// Options configure an Iterator.
type Options struct {
	// InitialCapitalize marks the first word as expecting a capital.
	InitialCapitalize            bool
	BreakOnPunctuation           BreakOnPunctuation
	CapitalizeTriggerPunctuation CapitalizeTrigger
}

// Word is a single token.
type Word struct {
	// Offset is the byte offset of the word, including the parent offset
	// the iterator was created with.
	Offset int
	Text   string
	// Capitalize reports whether the word follows sentence-ending
	// punctuation and so should start with a capital.
	Capitalize bool
}

// End returns the offset just past the word.
func (w Word) End() int {
	return w.Offset + len(w.Text)
}

type parseState uint8

const (
	stateInitial parseState = iota
	stateASCIIAlphabetic
	stateOtherAlphabetic
	stateNumeric
	stateWhitespace
	stateEscape
	statePostEscape
	statePunctuationLeading
	statePunctuationTrailing
	stateOther
)

// inWord reports whether the state is inside the body of a word.
func (s parseState) inWord() bool {
	switch s {
	case stateASCIIAlphabetic, stateOtherAlphabetic, stateNumeric, stateOther, statePostEscape:
		return true
	default:
		return false
	}
}

// Iterator tokenizes text into words.
type Iterator struct {
	text         string
	parentOffset int
	opts         Options

	state       parseState
	punctuation string
	wordStart   int
	tracking    int
	capitalize  bool

	prefix []Word
}

// NewIterator tokenizes the text of slice. Emitted offsets are shifted by
// parentOffset, normally the absolute offset of the slice start.
func NewIterator(slice rope.Slice, parentOffset int, opts Options) *Iterator {
	return NewStringIterator(slice.String(), parentOffset, opts)
}

// NewStringIterator tokenizes text.
func NewStringIterator(text string, parentOffset int, opts Options) *Iterator {
	return &Iterator{
		text:         text,
		parentOffset: parentOffset,
		opts:         opts,
		capitalize:   opts.InitialCapitalize,
	}
}

// Prepend pushes words back to the front of the iterator. They are returned
// by Next, in order, before any further text is tokenized.
func (it *Iterator) Prepend(words ...Word) {
	it.prefix = append(append([]Word(nil), words...), it.prefix...)
}

// CurrIndex returns the offset within the text, excluding the parent
// offset, at which the next word will be searched for.
func (it *Iterator) CurrIndex() (int, bool) {
	if it.state != stateInitial {
		return 0, false
	}
	return it.wordStart, true
}

// NextCapitalize returns whether the next tokenized word is expected to be
// capitalized.
func (it *Iterator) NextCapitalize() (bool, bool) {
	if it.state != stateInitial {
		return false, false
	}
	return it.capitalize, true
}

// CollectRemainder returns the text that has not been tokenized yet.
func (it *Iterator) CollectRemainder() (string, bool) {
	if it.wordStart >= len(it.text) {
		return "", false
	}
	return it.text[it.wordStart:], true
}

// All drains the iterator.
func (it *Iterator) All() []Word {
	var out []Word
	for {
		w, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, w)
	}
}

// Next returns the next word.
func (it *Iterator) Next() (Word, bool) {
	if len(it.prefix) > 0 {
		w := it.prefix[0]
		it.prefix = it.prefix[1:]
		return w, true
	}

	start, end, capitalize, ok := it.parse()
	if !ok {
		return Word{}, false
	}
	return Word{
		Offset:     start + it.parentOffset,
		Text:       it.text[start:end],
		Capitalize: capitalize,
	}, true
}

// wordBreak describes the word completed by consuming a character.
type wordBreak struct {
	start, end int
	capitalize bool
}

func (it *Iterator) parse() (int, int, bool, bool) {
	if it.wordStart >= len(it.text) {
		return 0, 0, false, false
	}

	for it.tracking < len(it.text) {
		r, size := utf8.DecodeRuneInString(it.text[it.tracking:])

		var brk *wordBreak
		switch {
		case r < utf8.RuneSelf && isASCIIAlphabetic(byte(r)):
			it.consumeWordChar(stateASCIIAlphabetic, size)
		case '0' <= r && r <= '9':
			it.consumeWordChar(stateNumeric, size)
		case unicode.IsLetter(r):
			it.consumeWordChar(stateOtherAlphabetic, size)
		case unicode.IsSpace(r):
			brk = it.consumeWhitespace(size)
		case r == '\\':
			it.consumeEscape()
		case IsPunctuation(r):
			brk = it.consumePunctuation(r, size)
		default:
			it.consumeWordChar(stateOther, size)
		}

		if brk != nil {
			it.wordStart = it.tracking
			return brk.start, brk.end, brk.capitalize, true
		}
	}

	start := it.wordStart
	end := it.tracking
	if it.state == statePunctuationTrailing {
		end -= len(it.punctuation)
	}

	it.state = stateInitial
	it.wordStart = it.tracking

	if start == end {
		return 0, 0, false, false
	}
	return start, end, it.capitalize, true
}

func (it *Iterator) consumeWordChar(next parseState, size int) {
	if it.state == stateEscape {
		next = statePostEscape
	}
	it.state = next
	it.tracking += size
}

func (it *Iterator) consumeEscape() {
	if it.state == stateEscape {
		it.state = statePostEscape
	} else {
		it.state = stateEscape
	}
	it.tracking++
}

func (it *Iterator) consumeWhitespace(size int) *wordBreak {
	switch {
	case it.state == stateInitial || it.state == statePunctuationLeading || it.state == stateWhitespace:
		it.state = stateWhitespace
		it.wordStart += size
		it.tracking += size
		return nil

	case it.state.inWord():
		brk := &wordBreak{start: it.wordStart, end: it.tracking, capitalize: it.capitalize}
		it.state = stateInitial
		it.tracking += size
		it.capitalize = false
		return brk

	case it.state == stateEscape:
		it.state = statePostEscape
		it.tracking += size
		return nil

	default: // statePunctuationTrailing
		end := it.tracking
		// A lone trailing hyphen is kept so bare prefixes like `pre-` survive.
		if it.punctuation != "-" {
			end -= len(it.punctuation)
		}
		brk := &wordBreak{start: it.wordStart, end: end, capitalize: it.capitalize}

		last, _ := utf8.DecodeLastRuneInString(it.punctuation)
		it.capitalize = it.triggersCapitalization(last)
		it.state = stateInitial
		it.tracking += size
		return brk
	}
}

func (it *Iterator) consumePunctuation(r rune, size int) *wordBreak {
	switch {
	case it.state == stateInitial || it.state == stateWhitespace:
		it.state = statePunctuationLeading
		it.punctuation = string(r)
		it.wordStart += size
		it.tracking += size
		return nil

	case it.state.inWord():
		if isApostrophe(r) {
			return it.consumeApostrophe(size)
		}
		if it.breaksImmediately(r) {
			brk := &wordBreak{start: it.wordStart, end: it.tracking, capitalize: it.capitalize}
			it.capitalize = it.triggersCapitalization(r)
			it.state = stateInitial
			it.tracking += size
			return brk
		}
		it.state = statePunctuationTrailing
		it.punctuation = string(r)
		it.tracking += size
		return nil

	case it.state == stateEscape:
		it.state = statePostEscape
		it.tracking += size
		return nil

	case it.state == statePunctuationLeading:
		it.punctuation += string(r)
		it.wordStart += size
		it.tracking += size
		return nil

	default: // statePunctuationTrailing
		if it.breaksImmediately(r) {
			brk := &wordBreak{
				start:      it.wordStart,
				end:        it.tracking - len(it.punctuation),
				capitalize: it.capitalize,
			}
			it.capitalize = it.triggersCapitalization(r)
			it.state = stateInitial
			it.tracking += size
			return brk
		}
		it.punctuation += string(r)
		it.tracking += size
		return nil
	}
}

// contractionSuffixes are the endings that may follow a mid-word apostrophe.
//
//nolint:gochecknoglobals // Read-only table.
var contractionSuffixes = []string{"ve", "ll", "t", "s"}

// consumeApostrophe handles an apostrophe inside a word. A contraction or
// possessive suffix that ends the word is absorbed into it; otherwise the
// word ends before the apostrophe, which then leads the next word.
func (it *Iterator) consumeApostrophe(size int) *wordBreak {
	rest := it.text[it.tracking+size:]
	for _, suffix := range contractionSuffixes {
		if len(rest) < len(suffix) || !strings.EqualFold(rest[:len(suffix)], suffix) {
			continue
		}
		if next, _ := utf8.DecodeRuneInString(rest[len(suffix):]); isAlphanumeric(next) {
			continue
		}
		it.state = stateASCIIAlphabetic
		it.tracking += size + len(suffix)
		return nil
	}

	brk := &wordBreak{start: it.wordStart, end: it.tracking, capitalize: it.capitalize}
	it.capitalize = false
	it.state = statePunctuationLeading
	it.punctuation = it.text[it.tracking : it.tracking+size]
	it.tracking += size
	return brk
}

func (it *Iterator) triggersCapitalization(r rune) bool {
	switch r {
	case '!', '?', '.':
		return true
	case ':':
		return it.opts.CapitalizeTriggerPunctuation == TriggerPlusColon
	default:
		return false
	}
}

func (it *Iterator) breaksImmediately(r rune) bool {
	switch r {
	case '–', '—', '―':
		return true
	case '-':
		return it.opts.BreakOnPunctuation == BreakHyphen
	default:
		return false
	}
}

// IsPunctuation reports whether r is punctuation that may surround a word.
func IsPunctuation(r rune) bool {
	switch r {
	case '!', '-', '–', '—', '―', '(', ')', '[', ']', '{', '}', ':',
		'\'', '‘', '’', '“', '”', '"', '?', ',', '.', ';':
		return true
	default:
		return false
	}
}

func isApostrophe(r rune) bool {
	return r == '\'' || r == '’'
}

func isASCIIAlphabetic(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isAlphanumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
