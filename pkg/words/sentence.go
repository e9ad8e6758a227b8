package words

import (
	"unicode"
	"unicode/utf8"
)

// IsSentenceStart reports whether the word at offset begins a sentence.
//
// A word mid-text starts a sentence when it is capitalized and the text
// between it and the previous word is a sentence-ending punctuation cluster
// followed by whitespace, such as `." ` or `?! (`. Repeated periods count as
// one cluster, but periods do not mix with other sentence-ending marks. When
// countBeginning is set the first word of the text is always a sentence
// start.
func IsSentenceStart(text string, offset int, countBeginning bool) bool {
	it := NewStringIterator(text, 0, Options{})

	prev, ok := it.Next()
	if !ok {
		return false
	}
	if offset == 0 && countBeginning {
		return true
	}

	for {
		next, ok := it.Next()
		if !ok {
			return false
		}
		if next.Offset == offset {
			first, _ := utf8.DecodeRuneInString(next.Text)
			if !unicode.IsUpper(first) {
				return false
			}
			return endsSentence(text[prev.End():next.Offset])
		}
		prev = next
	}
}

type betweenState uint8

const (
	betweenInitial betweenState = iota
	betweenPrecedingPunctuation
	betweenEndingPunctuation
	betweenFollowingPunctuation
	betweenWhitespace
	betweenStartPunctuation
)

// endsSentence parses the text between two words.
func endsSentence(between string) bool {
	state := betweenInitial
	var ending rune

	for _, r := range between {
		switch {
		case unicode.IsSpace(r):
			switch state {
			case betweenEndingPunctuation, betweenFollowingPunctuation:
				state = betweenWhitespace
			case betweenWhitespace:
			default:
				return false
			}

		case isSentenceEndingPunctuation(r):
			switch state {
			case betweenInitial, betweenPrecedingPunctuation:
				state = betweenEndingPunctuation
				ending = r
			case betweenEndingPunctuation:
				// '.' only repeats itself. The others mix freely.
				if (ending == '.') != (r == '.') {
					return false
				}
			default:
				return false
			}

		case IsPunctuation(r):
			switch state {
			case betweenInitial:
				state = betweenPrecedingPunctuation
			case betweenEndingPunctuation:
				state = betweenFollowingPunctuation
			case betweenWhitespace:
				state = betweenStartPunctuation
			case betweenPrecedingPunctuation, betweenFollowingPunctuation, betweenStartPunctuation:
			}

		default:
			return false
		}
	}

	return state == betweenWhitespace || state == betweenStartPunctuation
}

func isSentenceEndingPunctuation(r rune) bool {
	switch r {
	case '.', '!', '?', '…':
		return true
	default:
		return false
	}
}
