package rope

import "strings"

// Chunk size constants control the granularity of leaf storage.
const (
	// MinChunkSize is the size below which neighbouring leaves are merged.
	MinChunkSize = 128

	// MaxChunkSize is the largest leaf produced by building or merging.
	MaxChunkSize = 256

	// TargetChunkSize is the preferred leaf size when splitting long text.
	TargetChunkSize = (MinChunkSize + MaxChunkSize) / 2
)

// summary holds the metrics cached on every node.
type summary struct {
	bytes    int
	newlines int
}

func (s summary) add(other summary) summary {
	return summary{bytes: s.bytes + other.bytes, newlines: s.newlines + other.newlines}
}

func summarize(s string) summary {
	return summary{bytes: len(s), newlines: strings.Count(s, "\n")}
}

// splitIntoChunks cuts s into leaf-sized pieces on UTF-8 boundaries,
// preferring to cut just after a newline.
func splitIntoChunks(s string) []string {
	if len(s) == 0 {
		return nil
	}

	var chunks []string
	for len(s) > MaxChunkSize {
		cut := chunkBoundary(s, TargetChunkSize)
		chunks = append(chunks, s[:cut])
		s = s[cut:]
	}
	return append(chunks, s)
}

// chunkBoundary finds a cut point near target.
func chunkBoundary(s string, target int) int {
	lo := max(target-MinChunkSize/4, 1)
	hi := min(target+MinChunkSize/4, len(s))

	for i := target; i < hi; i++ {
		if s[i] == '\n' {
			return i + 1
		}
	}
	for i := target - 1; i >= lo; i-- {
		if s[i] == '\n' {
			return i + 1
		}
	}

	pos := target
	for pos < len(s) && !isCharBoundary(s[pos]) {
		pos++
	}
	if pos >= len(s) {
		pos = target
		for pos > 0 && !isCharBoundary(s[pos]) {
			pos--
		}
	}
	return pos
}

// isCharBoundary reports whether b starts a UTF-8 sequence.
func isCharBoundary(b byte) bool {
	return b&0xC0 != 0x80
}
