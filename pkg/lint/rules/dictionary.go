package rules

import (
	"bufio"
	_ "embed"
	"strconv"
	"strings"
	"sync"
)

//go:embed dictionary.txt
var dictionaryData string

// dictionary is the built-in word list with corpus frequencies.
type dictionary struct {
	freq  map[string]int
	words []string
}

func (d *dictionary) contains(word string) bool {
	_, ok := d.freq[word]
	return ok
}

// builtinDictionary parses the embedded word list once per process.
//
//nolint:gochecknoglobals // Shared read-only dictionary.
var builtinDictionary = sync.OnceValue(func() *dictionary {
	return parseDictionary(dictionaryData)
})

// parseDictionary reads `<word> <frequency>` lines. Lines without a
// frequency get frequency 1; blank lines are skipped.
func parseDictionary(data string) *dictionary {
	d := &dictionary{freq: make(map[string]int, strings.Count(data, "\n")+1)}

	scanner := bufio.NewScanner(strings.NewReader(data))
	for scanner.Scan() {
		word, count, _ := strings.Cut(strings.TrimSpace(scanner.Text()), " ")
		if word == "" {
			continue
		}
		freq, err := strconv.Atoi(strings.TrimSpace(count))
		if err != nil {
			freq = 1
		}
		if _, ok := d.freq[word]; !ok {
			d.words = append(d.words, word)
		}
		d.freq[word] = freq
	}

	return d
}
