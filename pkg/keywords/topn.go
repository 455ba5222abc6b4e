package keywords

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

// Keyword is a word and how often it occurred.
type Keyword struct {
	Word  string `json:"word" yaml:"word"`
	Count int    `json:"count" yaml:"count"`
}

func (k Keyword) String() string {
	return fmt.Sprintf("%s:%d", k.Word, k.Count)
}

// minLength drops one-letter leftovers such as list markers.
const minLength = 2

// Top returns the n most frequent words. Equal counts are ordered
// alphabetically so the listing is stable between runs.
func Top(wordCounts map[string]int, n int) []Keyword {
	if n <= 0 {
		return []Keyword{}
	}

	ss := make([]Keyword, 0, len(wordCounts))
	for k, v := range wordCounts {
		if utf8.RuneCountInString(k) < minLength || v <= 0 {
			continue
		}
		ss = append(ss, Keyword{Word: k, Count: v})
	}

	sort.Slice(ss, func(i, j int) bool {
		if ss[i].Count != ss[j].Count {
			return ss[i].Count > ss[j].Count
		}
		return ss[i].Word < ss[j].Word
	})

	if len(ss) > n {
		ss = ss[:n]
	}
	return ss
}

// TopKeywords formats Top as "word:count" strings.
func TopKeywords(wordCounts map[string]int, n int) []string {
	top := Top(wordCounts, n)
	out := make([]string, len(top))
	for i, k := range top {
		out[i] = k.String()
	}
	return out
}
