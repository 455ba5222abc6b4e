// Package analytics tokenizes text into words and counts them.
package analytics

import (
	"regexp"
	"strings"
	"unicode"
)

// Words keep inner apostrophes so contractions match the stop word list.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}]+(?:['’][\p{L}]+)*`)

// Words lowercases text and returns its word tokens in order.
func Words(text string) []string {
	raw := wordPattern.FindAllString(strings.ToLower(text), -1)
	for i, w := range raw {
		raw[i] = strings.ReplaceAll(w, "’", "'")
	}
	return raw
}

type Analytics struct {
	// Language is a snowball language name; empty means english.
	Language string
}

// WordFrequency counts content words: stop words, page furniture and
// bare numbers are skipped.
func (a *Analytics) WordFrequency(text string) map[string]int {
	stop := Stopwords(a.Language)
	frequencies := make(map[string]int)
	for _, word := range Words(text) {
		if _, exists := stop[word]; exists {
			continue
		}
		if _, noise := pageNoise[word]; noise {
			continue
		}
		if isNumeric(word) {
			continue
		}
		frequencies[word]++
	}
	return frequencies
}

func isNumeric(word string) bool {
	for _, r := range word {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return word != ""
}
