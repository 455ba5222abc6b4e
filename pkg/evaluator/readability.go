package evaluator

import (
	"strings"
	"unicode"

	"github.com/dtnitsch/llm-doc-digest/pkg/analytics"
)

// FleschReadingEase scores text on the Flesch scale: higher is easier.
// sentenceCount must be at least one for a score; blank text scores zero.
func FleschReadingEase(text string, sentenceCount int) float64 {
	words := analytics.Words(text)
	if len(words) == 0 || sentenceCount <= 0 {
		return 0
	}
	syllables := 0
	for _, w := range words {
		syllables += Syllables(w)
	}
	wordsPerSentence := float64(len(words)) / float64(sentenceCount)
	syllablesPerWord := float64(syllables) / float64(len(words))
	return 206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord
}

// Syllables estimates the syllable count of an English word from its
// vowel groups, with the usual silent-e adjustments. Every word with a
// letter counts at least one syllable.
func Syllables(word string) int {
	word = strings.ToLower(strings.TrimFunc(word, func(r rune) bool { return !unicode.IsLetter(r) }))
	if word == "" {
		return 0
	}
	runes := []rune(word)
	count := 0
	prevVowel := false
	for _, r := range runes {
		v := isVowel(r)
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}
	n := len(runes)
	if n > 2 && runes[n-1] == 'e' && !isVowel(runes[n-2]) {
		// "-le" after a consonant is its own syllable (table, simple)
		if !(runes[n-2] == 'l' && n > 3 && !isVowel(runes[n-3])) {
			count--
		}
	}
	if n > 3 && strings.HasSuffix(word, "ed") && !strings.HasSuffix(word, "ted") && !strings.HasSuffix(word, "ded") && !isVowel(runes[n-3]) {
		count--
	}
	return max(1, count)
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y', 'á', 'é', 'í', 'ó', 'ú', 'à', 'è', 'ö', 'ü', 'ä':
		return true
	}
	return false
}
