package summarizer

import (
	"github.com/kljensen/snowball"

	"github.com/dtnitsch/llm-doc-digest/pkg/analytics"
)

// SentenceSplitter is the sentence boundary tokenizer used to parse text.
type SentenceSplitter interface {
	Split(text string) []string
}

// Document is the parsed form of the filtered text that every strategy
// reads. It is never modified after NewDocument, so strategies can share it.
type Document struct {
	Sentences []string
	// Terms holds the stemmed content words of each sentence.
	Terms    [][]string
	Language string
}

// NewDocument splits text into sentences and stems their content words.
// language is a snowball language name; empty means english.
func NewDocument(text string, splitter SentenceSplitter, language string) *Document {
	if language == "" {
		language = "english"
	}
	doc := &Document{Language: language}
	stop := analytics.Stopwords(language)
	for _, s := range splitter.Split(text) {
		var terms []string
		for _, w := range analytics.Words(s) {
			if _, skip := stop[w]; skip {
				continue
			}
			terms = append(terms, Stem(w, language))
		}
		doc.Sentences = append(doc.Sentences, s)
		doc.Terms = append(doc.Terms, terms)
	}
	return doc
}

// Stem returns the snowball stem of word, or word itself when the
// language is unsupported.
func Stem(word, language string) string {
	stemmed, err := snowball.Stem(word, language, true)
	if err != nil || stemmed == "" {
		return word
	}
	return stemmed
}

// vocabulary assigns a column to every distinct term in order of first use.
func (d *Document) vocabulary() (map[string]int, []string) {
	index := make(map[string]int)
	var terms []string
	for _, sent := range d.Terms {
		for _, t := range sent {
			if _, ok := index[t]; !ok {
				index[t] = len(terms)
				terms = append(terms, t)
			}
		}
	}
	return index, terms
}

func termCounts(terms []string) map[string]int {
	counts := make(map[string]int, len(terms))
	for _, t := range terms {
		counts[t]++
	}
	return counts
}
