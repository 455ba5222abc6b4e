// Package keywords counts content words per document and across a batch.
package keywords

import "github.com/dtnitsch/llm-doc-digest/pkg/analytics"

// Map generates a word frequency map for a single document's filtered text.
func Map(content string, a *analytics.Analytics) map[string]int {
	return a.WordFrequency(content)
}

// Reduce aggregates per-document frequency maps into a single map.
func Reduce(intermediate []map[string]int) map[string]int {
	finalResults := make(map[string]int)

	for _, counts := range intermediate {
		for word, count := range counts {
			finalResults[word] += count
		}
	}

	return finalResults
}
