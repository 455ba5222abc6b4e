package summarizer

// Luhn rates sentences by clusters of significant words. A word is
// significant when it occurs at least MinFrequency times in the document;
// a cluster is a run of words whose significant words are at most MaxGap
// insignificant words apart. A sentence scores its best cluster as
// significant² / cluster length.
type Luhn struct {
	MaxGap       int
	MinFrequency int
}

func (l Luhn) Rate(doc *Document) ([]float64, error) {
	freq := make(map[string]int)
	for _, terms := range doc.Terms {
		for _, t := range terms {
			freq[t]++
		}
	}
	significant := make(map[string]bool, len(freq))
	for t, c := range freq {
		if c >= l.MinFrequency {
			significant[t] = true
		}
	}

	ratings := make([]float64, len(doc.Sentences))
	for i, terms := range doc.Terms {
		ratings[i] = l.rateSentence(terms, significant)
	}
	return ratings, nil
}

func (l Luhn) rateSentence(terms []string, significant map[string]bool) float64 {
	best := 0.0
	start, last, count := -1, -1, 0
	flush := func() {
		if count == 0 {
			return
		}
		length := float64(last - start + 1)
		best = max(best, float64(count*count)/length)
	}
	for i, t := range terms {
		if !significant[t] {
			continue
		}
		if start >= 0 && i-last-1 > l.MaxGap {
			flush()
			start, count = -1, 0
		}
		if start < 0 {
			start = i
		}
		last = i
		count++
	}
	flush()
	return best
}
