package summarizer

import "math"

// LexRank ranks sentences by eigenvector centrality in a graph that links
// sentences whose TF-IDF cosine similarity exceeds Threshold.
type LexRank struct {
	Threshold     float64
	Epsilon       float64
	MaxIterations int
}

func (l LexRank) Rate(doc *Document) ([]float64, error) {
	n := len(doc.Sentences)
	idf := inverseDocumentFrequency(doc.Terms)
	tfs := make([]map[string]float64, n)
	for i, terms := range doc.Terms {
		tfs[i] = normalizedTF(terms)
	}

	matrix := make([][]float64, n)
	for i := 0; i < n; i++ {
		matrix[i] = make([]float64, n)
		degree := 0.0
		for j := 0; j < n; j++ {
			if cosine(tfs[i], tfs[j], idf) > l.Threshold {
				matrix[i][j] = 1
				degree++
			}
		}
		for j := 0; j < n; j++ {
			if degree == 0 {
				matrix[i][j] = 1.0 / float64(n)
			} else {
				matrix[i][j] /= degree
			}
		}
	}
	return powerMethod(matrix, l.Epsilon, l.MaxIterations), nil
}

// inverseDocumentFrequency treats each sentence as a document.
func inverseDocumentFrequency(sentences [][]string) map[string]float64 {
	df := make(map[string]int)
	for _, terms := range sentences {
		for t := range termCounts(terms) {
			df[t]++
		}
	}
	n := float64(len(sentences))
	idf := make(map[string]float64, len(df))
	for t, count := range df {
		idf[t] = math.Log(n / float64(1+count))
	}
	return idf
}

// normalizedTF divides each term count by the sentence's largest count.
func normalizedTF(terms []string) map[string]float64 {
	counts := termCounts(terms)
	maxCount := 0
	for _, c := range counts {
		maxCount = max(maxCount, c)
	}
	tf := make(map[string]float64, len(counts))
	for t, c := range counts {
		tf[t] = float64(c) / float64(maxCount)
	}
	return tf
}

func cosine(a, b map[string]float64, idf map[string]float64) float64 {
	num := 0.0
	for t, wa := range a {
		if wb, ok := b[t]; ok {
			num += wa * wb * idf[t] * idf[t]
		}
	}
	if num == 0 {
		return 0
	}
	normA, normB := 0.0, 0.0
	for t, w := range a {
		normA += (w * idf[t]) * (w * idf[t])
	}
	for t, w := range b {
		normB += (w * idf[t]) * (w * idf[t])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return num / (math.Sqrt(normA) * math.Sqrt(normB))
}

// powerMethod finds the stationary distribution of a row-stochastic matrix.
func powerMethod(matrix [][]float64, epsilon float64, maxIter int) []float64 {
	n := len(matrix)
	p := make([]float64, n)
	for i := range p {
		p[i] = 1.0 / float64(n)
	}
	for iter := 0; iter < maxIter; iter++ {
		next := make([]float64, n)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				next[j] += matrix[i][j] * p[i]
			}
		}
		diff := 0.0
		for i := range p {
			d := next[i] - p[i]
			diff += d * d
		}
		p = next
		if math.Sqrt(diff) < epsilon {
			break
		}
	}
	return p
}
