package summarizer

import "math"

// TextRank ranks sentences by their centrality in a graph whose edges are
// weighted by word overlap normalized for sentence length.
type TextRank struct {
	Damping       float64
	Epsilon       float64
	MaxIterations int
}

func (t TextRank) Rate(doc *Document) ([]float64, error) {
	n := len(doc.Sentences)
	weights := make([][]float64, n)
	for i := range weights {
		weights[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			w := overlap(doc.Terms[i], doc.Terms[j])
			weights[i][j] = w
			weights[j][i] = w
		}
	}
	return pageRank(weights, t.Damping, t.Epsilon, t.MaxIterations), nil
}

// overlap is |common words| / (log|a| + log|b|).
func overlap(a, b []string) float64 {
	norm := math.Log(float64(len(a))) + math.Log(float64(len(b)))
	if len(a) == 0 || len(b) == 0 || norm <= 0 {
		return 0
	}
	inA := make(map[string]struct{}, len(a))
	for _, w := range a {
		inA[w] = struct{}{}
	}
	common := 0
	seen := make(map[string]struct{}, len(b))
	for _, w := range b {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		if _, ok := inA[w]; ok {
			common++
		}
	}
	return float64(common) / norm
}

// pageRank runs weighted PageRank over a symmetric weight matrix. A node
// without edges only receives the teleport share.
func pageRank(weights [][]float64, damping, epsilon float64, maxIter int) []float64 {
	n := len(weights)
	outSum := make([]float64, n)
	for i, row := range weights {
		for _, w := range row {
			outSum[i] += w
		}
	}
	scores := make([]float64, n)
	for i := range scores {
		scores[i] = 1.0 / float64(n)
	}
	next := make([]float64, n)
	for iter := 0; iter < maxIter; iter++ {
		delta := 0.0
		for i := 0; i < n; i++ {
			rank := 0.0
			for j := 0; j < n; j++ {
				if weights[j][i] == 0 || outSum[j] == 0 {
					continue
				}
				rank += weights[j][i] / outSum[j] * scores[j]
			}
			next[i] = (1-damping)/float64(n) + damping*rank
			delta = math.Max(delta, math.Abs(next[i]-scores[i]))
		}
		scores, next = next, scores
		if delta < epsilon {
			break
		}
	}
	return scores
}
