package evaluator

import (
	"regexp"
	"strings"

	"github.com/dtnitsch/llm-doc-digest/models"
	"github.com/dtnitsch/llm-doc-digest/pkg/summarizer"
)

var nonAlphanumeric = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// rougeTokens lowercases, drops punctuation and stems words longer than
// three characters.
func rougeTokens(text, language string) []string {
	fields := strings.Fields(nonAlphanumeric.ReplaceAllString(strings.ToLower(text), " "))
	for i, f := range fields {
		if len([]rune(f)) > 3 {
			fields[i] = summarizer.Stem(f, language)
		}
	}
	return fields
}

// Rouge computes ROUGE-1, ROUGE-2 and ROUGE-L F-measures of hypothesis
// against reference. Blank input on either side scores zero everywhere.
func Rouge(hypothesis, reference, language string) models.Similarity {
	if strings.TrimSpace(hypothesis) == "" || strings.TrimSpace(reference) == "" {
		return models.Similarity{}
	}
	hyp := rougeTokens(hypothesis, language)
	ref := rougeTokens(reference, language)
	return models.Similarity{
		Unigram: ngramF(hyp, ref, 1),
		Bigram:  ngramF(hyp, ref, 2),
		LCS:     lcsF(hyp, ref),
	}
}

func ngrams(tokens []string, n int) map[string]int {
	out := make(map[string]int)
	for i := 0; i+n <= len(tokens); i++ {
		out[strings.Join(tokens[i:i+n], " ")]++
	}
	return out
}

func ngramF(hyp, ref []string, n int) float64 {
	h, r := ngrams(hyp, n), ngrams(ref, n)
	hypTotal, refTotal, overlap := 0, 0, 0
	for g, c := range h {
		hypTotal += c
		overlap += min(c, r[g])
	}
	for _, c := range r {
		refTotal += c
	}
	return fMeasure(overlap, hypTotal, refTotal)
}

// lcsF uses a two-row table; the reference can be a whole document.
func lcsF(hyp, ref []string) float64 {
	if len(hyp) == 0 || len(ref) == 0 {
		return 0
	}
	prev := make([]int32, len(hyp)+1)
	cur := make([]int32, len(hyp)+1)
	for i := 1; i <= len(ref); i++ {
		for j := 1; j <= len(hyp); j++ {
			switch {
			case ref[i-1] == hyp[j-1]:
				cur[j] = prev[j-1] + 1
			case prev[j] >= cur[j-1]:
				cur[j] = prev[j]
			default:
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return fMeasure(int(prev[len(hyp)]), len(hyp), len(ref))
}

func fMeasure(overlap, hypTotal, refTotal int) float64 {
	if overlap == 0 || hypTotal == 0 || refTotal == 0 {
		return 0
	}
	precision := float64(overlap) / float64(hypTotal)
	recall := float64(overlap) / float64(refTotal)
	return 2 * precision * recall / (precision + recall)
}
