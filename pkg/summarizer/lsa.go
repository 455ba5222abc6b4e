package summarizer

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// LSA ranks sentences by their weight in the strongest latent topics of
// the term-sentence matrix, found with a singular value decomposition.
type LSA struct {
	MinDimensions  int
	ReductionRatio float64
}

const tfSmoothing = 0.4

func (l LSA) Rate(doc *Document) ([]float64, error) {
	index, terms := doc.vocabulary()
	if len(terms) == 0 {
		return nil, errors.New("lsa: document has no content words")
	}
	rows, cols := len(terms), len(doc.Sentences)
	a := mat.NewDense(rows, cols, nil)
	for j, sent := range doc.Terms {
		counts := termCounts(sent)
		maxCount := 0
		for _, c := range counts {
			maxCount = max(maxCount, c)
		}
		for t, c := range counts {
			a.Set(index[t], j, tfSmoothing+(1-tfSmoothing)*float64(c)/float64(maxCount))
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, errors.New("lsa: singular value decomposition failed")
	}
	sigma := svd.Values(nil)
	var v mat.Dense
	svd.VTo(&v)

	dims := max(l.MinDimensions, int(float64(len(sigma))*l.ReductionRatio))
	dims = min(dims, len(sigma))

	ratings := make([]float64, cols)
	for j := 0; j < cols; j++ {
		sum := 0.0
		for k := 0; k < dims; k++ {
			w := sigma[k] * v.At(j, k)
			sum += w * w
		}
		ratings[j] = math.Sqrt(sum)
	}
	return ratings, nil
}
