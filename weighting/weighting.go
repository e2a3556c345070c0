// Package weighting rescales the stored entries of a sparse
// document-term matrix by their information content under a fitted
// low-rank topic model.
//
// For a rank one model with term frequencies p(j), the probability of
// term j occurring in a document is p(j) * tokensPerTopic[0] and its
// information weight is -log2 of that probability. For a rank k model
// the weight of entry (i, j) is the expectation of that quantity over
// document i's topic mixture. With k=1 and document-frequency factors
// this reduces to the classic idf weight.
package weighting

import (
	"fmt"
	"math"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/jc-healy/TextMAP/matrix"
)

// EPS floors the information weight so that a degenerate model, one
// which assigns zero probability to every observed term, can never zero
// out or flip the sign of an observed count.
const EPS = 1e-11

// InfoWeight returns a copy of m with each stored value scaled by the
// expected self-information of its term under the factorization given
// by docTopics (documents x k), topicTerms (k x terms) and the per-topic
// scale vector tokensPerTopic (length k). The output shares the input's
// sparsity structure; only values differ. Topics assigning zero
// probability to a term contribute nothing to its weight.
func InfoWeight(m *sparse.CSR, docTopics, topicTerms *mat.Dense, tokensPerTopic []float64) (*sparse.CSR, error) {
	k, err := matrix.ValidateFactors(m, docTopics, topicTerms)
	if err != nil {
		return nil, err
	}
	if len(tokensPerTopic) != k {
		return nil, fmt.Errorf("%w: tokens-per-topic vector has length %d for rank %d",
			matrix.ErrShapeMismatch, len(tokensPerTopic), k)
	}

	rows, cols := m.Dims()
	raw := m.RawMatrix()
	indptr, ind := matrix.CopyStructure(m)
	data := make([]float64, len(raw.Data))

	for i := 0; i < rows; i += 1 {
		for idx := indptr[i]; idx < indptr[i+1]; idx += 1 {
			j := ind[idx]

			infoWeight := EPS
			for t := 0; t < k; t += 1 {
				colProb := topicTerms.At(t, j) * tokensPerTopic[t]
				if colProb > 0.0 {
					infoWeight += -docTopics.At(i, t) * math.Log2(colProb)
				}
			}

			data[idx] = raw.Data[idx] * infoWeight
		}
	}

	return sparse.NewCSR(rows, cols, indptr, ind, data), nil
}

// TokensPerTopic converts a fitted document-topic embedding into the
// per-topic scale vector consumed by InfoWeight: the token count of
// each document projected onto the topics and averaged over documents,
// (tokenCounts^T . embedding) / nDocs.
func TokensPerTopic(tokenCounts []float64, embedding *mat.Dense) ([]float64, error) {
	nDocs, k := embedding.Dims()
	if len(tokenCounts) != nDocs {
		return nil, fmt.Errorf("%w: token count vector has length %d for %d documents",
			matrix.ErrShapeMismatch, len(tokenCounts), nDocs)
	}

	out := make([]float64, k)
	col := make([]float64, nDocs)
	for t := 0; t < k; t += 1 {
		mat.Col(col, t, embedding)
		out[t] = floats.Dot(tokenCounts, col) / float64(nDocs)
	}
	return out, nil
}
