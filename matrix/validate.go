package matrix

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// ValidateFactors checks that a pair of dense factor matrices is
// consistent with the sparse matrix they factorize: docTopics must have
// one row per matrix row, topicTerms must have one column per matrix
// column, and their latent dimensions must agree. It returns the latent
// dimension k, or an error wrapping ErrShapeMismatch before any
// arithmetic is attempted.
func ValidateFactors(m *sparse.CSR, docTopics, topicTerms *mat.Dense) (int, error) {
	rows, cols := m.Dims()
	dr, dk := docTopics.Dims()
	tk, tc := topicTerms.Dims()

	if dr != rows {
		return 0, fmt.Errorf("%w: doc-topic matrix has %d rows for %d documents",
			ErrShapeMismatch, dr, rows)
	}
	if dk != tk {
		return 0, fmt.Errorf("%w: doc-topic rank %d, topic-term rank %d",
			ErrShapeMismatch, dk, tk)
	}
	if tc < cols {
		return 0, fmt.Errorf("%w: topic-term matrix has %d columns for %d terms",
			ErrShapeMismatch, tc, cols)
	}

	return dk, nil
}
