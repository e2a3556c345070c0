package model

import (
	"github.com/james-bowman/nlp"
	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

func init() {
	Register("lda", NewLDA)
}

// LDA adapts a latent Dirichlet allocation backend to the
// documents-by-terms orientation used across this repository. The
// backend itself works on terms-by-docs matrices, so inputs and
// outputs are transposed at this boundary and nowhere else.
type LDA struct {
	topicCount int

	lda        *nlp.LatentDirichletAllocation
	embedding  *mat.Dense
	components *mat.Dense
}

// NewLDA creates an unfitted LDA backend with topicCount latent topics.
func NewLDA(topicCount int) TopicModel {
	return &LDA{topicCount: topicCount}
}

func (l *LDA) Fit(m *sparse.CSR) error {
	lda := nlp.NewLatentDirichletAllocation(l.topicCount)

	topicsOverDocs, err := lda.FitTransform(m.T())
	if err != nil {
		return err
	}

	l.lda = lda
	l.embedding = mat.DenseCopyOf(topicsOverDocs.T())
	l.components = mat.DenseCopyOf(lda.Components())
	return nil
}

func (l *LDA) Transform(m *sparse.CSR) (*mat.Dense, error) {
	if l.lda == nil {
		return nil, ErrNotFitted
	}
	topicsOverDocs, err := l.lda.Transform(m.T())
	if err != nil {
		return nil, err
	}
	return mat.DenseCopyOf(topicsOverDocs.T()), nil
}

func (l *LDA) Embedding() *mat.Dense {
	return l.embedding
}

func (l *LDA) Components() *mat.Dense {
	return l.components
}
