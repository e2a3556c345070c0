package model

import (
	"github.com/james-bowman/sparse"

	"github.com/jc-healy/TextMAP/matrix"
	"github.com/jc-healy/TextMAP/weighting"
)

// InformationWeighter fits a low-rank topic model to the binarized
// occurrence pattern of a document-term matrix and rescales matrix
// entries by their information content under it.
type InformationWeighter struct {
	TopicCount int
	ModelType  string

	model          TopicModel
	tokensPerTopic []float64
}

// NewInformationWeighter builds a weighter backed by the registered
// model type.
func NewInformationWeighter(topicCount int, modelType string) *InformationWeighter {
	return &InformationWeighter{
		TopicCount: topicCount,
		ModelType:  modelType,
	}
}

// Fit binarizes X, fits the topic model to the occurrence pattern and
// derives the per-topic token scale from the binary row sums.
func (w *InformationWeighter) Fit(X *sparse.CSR) error {
	m, err := New(w.ModelType, w.TopicCount)
	if err != nil {
		return err
	}

	binary := matrix.Binarize(X)
	if err := m.Fit(binary); err != nil {
		return err
	}

	tokensPerTopic, err := weighting.TokensPerTopic(matrix.RowSums(binary), m.Embedding())
	if err != nil {
		return err
	}

	w.model = m
	w.tokensPerTopic = tokensPerTopic
	return nil
}

// Transform re-embeds the binarized X under the fitted model and
// applies the information-weight kernel to X.
func (w *InformationWeighter) Transform(X *sparse.CSR) (*sparse.CSR, error) {
	if w.model == nil {
		return nil, ErrNotFitted
	}

	embedding, err := w.model.Transform(matrix.Binarize(X))
	if err != nil {
		return nil, err
	}
	return weighting.InfoWeight(X, embedding, w.model.Components(), w.tokensPerTopic)
}

// FitTransform fits the model to X and weights X with the fit-time
// embedding, avoiding the extra projection Transform performs.
func (w *InformationWeighter) FitTransform(X *sparse.CSR) (*sparse.CSR, error) {
	if err := w.Fit(X); err != nil {
		return nil, err
	}
	return weighting.InfoWeight(X, w.model.Embedding(), w.model.Components(), w.tokensPerTopic)
}
