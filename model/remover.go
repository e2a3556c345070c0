package model

import (
	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"

	"github.com/jc-healy/TextMAP/background"
	"github.com/jc-healy/TextMAP/matrix"
)

// EffectsRemover fits a low-rank topic model to a document-term matrix
// and removes the modeled background from each document, leaving the
// document-specific foreground distribution.
type EffectsRemover struct {
	TopicCount int
	ModelType  string
	EM         background.Config

	// MixWeights holds the per-row foreground fractions of the last
	// Transform or FitTransform call.
	MixWeights []float64

	// NormalizedInput records whether the last Transform or
	// FitTransform had to L1-normalize its input rows. Callers that
	// pre-normalize avoid the extra copy.
	NormalizedInput bool

	model TopicModel
}

// NewEffectsRemover builds a remover backed by the registered model
// type, with the given EM tunables.
func NewEffectsRemover(topicCount int, modelType string, em background.Config) *EffectsRemover {
	return &EffectsRemover{
		TopicCount: topicCount,
		ModelType:  modelType,
		EM:         em,
	}
}

// Fit fits the topic model to the raw matrix X.
func (r *EffectsRemover) Fit(X *sparse.CSR) error {
	m, err := New(r.ModelType, r.TopicCount)
	if err != nil {
		return err
	}
	if err := m.Fit(X); err != nil {
		return err
	}
	r.model = m
	return nil
}

// Transform embeds X under the fitted model and runs the EM kernel on
// its row distributions, normalizing them first when needed.
func (r *EffectsRemover) Transform(X *sparse.CSR) (*sparse.CSR, error) {
	if r.model == nil {
		return nil, ErrNotFitted
	}

	embedding, err := r.model.Transform(X)
	if err != nil {
		return nil, err
	}
	return r.remove(X, embedding)
}

// FitTransform fits the model to X and removes its background using the
// fit-time embedding.
func (r *EffectsRemover) FitTransform(X *sparse.CSR) (*sparse.CSR, error) {
	if err := r.Fit(X); err != nil {
		return nil, err
	}
	return r.remove(X, r.model.Embedding())
}

func (r *EffectsRemover) remove(X *sparse.CSR, embedding *mat.Dense) (*sparse.CSR, error) {
	r.NormalizedInput = !matrix.RowsStochastic(X)
	normalized := X
	if r.NormalizedInput {
		normalized = matrix.NormalizeRowsL1(X)
	}

	cleaned, mixWeights, err := background.RemoveBackground(normalized, embedding, r.model.Components(), r.EM)
	if err != nil {
		return nil, err
	}
	r.MixWeights = mixWeights
	return cleaned, nil
}
