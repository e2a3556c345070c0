package model

import (
	"errors"
	"fmt"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

var constructors = make(map[string]Ctor)

// ErrNotFitted is returned when a model or transformer is used before
// its Fit call.
var ErrNotFitted = errors.New("model: not fitted")

// TopicModel is the common interface low-rank factorization backends
// follow. All matrices are in documents-by-terms orientation.
type TopicModel interface {
	// fit the factorization to a docs-by-terms matrix
	Fit(m *sparse.CSR) error
	// project new documents onto the fitted topics (docs x k)
	Transform(m *sparse.CSR) (*mat.Dense, error)
	// document-topic matrix from the fit call (docs x k)
	Embedding() *mat.Dense
	// topic-term matrix (k x terms)
	Components() *mat.Dense
}

// new factorization backends should register themselves using this function
func Register(modelType string, ctor Ctor) {
	constructors[modelType] = ctor
}

type Ctor func(topicCount int) TopicModel

// New resolves a model-type string to a registered backend constructor.
// The string is resolved exactly once, when a transformer is built.
func New(modelType string, topicCount int) (TopicModel, error) {
	ctor, ok := constructors[modelType]
	if !ok {
		return nil, fmt.Errorf("model %s not registered", modelType)
	}
	return ctor(topicCount), nil
}
