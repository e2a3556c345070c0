// Package background decomposes each row of a sparse matrix into a
// foreground/background mixture and returns the cleaned foreground
// distributions together with per-row mixing weights.
//
// The background component of a row is fixed, obtained by projecting
// the fitted low-rank factorization onto the row's sparsity pattern;
// the foreground component is re-estimated by EM on a two-component
// multinomial mixture. A Beta-like prior on the mixing weight keeps
// short rows from collapsing to a single component.
package background

import (
	"math"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/jc-healy/TextMAP/matrix"
)

// Config holds the tunables of a RemoveBackground call.
type Config struct {
	// Precision is the relative L1 change of the mixture prediction
	// below which a row's EM loop stops.
	Precision float64

	// LowThresh is the sparsification floor: foreground entries below
	// it are zeroed after every iteration.
	LowThresh float64

	// BackgroundPrior is the pseudo-count strength of the background
	// component in the mixing weight update.
	BackgroundPrior float64

	// MaxIter bounds the number of EM iterations per row.
	MaxIter int
}

// DefaultConfig returns the standard EM tunables.
func DefaultConfig() Config {
	return Config{
		Precision:       1e-4,
		LowThresh:       1e-5,
		BackgroundPrior: 5.0,
		MaxIter:         200,
	}
}

// pseudo-count of the foreground component in the mixing weight update
const foregroundPrior = 1.0

// saturation bounds on the mixing weight; once the weight leaves the
// interior the mixture has effectively collapsed to one component and
// iteration halts
const (
	mixLow  = 1e-2
	mixHigh = 1.0 - 1e-2
)

// rowStatus records how a row's EM loop ended.
type rowStatus int

const (
	rowConverged rowStatus = iota
	rowSaturated
	rowMaxIter
	rowDegenerate
)

// RemoveBackground fits the two-component mixture to every row of m and
// returns the cleaned foreground distributions (same sparsity structure
// as m, zeroed entries kept in place) and one mixing weight per row, the
// estimated fraction of the row's mass that is foreground.
//
// Rows of m must already be L1-normalized distributions; callers can
// check matrix.RowsStochastic and apply matrix.NormalizeRowsL1 first.
// A row whose background projection has no mass on the row's support
// falls back to a uniform background over that support rather than
// failing the call. Empty rows and rows that sparsify away completely
// come back as zero rows with mixing weight zero.
func RemoveBackground(m *sparse.CSR, docTopics, topicTerms *mat.Dense, cfg Config) (*sparse.CSR, []float64, error) {
	k, err := matrix.ValidateFactors(m, docTopics, topicTerms)
	if err != nil {
		return nil, nil, err
	}

	rows, cols := m.Dims()
	raw := m.RawMatrix()
	indptr, ind := matrix.CopyStructure(m)
	data := make([]float64, len(raw.Data))
	mixWeights := make([]float64, rows)

	// normalizer of the mixing weight update, from the Beta pseudo-counts
	mp := 1.0 + foregroundPrior + cfg.BackgroundPrior

	for i := 0; i < rows; i += 1 {
		start, end := indptr[i], indptr[i+1]
		if start == end {
			continue
		}

		st := newRowState(raw.Data[start:end])
		st.projectBackground(i, ind[start:end], docTopics, topicTerms, k)
		st.run(cfg, mp)

		copy(data[start:end], st.current)
		mixWeights[i] = st.mixParam
	}

	return sparse.NewCSR(rows, cols, indptr, ind, data), mixWeights, nil
}

// rowState holds the per-row EM accumulators. Rows are independent, so
// a fresh state is built for every row and discarded after its loop.
type rowState struct {
	data       []float64 // observed row distribution, read-only
	background []float64 // row-restricted background distribution
	current    []float64 // current foreground estimate
	posterior  []float64 // per-token foreground responsibility
	estimated  []float64 // mixture prediction, the convergence reference
	lastEst    []float64
	mixParam   float64
}

func newRowState(rowData []float64) *rowState {
	n := len(rowData)
	return &rowState{
		data:       rowData,
		background: make([]float64, n),
		current:    make([]float64, n),
		posterior:  make([]float64, n),
		estimated:  make([]float64, n),
		lastEst:    make([]float64, n),
	}
}

// projectBackground restricts the dense background model to the row's
// sparsity pattern and L1-normalizes it: terms absent from the document
// contribute nothing to the row's background estimate. A projection
// with no mass at all falls back to uniform over the support.
func (s *rowState) projectBackground(i int, rowInd []int, docTopics, topicTerms *mat.Dense, k int) {
	for idx, j := range rowInd {
		bgVal := 0.0
		for t := 0; t < k; t += 1 {
			bgVal += docTopics.At(i, t) * topicTerms.At(t, j)
		}
		s.background[idx] = bgVal
	}

	sum := floats.Sum(s.background)
	if sum == 0.0 {
		uniform := 1.0 / float64(len(s.background))
		for idx := range s.background {
			s.background[idx] = uniform
		}
		return
	}
	floats.Scale(1.0/sum, s.background)
}

// run iterates EM on the row until the mixture prediction stops moving,
// the mixing weight saturates, or the iteration budget runs out.
func (s *rowState) run(cfg Config, mp float64) rowStatus {
	n := len(s.data)

	s.mixParam = 0.5
	for idx := 0; idx < n; idx += 1 {
		s.current[idx] = s.mixParam*s.data[idx] + (1.0-s.mixParam)*s.background[idx]
		s.lastEst[idx] = s.mixParam*s.current[idx] + (1.0 - s.mixParam)
	}

	for iter := 0; iter < cfg.MaxIter; iter += 1 {
		if s.mixParam <= mixLow || s.mixParam >= mixHigh {
			return rowSaturated
		}

		// posterior responsibility of the foreground per token
		for idx := 0; idx < n; idx += 1 {
			denom := s.current[idx]*s.mixParam + s.background[idx]*(1.0-s.mixParam)
			if denom > 0.0 {
				s.posterior[idx] = s.current[idx] * s.mixParam / denom
			} else {
				s.posterior[idx] = 0.0
			}
		}

		// re-estimate the foreground mass and the mixing weight
		for idx := 0; idx < n; idx += 1 {
			s.current[idx] = s.posterior[idx] * s.data[idx]
		}
		sum := floats.Sum(s.current)
		s.mixParam = (sum + foregroundPrior) / mp
		if sum == 0.0 {
			return s.degenerate()
		}
		floats.Scale(1.0/sum, s.current)

		// relative L1 change of the mixture prediction
		changeMagnitude := 0.0
		for idx := 0; idx < n; idx += 1 {
			est := s.mixParam*s.current[idx] + (1.0 - s.mixParam)
			changeMagnitude += math.Abs(est-s.lastEst[idx]) / est
			s.estimated[idx] = est
		}
		copy(s.lastEst, s.estimated)

		// zero out any small values and renormalize the rest
		norm := 0.0
		for idx := 0; idx < n; idx += 1 {
			if s.current[idx] < cfg.LowThresh {
				s.current[idx] = 0.0
			} else {
				norm += s.current[idx]
			}
		}
		if norm == 0.0 {
			return s.degenerate()
		}
		floats.Scale(1.0/norm, s.current)

		if changeMagnitude <= cfg.Precision {
			return rowConverged
		}
	}

	return rowMaxIter
}

// degenerate zeroes the row and its mixing weight: every token fell
// below the sparsification floor, or no foreground mass survived the
// posterior step.
func (s *rowState) degenerate() rowStatus {
	for idx := range s.current {
		s.current[idx] = 0.0
	}
	s.mixParam = 0.0
	return rowDegenerate
}
