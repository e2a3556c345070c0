package weighting

import (
	"testing"

	"github.com/james-bowman/sparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/jc-healy/TextMAP/matrix"
)

// counts [[2,0,1],[0,3,1]] as CSR
func testMatrix() *sparse.CSR {
	return sparse.NewCSR(2, 3,
		[]int{0, 2, 4},
		[]int{0, 2, 1, 2},
		[]float64{2, 1, 3, 1})
}

func TestInfoWeightRankOne(t *testing.T) {
	m := testMatrix()
	docTopics := mat.NewDense(2, 1, []float64{1, 1})
	topicTerms := mat.NewDense(1, 3, []float64{0.4, 0.5, 0.1})

	out, err := InfoWeight(m, docTopics, topicTerms, []float64{1.0})
	require.NoError(t, err)

	// v * -log2(colProb), plus the EPS floor
	assert.InDelta(t, 2*1.3219, out.At(0, 0), 1e-3)
	assert.InDelta(t, 1*3.3219, out.At(0, 2), 1e-3)
	assert.InDelta(t, 3*1.0, out.At(1, 1), 1e-3)
	assert.InDelta(t, 1*3.3219, out.At(1, 2), 1e-3)
}

func TestInfoWeightFloor(t *testing.T) {
	m := testMatrix()
	docTopics := mat.NewDense(2, 1, []float64{1, 1})
	// every modeled probability degenerate
	topicTerms := mat.NewDense(1, 3, []float64{0, 0, 0})

	out, err := InfoWeight(m, docTopics, topicTerms, []float64{1.0})
	require.NoError(t, err)

	assert.InDelta(t, 2*EPS, out.At(0, 0), 1e-15)
	assert.InDelta(t, 1*EPS, out.At(1, 2), 1e-15)
	assert.Greater(t, out.At(0, 0), 0.0)
}

func TestInfoWeightMonotonicity(t *testing.T) {
	m := testMatrix()
	docTopics := mat.NewDense(2, 1, []float64{1, 1})

	common := mat.NewDense(1, 3, []float64{0.9, 0.5, 0.1})
	rare := mat.NewDense(1, 3, []float64{0.3, 0.5, 0.1})

	outCommon, err := InfoWeight(m, docTopics, common, []float64{1.0})
	require.NoError(t, err)
	outRare, err := InfoWeight(m, docTopics, rare, []float64{1.0})
	require.NoError(t, err)

	// lower term probability means a larger reweighted value
	assert.Greater(t, outRare.At(0, 0), outCommon.At(0, 0))
}

func TestInfoWeightShapeInvariance(t *testing.T) {
	m := testMatrix()
	docTopics := mat.NewDense(2, 2, []float64{0.7, 0.3, 0.2, 0.8})
	topicTerms := mat.NewDense(2, 3, []float64{0.4, 0.5, 0.1, 0.1, 0.2, 0.7})

	out, err := InfoWeight(m, docTopics, topicTerms, []float64{1.0, 2.0})
	require.NoError(t, err)

	inRaw := m.RawMatrix()
	outRaw := out.RawMatrix()
	assert.Equal(t, inRaw.Indptr, outRaw.Indptr)
	assert.Equal(t, inRaw.Ind, outRaw.Ind)
	assert.Equal(t, m.NNZ(), out.NNZ())
}

func TestInfoWeightInputNotMutated(t *testing.T) {
	m := testMatrix()
	docTopics := mat.NewDense(2, 1, []float64{1, 1})
	topicTerms := mat.NewDense(1, 3, []float64{0.4, 0.5, 0.1})

	_, err := InfoWeight(m, docTopics, topicTerms, []float64{1.0})
	require.NoError(t, err)

	assert.Equal(t, 2.0, m.At(0, 0))
	assert.Equal(t, 3.0, m.At(1, 1))
}

func TestInfoWeightShapeMismatch(t *testing.T) {
	m := testMatrix()

	// rank mismatch between factors
	_, err := InfoWeight(m,
		mat.NewDense(2, 2, []float64{1, 0, 0, 1}),
		mat.NewDense(1, 3, []float64{0.4, 0.5, 0.1}),
		[]float64{1.0, 1.0})
	assert.ErrorIs(t, err, matrix.ErrShapeMismatch)

	// doc-topic rows disagree with matrix rows
	_, err = InfoWeight(m,
		mat.NewDense(3, 1, []float64{1, 1, 1}),
		mat.NewDense(1, 3, []float64{0.4, 0.5, 0.1}),
		[]float64{1.0})
	assert.ErrorIs(t, err, matrix.ErrShapeMismatch)

	// topic-term matrix narrower than the column space
	_, err = InfoWeight(m,
		mat.NewDense(2, 1, []float64{1, 1}),
		mat.NewDense(1, 2, []float64{0.4, 0.6}),
		[]float64{1.0})
	assert.ErrorIs(t, err, matrix.ErrShapeMismatch)

	// tokens-per-topic length disagrees with rank
	_, err = InfoWeight(m,
		mat.NewDense(2, 1, []float64{1, 1}),
		mat.NewDense(1, 3, []float64{0.4, 0.5, 0.1}),
		[]float64{1.0, 1.0})
	assert.ErrorIs(t, err, matrix.ErrShapeMismatch)
}

func TestTokensPerTopic(t *testing.T) {
	embedding := mat.NewDense(2, 2, []float64{
		1.0, 0.0,
		0.5, 0.5,
	})

	tokensPerTopic, err := TokensPerTopic([]float64{4, 2}, embedding)
	require.NoError(t, err)

	// (counts^T . embedding) / nDocs
	assert.InDelta(t, (4*1.0+2*0.5)/2, tokensPerTopic[0], 1e-12)
	assert.InDelta(t, (4*0.0+2*0.5)/2, tokensPerTopic[1], 1e-12)

	_, err = TokensPerTopic([]float64{4}, embedding)
	assert.ErrorIs(t, err, matrix.ErrShapeMismatch)
}
