package matrix

import (
	"math"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/floats"
)

// tolerance used by the row-stochastic predicate
const stochasticTol = 1e-8

// RowSums returns the sum of the stored values of each row of m.
func RowSums(m *sparse.CSR) []float64 {
	raw := m.RawMatrix()
	sums := make([]float64, raw.I)
	for i := 0; i < raw.I; i += 1 {
		sums[i] = floats.Sum(raw.Data[raw.Indptr[i]:raw.Indptr[i+1]])
	}
	return sums
}

// RowsStochastic reports whether every row of m sums to (approximately)
// zero or one, i.e. whether the rows already hold probability
// distributions. Callers that need normalized rows should check this
// predicate and apply NormalizeRowsL1 when it is false.
func RowsStochastic(m *sparse.CSR) bool {
	for _, s := range RowSums(m) {
		if math.Abs(s) > stochasticTol && math.Abs(s-1.0) > stochasticTol {
			return false
		}
	}
	return true
}

// NormalizeRowsL1 returns a copy of m with every nonempty row rescaled
// to sum to one. Zero rows stay zero. The input is not mutated.
func NormalizeRowsL1(m *sparse.CSR) *sparse.CSR {
	rows, cols := m.Dims()
	raw := m.RawMatrix()
	indptr, ind := CopyStructure(m)

	data := make([]float64, len(raw.Data))
	copy(data, raw.Data)
	for i := 0; i < rows; i += 1 {
		row := data[indptr[i]:indptr[i+1]]
		if sum := floats.Sum(row); sum != 0 {
			floats.Scale(1.0/sum, row)
		}
	}

	return sparse.NewCSR(rows, cols, indptr, ind, data)
}

// Binarize returns a copy of m with every stored value replaced by one.
func Binarize(m *sparse.CSR) *sparse.CSR {
	rows, cols := m.Dims()
	raw := m.RawMatrix()
	indptr, ind := CopyStructure(m)

	data := make([]float64, len(raw.Data))
	for idx := range data {
		data[idx] = 1.0
	}

	return sparse.NewCSR(rows, cols, indptr, ind, data)
}

// CopyStructure returns fresh copies of the row pointer and column index
// arrays of m, for building an output matrix on the same support.
func CopyStructure(m *sparse.CSR) (indptr, ind []int) {
	raw := m.RawMatrix()
	indptr = make([]int, len(raw.Indptr))
	copy(indptr, raw.Indptr)
	ind = make([]int, len(raw.Ind))
	copy(ind, raw.Ind)
	return indptr, ind
}
