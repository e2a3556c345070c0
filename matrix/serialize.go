package matrix

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	log "github.com/golang/glog"
	"github.com/james-bowman/sparse"
)

// WriteCSR serializes the nonzero entries of m to a text file: a
// "rows,cols" header line followed by one "i,j,value" line per stored
// nonzero entry.
func WriteCSR(m *sparse.CSR, fn string) error {
	out, err := os.OpenFile(fn, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, os.ModePerm)
	if err != nil {
		return err
	}
	defer out.Close()

	rows, cols := m.Dims()
	if rows*cols == 0 {
		return nil
	}
	// write the matrix shape
	fmt.Fprintf(out, "%d,%d\n", rows, cols)

	raw := m.RawMatrix()
	for i := 0; i < rows; i += 1 {
		for idx := raw.Indptr[i]; idx < raw.Indptr[i+1]; idx += 1 {
			if raw.Data[idx] != 0 { // only write out nonzero values
				fmt.Fprintf(out, "%d,%d,%e\n", i, raw.Ind[idx], raw.Data[idx])
			}
		}
	}
	return nil
}

// ReadCSR deserializes a matrix written by WriteCSR. Corrupted entry
// lines are logged and skipped.
func ReadCSR(fn string) (*sparse.CSR, error) {
	file, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	lineIdx := 0
	var tmp *sparse.DOK

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		txt := scanner.Text()
		if lineIdx == 0 {
			shape := strings.Split(txt, ",")
			if len(shape) != 2 {
				return nil, fmt.Errorf("matrix corrupted, shape not found: %s", txt)
			}
			rows, err := strconv.Atoi(shape[0])
			if err != nil {
				return nil, err
			}
			cols, err := strconv.Atoi(shape[1])
			if err != nil {
				return nil, err
			}
			tmp = sparse.NewDOK(rows, cols)
			lineIdx += 1
			continue
		}

		value := strings.Split(txt, ",")
		if len(value) != 3 {
			log.Warningf("data corrupted, line %d, data %s", lineIdx, txt)
			lineIdx += 1
			continue
		}
		ridx, err := strconv.Atoi(value[0])
		if err != nil {
			return nil, err
		}
		cidx, err := strconv.Atoi(value[1])
		if err != nil {
			return nil, err
		}
		val, err := strconv.ParseFloat(value[2], 64)
		if err != nil {
			return nil, err
		}
		tmp.Set(ridx, cidx, val)

		lineIdx += 1
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if tmp == nil {
		return nil, fmt.Errorf("matrix corrupted, empty file: %s", fn)
	}

	return tmp.ToCSR(), nil
}

// WriteVector serializes a float vector to a text file, one value per
// line after a length header.
func WriteVector(v []float64, fn string) error {
	out, err := os.OpenFile(fn, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, os.ModePerm)
	if err != nil {
		return err
	}
	defer out.Close()

	fmt.Fprintf(out, "%d\n", len(v))
	for _, val := range v {
		fmt.Fprintf(out, "%e\n", val)
	}
	return nil
}

// ReadVector deserializes a vector written by WriteVector.
func ReadVector(fn string) ([]float64, error) {
	file, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var v []float64

	scanner := bufio.NewScanner(file)
	lineIdx := 0
	for scanner.Scan() {
		txt := scanner.Text()
		if lineIdx == 0 {
			n, err := strconv.Atoi(txt)
			if err != nil {
				return nil, err
			}
			v = make([]float64, 0, n)
			lineIdx += 1
			continue
		}
		val, err := strconv.ParseFloat(txt, 64)
		if err != nil {
			return nil, err
		}
		v = append(v, val)
		lineIdx += 1
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return v, nil
}
