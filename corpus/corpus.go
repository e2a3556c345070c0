// Package corpus loads bag-of-words training data into sparse
// document-term matrices.
package corpus

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	log "github.com/golang/glog"
	"github.com/james-bowman/sparse"

	"github.com/jc-healy/TextMAP/matrix"
)

// Load reads a document-term count file into a CSR matrix. The file
// format is one document per line:
//
//	docId wordId:wordCount wordId:wordCount ... wordId:wordCount
//
// Repeated wordIds within a document accumulate. Malformed lines and
// word-count pairs are logged and skipped rather than failing the load.
func Load(fn string) (*sparse.CSR, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	type entry struct {
		doc, word int
		count     float64
	}
	var entries []entry
	docMaxId := -1
	vocabMaxId := -1
	docNum := 0

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		doc := scanner.Text()
		vals := strings.Split(doc, " ")
		if len(vals) < 2 {
			log.Warningf("bad document: %s", doc)
			continue
		}

		docId, err := strconv.Atoi(vals[0])
		if err != nil || docId < 0 {
			log.Warningf("bad document id: %s", vals[0])
			continue
		}

		docNum += 1
		if docId > docMaxId {
			docMaxId = docId
		}

		for _, kv := range vals[1:] {
			wc := strings.Split(kv, ":")
			if len(wc) != 2 {
				log.Warningf("bad word count: %s", kv)
				continue
			}

			wordId, err := strconv.Atoi(wc[0])
			if err != nil || wordId < 0 {
				log.Warningf("bad word id: %s", wc[0])
				continue
			}

			count, err := strconv.Atoi(wc[1])
			if err != nil {
				log.Warningf("bad count: %s", wc[1])
				continue
			}

			entries = append(entries, entry{doc: docId, word: wordId, count: float64(count)})
			if wordId > vocabMaxId {
				vocabMaxId = wordId
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if docMaxId < 0 || vocabMaxId < 0 {
		return nil, fmt.Errorf("corpus: no documents in %s", fn)
	}

	dok := sparse.NewDOK(docMaxId+1, vocabMaxId+1)
	for _, e := range entries {
		dok.Set(e.doc, e.word, dok.At(e.doc, e.word)+e.count)
	}

	log.Infof("number of documents %d", docNum)
	log.Infof("vocabulary size %d", vocabMaxId+1)

	return dok.ToCSR(), nil
}

// RowTokenCounts returns the number of stored tokens per document, the
// row sums of m. Applied to a binarized matrix this counts the distinct
// terms of each document.
func RowTokenCounts(m *sparse.CSR) []float64 {
	return matrix.RowSums(m)
}
