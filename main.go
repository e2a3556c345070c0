package main

import (
	"flag"

	log "github.com/golang/glog"

	"github.com/jc-healy/TextMAP/background"
	"github.com/jc-healy/TextMAP/corpus"
	"github.com/jc-healy/TextMAP/matrix"
	"github.com/jc-healy/TextMAP/model"
)

var (
	input      = flag.String("input_file", "", "input document-term count file")
	topicModel = flag.String("model", "lda", "low-rank model type")
	topicNum   = flag.Int("k", 1, "number of latent topics")
	precision  = flag.Float64("em_precision", 1e-4, "EM convergence tolerance")
	lowThresh  = flag.Float64("em_threshold", 1e-5, "EM sparsification floor")
	bgPrior    = flag.Float64("em_background_prior", 5.0, "background pseudo-count strength")
	output     = flag.String("output", "textmap", "output file prefix")
)

func main() {
	flag.Parse()
	defer log.Flush()

	// read training data
	data, err := corpus.Load(*input)
	if err != nil {
		log.Fatalf("load corpus: %v", err)
	}
	rows, cols := data.Dims()
	log.Infof("corpus: %d documents, %d terms, %d nonzeros", rows, cols, data.NNZ())

	// rescale entries by information content
	weighter := model.NewInformationWeighter(*topicNum, *topicModel)
	weighted, err := weighter.FitTransform(data)
	if err != nil {
		log.Fatalf("information weighting: %v", err)
	}

	// remove the corpus-wide background from each document
	em := background.DefaultConfig()
	em.Precision = *precision
	em.LowThresh = *lowThresh
	em.BackgroundPrior = *bgPrior

	remover := model.NewEffectsRemover(*topicNum, *topicModel, em)
	cleaned, err := remover.FitTransform(weighted)
	if err != nil {
		log.Fatalf("background removal: %v", err)
	}

	if err := matrix.WriteCSR(weighted, *output+".weighted"); err != nil {
		log.Fatalf("write weighted matrix: %v", err)
	}
	if err := matrix.WriteCSR(cleaned, *output+".cleaned"); err != nil {
		log.Fatalf("write cleaned matrix: %v", err)
	}
	if err := matrix.WriteVector(remover.MixWeights, *output+".mix"); err != nil {
		log.Fatalf("write mix weights: %v", err)
	}
	log.Infof("wrote %s.weighted, %s.cleaned, %s.mix", *output, *output, *output)
}
