// Copyright 2018 Zanicar. All rights reserved.
// Utilizes a BSD-3 license. Refer to the included LICENSE file for details.

package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/zenajjar/rdh"
	"github.com/zenajjar/rdh/compressor"
	"github.com/zenajjar/rdh/histogram"
	"github.com/zenajjar/rdh/scaling"
	"github.com/zenajjar/rdh/unidirectional"
)

func usage() {
	fmt.Printf("rdh: correct usage examples:\n")
	fmt.Printf("\t> rdh [options] -embed -data {datafile} -in {inputfile} -out {outputfile}\n")
	fmt.Printf("\t> rdh [options] -extract -in {inputfile} -out {outputfile}\n")
}

// algorithms builds the registry the -algo flag selects among, the way
// original_source/rdh.py's RDH class binds a label to an embed/extract
// pair and an iteration limit. cover may be nil on the extract path: only
// bp-unidirectional's Embedder needs the cover's mean, and extraction
// never touches Embedder.
func algorithms(compression rdh.Compressor, iterations int, cover *rdh.Image) []rdh.Algorithm {
	mean := 0.0
	if cover != nil && len(cover.Pix) > 0 {
		for _, v := range cover.Pix {
			mean += float64(v)
		}
		mean /= float64(len(cover.Pix))
	}

	return []rdh.Algorithm{
		{
			Name:      "unidirectional",
			Embedder:  unidirectional.NewEmbedder(compression, nil),
			Extractor: unidirectional.NewExtractor(compression),
			Limit:     64,
		},
		{
			Name:      "bp-unidirectional",
			Embedder:  unidirectional.NewEmbedder(compression, histogram.BrightnessPreserving(mean, rdh.BrightnessThreshold)),
			Extractor: unidirectional.NewExtractor(compression),
		},
		{
			Name:      "scaling-plain",
			Embedder:  scaling.NewEmbedder(compression, nil, scaling.PlainResidual{}),
			Extractor: scaling.NewExtractor(compression, scaling.PlainResidual{}, iterations),
		},
		{
			Name:      "scaling-value-ordered",
			Embedder:  scaling.NewEmbedder(compression, nil, scaling.ValueOrderedResidual{}),
			Extractor: scaling.NewExtractor(compression, scaling.ValueOrderedResidual{}, iterations),
		},
		{
			Name:      "scaling-variable-bit",
			Embedder:  scaling.NewEmbedder(compression, nil, scaling.NewVariableBitResidual(2)),
			Extractor: scaling.NewExtractor(compression, scaling.NewVariableBitResidual(2), iterations),
		},
	}
}

// findAlgorithm looks up a registry entry by name. A zero Limit means
// unbounded, matching original_source/rdh.py's "INF" entries.
func findAlgorithm(algos []rdh.Algorithm, name string) (rdh.Algorithm, error) {
	for _, a := range algos {
		if a.Name == name {
			return a, nil
		}
	}
	return rdh.Algorithm{}, fmt.Errorf("unknown algorithm %q", name)
}

func loadGray(inputFile string) (*rdh.Image, error) {
	f, err := os.Open(inputFile)
	if err != nil {
		return nil, fmt.Errorf("input file: %w", err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	img := rdh.NewImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gray := image.NewGray(image.Rect(0, 0, 1, 1))
			gray.Set(0, 0, src.At(bounds.Min.X+x, bounds.Min.Y+y))
			img.Set(x, y, gray.Pix[0])
		}
	}
	return img, nil
}

func saveGray(outputFile string, img *rdh.Image) error {
	out := image.NewGray(image.Rect(0, 0, img.Width, img.Height))
	copy(out.Pix, img.Pix)

	f, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("output file: %w", err)
	}
	defer f.Close()

	return png.Encode(f, out)
}

func embed(algoName string, compression rdh.Compressor, iterations int, dataFile, inputFile, outputFile string) error {
	data, err := os.ReadFile(dataFile)
	if err != nil {
		return fmt.Errorf("data file: %w", err)
	}

	cover, err := loadGray(inputFile)
	if err != nil {
		return err
	}

	algo, err := findAlgorithm(algorithms(compression, iterations, cover), algoName)
	if err != nil {
		return err
	}
	if algo.Limit > 0 && iterations > algo.Limit {
		iterations = algo.Limit
	}

	marked, iterationsUsed, pureBits, err := algo.Embedder.Embed(cover, data, iterations)
	if err != nil {
		return fmt.Errorf("embed: %w", err)
	}
	log.Info().
		Str("algorithm", algo.Name).
		Int("iterations_used", iterationsUsed).
		Int("pure_bits", pureBits).
		Msg("embed complete")

	return saveGray(outputFile, marked)
}

func extract(algoName string, compression rdh.Compressor, iterations int, inputFile, outputFile string) error {
	marked, err := loadGray(inputFile)
	if err != nil {
		return err
	}

	algo, err := findAlgorithm(algorithms(compression, iterations, nil), algoName)
	if err != nil {
		return err
	}

	_, iterationsUsed, payload, err := algo.Extractor.Extract(marked)
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}
	log.Info().
		Str("algorithm", algo.Name).
		Int("iterations_used", iterationsUsed).
		Int("payload_bytes", len(payload)).
		Msg("extract complete")

	return os.WriteFile(outputFile, payload, 0o644)
}

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var fhelp bool
	flag.BoolVar(&fhelp, "h", false, "help")

	var fverbose bool
	flag.BoolVar(&fverbose, "v", false, "verbose mode")

	var fembed, fextract bool
	flag.BoolVar(&fembed, "embed", false, "executes the embed operation")
	flag.BoolVar(&fextract, "extract", false, "executes the extract operation")

	var dataFile, inputFile, outputFile string
	flag.StringVar(&dataFile, "data", "", "path to data file")
	flag.StringVar(&inputFile, "in", "", "path to input file")
	flag.StringVar(&outputFile, "out", "", "path to output file (create, overwrite)")

	var algoName string
	flag.StringVar(&algoName, "algo", "unidirectional", "algorithm: unidirectional, bp-unidirectional, scaling-plain, scaling-value-ordered, scaling-variable-bit")

	var iterations int
	flag.IntVar(&iterations, "iterations", 1, "iteration budget k")

	var fzip bool
	flag.BoolVar(&fzip, "z", true, "applies deflate compression to the overhead location maps/residuals")

	flag.Parse()

	if fhelp {
		usage()
		fmt.Printf("\nflag and option details:\n")
		flag.PrintDefaults()
		return
	}

	if fverbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	var compression rdh.Compressor = compressor.Zlib{}
	if !fzip {
		compression = noopCompressor{}
	}

	switch {
	case fembed && dataFile != "" && inputFile != "" && outputFile != "" && !fextract:
		if err := embed(algoName, compression, iterations, dataFile, inputFile, outputFile); err != nil {
			log.Fatal().Err(err).Msg("embed failed")
		}
	case fextract && inputFile != "" && outputFile != "" && !fembed:
		if err := extract(algoName, compression, iterations, inputFile, outputFile); err != nil {
			log.Fatal().Err(err).Msg("extract failed")
		}
	default:
		usage()
	}
}

// noopCompressor lets -z=false exercise the core without the deflate
// collaborator, matching the overhead frame's own raw-vs-compressed
// fallback (§4.4/§9's Build comparison already tolerates this).
type noopCompressor struct{}

func (noopCompressor) Compress(data []byte) ([]byte, error)   { return data, nil }
func (noopCompressor) Decompress(data []byte) ([]byte, error) { return data, nil }
