package main

// Example command that loads a traffic-sign split with LoadData and converts a
// small batch into gomlx tensors.
//
// Usage:
//   go run ./example [train|test]
//
// Note: this example expects the images under ./train/<label>/*.ppm and
// ./test/<label>/*.ppm, relative to the working directory. The first run decodes
// the images and writes ./cache/cache__gray_w28_h20_aug-mirror__<split>.npz;
// later runs read the cache instead.

import (
	"fmt"
	"log"
	"os"

	"github.com/Noofbiz/trafficsigns/datasets"
)

func main() {
	split := "train"
	if len(os.Args) > 1 {
		split = os.Args[1]
	}

	cfg, err := datasets.NewConfig(28, 20, datasets.Grayscale, "mirror")
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	ds, err := datasets.LoadData(cfg, split)
	if err != nil {
		log.Fatalf("failed to load %q: %+v", split, err)
	}
	fmt.Printf("Loaded %d samples of %q with configuration %s\n", ds.Len(), split, cfg)
	fmt.Printf("  Dataset shape: %v\n", ds.Shape())

	// Prepare a small batch (first N examples)
	n := min(8, ds.Len())
	indices := make([]int, n)
	for i := range n {
		indices[i] = i
	}
	images, labels, err := ds.BatchTensors(indices)
	if err != nil {
		log.Fatalf("failed to build batch: %v", err)
	}
	fmt.Printf("Created batch tensors: images=%s labels=%s\n", images.Shape(), labels.Shape())

	names := datasets.ClassNames()
	for i, idx := range indices {
		_, label, err := ds.Example(idx)
		if err != nil {
			log.Fatalf("failed to read example %d: %v", idx, err)
		}
		fmt.Printf("  Example %d: label %d (%s)\n", i, label, names[label])
	}

	fmt.Println("\nClass balance:")
	for label, count := range ds.ClassCounts() {
		if count > 0 {
			fmt.Printf("  %2d %-40s %d\n", label, names[label], count)
		}
	}
}
