package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/gilchrisn/graph-coarsening-service/pkg/coarsening"
	"github.com/gilchrisn/graph-coarsening-service/pkg/graph"
)

func main() {
	graphFile := flag.String("graph", "", "input graph in METIS format")
	mappingFile := flag.String("mapping", "", "output file for the coarse mapping (optional)")
	coarseFile := flag.String("coarse", "", "output file for the contracted graph (optional)")
	configFile := flag.String("config", "", "configuration file (optional)")
	upperBound := flag.Float64("upper-bound", 0, "maximum cluster weight")
	iterations := flag.Int("iterations", -1, "number of label propagation passes")
	ordering := flag.String("ordering", "", "node ordering: natural, random or degree")
	seed := flag.Int64("seed", 0, "random seed for tie-breaking (0 = time-based)")
	logLevel := flag.String("log-level", "", "log level")
	flag.Parse()

	if *graphFile == "" {
		flag.Usage()
		os.Exit(1)
	}

	config := coarsening.NewConfig()
	if *configFile != "" {
		if err := config.LoadFromFile(*configFile); err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			os.Exit(1)
		}
	}
	if *upperBound > 0 {
		config.Set("coarsening.upper_bound_partition", *upperBound)
	}
	if *iterations >= 0 {
		config.Set("coarsening.label_iterations", *iterations)
	}
	if *ordering != "" {
		config.Set("coarsening.node_ordering", *ordering)
	}
	if *seed != 0 {
		config.Set("coarsening.random_seed", *seed)
	}
	if *logLevel != "" {
		config.Set("logging.level", *logLevel)
	}

	logger := config.CreateLogger()

	g, err := graph.ReadMetis(*graphFile)
	if err != nil {
		logger.Fatal().Err(err).Str("file", *graphFile).Msg("Failed to read graph")
	}

	result, err := coarsening.Run(g, config, context.Background())
	if err != nil {
		logger.Fatal().Err(err).Msg("Coarsening failed")
	}

	stats, err := coarsening.ClusterStats(g, result.Mapping, result.NumCoarseNodes)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to compute cluster stats")
	}
	logger.Info().
		Int("clusters", stats.NumClusters).
		Float64("min_weight", stats.MinWeight).
		Float64("max_weight", stats.MaxWeight).
		Float64("mean_weight", stats.MeanWeight).
		Float64("std_dev", stats.StdDev).
		Float64("imbalance", stats.Imbalance).
		Msg("Cluster weight distribution")

	if *mappingFile != "" {
		if err := writeMapping(*mappingFile, result.Mapping); err != nil {
			logger.Fatal().Err(err).Str("file", *mappingFile).Msg("Failed to write mapping")
		}
	}

	if *coarseFile != "" {
		coarse, err := coarsening.Contract(g, result.Mapping, result.NumCoarseNodes, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("Contraction failed")
		}
		if err := graph.WriteMetis(*coarseFile, coarse); err != nil {
			logger.Fatal().Err(err).Str("file", *coarseFile).Msg("Failed to write coarse graph")
		}
	}
}

// writeMapping writes one coarse node ID per line, in node index order.
func writeMapping(path string, mapping []int) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create mapping file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for _, c := range mapping {
		fmt.Fprintln(w, c)
	}
	return w.Flush()
}
