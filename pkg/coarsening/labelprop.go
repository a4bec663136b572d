package coarsening

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/gilchrisn/graph-coarsening-service/pkg/graph"
)

// Result represents the output of one coarsening step
type Result struct {
	Mapping        []int `json:"mapping"`          // Mapping[i] = coarse node ID of node i
	NumCoarseNodes int   `json:"num_coarse_nodes"` // number of distinct clusters
	Permutation    []int `json:"-"`                // node visitation order used
	PassMoves      []int `json:"pass_moves"`       // nodes relabeled per pass
	RuntimeMS      int64 `json:"runtime_ms"`
}

// Run executes one size-constrained label propagation coarsening step.
//
// Every node starts in its own singleton cluster. For a fixed number of
// passes each node adopts the cluster with the largest accumulated incoming
// edge weight among its neighbors, with ties broken by a fair coin flip.
// A cluster is only eligible if admitting the node keeps its total node
// weight within ceil(upper_bound_partition); a node may always stay in its
// current cluster. Cluster IDs are compacted to [0, k) afterwards, and the
// cluster count is published on the graph as its partition count.
func Run(g *graph.Graph, config *Config, ctx context.Context) (*Result, error) {
	startTime := time.Now()
	logger := config.CreateLogger()

	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("invalid graph: %w", err)
	}
	if config.UpperBoundPartition() < 0 {
		return nil, fmt.Errorf("upper bound partition must be non-negative: %f", config.UpperBoundPartition())
	}
	if config.LabelIterations() < 0 {
		return nil, fmt.Errorf("label iterations must be non-negative: %d", config.LabelIterations())
	}

	result := &Result{
		Mapping:     make([]int, g.NumNodes),
		Permutation: make([]int, g.NumNodes),
	}
	g.SetPartitionCount(0)

	blockUpperbound := int64(math.Ceil(config.UpperBoundPartition()))

	logger.Info().
		Int("nodes", g.NumNodes).
		Int64("block_upperbound", blockUpperbound).
		Int("label_iterations", config.LabelIterations()).
		Str("node_ordering", config.NodeOrdering()).
		Msg("Starting label propagation coarsening")

	rng := rand.New(rand.NewSource(config.RandomSeed()))
	if err := buildPermutation(g, config.NodeOrdering(), rng, result.Permutation); err != nil {
		return nil, fmt.Errorf("failed to build node ordering: %w", err)
	}

	clusterID := make([]int, g.NumNodes)
	numCoarseNodes, passMoves, err := labelPropagation(ctx, g, config, blockUpperbound, clusterID, result.Permutation, rng, logger)
	if err != nil {
		return nil, err
	}

	createCoarseMapping(g, clusterID, result.Mapping)

	result.NumCoarseNodes = numCoarseNodes
	result.PassMoves = passMoves
	result.RuntimeMS = time.Since(startTime).Milliseconds()
	g.SetPartitionCount(numCoarseNodes)

	logger.Info().
		Int("coarse_nodes", numCoarseNodes).
		Float64("compression_ratio", float64(numCoarseNodes)/float64(g.NumNodes)).
		Int64("runtime_ms", result.RuntimeMS).
		Msg("Coarsening step completed")

	return result, nil
}

// labelPropagation runs the propagation passes and returns the compacted
// cluster count plus the per-pass move counts. clusterID is left holding the
// compacted cluster of every node.
func labelPropagation(ctx context.Context, g *graph.Graph, config *Config, blockUpperbound int64,
	clusterID []int, permutation []int, rng *rand.Rand, logger zerolog.Logger,
) (int, []int, error) {
	// votes accumulates incoming edge weight per candidate cluster. It is
	// shared across nodes and zeroed lazily during each node's second sweep,
	// so every entry written in the first sweep is reset in the second.
	votes := make([]int64, g.NumNodes)
	clusterSizes := make([]int64, g.NumNodes)

	for node := 0; node < g.NumNodes; node++ {
		clusterSizes[node] = g.NodeWeight(node)
		clusterID[node] = node
	}

	passMoves := make([]int, 0, config.LabelIterations())

	for pass := 0; pass < config.LabelIterations(); pass++ {
		select {
		case <-ctx.Done():
			return 0, nil, ctx.Err()
		default:
		}

		moves := 0
		for i := 0; i < g.NumNodes; i++ {
			node := permutation[i]
			nodeWeight := g.NodeWeight(node)
			neighbors, weights := g.Neighbors(node)

			// First sweep: accumulate votes from the neighborhood.
			for j, target := range neighbors {
				votes[clusterID[target]] += weights[j]
			}

			// Second sweep: pick the strongest eligible cluster and reset
			// each vote right after reading it.
			myBlock := clusterID[node]
			maxBlock := myBlock
			var maxValue int64

			for _, target := range neighbors {
				curBlock := clusterID[target]
				curValue := votes[curBlock]
				if (curValue > maxValue || (curValue == maxValue && rng.Intn(2) == 0)) &&
					(clusterSizes[curBlock]+nodeWeight <= blockUpperbound || curBlock == myBlock) {
					maxValue = curValue
					maxBlock = curBlock
				}

				votes[curBlock] = 0
			}

			clusterSizes[myBlock] -= nodeWeight
			clusterSizes[maxBlock] += nodeWeight
			if maxBlock != myBlock {
				moves++
			}
			clusterID[node] = maxBlock
		}

		passMoves = append(passMoves, moves)

		if config.EnableProgress() {
			logger.Info().
				Int("pass", pass+1).
				Int("moves", moves).
				Msg("Label propagation pass completed")
		}

		if config.EarlyTermination() && moves == 0 {
			logger.Debug().Int("pass", pass+1).Msg("Converged: no moves")
			break
		}
	}

	numCoarseNodes := remapClusterIDs(g, clusterID, config.ApplyPartition())
	return numCoarseNodes, passMoves, nil
}

// remapClusterIDs compacts the arbitrary cluster IDs in clusterID into the
// dense range [0, k) and returns k. IDs are assigned in node index order:
// the first node of each cluster claims the next unused dense ID. When
// applyToGraph is set the compacted labeling is also written into the
// graph's partition.
func remapClusterIDs(g *graph.Graph, clusterID []int, applyToGraph bool) int {
	numClusters := 0
	remap := make(map[int]int)

	for node := 0; node < g.NumNodes; node++ {
		cur := clusterID[node]
		dense, seen := remap[cur]
		if !seen {
			dense = numClusters
			remap[cur] = dense
			numClusters++
		}
		clusterID[node] = dense
	}

	if applyToGraph {
		for node := 0; node < g.NumNodes; node++ {
			g.SetPartition(node, clusterID[node])
		}
		g.SetPartitionCount(numClusters)
	}

	return numClusters
}

// createCoarseMapping copies the final cluster assignment into the mapping
// consumed by the contraction step.
func createCoarseMapping(g *graph.Graph, clusterID []int, coarseMapping []int) {
	for node := 0; node < g.NumNodes; node++ {
		coarseMapping[node] = clusterID[node]
	}
}
