package coarsening

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/gilchrisn/graph-coarsening-service/pkg/graph"
)

// Contract builds the coarse graph for a finished coarsening step. Each
// cluster becomes one coarse node whose weight is the summed weight of its
// members; edges between clusters are aggregated into single weighted coarse
// edges. Edges internal to a cluster are dropped, so the coarse graph
// carries no self-loops.
func Contract(g *graph.Graph, mapping []int, numCoarseNodes int, logger zerolog.Logger) (*graph.Graph, error) {
	if len(mapping) != g.NumNodes {
		return nil, fmt.Errorf("mapping length %d does not match node count %d", len(mapping), g.NumNodes)
	}
	if numCoarseNodes <= 0 {
		return nil, fmt.Errorf("coarse node count must be positive: %d", numCoarseNodes)
	}

	coarse := graph.NewGraph(numCoarseNodes)
	for c := 0; c < numCoarseNodes; c++ {
		coarse.SetNodeWeight(c, 0)
	}

	for node := 0; node < g.NumNodes; node++ {
		c := mapping[node]
		if c < 0 || c >= numCoarseNodes {
			return nil, fmt.Errorf("node %d maps to invalid coarse node %d", node, c)
		}
		coarse.SetNodeWeight(c, coarse.NodeWeight(c)+g.NodeWeight(node))
	}

	// Every undirected edge appears in both endpoint lists; the cu < cv
	// condition counts it exactly once and skips intra-cluster edges.
	coarseEdges := make(map[[2]int]int64)
	for node := 0; node < g.NumNodes; node++ {
		cu := mapping[node]
		neighbors, weights := g.Neighbors(node)
		for j, target := range neighbors {
			cv := mapping[target]
			if cu < cv {
				coarseEdges[[2]int{cu, cv}] += weights[j]
			}
		}
	}

	// Insert in sorted order so the coarse adjacency lists are deterministic.
	keys := make([][2]int, 0, len(coarseEdges))
	for key := range coarseEdges {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] != keys[j][0] {
			return keys[i][0] < keys[j][0]
		}
		return keys[i][1] < keys[j][1]
	})

	for _, key := range keys {
		if err := coarse.AddEdge(key[0], key[1], coarseEdges[key]); err != nil {
			return nil, fmt.Errorf("failed to add coarse edge %d-%d: %w", key[0], key[1], err)
		}
	}

	logger.Info().
		Int("original_nodes", g.NumNodes).
		Int("coarse_nodes", numCoarseNodes).
		Int("coarse_edges", len(keys)).
		Float64("compression_ratio", float64(numCoarseNodes)/float64(g.NumNodes)).
		Msg("Graph contraction completed")

	return coarse, nil
}
