package coarsening

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/gilchrisn/graph-coarsening-service/pkg/graph"
)

// Stats summarizes the cluster weight distribution of a coarsening step.
type Stats struct {
	NumClusters int     `json:"num_clusters"`
	MinWeight   float64 `json:"min_weight"`
	MaxWeight   float64 `json:"max_weight"`
	MeanWeight  float64 `json:"mean_weight"`
	StdDev      float64 `json:"std_dev"`
	Imbalance   float64 `json:"imbalance"` // max weight over perfectly balanced weight
}

// ClusterStats computes the weight distribution of the clusters described by
// mapping.
func ClusterStats(g *graph.Graph, mapping []int, numClusters int) (Stats, error) {
	if len(mapping) != g.NumNodes {
		return Stats{}, fmt.Errorf("mapping length %d does not match node count %d", len(mapping), g.NumNodes)
	}
	if numClusters <= 0 {
		return Stats{}, fmt.Errorf("cluster count must be positive: %d", numClusters)
	}

	weights := make([]float64, numClusters)
	for node := 0; node < g.NumNodes; node++ {
		c := mapping[node]
		if c < 0 || c >= numClusters {
			return Stats{}, fmt.Errorf("node %d maps to invalid cluster %d", node, c)
		}
		weights[c] += float64(g.NodeWeight(node))
	}

	total := floats.Sum(weights)
	max := floats.Max(weights)

	stdDev := 0.0
	if numClusters > 1 {
		stdDev = stat.StdDev(weights, nil)
	}

	return Stats{
		NumClusters: numClusters,
		MinWeight:   floats.Min(weights),
		MaxWeight:   max,
		MeanWeight:  stat.Mean(weights, nil),
		StdDev:      stdDev,
		Imbalance:   max / (total / float64(numClusters)),
	}, nil
}
