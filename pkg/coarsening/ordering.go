package coarsening

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/gilchrisn/graph-coarsening-service/pkg/graph"
)

// buildPermutation fills perm with the node visitation order for the
// propagation passes. perm must have length g.NumNodes; the result is a
// bijection on [0, NumNodes).
func buildPermutation(g *graph.Graph, strategy string, rng *rand.Rand, perm []int) error {
	if len(perm) != g.NumNodes {
		return fmt.Errorf("permutation length %d does not match node count %d", len(perm), g.NumNodes)
	}

	for i := range perm {
		perm[i] = i
	}

	switch strategy {
	case OrderingNatural:
		// identity order
	case OrderingRandom:
		rng.Shuffle(len(perm), func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })
	case OrderingDegree:
		sort.SliceStable(perm, func(i, j int) bool {
			return g.Degree(perm[i]) < g.Degree(perm[j])
		})
	default:
		return fmt.Errorf("unknown node ordering %q", strategy)
	}

	return nil
}
