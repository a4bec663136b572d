// Package graph provides the weighted undirected graph structure consumed by
// the coarsening algorithms. Nodes carry integer weights, edges carry integer
// weights, and the graph exposes a partition labeling that clustering
// algorithms may write back into.
package graph

import "fmt"

// Graph represents a weighted undirected graph using flat adjacency arrays.
type Graph struct {
	NumNodes    int
	NodeWeights []int64   // NodeWeights[i] = weight of node i
	Adjacency   [][]int   // Adjacency[i] = list of neighbors of node i
	EdgeWeights [][]int64 // EdgeWeights[i][j] = weight of edge from i to Adjacency[i][j]

	Partition      []int // Partition[i] = block ID of node i (written by clustering)
	PartitionCount int   // number of blocks in the current partition
}

// NewGraph creates a graph with n nodes. All node weights default to 1.
func NewGraph(numNodes int) *Graph {
	g := &Graph{
		NumNodes:    numNodes,
		NodeWeights: make([]int64, numNodes),
		Adjacency:   make([][]int, numNodes),
		EdgeWeights: make([][]int64, numNodes),
		Partition:   make([]int, numNodes),
	}
	for i := range g.NodeWeights {
		g.NodeWeights[i] = 1
	}
	return g
}

// AddEdge adds an undirected weighted edge between u and v. A self-loop
// (u == v) produces a single adjacency entry.
func (g *Graph) AddEdge(u, v int, weight int64) error {
	if u < 0 || u >= g.NumNodes || v < 0 || v >= g.NumNodes {
		return fmt.Errorf("node index out of range: u=%d, v=%d, numNodes=%d", u, v, g.NumNodes)
	}
	if weight <= 0 {
		return fmt.Errorf("edge weight must be positive: %d", weight)
	}

	g.Adjacency[u] = append(g.Adjacency[u], v)
	g.EdgeWeights[u] = append(g.EdgeWeights[u], weight)

	if u != v {
		g.Adjacency[v] = append(g.Adjacency[v], u)
		g.EdgeWeights[v] = append(g.EdgeWeights[v], weight)
	}

	return nil
}

// Neighbors returns the neighbor list and edge weights of a node.
func (g *Graph) Neighbors(node int) ([]int, []int64) {
	if node < 0 || node >= g.NumNodes {
		return nil, nil
	}
	return g.Adjacency[node], g.EdgeWeights[node]
}

// NodeWeight returns the weight of a node.
func (g *Graph) NodeWeight(node int) int64 {
	return g.NodeWeights[node]
}

// SetNodeWeight sets the weight of a node.
func (g *Graph) SetNodeWeight(node int, weight int64) {
	g.NodeWeights[node] = weight
}

// Degree returns the number of edges incident to a node.
func (g *Graph) Degree(node int) int {
	return len(g.Adjacency[node])
}

// TotalNodeWeight returns the sum of all node weights.
func (g *Graph) TotalNodeWeight() int64 {
	var total int64
	for _, w := range g.NodeWeights {
		total += w
	}
	return total
}

// SetPartition assigns a node to a partition block.
func (g *Graph) SetPartition(node, block int) {
	g.Partition[node] = block
}

// SetPartitionCount records the number of blocks in the current partition.
func (g *Graph) SetPartitionCount(count int) {
	g.PartitionCount = count
}

// Clone creates a deep copy of the graph.
func (g *Graph) Clone() *Graph {
	clone := NewGraph(g.NumNodes)
	clone.PartitionCount = g.PartitionCount
	copy(clone.NodeWeights, g.NodeWeights)
	copy(clone.Partition, g.Partition)

	for i := 0; i < g.NumNodes; i++ {
		clone.Adjacency[i] = make([]int, len(g.Adjacency[i]))
		clone.EdgeWeights[i] = make([]int64, len(g.EdgeWeights[i]))
		copy(clone.Adjacency[i], g.Adjacency[i])
		copy(clone.EdgeWeights[i], g.EdgeWeights[i])
	}

	return clone
}

// Validate checks graph consistency.
func (g *Graph) Validate() error {
	if g.NumNodes <= 0 {
		return fmt.Errorf("graph must have positive number of nodes")
	}
	if len(g.NodeWeights) != g.NumNodes || len(g.Partition) != g.NumNodes {
		return fmt.Errorf("node arrays inconsistent with node count %d", g.NumNodes)
	}

	for i := 0; i < g.NumNodes; i++ {
		if g.NodeWeights[i] < 0 {
			return fmt.Errorf("negative weight %d for node %d", g.NodeWeights[i], i)
		}
		if len(g.Adjacency[i]) != len(g.EdgeWeights[i]) {
			return fmt.Errorf("adjacency and weight arrays inconsistent for node %d", i)
		}

		for j, neighbor := range g.Adjacency[i] {
			if neighbor < 0 || neighbor >= g.NumNodes {
				return fmt.Errorf("invalid neighbor %d for node %d", neighbor, i)
			}
			if g.EdgeWeights[i][j] <= 0 {
				return fmt.Errorf("non-positive weight %d for edge %d-%d", g.EdgeWeights[i][j], i, neighbor)
			}
		}
	}

	return nil
}
