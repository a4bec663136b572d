package graph

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// METIS format flags in the header's third field.
const (
	metisHasEdgeWeights = 1
	metisHasNodeWeights = 10
)

// ReadMetis reads a graph in METIS format. The header line holds the node
// count, the edge count, and an optional format field whose decimal digits
// flag node weights (tens) and edge weights (ones). Each following line
// lists one node's weight (if flagged) and its 1-based neighbors with
// per-edge weights (if flagged). Lines starting with '%' are comments.
func ReadMetis(path string) (*Graph, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open graph file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	lineNo := 0
	header, lineNo, err := nextDataLine(scanner, lineNo)
	if err != nil {
		return nil, fmt.Errorf("missing header line: %w", err)
	}

	fields := strings.Fields(header)
	if len(fields) < 2 {
		return nil, fmt.Errorf("line %d: header must contain node and edge counts", lineNo)
	}

	numNodes, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("line %d: invalid node count %q", lineNo, fields[0])
	}
	numEdges, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, fmt.Errorf("line %d: invalid edge count %q", lineNo, fields[1])
	}

	format := 0
	if len(fields) >= 3 {
		format, err = strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid format field %q", lineNo, fields[2])
		}
	}
	hasNodeWeights := (format/metisHasNodeWeights)%10 == 1
	hasEdgeWeights := format%10 == 1

	g := NewGraph(numNodes)

	for node := 0; node < numNodes; node++ {
		line, no, err := nextDataLine(scanner, lineNo)
		if err != nil {
			return nil, fmt.Errorf("unexpected end of file at node %d: %w", node, err)
		}
		lineNo = no

		tokens := strings.Fields(line)
		pos := 0

		if hasNodeWeights {
			if len(tokens) == 0 {
				return nil, fmt.Errorf("line %d: missing node weight", lineNo)
			}
			w, err := strconv.ParseInt(tokens[0], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid node weight %q", lineNo, tokens[0])
			}
			g.SetNodeWeight(node, w)
			pos = 1
		}

		for pos < len(tokens) {
			target, err := strconv.Atoi(tokens[pos])
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid neighbor %q", lineNo, tokens[pos])
			}
			target-- // 1-based in the file
			pos++

			weight := int64(1)
			if hasEdgeWeights {
				if pos >= len(tokens) {
					return nil, fmt.Errorf("line %d: missing edge weight", lineNo)
				}
				weight, err = strconv.ParseInt(tokens[pos], 10, 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: invalid edge weight %q", lineNo, tokens[pos])
				}
				pos++
			}

			if target == node {
				return nil, fmt.Errorf("line %d: self-loop on node %d not allowed in METIS format", lineNo, node+1)
			}

			// Each undirected edge appears in both endpoint lists; add it once.
			if target > node {
				if err := g.AddEdge(node, target, weight); err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read graph file: %w", err)
	}

	edgeCount := 0
	for i := 0; i < g.NumNodes; i++ {
		edgeCount += len(g.Adjacency[i])
	}
	if edgeCount/2 != numEdges {
		return nil, fmt.Errorf("header declares %d edges, found %d", numEdges, edgeCount/2)
	}

	return g, nil
}

// WriteMetis writes a graph in METIS format. The header always declares
// format 11, so node and edge weights are emitted even when every weight
// is 1.
func WriteMetis(path string, g *Graph) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create graph file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)

	numEdges := 0
	for i := 0; i < g.NumNodes; i++ {
		numEdges += len(g.Adjacency[i])
	}
	numEdges /= 2

	fmt.Fprintf(w, "%d %d 11\n", g.NumNodes, numEdges)

	for node := 0; node < g.NumNodes; node++ {
		fmt.Fprintf(w, "%d", g.NodeWeights[node])
		for j, target := range g.Adjacency[node] {
			fmt.Fprintf(w, " %d %d", target+1, g.EdgeWeights[node][j])
		}
		fmt.Fprintln(w)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write graph file: %w", err)
	}
	return nil
}

// nextDataLine returns the next non-empty, non-comment line.
func nextDataLine(scanner *bufio.Scanner, lineNo int) (string, int, error) {
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}
		return line, lineNo, nil
	}
	if err := scanner.Err(); err != nil {
		return "", lineNo, err
	}
	return "", lineNo, fmt.Errorf("no more lines")
}
