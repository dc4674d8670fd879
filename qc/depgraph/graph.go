// Package depgraph builds the per-kernel dependency graph: a DAG whose
// nodes are SOURCE, each gate of the kernel, and SINK, and whose arcs
// encode the minimal ordering hazards between gates (spec §4.1),
// generalized from the teacher qc/dag package's NodeID/parent-child
// adjacency style to the richer qubit/classical/bit event model.
package depgraph

import (
	"fmt"

	"github.com/kegliz/qcore/qc/ir"
)

// NodeID identifies a graph vertex. 0 is always SOURCE.
type NodeID uint64

// OperandType is the resource kind that caused a given arc.
type OperandType int

const (
	OperandQubit OperandType = iota
	OperandCreg
	OperandBreg
)

func (t OperandType) String() string {
	switch t {
	case OperandQubit:
		return "qubit"
	case OperandCreg:
		return "creg"
	case OperandBreg:
		return "breg"
	default:
		return "unknown"
	}
}

// ArcKind names the dependency hazard an arc represents, per spec
// §4.1's "AafterB" convention: the target does A, having been preceded
// by B on the same operand.
type ArcKind int

const (
	DAD ArcKind = iota
	DAX
	DAZ
	XAD
	XAX
	XAZ
	ZAD
	ZAX
	ZAZ
	WAW
	WAR
	RAW
	RAR
)

func (k ArcKind) String() string {
	names := [...]string{"DAD", "DAX", "DAZ", "XAD", "XAX", "XAZ", "ZAD", "ZAX", "ZAZ", "WAW", "WAR", "RAW", "RAR"}
	if int(k) < 0 || int(k) >= len(names) {
		return "?"
	}
	return names[k]
}

// Arc is one dependency edge: From must complete Weight cycles before To
// may begin.
type Arc struct {
	From, To NodeID
	Kind     ArcKind
	Operand  OperandType
	Index    int
	Weight   uint64
}

// Node is one DAG vertex: SOURCE, SINK, or a gate from the kernel's
// circuit. Gate is nil for SOURCE/SINK.
type Node struct {
	ID       NodeID
	Gate     *ir.Instruction
	IsSource bool
	IsSink   bool
	Weight   uint64 // ceil(duration/cycle_time); 0 for SOURCE/SINK

	parents  []NodeID
	children []NodeID
	out      []int // indices into Graph.arcs, outgoing from this node
	in       []int // indices into Graph.arcs, incoming to this node
}

// Parents returns a copy of the direct predecessor node IDs.
func (n *Node) Parents() []NodeID { return append([]NodeID(nil), n.parents...) }

// Children returns a copy of the direct successor node IDs.
func (n *Node) Children() []NodeID { return append([]NodeID(nil), n.children...) }

// Graph is the frozen result of Build: an arena of nodes and arcs for
// one kernel.
type Graph struct {
	nodes  []*Node
	arcs   []*Arc
	source NodeID
	sink   NodeID
}

// Source returns SOURCE's node ID.
func (g *Graph) Source() NodeID { return g.source }

// Sink returns SINK's node ID.
func (g *Graph) Sink() NodeID { return g.sink }

// Node returns the node for id. Panics on an unknown id: callers only
// ever hold ids this graph issued.
func (g *Graph) Node(id NodeID) *Node {
	n := g.nodes[id]
	if n == nil {
		panic(fmt.Sprintf("depgraph: unknown node id %d", id))
	}
	return n
}

// NumNodes returns the node count, including SOURCE and SINK.
func (g *Graph) NumNodes() int { return len(g.nodes) }

// TotalWeight sums every node's weight: an upper bound on the length of
// any path through the graph, used by the scheduler's backward sentinel.
func (g *Graph) TotalWeight() uint64 {
	var total uint64
	for _, n := range g.nodes {
		total += n.Weight
	}
	return total
}

// Arcs returns every arc in the graph, in construction order.
func (g *Graph) Arcs() []*Arc { return append([]*Arc(nil), g.arcs...) }

// OutArcs returns the arcs leaving id.
func (g *Graph) OutArcs(id NodeID) []*Arc {
	n := g.Node(id)
	out := make([]*Arc, len(n.out))
	for i, idx := range n.out {
		out[i] = g.arcs[idx]
	}
	return out
}

// InArcs returns the arcs entering id.
func (g *Graph) InArcs(id NodeID) []*Arc {
	n := g.Node(id)
	out := make([]*Arc, len(n.in))
	for i, idx := range n.in {
		out[i] = g.arcs[idx]
	}
	return out
}

func (g *Graph) addNode(n *Node) NodeID {
	n.ID = NodeID(len(g.nodes))
	g.nodes = append(g.nodes, n)
	return n.ID
}

func (g *Graph) addArc(from, to NodeID, kind ArcKind, operand OperandType, index int) {
	weight := g.nodes[from].Weight
	idx := len(g.arcs)
	g.arcs = append(g.arcs, &Arc{From: from, To: to, Kind: kind, Operand: operand, Index: index, Weight: weight})

	fromNode, toNode := g.nodes[from], g.nodes[to]
	fromNode.out = append(fromNode.out, idx)
	toNode.in = append(toNode.in, idx)
	fromNode.children = append(fromNode.children, to)
	toNode.parents = append(toNode.parents, from)
}

// acyclic reports whether the graph has no cycle, via Kahn's algorithm
// on the parent/child adjacency (mirrors the teacher dag package's
// calculateTopoSort cycle check).
func (g *Graph) acyclic() bool {
	inDeg := make([]int, len(g.nodes))
	for id, n := range g.nodes {
		inDeg[id] = len(n.parents)
	}
	queue := make([]NodeID, 0, len(g.nodes))
	for id, d := range inDeg {
		if d == 0 {
			queue = append(queue, NodeID(id))
		}
	}
	visited := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		visited++
		for _, c := range g.nodes[id].children {
			inDeg[c]--
			if inDeg[c] == 0 {
				queue = append(queue, c)
			}
		}
	}
	return visited == len(g.nodes)
}
