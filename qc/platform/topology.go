// Package platform models the static, immutable-after-load part of a
// compilation target: qubit topology (grid shape, connectivity,
// multi-core partitioning) and the distances between qubits that
// routing/mapping passes need. Grounded on
// original_source/include/ql/plat/topology.h and
// src/ql/plat/topology.cc's Grid class. The platform JSON itself is
// out of scope (spec §1's "JSON configuration parsing for the
// platform" non-goal) — Config is the typed decode target an external
// loader (using encoding/json directly) produces; this package only
// computes the derived topology from it.
package platform

import (
	"math"
	"sort"

	"github.com/kegliz/qcore/qc/cerr"
)

// GridForm is how a topology's neighbor relation is specified.
type GridForm int

const (
	XY GridForm = iota
	Irregular
)

// Connectivity is how edges between qubits are specified.
type Connectivity int

const (
	Specified Connectivity = iota
	Full
)

// Coordinate is an XY qubit's position (XY form only).
type Coordinate struct {
	X, Y int
}

// QubitSpec is one entry of Config.Qubits.
type QubitSpec struct {
	ID int `json:"id"`
	X  int `json:"x"`
	Y  int `json:"y"`
}

// EdgeSpec is one entry of Config.Edges.
type EdgeSpec struct {
	Src int  `json:"src"`
	Dst int  `json:"dst"`
	ID  *int `json:"id,omitempty"`
}

// Config is the typed decode target for the platform JSON's topology
// subset (spec §6). Unknown keys are ignored by encoding/json by
// default, matching the spec's "unknown keys are ignored" rule.
type Config struct {
	Form              string      `json:"form"`
	XSize             int         `json:"x_size"`
	YSize             int         `json:"y_size"`
	Qubits            []QubitSpec `json:"qubits"`
	NumberOfCores     int         `json:"number_of_cores"`
	CommQubitsPerCore int         `json:"comm_qubits_per_core"`
	Connectivity      string      `json:"connectivity"`
	Edges             []EdgeSpec  `json:"edges"`
}

// Topology is the computed, queryable grid: neighbor lists and
// all-pairs distances derived from a Config.
type Topology struct {
	numQubits         int
	numCores          int
	commQubitsPerCore int
	form              GridForm
	coords            map[int]Coordinate
	neighbors         map[int][]int
	distance          [][]int
}

// Build computes a Topology for numQubits qubits from cfg.
func Build(numQubits int, cfg Config) (*Topology, error) {
	t := &Topology{
		numQubits: numQubits,
		numCores:  1,
		coords:    map[int]Coordinate{},
		neighbors: map[int][]int{},
	}
	if cfg.NumberOfCores > 0 {
		t.numCores = cfg.NumberOfCores
	}
	t.commQubitsPerCore = cfg.CommQubitsPerCore
	if t.commQubitsPerCore == 0 && t.numCores > 0 {
		t.commQubitsPerCore = numQubits / t.numCores
	}

	switch cfg.Form {
	case "irregular":
		t.form = Irregular
	default:
		t.form = XY
		for _, q := range cfg.Qubits {
			t.coords[q.ID] = Coordinate{X: q.X, Y: q.Y}
		}
	}

	specified := cfg.Connectivity != "full"
	if specified {
		if err := t.buildFromEdges(cfg.Edges); err != nil {
			return nil, err
		}
	} else {
		t.buildFullyConnected()
	}

	if t.HasCoordinates() {
		for q := range t.neighbors {
			t.neighbors[q] = t.SortNeighborsByAngle(q, t.neighbors[q])
		}
	}

	t.computeDistances()
	return t, nil
}

func (t *Topology) buildFromEdges(edges []EdgeSpec) error {
	seen := map[int]bool{}
	for _, e := range edges {
		id := e.Src*t.numQubits + e.Dst
		if e.ID != nil {
			id = *e.ID
		}
		if seen[id] {
			return cerr.Context(cerr.ErrJsonShape, "platform", "duplicate edge id")
		}
		seen[id] = true
		t.addNeighbor(e.Src, e.Dst)
		t.addNeighbor(e.Dst, e.Src)
	}
	return nil
}

func (t *Topology) addNeighbor(a, b int) {
	for _, n := range t.neighbors[a] {
		if n == b {
			return
		}
	}
	t.neighbors[a] = append(t.neighbors[a], b)
}

// buildFullyConnected wires every qubit pair within a core, and every
// pair of communication qubits across cores, per topology.h's note on
// GridConnectivity::FULL in a multi-core setting.
func (t *Topology) buildFullyConnected() {
	for a := 0; a < t.numQubits; a++ {
		for b := a + 1; b < t.numQubits; b++ {
			if t.CoreIndex(a) == t.CoreIndex(b) || (t.IsCommQubit(a) && t.IsCommQubit(b)) {
				t.addNeighbor(a, b)
				t.addNeighbor(b, a)
			}
		}
	}
}

const unreachable = math.MaxInt32

// computeDistances runs Floyd–Warshall over the neighbor adjacency.
// Plain nested int slices: no ordered-graph library in the example
// corpus reaches this module path (see DESIGN.md).
func (t *Topology) computeDistances() {
	n := t.numQubits
	dist := make([][]int, n)
	for i := range dist {
		dist[i] = make([]int, n)
		for j := range dist[i] {
			switch {
			case i == j:
				dist[i][j] = 0
			default:
				dist[i][j] = unreachable
			}
		}
	}
	for a, nbs := range t.neighbors {
		for _, b := range nbs {
			dist[a][b] = 1
		}
	}
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			if dist[i][k] == unreachable {
				continue
			}
			for j := 0; j < n; j++ {
				if dist[k][j] == unreachable {
					continue
				}
				if d := dist[i][k] + dist[k][j]; d < dist[i][j] {
					dist[i][j] = d
				}
			}
		}
	}
	t.distance = dist
}

// NumQubits returns the qubit count.
func (t *Topology) NumQubits() int { return t.numQubits }

// Form returns the grid form.
func (t *Topology) Form() GridForm { return t.form }

// HasCoordinates reports whether qubits carry XY coordinates.
func (t *Topology) HasCoordinates() bool { return t.form == XY && len(t.coords) > 0 }

// Neighbors returns qubit's directly connected qubits.
func (t *Topology) Neighbors(qubit int) []int {
	return append([]int(nil), t.neighbors[qubit]...)
}

// CoreIndex returns the core a qubit belongs to, assuming an equal
// partition of qubits across cores.
func (t *Topology) CoreIndex(qubit int) int {
	if t.numCores <= 1 {
		return 0
	}
	perCore := t.numQubits / t.numCores
	if perCore == 0 {
		return 0
	}
	return qubit / perCore
}

// IsCommQubit reports whether qubit is one of the first
// comm_qubits_per_core qubits of its core. With a single core every
// qubit counts as a communication qubit, whatever
// comm_qubits_per_core is.
func (t *Topology) IsCommQubit(qubit int) bool {
	if t.numCores <= 1 {
		return true
	}
	perCore := t.numQubits / t.numCores
	if perCore == 0 {
		return false
	}
	offset := qubit % perCore
	return offset < t.commQubitsPerCore
}

// IsInterCoreHop reports whether source and target belong to different
// cores.
func (t *Topology) IsInterCoreHop(source, target int) bool {
	return t.CoreIndex(source) != t.CoreIndex(target)
}

// Distance returns the number of hops between source and target. 0 iff
// source == target.
func (t *Topology) Distance(source, target int) int {
	return t.distance[source][target]
}

// CoreDistance returns the distance between source and target measured
// in cores: 0 when they share a core, 1 otherwise. Multi-core designs
// in this compiler are shallow enough (no core-to-core routing graph
// in scope) that a binary same-core/different-core measure is
// sufficient; see DESIGN.md.
func (t *Topology) CoreDistance(source, target int) int {
	if t.CoreIndex(source) == t.CoreIndex(target) {
		return 0
	}
	return 1
}

// MinHops returns the minimum number of hops required to route a
// two-qubit gate between source and target: normally Distance, but
// bumped by one when every shortest path is entirely inter-core (an
// inter-core hop alone cannot carry a two-qubit gate, per
// topology.h's MinHops documentation).
func (t *Topology) MinHops(source, target int) int {
	d := t.Distance(source, target)
	if t.numCores > 1 && d == t.CoreDistance(source, target) && d > 0 {
		return d + 1
	}
	return d
}

// SortNeighborsByAngle returns nbl reordered clockwise from 12:00 (angle
// measured from the vertical y axis, matching topology.cc's Angle()),
// rotated so the largest angular gap between consecutive neighbors (as
// seen from src) falls at the wrap-around boundary. Build calls this for
// every qubit's neighbor list once coordinates are known; it is also
// exported for callers that need the same ordering on a derived subset
// of neighbors. Only meaningful for XY-form topologies with coordinates.
func (t *Topology) SortNeighborsByAngle(src int, nbl []int) []int {
	if t.form != XY || len(nbl) < 2 {
		return append([]int(nil), nbl...)
	}
	origin := t.coords[src]
	type angled struct {
		qubit int
		angle float64
	}
	as := make([]angled, len(nbl))
	for i, q := range nbl {
		c := t.coords[q]
		as[i] = angled{qubit: q, angle: math.Atan2(float64(c.X-origin.X), float64(c.Y-origin.Y))}
	}
	sort.Slice(as, func(i, j int) bool { return as[i].angle < as[j].angle })

	gapIdx, gap := 0, -1.0
	for i := range as {
		next := as[(i+1)%len(as)]
		d := next.angle - as[i].angle
		if d < 0 {
			d += 2 * math.Pi
		}
		if d > gap {
			gap, gapIdx = d, i
		}
	}

	out := make([]int, 0, len(as))
	for i := 1; i <= len(as); i++ {
		out = append(out, as[(gapIdx+i)%len(as)].qubit)
	}
	return out
}
