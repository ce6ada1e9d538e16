package layout

import (
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/dicklesworthstone/spanscope/pkg/model"
)

// callEdge aggregates one directed caller->callee relationship observed
// across every occurrence of a selected frame, for the sandwich view.
type callEdge struct {
	fromName int32
	toName   int32
	totalUs  int64
	count    int
}

// callGraph builds a simple directed graph (one edge per pair) of name-to-name call
// relationships around every occurrence of target in profile, aggregating
// by (caller, callee) pair rather than by span instance. This mirrors the
// teacher's topological-sort/critical-path graph construction, repurposed
// from issue dependency edges to profiler call edges.
type callGraph struct {
	g        *simple.DirectedGraph
	nodeOf   map[int32]int64
	nameOf   map[int64]int32
	edgeUs   map[[2]int64]int64
	edgeHits map[[2]int64]int
}

func newCallGraph() *callGraph {
	return &callGraph{
		g:        simple.NewDirectedGraph(),
		nodeOf:   make(map[int32]int64),
		nameOf:   make(map[int64]int32),
		edgeUs:   make(map[[2]int64]int64),
		edgeHits: make(map[[2]int64]int),
	}
}

func (c *callGraph) nodeFor(name int32) int64 {
	if id, ok := c.nodeOf[name]; ok {
		return id
	}
	n := c.g.NewNode()
	c.g.AddNode(n)
	c.nodeOf[name] = n.ID()
	c.nameOf[n.ID()] = name
	return n.ID()
}

func (c *callGraph) addEdge(from, to int32, durationUs int64) {
	u, v := c.nodeFor(from), c.nodeFor(to)
	if !c.g.HasEdgeFromTo(u, v) {
		c.g.SetEdge(c.g.NewEdge(c.g.Node(u), c.g.Node(v)))
	}
	key := [2]int64{u, v}
	c.edgeUs[key] += durationUs
	c.edgeHits[key]++
}

// aggregatedCallers returns every caller name feeding into target,
// aggregated across all occurrences, sorted by total duration descending.
func (c *callGraph) aggregatedCallers(target int32) []callEdge {
	v := c.nodeFor(target)
	var out []callEdge
	to := c.g.To(v)
	for to.Next() {
		u := to.Node().ID()
		key := [2]int64{u, v}
		out = append(out, callEdge{
			fromName: c.nameOf[u],
			toName:   target,
			totalUs:  c.edgeUs[key],
			count:    c.edgeHits[key],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].totalUs > out[j].totalUs })
	return out
}

// aggregatedCallees returns every callee name target calls into,
// aggregated across all occurrences, sorted by total duration descending.
func (c *callGraph) aggregatedCallees(target int32) []callEdge {
	u := c.nodeFor(target)
	var out []callEdge
	from := c.g.From(u)
	for from.Next() {
		v := from.Node().ID()
		key := [2]int64{u, v}
		out = append(out, callEdge{
			fromName: target,
			toName:   c.nameOf[v],
			totalUs:  c.edgeUs[key],
			count:    c.edgeHits[key],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].totalUs > out[j].totalUs })
	return out
}

var _ graph.Graph = (*simple.DirectedGraph)(nil)

// buildCallGraph walks every span in profile and records a (parent-name,
// span-name) edge weighted by the span's duration, so the sandwich view
// can aggregate caller/callee relationships without re-walking the arena
// for every distinct call site.
func buildCallGraph(profile *model.Profile) *callGraph {
	cg := newCallGraph()
	for i := range profile.Arena {
		s := &profile.Arena[i]
		parent := profile.Parent(s)
		if parent == nil {
			continue
		}
		cg.addEdge(parent.Name, s.Name, s.Duration())
	}
	return cg
}
