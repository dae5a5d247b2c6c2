package topology

// analyze.go converts the topology into a gonum graph representation to
// answer reachability questions: connected components and shortest paths.
// Each link counts one hop regardless of the interfaces it uses.

import (
	"sort"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
	graphtopo "gonum.org/v1/gonum/graph/topo"

	"github.com/topolab-network/topolab/pkg/util"
)

// buildGraph maps device ids onto consecutive int64 node ids (sorted order)
// and mirrors every connection as an undirected edge. Parallel links between
// the same device pair collapse to one edge; a device wired to itself
// contributes no edge.
func (t *Topology) buildGraph() (*simple.UndirectedGraph, map[string]int64, map[int64]string) {
	g := simple.NewUndirectedGraph()
	toNode := make(map[string]int64, len(t.devices))
	toID := make(map[int64]string, len(t.devices))

	for i, id := range t.DeviceIDs() {
		n := int64(i)
		toNode[id] = n
		toID[n] = id
		g.AddNode(simple.Node(n))
	}

	for _, c := range t.connections {
		a, b := toNode[c.Device1], toNode[c.Device2]
		if a == b {
			continue
		}
		g.SetEdge(g.NewEdge(simple.Node(a), simple.Node(b)))
	}
	return g, toNode, toID
}

// ConnectedComponents returns the device ids of each connected component.
// Component members are sorted, and components are ordered by their first
// member, so the result is deterministic for a given topology.
func (t *Topology) ConnectedComponents() [][]string {
	if len(t.devices) == 0 {
		return nil
	}

	g, _, toID := t.buildGraph()
	raw := graphtopo.ConnectedComponents(g)

	components := make([][]string, 0, len(raw))
	for _, nodes := range raw {
		ids := make([]string, 0, len(nodes))
		for _, n := range nodes {
			ids = append(ids, toID[n.ID()])
		}
		sort.Strings(ids)
		components = append(components, ids)
	}
	sort.Slice(components, func(i, j int) bool {
		return components[i][0] < components[j][0]
	})
	return components
}

// ShortestPath returns the device ids along a minimum-hop path from one
// device to another, endpoints included. An empty path means the devices are
// not reachable from each other.
func (t *Topology) ShortestPath(from, to string) ([]string, error) {
	if _, ok := t.devices[from]; !ok {
		return nil, util.NewDeviceNotFoundError(from)
	}
	if _, ok := t.devices[to]; !ok {
		return nil, util.NewDeviceNotFoundError(to)
	}
	if from == to {
		return []string{from}, nil
	}

	g, toNode, toID := t.buildGraph()
	shortest := path.DijkstraFrom(simple.Node(toNode[from]), g)
	nodes, _ := shortest.To(toNode[to])
	if len(nodes) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(nodes))
	for _, n := range nodes {
		ids = append(ids, toID[n.ID()])
	}
	return ids, nil
}
