// Package visualize renders topologies as Graphviz DOT documents.
package visualize

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/topolab-network/topolab/pkg/topology"
	"github.com/topolab-network/topolab/pkg/util"
)

// edgeLabelLimit caps how many links still get interface labels before the
// graph gets too crowded to read.
const edgeLabelLimit = 20

// WriteDOT renders the topology as an undirected Graphviz graph. Switches
// draw as light blue boxes, hosts as light green ellipses. Output is
// deterministic: nodes in id order, edges in connection order.
func WriteDOT(t *topology.Topology, w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "graph %s {\n", quote(t.Name))
	b.WriteString("  layout=neato;\n")
	fmt.Fprintf(&b, "  label=%s;\n", quote("Network Topology: "+t.Name))
	b.WriteString("  node [style=filled, fontsize=10];\n\n")

	for _, id := range t.DeviceIDs() {
		d, _ := t.Device(id)
		switch d.Kind {
		case topology.KindSwitch:
			fmt.Fprintf(&b, "  %s [label=%s, shape=box, fillcolor=lightblue];\n",
				quote(id), quote(d.Name))
		case topology.KindHost:
			fmt.Fprintf(&b, "  %s [label=%s, shape=ellipse, fillcolor=lightgreen];\n",
				quote(id), quote(d.Name))
		}
	}

	conns := t.Connections()
	b.WriteString("\n")
	for _, c := range conns {
		if len(conns) < edgeLabelLimit {
			fmt.Fprintf(&b, "  %s -- %s [label=%s, fontsize=8];\n",
				quote(c.Device1), quote(c.Device2),
				quote(c.Interface1+" - "+c.Interface2))
		} else {
			fmt.Fprintf(&b, "  %s -- %s;\n", quote(c.Device1), quote(c.Device2))
		}
	}
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// SaveDOT writes the DOT rendering to a file.
func SaveDOT(t *topology.Topology, path string) error {
	var b strings.Builder
	if err := WriteDOT(t, &b); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	util.WithTopology(t.Name).Infof("Visualization saved to %s", path)
	return nil
}

func quote(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
}
