package visualize

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/topolab-network/topolab/pkg/topology"
)

func TestWriteDOT(t *testing.T) {
	topo, err := topology.GenerateSimple(2, 2)
	if err != nil {
		t.Fatal(err)
	}

	var b strings.Builder
	if err := WriteDOT(topo, &b); err != nil {
		t.Fatalf("WriteDOT: %v", err)
	}
	out := b.String()

	if !strings.HasPrefix(out, `graph "Simple Network" {`) {
		t.Errorf("unexpected graph header:\n%s", out)
	}
	for _, want := range []string{
		`"switch1" [label="Switch 1", shape=box, fillcolor=lightblue];`,
		`"host1" [label="Host 1", shape=ellipse, fillcolor=lightgreen];`,
		`"switch1" -- "switch2" [label="port2 - port2", fontsize=8];`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if !strings.HasSuffix(out, "}\n") {
		t.Error("output not terminated")
	}
}

func TestWriteDOTDropsLabelsOnLargeGraphs(t *testing.T) {
	topo, err := topology.GenerateMesh(7, 0) // 21 links
	if err != nil {
		t.Fatal(err)
	}

	var b strings.Builder
	if err := WriteDOT(topo, &b); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(b.String(), "fontsize=8") {
		t.Error("edge labels should be suppressed above the size limit")
	}
}

func TestWriteDOTDeterministic(t *testing.T) {
	topo, err := topology.GenerateRing(3, 3)
	if err != nil {
		t.Fatal(err)
	}

	var first, second strings.Builder
	if err := WriteDOT(topo, &first); err != nil {
		t.Fatal(err)
	}
	if err := WriteDOT(topo, &second); err != nil {
		t.Fatal(err)
	}
	if first.String() != second.String() {
		t.Error("renderings of the same topology differ")
	}
}

func TestSaveDOT(t *testing.T) {
	topo, err := topology.GenerateSimple(1, 1)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "lab.dot")
	if err := SaveDOT(topo, path); err != nil {
		t.Fatalf("SaveDOT: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"host1" -- "switch1"`) {
		t.Errorf("saved file missing host link:\n%s", data)
	}
}
