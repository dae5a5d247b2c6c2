package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/topolab-network/topolab/pkg/topology"
	"github.com/topolab-network/topolab/pkg/visualize"
)

var visualizeCmd = &cobra.Command{
	Use:   "visualize <file>",
	Short: "Render a topology as Graphviz DOT",
	Long: `Render a topology as a Graphviz DOT document.

Writes to stdout unless -o is given. Render the result with Graphviz:

  topolab visualize lab.json -o lab.dot && neato -Tpng lab.dot -o lab.png`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := topology.LoadFile(args[0])
		if err != nil {
			return err
		}
		if outputPath == "" {
			return visualize.WriteDOT(t, os.Stdout)
		}
		return visualize.SaveDOT(t, outputPath)
	},
}

func init() {
	addOutputFlag(visualizeCmd, "Output DOT file (default stdout)")
}
