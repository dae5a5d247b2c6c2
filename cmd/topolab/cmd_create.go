package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/topolab-network/topolab/pkg/topology"
)

var (
	createType     string
	createSwitches int
	createHosts    int
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Generate a new topology",
	Long: `Generate a new topology and write it to a document.

Types:
  simple   switches connected in a line (default)
  ring     switches connected in a cycle
  mesh     every switch pair connected, capacity permitting

Hosts are spread across the switches in contiguous blocks.

Examples:
  topolab create -o lab.json
  topolab create --type ring --switches 4 --hosts 8 -o ring.yaml
  topolab create --type mesh --switches 5 -o mesh.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if outputPath == "" {
			return fmt.Errorf("output file required: use -o <file>")
		}

		var (
			t   *topology.Topology
			err error
		)
		switch createType {
		case "simple":
			t, err = topology.GenerateSimple(createSwitches, createHosts)
		case "ring":
			t, err = topology.GenerateRing(createSwitches, createHosts)
		case "mesh":
			t, err = topology.GenerateMesh(createSwitches, createHosts)
		default:
			return fmt.Errorf("unknown topology type %q (want simple, ring, or mesh)", createType)
		}
		if err != nil {
			return err
		}

		if err := t.SaveFile(outputPath); err != nil {
			return err
		}
		fmt.Printf("Created %s topology: %d devices, %d connections -> %s\n",
			createType, t.DeviceCount(), t.ConnectionCount(), outputPath)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVarP(&createType, "type", "t", "simple", "Topology type (simple, ring, mesh)")
	createCmd.Flags().IntVar(&createSwitches, "switches", 2, "Number of switches")
	createCmd.Flags().IntVar(&createHosts, "hosts", 4, "Number of hosts")
	addOutputFlag(createCmd, "Output topology file (required)")
}
