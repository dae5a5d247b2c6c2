package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/topolab-network/topolab/pkg/cli"
	"github.com/topolab-network/topolab/pkg/topology"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Check topology connectivity",
	Long: `Check whether the topology forms a single connected network.

Lists the connected components. More than one component means some
devices cannot reach each other, which usually indicates a generation
or editing mistake (a mesh that ran out of ports, an orphaned host).

Examples:
  topolab check lab.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := topology.LoadFile(args[0])
		if err != nil {
			return err
		}

		components := t.ConnectedComponents()

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(components)
		}

		switch len(components) {
		case 0:
			fmt.Println(cli.Yellow("Topology is empty"))
			return nil
		case 1:
			fmt.Printf("%s all %d devices form a single connected network\n",
				cli.Green("OK:"), len(components[0]))
			return nil
		}

		fmt.Printf("%s topology is split into %d components\n",
			cli.Red("DEGRADED:"), len(components))
		for i, members := range components {
			fmt.Printf("  component %d (%d devices): %s\n",
				i+1, len(members), strings.Join(members, ", "))
		}
		return nil
	},
}

var pathCmd = &cobra.Command{
	Use:   "path <file> <from> <to>",
	Short: "Trace the shortest path between two devices",
	Long: `Trace the shortest path between two devices, counting hops.

Examples:
  topolab path lab.json host1 host4`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := topology.LoadFile(args[0])
		if err != nil {
			return err
		}

		hops, err := t.ShortestPath(args[1], args[2])
		if err != nil {
			return err
		}

		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(hops)
		}

		if len(hops) == 0 {
			fmt.Printf("%s no path from %s to %s\n", cli.Red("UNREACHABLE:"), args[1], args[2])
			return nil
		}
		fmt.Printf("%d hop(s): %s\n", len(hops)-1, strings.Join(hops, " -> "))
		return nil
	},
}

func init() {
	addJSONFlag(checkCmd)
	addJSONFlag(pathCmd)
}
