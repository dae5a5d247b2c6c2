package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/topolab-network/topolab/pkg/cli"
	"github.com/topolab-network/topolab/pkg/controlplane"
	"github.com/topolab-network/topolab/pkg/topology"
)

var planCmd = &cobra.Command{
	Use:   "plan <file> [device]",
	Short: "Show provisioning plans for switches",
	Long: `Generate the provisioning plan a switch would receive: VLAN creation,
port membership, STP priority, and static routes, in delivery order.

With no device argument, plans every switch in the topology.

Examples:
  topolab plan lab.json
  topolab plan lab.json switch1 --json`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := topology.LoadFile(args[0])
		if err != nil {
			return err
		}

		var plans []*controlplane.Plan
		if len(args) == 2 {
			plan, err := controlplane.BuildDevicePlan(t, args[1])
			if err != nil {
				return err
			}
			plans = []*controlplane.Plan{plan}
		} else {
			if plans, err = controlplane.BuildPlans(t); err != nil {
				return err
			}
		}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(plans)
		}

		for i, plan := range plans {
			if i > 0 {
				fmt.Println()
			}
			fmt.Printf("%s (%d steps)\n", cli.Bold(plan.Device), len(plan.Steps))
			for _, s := range plan.Steps {
				fmt.Printf("  %s\n", s)
			}
		}
		return nil
	},
}

func init() {
	addJSONFlag(planCmd)
}
