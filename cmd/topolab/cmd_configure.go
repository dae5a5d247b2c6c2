package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/topolab-network/topolab/pkg/topology"
	"github.com/topolab-network/topolab/pkg/util"
)

var (
	assignMask  string
	routeMetric int
)

var assignIPCmd = &cobra.Command{
	Use:   "assign-ip <file> <host> <ip>",
	Short: "Assign an IP address to a host",
	Long: `Assign an IPv4 address to a host device. The subnet mask defaults to
255.255.255.0.

Examples:
  topolab assign-ip lab.json host1 10.0.0.10
  topolab assign-ip lab.json host1 10.0.0.10 --mask 255.255.0.0`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !util.IsValidIPv4(args[2]) {
			return fmt.Errorf("invalid IPv4 address %q", args[2])
		}
		if assignMask != "" && !util.IsValidIPv4(assignMask) {
			return fmt.Errorf("invalid subnet mask %q", assignMask)
		}
		return editTopology(args[0], func(t *topology.Topology) error {
			if err := t.AssignHostIP(args[1], args[2], assignMask); err != nil {
				return err
			}
			fmt.Printf("Assigned %s to %s\n", args[2], args[1])
			return nil
		})
	},
}

var vlanCmd = &cobra.Command{
	Use:   "vlan <file> <switch> <vlan-id> <name> [port...]",
	Short: "Configure a VLAN on a switch",
	Long: `Create or replace a VLAN on a switch with the given member ports.

Examples:
  topolab vlan lab.json switch1 100 servers port1 port2
  topolab vlan lab.json switch1 200 storage`,
	Args: cobra.MinimumNArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editTopology(args[0], func(t *topology.Topology) error {
			if err := t.ConfigureVLAN(args[1], args[2], args[3], args[4:]); err != nil {
				return err
			}
			fmt.Printf("Configured VLAN %s (%s) on %s with %d port(s)\n",
				args[2], args[3], args[1], len(args[4:]))
			return nil
		})
	},
}

var stpCmd = &cobra.Command{
	Use:   "stp <file> <switch> <priority>",
	Short: "Set a switch's spanning tree priority",
	Long: `Set the spanning tree priority of a switch. Lower values win root
bridge election.

Examples:
  topolab stp lab.json switch1 4096`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		priority, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid priority %q: %w", args[2], err)
		}
		return editTopology(args[0], func(t *topology.Topology) error {
			if err := t.ConfigureSTP(args[1], priority); err != nil {
				return err
			}
			fmt.Printf("Set STP priority %d on %s\n", priority, args[1])
			return nil
		})
	},
}

var routeCmd = &cobra.Command{
	Use:   "route <file> <switch> <network> <next-hop>",
	Short: "Add a static route to an L3 switch",
	Long: `Add a static route to an L3 switch's routing table. The metric
defaults to 1.

Examples:
  topolab route lab.json core1 10.1.0.0/16 10.0.0.1
  topolab route lab.json core1 0.0.0.0/0 10.0.0.254 --metric 10`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editTopology(args[0], func(t *topology.Topology) error {
			if err := t.ConfigureRoute(args[1], args[2], args[3], routeMetric); err != nil {
				return err
			}
			fmt.Printf("Added route %s via %s on %s\n", args[2], args[3], args[1])
			return nil
		})
	},
}

func init() {
	assignIPCmd.Flags().StringVar(&assignMask, "mask", "", "Subnet mask (default 255.255.255.0)")
	routeCmd.Flags().IntVar(&routeMetric, "metric", 1, "Route metric")

	for _, cmd := range []*cobra.Command{assignIPCmd, vlanCmd, stpCmd, routeCmd} {
		addOutputFlag(cmd, "Output file (default: rewrite input)")
	}
}
