package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/topolab-network/topolab/pkg/topology"
)

var connectCmd = &cobra.Command{
	Use:   "connect <file> <device1> <interface1> <device2> <interface2>",
	Short: "Connect two device interfaces",
	Long: `Connect two device interfaces with a link. Both interfaces must exist
and be free.

Examples:
  topolab connect lab.json host1 eth0 switch1 port3
  topolab connect lab.json switch1 port5 switch2 port5 -o edited.json`,
	Args: cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editTopology(args[0], func(t *topology.Topology) error {
			if err := t.Connect(args[1], args[2], args[3], args[4]); err != nil {
				return err
			}
			fmt.Printf("Connected %s:%s <-> %s:%s\n", args[1], args[2], args[3], args[4])
			return nil
		})
	},
}

var disconnectCmd = &cobra.Command{
	Use:   "disconnect <file> <device1> <interface1> <device2> <interface2>",
	Short: "Remove a link between two interfaces",
	Long: `Remove the link between two device interfaces. The named pair must
match an existing connection.

Examples:
  topolab disconnect lab.json host1 eth0 switch1 port3`,
	Args: cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editTopology(args[0], func(t *topology.Topology) error {
			if err := t.Disconnect(args[1], args[2], args[3], args[4]); err != nil {
				return err
			}
			fmt.Printf("Disconnected %s:%s <-> %s:%s\n", args[1], args[2], args[3], args[4])
			return nil
		})
	},
}

func init() {
	addOutputFlag(connectCmd, "Output file (default: rewrite input)")
	addOutputFlag(disconnectCmd, "Output file (default: rewrite input)")
}
