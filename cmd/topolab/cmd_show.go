package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/topolab-network/topolab/pkg/cli"
	"github.com/topolab-network/topolab/pkg/topology"
)

var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Show topology devices and connections",
	Long: `Show the devices and connections in a topology document.

Examples:
  topolab show lab.json
  topolab show lab.json --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := topology.LoadFile(args[0])
		if err != nil {
			return err
		}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(t.Document())
		}

		fmt.Printf("Topology: %s\n", cli.Bold(t.Name))
		fmt.Printf("Devices: %d   Connections: %d\n\n", t.DeviceCount(), t.ConnectionCount())

		devices := cli.NewTable(os.Stdout, "ID", "TYPE", "NAME", "DETAIL", "PORTS")
		for _, id := range t.DeviceIDs() {
			d, err := t.Device(id)
			if err != nil {
				return err
			}
			used := len(d.ConnectedInterfaces())
			total := len(d.Interfaces())
			devices.Row(d.ID, string(d.Kind), cli.Dash(d.Name), deviceDetail(d),
				fmt.Sprintf("%d/%d", used, total))
		}
		devices.Flush()

		conns := t.Connections()
		if len(conns) == 0 {
			return nil
		}
		fmt.Println()
		links := cli.NewTable(os.Stdout, "DEVICE", "INTERFACE", "PEER", "PEER INTERFACE")
		for _, c := range conns {
			links.Row(c.Device1, c.Interface1, c.Device2, c.Interface2)
		}
		links.Flush()
		return nil
	},
}

// deviceDetail summarizes the kind-specific configuration in one cell.
func deviceDetail(d *topology.Device) string {
	switch d.Kind {
	case topology.KindSwitch:
		parts := []string{d.Switch.SwitchType}
		if n := len(d.Switch.VLANs); n > 0 {
			parts = append(parts, strconv.Itoa(n)+" vlans")
		}
		if n := len(d.Switch.RoutingTable); n > 0 {
			parts = append(parts, strconv.Itoa(n)+" routes")
		}
		return strings.Join(parts, ", ")
	case topology.KindHost:
		return cli.Dash(d.Host.IPAddress)
	}
	return "-"
}

func init() {
	addJSONFlag(showCmd)
}
