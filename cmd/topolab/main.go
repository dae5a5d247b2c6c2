// Topolab - Network Topology Modeling Tool
//
// A CLI tool for building, inspecting, and provisioning network topology
// models:
//   - Generate simple (line), ring, and mesh topologies
//   - Edit links and switch/host configuration on saved topologies
//   - Check connectivity and trace shortest paths
//   - Render Graphviz visualizations
//   - Emit per-switch provisioning plans
//
// Topologies live in JSON or YAML documents; every command that mutates a
// topology loads the document, applies the change, and writes it back.
//
// Examples:
//
//	topolab create --type ring --switches 4 --hosts 8 -o lab.json
//	topolab show lab.json
//	topolab connect lab.json switch1 port5 switch3 port5
//	topolab vlan lab.json switch1 100 servers port1 port2
//	topolab check lab.json
//	topolab plan lab.json switch1
//	topolab visualize lab.json -o lab.dot
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/topolab-network/topolab/pkg/topology"
	"github.com/topolab-network/topolab/pkg/util"
	"github.com/topolab-network/topolab/pkg/version"
)

var (
	// Global option flags
	verbose    bool
	jsonOutput bool

	// Output path for commands that write a topology document. Empty means
	// write back to the input file.
	outputPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "topolab",
	Short:         "Network Topology Modeling Tool",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `Topolab builds and manages network topology models.

Topologies are stored as JSON or YAML documents. Generate one with
'create', then inspect and edit it with the other commands:

  topolab create --type mesh --switches 4 -o lab.json
  topolab show lab.json`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Quiet by default, verbose on -v
		if verbose {
			util.SetLogLevel("debug")
		} else {
			util.SetLogLevel("warn")
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	rootCmd.AddGroup(
		&cobra.Group{ID: "build", Title: "Topology Building:"},
		&cobra.Group{ID: "query", Title: "Inspection:"},
		&cobra.Group{ID: "config", Title: "Device Configuration:"},
	)

	for _, cmd := range []*cobra.Command{createCmd, connectCmd, disconnectCmd} {
		cmd.GroupID = "build"
		rootCmd.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{showCmd, checkCmd, pathCmd, planCmd, visualizeCmd} {
		cmd.GroupID = "query"
		rootCmd.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{assignIPCmd, vlanCmd, stpCmd, routeCmd} {
		cmd.GroupID = "config"
		rootCmd.AddCommand(cmd)
	}

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		if version.Version == "dev" {
			fmt.Println("topolab dev build (use 'make build' for version info)")
		} else {
			fmt.Printf("topolab %s (%s)\n", version.Version, version.GitCommit)
		}
	},
}

// addOutputFlag registers -o/--output for commands that write a topology
// document. Mutating commands default to rewriting the input file.
func addOutputFlag(cmd *cobra.Command, usage string) {
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", usage)
}

// addJSONFlag registers --json for commands with structured output.
func addJSONFlag(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "JSON output")
}

// editTopology loads the document at path, applies fn, and saves the result
// to --output (or back to path). The standard flow for all edit commands.
func editTopology(path string, fn func(t *topology.Topology) error) error {
	t, err := topology.LoadFile(path)
	if err != nil {
		return err
	}
	if err := fn(t); err != nil {
		return err
	}
	dest := outputPath
	if dest == "" {
		dest = path
	}
	return t.SaveFile(dest)
}
