// Command mapgen is the external CLI front end of spec §6: it loads a TOML
// config, drives internal/worldgen/pipeline, and writes the PNG/JSON export
// bundle. It replaces the teacher's cmd/server (an HTTP game server) with a
// generation-focused CLI, built with the teacher's own cobra/viper
// dependency rather than its flag-based cmd/server/main.go.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mapgen",
		Short: "Deterministic procedural world generator",
		Long:  "mapgen drives the worldgen pipeline from a TOML config and exports PNG/JSON map layers.",
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a TOML config file (defaults to the built-in Params defaults)")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newInspectCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newCatalogCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
