package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-smith/mapgen/internal/export"
	"github.com/san-smith/mapgen/internal/worldgen/pipeline"
)

func newInspectCmd() *cobra.Command {
	var writeTo string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Generate a world and print a YAML summary without exporting layers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfigOrDefault(configPath)
			if err != nil {
				return err
			}
			artifacts, err := pipeline.Generate(cmd.Context(), cfg.ToParams())
			if err != nil {
				return fmt.Errorf("generate world: %w", err)
			}

			if writeTo != "" {
				return export.WriteSnapshot(artifacts, writeTo)
			}

			b, err := yaml.Marshal(export.BuildSnapshot(artifacts))
			if err != nil {
				return err
			}
			fmt.Print(string(b))
			return nil
		},
	}
	cmd.Flags().StringVar(&writeTo, "out", "", "write the YAML snapshot to a file instead of stdout")
	return cmd
}
