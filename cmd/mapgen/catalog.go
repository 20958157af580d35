package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/san-smith/mapgen/internal/catalog"
)

func newCatalogCmd() *cobra.Command {
	var pgConn string
	var limit int

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List previously generated worlds from the Postgres world atlas",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cat, err := catalog.New(ctx, pgConn)
			if err != nil {
				return fmt.Errorf("connect catalog: %w", err)
			}
			defer cat.Close()

			if !cat.IsConnected() {
				fmt.Println("catalog: no --postgres connection string given, nothing to list")
				return nil
			}

			entries, err := cat.List(ctx, limit)
			if err != nil {
				return err
			}
			for _, e := range entries {
				fmt.Printf("%s  seed=%d  %s  %dx%d  provinces=%d regions=%d\n",
					e.ID, e.Seed, e.WorldType, e.Width, e.Height, e.ProvinceCount, e.RegionCount)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&pgConn, "postgres", "", "Postgres connection string")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of entries to list")
	return cmd
}
