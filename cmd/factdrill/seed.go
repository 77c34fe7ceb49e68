package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the schema and seed the fact table, then exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, a, err := bootstrap(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()
		defer a.Close()

		count, err := a.Catalog.EnsureSeeded(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "fact table holds %d facts\n", count)
		return nil
	},
}
