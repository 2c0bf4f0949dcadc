package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/suchimauz/artist-availability-engine/internal/adapters/out/postgres"
	"github.com/suchimauz/artist-availability-engine/internal/config"
)

func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create tables for local development",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewConfig()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			pool, err := postgres.NewPool(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := postgres.Migrate(ctx, pool); err != nil {
				return fmt.Errorf("postgres.migrate: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
			return nil
		},
	}
}
