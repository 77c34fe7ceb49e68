package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aliskhannn/factdrill/internal/app"
	"github.com/aliskhannn/factdrill/internal/config"
	"github.com/aliskhannn/factdrill/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:          "factdrill",
	Short:        "Multiplication fact practice API",
	Long:         "factdrill serves randomized multiplication problems and tracks learner progress.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Directory containing config.yaml (defaults to ./config)")
	rootCmd.PersistentFlags().String("driver", "", "Storage driver: postgres, sqlite or memory (overrides config)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(progressCmd)
}

// bootstrap loads configuration and builds the logger and app shared by all
// commands. The caller owns closing both.
func bootstrap(ctx context.Context, cmd *cobra.Command) (*config.Config, *zap.Logger, *app.App, error) {
	dir, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}
	if driver, _ := cmd.Flags().GetString("driver"); driver != "" {
		cfg.DB.Driver = driver
	}

	log, err := logger.New(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		_ = log.Sync()
		return nil, nil, nil, err
	}

	return cfg, log, a, nil
}
