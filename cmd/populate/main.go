// Command populate replaces one owner's jobs with mock data so the list and
// stats views have something to show.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"job-tracker-backend/config"
	"job-tracker-backend/internal/store"
	"job-tracker-backend/internal/usecase"
	"job-tracker-backend/pkg/logger"
	"job-tracker-backend/pkg/validation"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		owner    string
		file     string
		driver   string
		deadline time.Duration
	)

	cmd := &cobra.Command{
		Use:          "populate",
		Short:        "Replace an owner's jobs with mock records",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := readRecords(file)
			if err != nil {
				return err
			}

			cfg := config.Load()
			if driver != "" {
				cfg.StoreDriver = strings.ToLower(driver)
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			logger.Init(cfg.LogLevel)

			ctx, cancel := context.WithTimeout(cmd.Context(), deadline)
			defer cancel()

			repo, closeStore, err := store.Open(ctx, cfg)
			if err != nil {
				return fmt.Errorf("failed to open store: %w", err)
			}
			defer closeStore()

			deleted, inserted, err := usecase.NewSeeder(repo, validation.New()).Seed(ctx, owner, records)
			if err != nil {
				logger.Log.Error("Populate failed", "owner", owner, "inserted", inserted, "error", err)
				return err
			}

			logger.Log.Info("Populate finished", "owner", owner, "deleted", deleted, "inserted", inserted)
			return nil
		},
	}

	cmd.Flags().StringVarP(&owner, "owner", "o", "", "owner id whose jobs are replaced")
	cmd.Flags().StringVarP(&file, "file", "f", "mock-data.json", "JSON array of jobs")
	cmd.Flags().StringVar(&driver, "driver", "", "override STORE_DRIVER")
	cmd.Flags().DurationVar(&deadline, "timeout", time.Minute, "overall deadline")
	_ = cmd.MarkFlagRequired("owner")

	return cmd
}

func readRecords(path string) ([]usecase.SeedRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var records []usecase.SeedRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return records, nil
}
