package main

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/pdc-tools/sdet/internal/history"
	"github.com/pdc-tools/sdet/pkg/config"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command
func NewHistoryCmd() *cobra.Command {
	var (
		dbPath   string
		sinceStr string
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past report runs",
		Long:  `List past report generation runs recorded in the history database, most recent first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var since time.Time
			if sinceStr != "" {
				window, err := config.ParseDuration(sinceStr)
				if err != nil {
					return err
				}
				since = time.Now().UTC().Add(-window)
			}

			store, err := history.Open(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.Runs(cmd.Context(), since, limit)
			if err != nil {
				return err
			}

			if len(runs) == 0 {
				cmd.Println("No recorded runs.")
				return nil
			}

			for _, run := range runs {
				cmd.Printf("%s  %-8s  %-20s  type=%d  tests=%d  failed=%d  platforms=%s\n",
					run.GeneratedAt.Format("2006-01-02 15:04:05"),
					run.RunStatus,
					run.Product,
					run.ReportType,
					run.ExecutedTests,
					run.FailedTests,
					strings.Join(run.PlatformIDs, ","),
				)
			}
			cmd.Printf("\n%d run(s)\n", len(runs))
			return nil
		},
	}

	defaultDB := filepath.Join("./output", config.HistoryFileName)
	cmd.Flags().StringVar(&dbPath, "history-db", defaultDB, "SQLite run history file")
	cmd.Flags().StringVar(&sinceStr, "since", "", "Only show runs newer than this window (e.g. 24h, 7d); empty shows all")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to show (0 = no limit)")

	return cmd
}
