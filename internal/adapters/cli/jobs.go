package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/travian-go/internal/adapters/persistence"
	"github.com/andrescamacho/travian-go/internal/application/jobs"
	"github.com/andrescamacho/travian-go/internal/infrastructure/config"
	"github.com/andrescamacho/travian-go/internal/infrastructure/database"
)

// NewJobsCommand creates the jobs command
func NewJobsCommand() *cobra.Command {
	var (
		limit  int
		status string
	)

	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Show recently finished jobs from the ledger",
		Long: `List the most recently finished jobs, newest first.

Statuses:
  COMPLETED   - Executed successfully
  TERMINATED  - Execution failed; the slot was released for replanning
  EXPIRED     - Waited past its TTL and was dropped without executing

Examples:
  travian jobs
  travian jobs --limit 50
  travian jobs --status TERMINATED`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJobs(limit, status)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of jobs to show")
	cmd.Flags().StringVar(&status, "status", "", "Filter by final status")

	return cmd
}

func runJobs(limit int, status string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close(db)
	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	repo := persistence.NewGormJobLogRepository(db, nil)
	ctx := context.Background()

	var entries []persistence.JobLogEntry
	if status != "" {
		entries, err = repo.ByStatus(ctx, jobs.Status(status), limit)
	} else {
		entries, err = repo.Recent(ctx, limit)
	}
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No finished jobs recorded.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FINISHED\tKIND\tSTATUS\tVILLAGE\tJOB ID")
	for _, entry := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			entry.FinishedAt.Format("2006-01-02 15:04:05"),
			entry.Kind,
			entry.Status,
			entry.VillageID,
			entry.JobID,
		)
	}
	return w.Flush()
}
