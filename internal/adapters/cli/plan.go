package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/travian-go/internal/adapters/browser"
	"github.com/andrescamacho/travian-go/internal/adapters/scanner"
	"github.com/andrescamacho/travian-go/internal/application/common"
	"github.com/andrescamacho/travian-go/internal/application/jobs"
	"github.com/andrescamacho/travian-go/internal/application/observe"
	"github.com/andrescamacho/travian-go/internal/application/planning"
	"github.com/andrescamacho/travian-go/internal/domain/construction"
	"github.com/andrescamacho/travian-go/internal/domain/shared"
	"github.com/andrescamacho/travian-go/internal/infrastructure/config"
)

// NewPlanCommand creates the plan command
func NewPlanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Observe once and print the planned jobs without executing",
		Long: `Run a single observation pass, feed it to the configured strategy
and print the jobs it would schedule. Nothing is executed and nothing
is persisted: the only side effect is one browser login.

Example:
  travian plan --config ./config.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan()
		},
	}
	return cmd
}

func runPlan() error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	logger := newLogger(cfg)
	ctx := common.WithLogger(context.Background(), logger)

	strategy, err := planning.ByName(cfg.Game.Strategy, construction.NewCalculator(), planningOptions(cfg))
	if err != nil {
		return err
	}

	factory := browser.NewFactory(browser.Options{
		ServerURL: cfg.Driver.ServerURL,
		Login:     cfg.Driver.UserLogin,
		Password:  cfg.Driver.UserPassword,
		Headless:  cfg.Driver.Headless,
	})
	driver, err := factory.NewDriver(ctx)
	if err != nil {
		return err
	}
	defer driver.Stop()

	clock := shared.NewRealClock()
	observer := observe.NewObserver(scanner.New(), clock)
	state, err := observer.Observe(ctx, driver)
	if err != nil {
		return fmt.Errorf("observation pass failed: %w", err)
	}

	now := clock.Now()
	fmt.Printf("Villages: %d  Projected scarcest kind within 24h: %s\n\n",
		len(state.Villages), state.GlobalLowestResourceIn(24))

	planned := strategy.Plan(ctx, state, now)
	if len(planned) == 0 {
		fmt.Println("Nothing to plan: all queues busy or no affordable work.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tVILLAGE\tWHEN\tDETAIL")
	for _, job := range planned {
		when := "now"
		if job.ScheduledTime.After(now) {
			when = "in " + job.ScheduledTime.Sub(now).Round(time.Second).String()
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", job.Kind, job.VillageID, when, describeJob(job))
	}
	return w.Flush()
}

// describeJob renders the payload variant as a one-line summary.
func describeJob(job *jobs.Job) string {
	switch {
	case job.Build != nil:
		return fmt.Sprintf("%s to level %d (slot %d)", job.Build.TargetName, job.Build.TargetLevel, job.Build.SlotID)
	case job.BuildNew != nil:
		return fmt.Sprintf("new %s (slot %d)", job.BuildNew.TargetName, job.BuildNew.SlotID)
	case job.Train != nil:
		return fmt.Sprintf("train %d troops (building %d)", job.Train.Quantity, job.Train.MilitaryBuildingID)
	case job.Allocate != nil:
		return fmt.Sprintf("allocate %d hero points", job.Allocate.Points)
	case job.FoundVillage != nil:
		return "found new village"
	default:
		return string(job.Kind)
	}
}
