package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/travian-go/internal/adapters/metrics"
	"github.com/andrescamacho/travian-go/internal/adapters/persistence"
	"github.com/andrescamacho/travian-go/internal/application/common"
	"github.com/andrescamacho/travian-go/internal/infrastructure/config"
	"github.com/andrescamacho/travian-go/internal/infrastructure/database"
	"github.com/andrescamacho/travian-go/internal/infrastructure/pidfile"
)

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	var (
		pidPath string
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the agent loop",
		Long: `Run the observe/plan/execute loop until interrupted.

The loop exits with code 0 on its own only when there is nothing left
to plan and every village queue is busy far beyond the exit horizon.

Example:
  travian run --config ./config.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAgent(pidPath, force)
		},
	}

	cmd.Flags().StringVar(&pidPath, "pid-file", "/tmp/travian-agent.pid",
		"Path to the PID file enforcing a single instance")
	cmd.Flags().BoolVar(&force, "force", false,
		"Take over the PID file even if another instance appears to hold it")

	return cmd
}

func runAgent(pidPath string, force bool) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	pid := pidfile.New(pidPath)
	if force {
		_ = pid.Release()
	}
	if err := pid.Acquire(); err != nil {
		return err
	}
	defer pid.Release()

	logger := newLogger(cfg)
	ctx, cancel := context.WithCancel(common.WithLogger(context.Background(), logger))
	defer cancel()

	// SIGINT/SIGTERM stop the loop at the next safe point.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-signals
		logger.Log(common.LevelInfo, "shutting down", map[string]interface{}{"signal": sig.String()})
		cancel()
	}()

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close(db)
	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	exec, err := newExecutor(cfg)
	if err != nil {
		return err
	}
	exec.WithRecorder(persistence.NewGormJobLogRepository(db, nil))

	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		collector := metrics.NewAgentMetricsCollector()
		if err := collector.Register(); err != nil {
			return fmt.Errorf("registering metrics: %w", err)
		}
		exec.WithMetrics(collector)

		server := metrics.NewServer(fmt.Sprintf("%s:%d", cfg.Metrics.Host, cfg.Metrics.Port), cfg.Metrics.Path)
		server.Start(ctx)
		defer server.Shutdown(context.Background())
	}

	logger.Log(common.LevelInfo, "agent starting", map[string]interface{}{
		"strategy": cfg.Game.Strategy,
		"server":   cfg.Driver.ServerURL,
	})

	if err := exec.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
