package scheduler

import (
	"context"
	"time"

	"github.com/andrescamacho/travian-go/internal/application/common"
	"github.com/andrescamacho/travian-go/internal/application/jobs"
	"github.com/andrescamacho/travian-go/internal/application/observe"
	"github.com/andrescamacho/travian-go/internal/application/planning"
	"github.com/andrescamacho/travian-go/internal/domain/game"
	"github.com/andrescamacho/travian-go/internal/domain/ports"
	"github.com/andrescamacho/travian-go/internal/domain/shared"
	"github.com/andrescamacho/travian-go/internal/domain/village"
)

// JobRecorder persists the outcome of executed jobs. The executor treats it
// as write-only history; planning never reads it back.
type JobRecorder interface {
	Record(ctx context.Context, job *jobs.Job) error
}

// Metrics receives executor counters. Implementations must be cheap; they
// are called inside the loop.
type Metrics interface {
	PassCompleted(villages int)
	JobFinished(kind string, status string, elapsed time.Duration)
	QueueDepth(depth int)
}

type noopRecorder struct{}

func (noopRecorder) Record(context.Context, *jobs.Job) error { return nil }

type noopMetrics struct{}

func (noopMetrics) PassCompleted(int)                         {}
func (noopMetrics) JobFinished(string, string, time.Duration) {}
func (noopMetrics) QueueDepth(int)                            {}

// Config tunes the executor loop.
type Config struct {
	// MaxPollInterval bounds how long the loop sleeps when nothing is due.
	MaxPollInterval time.Duration
	// ExitHorizon is the "nothing left to do" threshold: the loop exits
	// cleanly when no work is planned or queued and every in-game queue is
	// busy beyond this horizon.
	ExitHorizon time.Duration
}

func (c Config) withDefaults() Config {
	if c.MaxPollInterval == 0 {
		c.MaxPollInterval = time.Minute
	}
	if c.ExitHorizon == 0 {
		c.ExitHorizon = 12 * time.Hour
	}
	return c
}

// Executor is the single-threaded heart of the agent: it alternates
// observation, planning and job execution on one goroutine. The browser
// session is exclusively owned here; jobs receive it only for the duration
// of one Execute call.
type Executor struct {
	factory  ports.DriverFactory
	scanner  ports.Scanner
	observer *observe.Observer
	strategy planning.Strategy
	queue    *Queue
	clock    shared.Clock
	valleys  jobs.ValleyFinder
	recorder JobRecorder
	metrics  Metrics
	cfg      Config

	// lastTrain remembers when each village last queued troops. The game
	// pages expose no such timestamp, so the planner's training cooldown
	// only holds if the executor carries it between passes.
	lastTrain map[int]time.Time
}

func NewExecutor(
	factory ports.DriverFactory,
	scanner ports.Scanner,
	observer *observe.Observer,
	strategy planning.Strategy,
	clock shared.Clock,
	cfg Config,
) *Executor {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &Executor{
		factory:   factory,
		scanner:   scanner,
		observer:  observer,
		strategy:  strategy,
		queue:     NewQueue(),
		clock:     clock,
		recorder:  noopRecorder{},
		metrics:   noopMetrics{},
		cfg:       cfg.withDefaults(),
		lastTrain: make(map[int]time.Time),
	}
}

// WithRecorder attaches a job history sink.
func (e *Executor) WithRecorder(r JobRecorder) *Executor {
	if r != nil {
		e.recorder = r
	}
	return e
}

// WithMetrics attaches a metrics sink.
func (e *Executor) WithMetrics(m Metrics) *Executor {
	if m != nil {
		e.metrics = m
	}
	return e
}

// WithValleyFinder overrides how FoundNewVillage jobs locate their target.
func (e *Executor) WithValleyFinder(f jobs.ValleyFinder) *Executor {
	e.valleys = f
	return e
}

// Queue exposes the scheduled-job queue for inspection.
func (e *Executor) Queue() *Queue {
	return e.queue
}

// Run loops until the context is cancelled or the account has genuinely
// nothing left to do. No error from observation or execution escapes the
// loop; only driver creation failures and context cancellation do.
func (e *Executor) Run(ctx context.Context) error {
	logger := common.LoggerFromContext(ctx)

	driver, err := e.factory.NewDriver(ctx)
	if err != nil {
		return err
	}
	defer driver.Stop()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		state, err := e.observer.Observe(ctx, driver)
		if err != nil {
			if shared.IsDriverFatal(err) {
				logger.Log(common.LevelError, "browser session lost, restarting driver",
					map[string]interface{}{"error": err.Error()})
				driver = e.restartDriver(ctx, driver)
				continue
			}
			logger.Log(common.LevelWarn, "observation pass failed",
				map[string]interface{}{"error": err.Error()})
			e.clock.Sleep(e.cfg.MaxPollInterval)
			continue
		}

		now := e.clock.Now()
		e.reconcileFreezes(ctx, state, now)
		e.applyTrainHistory(state)

		frozen := frozenSlots(state, now)
		newJobs := e.strategy.Plan(ctx, state, now)
		merged := e.merge(ctx, newJobs, frozen)
		e.metrics.PassCompleted(len(state.Villages))
		e.metrics.QueueDepth(e.queue.Len())
		for _, job := range e.queue.Snapshot() {
			logger.Log(common.LevelDebug, "job waiting",
				map[string]interface{}{"job": job.ID, "kind": string(job.Kind), "scheduled": job.ScheduledTime})
		}

		if e.done(merged, state, now) {
			logger.Log(common.LevelInfo, "nothing left to plan or execute, stopping",
				map[string]interface{}{"villages": len(state.Villages)})
			return nil
		}

		e.drainDue(ctx, driver, state)

		e.sleepUntilNext()
	}
}

func (e *Executor) restartDriver(ctx context.Context, old ports.Driver) ports.Driver {
	logger := common.LoggerFromContext(ctx)
	old.Stop()

	for {
		driver, err := e.factory.NewDriver(ctx)
		if err == nil {
			return driver
		}
		logger.Log(common.LevelError, "driver restart failed, retrying",
			map[string]interface{}{"error": err.Error()})
		e.clock.Sleep(e.cfg.MaxPollInterval)
		if ctx.Err() != nil {
			return old
		}
	}
}

// applyTrainHistory stamps each freshly observed village with the time of
// its last completed training job. Observation cannot recover this; the
// executor is the only place that sees both passes and completions.
func (e *Executor) applyTrainHistory(state *game.State) {
	for _, v := range state.Villages {
		if t, ok := e.lastTrain[v.ID]; ok {
			stamp := t
			v.LastTrainTime = &stamp
		}
	}
}

// reconcileFreezes clears elapsed freezes so their slots become plannable
// again.
func (e *Executor) reconcileFreezes(ctx context.Context, state *game.State, now time.Time) {
	logger := common.LoggerFromContext(ctx)
	for _, v := range state.Villages {
		for _, key := range v.Queue.DropStaleFreezes(now) {
			logger.Log(common.LevelDebug, "stale freeze cleared",
				map[string]interface{}{"village": v.ID, "slot": string(key)})
		}
	}
}

type slotRef struct {
	villageID int
	key       village.QueueKey
}

// frozenSlots captures which slots were frozen before this pass planned
// anything; jobs planned by previous passes own those slots.
func frozenSlots(state *game.State, now time.Time) map[slotRef]bool {
	out := make(map[slotRef]bool)
	for _, v := range state.Villages {
		for _, key := range []village.QueueKey{village.QueueInside, village.QueueOutside} {
			if v.Queue.IsFrozen(key, now) {
				out[slotRef{v.ID, key}] = true
			}
		}
	}
	return out
}

// merge pushes freshly planned jobs, dropping any whose slot a previous
// pass already claimed. Returns how many were accepted.
func (e *Executor) merge(ctx context.Context, newJobs []*jobs.Job, frozen map[slotRef]bool) int {
	logger := common.LoggerFromContext(ctx)
	accepted := 0
	for _, job := range newJobs {
		if job.QueueKey != "" && frozen[slotRef{job.VillageID, job.QueueKey}] {
			logger.Log(common.LevelDebug, "duplicate plan for frozen slot dropped",
				map[string]interface{}{"job": job.ID, "village": job.VillageID, "slot": string(job.QueueKey)})
			continue
		}
		e.queue.Push(job)
		accepted++
	}
	return accepted
}

// drainDue executes every job whose time has come, in schedule order.
func (e *Executor) drainDue(ctx context.Context, driver ports.Driver, state *game.State) {
	logger := common.LoggerFromContext(ctx)
	env := jobs.Env{Driver: driver, Scanner: e.scanner, Clock: e.clock, Valleys: e.valleys}

	for {
		now := e.clock.Now()
		job := e.queue.PopDue(now)
		if job == nil {
			return
		}

		if job.IsExpired(now) {
			job.Status = jobs.StatusExpired
			e.unfreeze(state, job)
			e.finish(ctx, job, 0)
			logger.Log(common.LevelWarn, "job expired before execution",
				map[string]interface{}{"job": job.ID, "scheduled": job.ScheduledTime})
			continue
		}

		job.Status = jobs.StatusRunning
		if job.Execute(ctx, env) {
			job.Status = jobs.StatusCompleted
			if job.Kind == jobs.KindTrain {
				e.lastTrain[job.VillageID] = e.clock.Now()
			}
		} else {
			job.Status = jobs.StatusTerminated
			// Release the slot so the next pass can replan it.
			e.unfreeze(state, job)
		}
		e.finish(ctx, job, e.clock.Now().Sub(now))
	}
}

func (e *Executor) unfreeze(state *game.State, job *jobs.Job) {
	if job.QueueKey == "" {
		return
	}
	if v := state.VillageByID(job.VillageID); v != nil {
		v.Queue.Unfreeze(job.QueueKey)
	}
}

func (e *Executor) finish(ctx context.Context, job *jobs.Job, elapsed time.Duration) {
	logger := common.LoggerFromContext(ctx)
	e.metrics.JobFinished(string(job.Kind), string(job.Status), elapsed)
	if err := e.recorder.Record(ctx, job); err != nil {
		logger.Log(common.LevelWarn, "job history write failed",
			map[string]interface{}{"job": job.ID, "error": err.Error()})
	}
}

// done reports whether the account has nothing left to automate: nothing
// newly planned, nothing queued, every village construction queue busy, and
// the nearest in-game completion beyond the exit horizon.
func (e *Executor) done(merged int, state *game.State, now time.Time) bool {
	if merged > 0 || e.queue.Len() > 0 {
		return false
	}
	if len(state.Villages) == 0 {
		return false
	}

	nearest := time.Duration(-1)
	for _, v := range state.Villages {
		entries := v.Queue.AllJobs()
		if len(entries) == 0 {
			return false
		}
		for _, entry := range entries {
			remaining := time.Duration(entry.TimeRemainingSeconds) * time.Second
			if nearest < 0 || remaining < nearest {
				nearest = remaining
			}
		}
	}
	return nearest > e.cfg.ExitHorizon
}

func (e *Executor) sleepUntilNext() {
	now := e.clock.Now()
	wake := now.Add(e.cfg.MaxPollInterval)
	if next := e.queue.PeekNextTime(); next != nil && next.After(now) && next.Before(wake) {
		wake = *next
	}
	if d := wake.Sub(now); d > 0 {
		e.clock.Sleep(d)
	}
}
