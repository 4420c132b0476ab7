package steps

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/travian-go/internal/application/jobs"
	"github.com/andrescamacho/travian-go/internal/application/scheduler"
)

var queueNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type jobQueueContext struct {
	queue  *scheduler.Queue
	byName map[string]*jobs.Job
	popped []string
	now    time.Time
}

func (qc *jobQueueContext) reset() {
	qc.queue = scheduler.NewQueue()
	qc.byName = map[string]*jobs.Job{}
	qc.popped = nil
	qc.now = queueNow
}

// Given steps

func (qc *jobQueueContext) aJobScheduledSecondsFromNow(name string, seconds int) error {
	job := &jobs.Job{
		ID:            name,
		Kind:          jobs.KindBuild,
		Status:        jobs.StatusPending,
		ScheduledTime: queueNow.Add(time.Duration(seconds) * time.Second),
	}
	qc.byName[name] = job
	qc.queue.Push(job)
	return nil
}

// When steps

func (qc *jobQueueContext) iDrainEveryDueJobSecondsLater(seconds int) error {
	qc.now = queueNow.Add(time.Duration(seconds) * time.Second)
	for {
		job := qc.queue.PopDue(qc.now)
		if job == nil {
			return nil
		}
		qc.popped = append(qc.popped, job.ID)
	}
}

func (qc *jobQueueContext) hoursPass(hours int) error {
	qc.now = queueNow.Add(time.Duration(hours) * time.Hour)
	return nil
}

// Then steps

func (qc *jobQueueContext) theJobsPopInOrder(first, second string) error {
	want := []string{first, second}
	if len(qc.popped) != len(want) {
		return fmt.Errorf("popped %d jobs, want %d (%v)", len(qc.popped), len(want), qc.popped)
	}
	for i := range want {
		if qc.popped[i] != want[i] {
			return fmt.Errorf("popped order %s, want %s",
				strings.Join(qc.popped, ", "), strings.Join(want, ", "))
		}
	}
	return nil
}

func (qc *jobQueueContext) theJobIsPastItsExpiry(name string) error {
	job, ok := qc.byName[name]
	if !ok {
		return fmt.Errorf("no job named %q", name)
	}
	if !job.IsExpired(qc.now) {
		return fmt.Errorf("job %q is not expired at %v", name, qc.now)
	}
	return nil
}

// InitializeJobQueueScenarios registers the scheduler queue steps.
func InitializeJobQueueScenarios(sc *godog.ScenarioContext) {
	qc := &jobQueueContext{}

	sc.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		qc.reset()
		return ctx, nil
	})

	sc.Step(`^a job "([^"]*)" scheduled (\d+) seconds from now$`, qc.aJobScheduledSecondsFromNow)
	sc.Step(`^I drain every due job (\d+) seconds later$`, qc.iDrainEveryDueJobSecondsLater)
	sc.Step(`^(\d+) hours pass$`, qc.hoursPass)
	sc.Step(`^the jobs pop in order "([^"]*)", "([^"]*)"$`, qc.theJobsPopInOrder)
	sc.Step(`^the job "([^"]*)" is past its expiry$`, qc.theJobIsPastItsExpiry)
}
