package scheduler_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/travian-go/internal/application/jobs"
	"github.com/andrescamacho/travian-go/internal/application/observe"
	"github.com/andrescamacho/travian-go/internal/application/planning"
	"github.com/andrescamacho/travian-go/internal/application/scheduler"
	"github.com/andrescamacho/travian-go/internal/domain/construction"
	"github.com/andrescamacho/travian-go/internal/domain/game"
	"github.com/andrescamacho/travian-go/internal/domain/resources"
	"github.com/andrescamacho/travian-go/internal/domain/shared"
	"github.com/andrescamacho/travian-go/internal/domain/village"
	"github.com/andrescamacho/travian-go/test/helpers"
)

var startTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// cancellingClock cancels the loop's context after a number of sleeps, so
// tests can let the executor run a bounded number of passes.
type cancellingClock struct {
	*shared.MockClock
	cancel     context.CancelFunc
	sleepsLeft int
}

func (c *cancellingClock) Sleep(d time.Duration) {
	c.MockClock.Sleep(d)
	c.sleepsLeft--
	if c.sleepsLeft <= 0 {
		c.cancel()
	}
}

// memoryRecorder collects finished jobs in order.
type memoryRecorder struct {
	mu   sync.Mutex
	seen []*jobs.Job
}

func (r *memoryRecorder) Record(_ context.Context, job *jobs.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, job)
	return nil
}

func (r *memoryRecorder) byStatus(status jobs.Status) []*jobs.Job {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*jobs.Job
	for _, j := range r.seen {
		if j.Status == status {
			out = append(out, j)
		}
	}
	return out
}

func storageStarvedVillage() *village.Village {
	return &village.Village{
		ID:                1,
		Name:              "01",
		Tribe:             village.Gauls,
		Resources:         resources.New(500, 500, 500, 500),
		FreeCrop:          500,
		WarehouseCapacity: 1000,
		GranaryCapacity:   10000,
		HourlyProduction:  resources.New(10000, 10, 10, 10),
		Buildings: []village.Building{
			{ID: 20, Kind: village.Warehouse, Level: 1},
			{ID: 21, Kind: village.Granary, Level: 1},
		},
		Queue:  village.NewBuildingQueue(village.Gauls),
		Troops: map[string]int{},
	}
}

func scriptedScanner(villages ...*village.Village) *helpers.MockScanner {
	scanner := helpers.NewMockScanner()
	scanner.Account = &game.Account{
		ServerSpeed: 1,
		ProductionBoostActive: map[resources.Kind]bool{
			resources.Lumber: true, resources.Clay: true,
			resources.Iron: true, resources.Crop: true,
		},
	}
	for _, v := range villages {
		scanner.AddVillage(v)
	}
	return scanner
}

func scriptDriverPages(driver *helpers.MockDriver, villages ...*village.Village) {
	driver.SetHTML("dorf1", "<html>overview</html>")
	for _, v := range villages {
		driver.SetHTML("dorf1:"+itoa(v.ID), "<html>d1</html>")
		driver.SetHTML("dorf2:"+itoa(v.ID), "<html>d2</html>")
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := ""
	for n > 0 {
		digits = string(rune('0'+n%10)) + digits
		n /= 10
	}
	return digits
}

func newExecutorUnderTest(t *testing.T, driver *helpers.MockDriver, scanner *helpers.MockScanner, sleeps int) (*scheduler.Executor, *memoryRecorder, context.Context) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	clock := &cancellingClock{
		MockClock:  shared.NewMockClock(startTime),
		cancel:     cancel,
		sleepsLeft: sleeps,
	}
	strategy := planning.NewBalancedEconomicGrowth(construction.NewCalculator(), planning.Options{})
	recorder := &memoryRecorder{}

	exec := scheduler.NewExecutor(
		helpers.NewMockDriverFactory(driver),
		scanner,
		observe.NewObserver(scanner, clock),
		strategy,
		clock,
		scheduler.Config{},
	).WithRecorder(recorder)

	return exec, recorder, ctx
}

func TestExecutor_PlansAndExecutesStorageUpgrade(t *testing.T) {
	v := storageStarvedVillage()
	scanner := scriptedScanner(v)
	driver := helpers.NewMockDriver()
	scriptDriverPages(driver, v)
	driver.FailTextContent("#contract .duration .value")
	driver.Hide("#contract button.videoFeatureButton")
	driver.FailWait("#dailyQuests") // keep any stray dialog flows failing fast

	exec, recorder, ctx := newExecutorUnderTest(t, driver, scanner, 1)

	err := exec.Run(ctx)

	require.ErrorIs(t, err, context.Canceled)
	completed := recorder.byStatus(jobs.StatusCompleted)
	require.NotEmpty(t, completed)
	job := completed[0]
	assert.Equal(t, jobs.KindBuild, job.Kind)
	assert.Equal(t, "Warehouse", job.Build.TargetName)
	assert.Equal(t, 1, driver.ClickCount("#contract .section1 button.green.build"))
}

func TestExecutor_TerminatesFailedJobAndReleasesSlot(t *testing.T) {
	v := storageStarvedVillage()
	scanner := scriptedScanner(v)
	driver := helpers.NewMockDriver()
	scriptDriverPages(driver, v)
	driver.FailTextContent("#contract .duration .value")
	driver.Hide("#contract button.videoFeatureButton")
	driver.FailClick("#contract .section1 button.green.build")

	exec, recorder, ctx := newExecutorUnderTest(t, driver, scanner, 1)

	err := exec.Run(ctx)

	require.ErrorIs(t, err, context.Canceled)
	terminated := recorder.byStatus(jobs.StatusTerminated)
	require.NotEmpty(t, terminated)
	assert.Equal(t, jobs.KindBuild, terminated[0].Kind)
	// The slot carries no freeze afterwards, so the next pass can replan.
	assert.False(t, v.Queue.IsFrozen(village.QueueInside, startTime))
}

func TestExecutor_ExpiresStaleJobs(t *testing.T) {
	scanner := scriptedScanner()
	driver := helpers.NewMockDriver()
	driver.SetHTML("dorf1", "<html>overview</html>")

	exec, recorder, ctx := newExecutorUnderTest(t, driver, scanner, 1)
	exec.Queue().Push(&jobs.Job{
		ID:            "build-1-deadbeef",
		Kind:          jobs.KindBuild,
		Status:        jobs.StatusPending,
		ScheduledTime: startTime.Add(-2 * time.Hour),
		VillageID:     1,
		QueueKey:      village.QueueInside,
		Build:         &jobs.BuildPayload{SlotID: 20, BuildingGid: 10},
	})

	err := exec.Run(ctx)

	require.ErrorIs(t, err, context.Canceled)
	expired := recorder.byStatus(jobs.StatusExpired)
	require.Len(t, expired, 1)
	assert.Equal(t, "build-1-deadbeef", expired[0].ID)
	// The expired job never touched the browser.
	assert.Empty(t, driver.NavigatedPaths)
}

func TestExecutor_TrainCooldownHoldsAcrossPasses(t *testing.T) {
	// Comfortable storage and no upgradable pits: every pass falls through
	// to troop training. Only the first pass may actually train; the next
	// pass arrives one poll interval later, well inside the cooldown.
	v := storageStarvedVillage()
	v.WarehouseCapacity = 80000
	v.HourlyProduction = resources.New(10, 10, 10, 10)
	v.Resources = resources.New(1000, 1300, 550, 300)
	v.Buildings = []village.Building{{ID: 25, Kind: village.Barracks, Level: 3}}

	scanner := scriptedScanner(v)
	driver := helpers.NewMockDriver()
	scriptDriverPages(driver, v)

	exec, recorder, ctx := newExecutorUnderTest(t, driver, scanner, 2)

	err := exec.Run(ctx)

	require.ErrorIs(t, err, context.Canceled)
	trained := recorder.byStatus(jobs.StatusCompleted)
	require.Len(t, trained, 1)
	assert.Equal(t, jobs.KindTrain, trained[0].Kind)
	assert.Len(t, driver.TrainCalls, 1)
}

func TestExecutor_ExitsWhenNothingLeftToDo(t *testing.T) {
	// A village whose in-game queue is busy for longer than the exit
	// horizon, with nothing plannable: the loop should stop cleanly.
	v := storageStarvedVillage()
	v.WarehouseCapacity = 80000
	v.HourlyProduction = resources.New(10, 10, 10, 10)
	v.Buildings = nil
	v.Queue.AddJob(village.BuildingJob{
		BuildingName:         "Main Building",
		TargetLevel:          20,
		TimeRemainingSeconds: int((13 * time.Hour).Seconds()),
	})

	scanner := scriptedScanner(v)
	driver := helpers.NewMockDriver()
	scriptDriverPages(driver, v)

	exec, _, ctx := newExecutorUnderTest(t, driver, scanner, 100)

	err := exec.Run(ctx)

	assert.NoError(t, err)
}
