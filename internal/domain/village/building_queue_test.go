package village_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/travian-go/internal/domain/village"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestBuildingQueue_ParallelTribesHaveIndependentSlots(t *testing.T) {
	// Arrange
	q := village.NewBuildingQueue(village.Romans)

	// Act
	q.AddJob(village.BuildingJob{BuildingName: "Warehouse", TargetLevel: 5})

	// Assert: the inside slot is busy, the outside slot is not
	assert.False(t, q.CanBuildInside(now))
	assert.True(t, q.CanBuildOutside(now))
}

func TestBuildingQueue_SharedSlotBlocksBothKeys(t *testing.T) {
	q := village.NewBuildingQueue(village.Gauls)

	q.AddJob(village.BuildingJob{BuildingName: "Woodcutter", TargetLevel: 3})

	assert.False(t, q.CanBuildInside(now))
	assert.False(t, q.CanBuildOutside(now))
	assert.False(t, q.IsEmpty())
}

func TestBuildingQueue_AddJobRoutesByBuildingName(t *testing.T) {
	q := village.NewBuildingQueue(village.Huns)

	q.AddJob(village.BuildingJob{BuildingName: "Cropland", TargetLevel: 2})
	q.AddJob(village.BuildingJob{BuildingName: "Main Building", TargetLevel: 4})

	assert.Len(t, q.Jobs(village.QueueOutside), 1)
	assert.Len(t, q.Jobs(village.QueueInside), 1)
}

func TestBuildingQueue_FreezeBlocksPlanningUntilDeadline(t *testing.T) {
	q := village.NewBuildingQueue(village.Romans)

	q.FreezeUntil(now.Add(30*time.Minute), village.QueueOutside, "job-1")

	assert.False(t, q.CanBuildOutside(now))
	assert.True(t, q.CanBuildInside(now))
	// After the deadline the slot opens again.
	assert.True(t, q.CanBuildOutside(now.Add(31*time.Minute)))
}

func TestBuildingQueue_FreezeOnSharedSlotBlocksEverything(t *testing.T) {
	q := village.NewBuildingQueue(village.Teutons)

	q.FreezeUntil(now.Add(time.Hour), village.QueueInside, "")

	assert.False(t, q.CanBuildInside(now))
	assert.False(t, q.CanBuildOutside(now))
}

func TestBuildingQueue_DropStaleFreezes(t *testing.T) {
	q := village.NewBuildingQueue(village.Gauls)
	q.FreezeUntil(now.Add(-time.Minute), village.QueueInside, "stale")
	q.FreezeUntil(now.Add(time.Hour), village.QueueOutside, "live")

	cleared := q.DropStaleFreezes(now)

	assert.Equal(t, []village.QueueKey{village.QueueInside}, cleared)
	assert.True(t, q.IsFrozen(village.QueueOutside, now))
	assert.False(t, q.IsFrozen(village.QueueInside, now))
}

func TestBuildingQueue_CarryFreezesFromPreservesLiveOnes(t *testing.T) {
	// The scanner rebuilds queues wholesale; live freezes must survive.
	prev := village.NewBuildingQueue(village.Romans)
	prev.FreezeUntil(now.Add(time.Hour), village.QueueInside, "planned")
	prev.FreezeUntil(now.Add(-time.Hour), village.QueueOutside, "expired")

	fresh := village.NewBuildingQueue(village.Romans)
	fresh.CarryFreezesFrom(prev, now)

	assert.True(t, fresh.IsFrozen(village.QueueInside, now))
	assert.False(t, fresh.IsFrozen(village.QueueOutside, now))
}

func TestQueueKeyForBuildingName(t *testing.T) {
	assert.Equal(t, village.QueueOutside, village.QueueKeyForBuildingName("Iron Mine"))
	assert.Equal(t, village.QueueInside, village.QueueKeyForBuildingName("Granary"))
	// Unknown names land inside.
	assert.Equal(t, village.QueueInside, village.QueueKeyForBuildingName("Shrine of Whatever"))
}

func TestVillage_MaxPitLevel(t *testing.T) {
	v := &village.Village{}
	assert.Equal(t, 10, v.MaxPitLevel())

	v.IsUpgradedToCity = true
	assert.Equal(t, 12, v.MaxPitLevel())

	v.IsPermanentCapital = true
	assert.Equal(t, 20, v.MaxPitLevel())
}

func TestVillage_FreeCenterSlot(t *testing.T) {
	v := &village.Village{
		Buildings: []village.Building{
			{ID: 19, Kind: village.MainBuilding, Level: 3},
			{ID: 20, Kind: village.Warehouse, Level: 1},
		},
	}

	slot, ok := v.FreeCenterSlot()

	assert.True(t, ok)
	assert.Equal(t, 21, slot)
}

func TestBuildingKind_QueueKey(t *testing.T) {
	assert.Equal(t, village.QueueOutside, village.Cropland.QueueKey())
	assert.Equal(t, village.QueueInside, village.Barracks.QueueKey())
	assert.True(t, village.ClayPit.IsResourcePit())
	assert.False(t, village.GrainMill.IsResourcePit())
}
