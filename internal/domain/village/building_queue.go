package village

import (
	"time"
)

// QueueKey identifies which of the two tribe-concurrent construction slots a
// job or freeze applies to.
type QueueKey string

const (
	// QueueInside covers center, military and special buildings.
	QueueInside QueueKey = "inside"
	// QueueOutside covers the resource pits.
	QueueOutside QueueKey = "outside"
)

// QueueKeyForBuildingName resolves a building display name to the slot it
// occupies. Unknown names default to the inside slot.
func QueueKeyForBuildingName(name string) QueueKey {
	if kind, ok := KindByName(name); ok {
		return kind.QueueKey()
	}
	return QueueInside
}

// BuildingJob is one observed or planned entry in a construction queue.
type BuildingJob struct {
	BuildingName         string
	TargetLevel          int
	TimeRemainingSeconds int
	// JobID links the entry back to a scheduled job, when the entry was
	// planned by the agent rather than observed on the page. Empty for
	// observed entries.
	JobID string
}

// Freeze marks a slot as taken by a planned-but-not-yet-observed job, so the
// next planning pass does not duplicate the work before the in-game queue
// catches up.
type Freeze struct {
	Until time.Time
	JobID string
}

// BuildingQueue is the tribe-aware construction concurrency model of one
// village. Romans and Huns run two independent slots (center and resource
// field); every other tribe has a single shared slot.
type BuildingQueue struct {
	tribe Tribe

	// Occupied slots, keyed by QueueKey. Non-parallel tribes store every
	// job under the key of the building being built; occupancy of either
	// key blocks both.
	jobs map[QueueKey][]BuildingJob

	// Active freezes by slot.
	freezes map[QueueKey]Freeze
}

// NewBuildingQueue creates an empty queue for the given tribe.
func NewBuildingQueue(tribe Tribe) *BuildingQueue {
	return &BuildingQueue{
		tribe:   tribe,
		jobs:    make(map[QueueKey][]BuildingJob),
		freezes: make(map[QueueKey]Freeze),
	}
}

// Tribe returns the tribe the queue was built for.
func (q *BuildingQueue) Tribe() Tribe {
	return q.tribe
}

// ParallelBuildingAllowed reports whether the queue has two independent
// slots.
func (q *BuildingQueue) ParallelBuildingAllowed() bool {
	return q.tribe.ParallelBuildingAllowed()
}

// IsEmpty reports whether no slot holds a job. Freezes do not count as
// occupancy here; they only gate planning.
func (q *BuildingQueue) IsEmpty() bool {
	return len(q.jobs[QueueInside]) == 0 && len(q.jobs[QueueOutside]) == 0
}

// Jobs returns the entries occupying the given slot.
func (q *BuildingQueue) Jobs(key QueueKey) []BuildingJob {
	return q.jobs[key]
}

// AllJobs returns every queued entry, inside slot first.
func (q *BuildingQueue) AllJobs() []BuildingJob {
	out := make([]BuildingJob, 0, len(q.jobs[QueueInside])+len(q.jobs[QueueOutside]))
	out = append(out, q.jobs[QueueInside]...)
	out = append(out, q.jobs[QueueOutside]...)
	return out
}

// AddJob places a job into the slot matching its building name.
func (q *BuildingQueue) AddJob(job BuildingJob) {
	key := QueueKeyForBuildingName(job.BuildingName)
	q.jobs[key] = append(q.jobs[key], job)
}

// CanBuildInside reports whether a center building job may be planned now.
func (q *BuildingQueue) CanBuildInside(now time.Time) bool {
	return q.canBuild(QueueInside, now)
}

// CanBuildOutside reports whether a resource pit job may be planned now.
func (q *BuildingQueue) CanBuildOutside(now time.Time) bool {
	return q.canBuild(QueueOutside, now)
}

// CanBuild reports whether the given slot may take a planned job now.
func (q *BuildingQueue) CanBuild(key QueueKey, now time.Time) bool {
	return q.canBuild(key, now)
}

func (q *BuildingQueue) canBuild(key QueueKey, now time.Time) bool {
	if q.tribe.ParallelBuildingAllowed() {
		return len(q.jobs[key]) == 0 && !q.isFrozen(key, now)
	}
	// Single shared slot: any occupancy or freeze blocks both keys.
	if !q.IsEmpty() {
		return false
	}
	return !q.isFrozen(QueueInside, now) && !q.isFrozen(QueueOutside, now)
}

// FreezeUntil marks a slot as taken by a planned job until the given time.
func (q *BuildingQueue) FreezeUntil(until time.Time, key QueueKey, jobID string) {
	q.freezes[key] = Freeze{Until: until, JobID: jobID}
}

// Unfreeze clears the freeze on the given slot, if any.
func (q *BuildingQueue) Unfreeze(key QueueKey) {
	delete(q.freezes, key)
}

// FrozenUntil returns the active freeze on a slot, if any.
func (q *BuildingQueue) FrozenUntil(key QueueKey) (Freeze, bool) {
	f, ok := q.freezes[key]
	return f, ok
}

// IsFrozen reports whether a live freeze covers the slot at now.
func (q *BuildingQueue) IsFrozen(key QueueKey, now time.Time) bool {
	return q.isFrozen(key, now)
}

func (q *BuildingQueue) isFrozen(key QueueKey, now time.Time) bool {
	f, ok := q.freezes[key]
	return ok && f.Until.After(now)
}

// DropStaleFreezes removes freezes whose deadline has passed and returns the
// keys that were cleared. A stale freeze with an empty slot means the
// planned job never materialized; clearing it makes the village plannable
// again.
func (q *BuildingQueue) DropStaleFreezes(now time.Time) []QueueKey {
	var cleared []QueueKey
	for key, f := range q.freezes {
		if !f.Until.After(now) {
			delete(q.freezes, key)
			cleared = append(cleared, key)
		}
	}
	return cleared
}

// CarryFreezesFrom copies every still-live freeze from prev into q. The
// scanner rebuilds queues wholesale from observed HTML; planned freezes with
// a future deadline must survive that refresh.
func (q *BuildingQueue) CarryFreezesFrom(prev *BuildingQueue, now time.Time) {
	if prev == nil {
		return
	}
	for key, f := range prev.freezes {
		if f.Until.After(now) {
			q.freezes[key] = f
		}
	}
}
