package scheduler

import (
	"container/heap"
	"time"

	"github.com/andrescamacho/travian-go/internal/application/jobs"
)

// Queue is a time-ordered priority queue of pending jobs. Jobs sharing the
// same scheduled time pop in insertion order, so two jobs planned in the
// same pass execute in plan order.
type Queue struct {
	items   jobHeap
	nextSeq uint64
}

func NewQueue() *Queue {
	return &Queue{}
}

// Push schedules a job. O(log n).
func (q *Queue) Push(job *jobs.Job) {
	q.nextSeq++
	heap.Push(&q.items, &queueItem{job: job, seq: q.nextSeq})
}

// PopDue removes and returns the earliest job with scheduledTime <= now,
// or nil when nothing is due.
func (q *Queue) PopDue(now time.Time) *jobs.Job {
	if len(q.items) == 0 {
		return nil
	}
	if q.items[0].job.ScheduledTime.After(now) {
		return nil
	}
	item := heap.Pop(&q.items).(*queueItem)
	return item.job
}

// PeekNextTime returns the scheduled time of the earliest job, or nil when
// the queue is empty.
func (q *Queue) PeekNextTime() *time.Time {
	if len(q.items) == 0 {
		return nil
	}
	t := q.items[0].job.ScheduledTime
	return &t
}

func (q *Queue) Len() int {
	return len(q.items)
}

// Snapshot returns the queued jobs in an unspecified order, for inspection.
func (q *Queue) Snapshot() []*jobs.Job {
	out := make([]*jobs.Job, len(q.items))
	for i, item := range q.items {
		out[i] = item.job
	}
	return out
}

type queueItem struct {
	job   *jobs.Job
	seq   uint64
	index int
}

type jobHeap []*queueItem

func (h jobHeap) Len() int { return len(h) }

func (h jobHeap) Less(i, j int) bool {
	ti, tj := h[i].job.ScheduledTime, h[j].job.ScheduledTime
	if ti.Equal(tj) {
		return h[i].seq < h[j].seq
	}
	return ti.Before(tj)
}

func (h jobHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *jobHeap) Push(x interface{}) {
	item := x.(*queueItem)
	item.index = len(*h)
	*h = append(*h, item)
}

func (h *jobHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
