package persistence

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/travian-go/internal/application/jobs"
	"github.com/andrescamacho/travian-go/internal/domain/shared"
)

// JobLogModel represents the job_log table: one row per finished job.
type JobLogModel struct {
	ID              int       `gorm:"column:id;primaryKey;autoIncrement"`
	JobID           string    `gorm:"column:job_id;not null;index"`
	Kind            string    `gorm:"column:kind;not null;index"`
	Status          string    `gorm:"column:status;not null;index"`
	VillageID       int       `gorm:"column:village_id;not null;default:0"`
	QueueKey        string    `gorm:"column:queue_key"`
	ScheduledTime   time.Time `gorm:"column:scheduled_time;not null"`
	FinishedAt      time.Time `gorm:"column:finished_at;not null"`
	DurationSeconds int       `gorm:"column:duration_seconds;not null;default:0"`
	Payload         string    `gorm:"column:payload;type:text"` // JSON as text
}

func (JobLogModel) TableName() string {
	return "job_log"
}

// JobLogEntry is the query-side view of a ledger row.
type JobLogEntry struct {
	JobID         string
	Kind          jobs.Kind
	Status        jobs.Status
	VillageID     int
	ScheduledTime time.Time
	FinishedAt    time.Time
	Payload       map[string]interface{}
}

// GormJobLogRepository persists finished jobs. It satisfies the scheduler's
// JobRecorder interface.
type GormJobLogRepository struct {
	db    *gorm.DB
	clock shared.Clock
}

// NewGormJobLogRepository creates a job ledger repository.
// If clock is nil, uses RealClock (production behavior).
func NewGormJobLogRepository(db *gorm.DB, clock shared.Clock) *GormJobLogRepository {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormJobLogRepository{db: db, clock: clock}
}

// Record appends the job's final state to the ledger.
func (r *GormJobLogRepository) Record(ctx context.Context, job *jobs.Job) error {
	var payloadJSON string
	if payload := jobPayload(job); payload != nil {
		if jsonBytes, err := json.Marshal(payload); err == nil {
			payloadJSON = string(jsonBytes)
		}
	}

	row := &JobLogModel{
		JobID:           job.ID,
		Kind:            string(job.Kind),
		Status:          string(job.Status),
		VillageID:       job.VillageID,
		QueueKey:        string(job.QueueKey),
		ScheduledTime:   job.ScheduledTime,
		FinishedAt:      r.clock.Now(),
		DurationSeconds: job.DurationSeconds,
		Payload:         payloadJSON,
	}
	return r.db.WithContext(ctx).Create(row).Error
}

// Recent returns the most recently finished jobs, newest first.
func (r *GormJobLogRepository) Recent(ctx context.Context, limit int) ([]JobLogEntry, error) {
	var models []JobLogModel
	err := r.db.WithContext(ctx).
		Order("finished_at DESC, id DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toEntries(models), nil
}

// ByStatus returns finished jobs with the given status, newest first.
func (r *GormJobLogRepository) ByStatus(ctx context.Context, status jobs.Status, limit int) ([]JobLogEntry, error) {
	var models []JobLogModel
	err := r.db.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("finished_at DESC, id DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toEntries(models), nil
}

// CountByKind returns how many ledger rows exist per job kind.
func (r *GormJobLogRepository) CountByKind(ctx context.Context) (map[jobs.Kind]int, error) {
	type row struct {
		Kind  string
		Total int
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&JobLogModel{}).
		Select("kind, count(*) as total").
		Group("kind").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[jobs.Kind]int, len(rows))
	for _, r := range rows {
		counts[jobs.Kind(r.Kind)] = r.Total
	}
	return counts, nil
}

func toEntries(models []JobLogModel) []JobLogEntry {
	entries := make([]JobLogEntry, len(models))
	for i, model := range models {
		var payload map[string]interface{}
		if model.Payload != "" {
			if err := json.Unmarshal([]byte(model.Payload), &payload); err != nil {
				payload = nil
			}
		}
		entries[i] = JobLogEntry{
			JobID:         model.JobID,
			Kind:          jobs.Kind(model.Kind),
			Status:        jobs.Status(model.Status),
			VillageID:     model.VillageID,
			ScheduledTime: model.ScheduledTime,
			FinishedAt:    model.FinishedAt,
			Payload:       payload,
		}
	}
	return entries
}

// jobPayload picks the variant payload that matches the job's kind.
func jobPayload(job *jobs.Job) interface{} {
	switch {
	case job.Build != nil:
		return job.Build
	case job.BuildNew != nil:
		return job.BuildNew
	case job.Train != nil:
		return job.Train
	case job.Adventure != nil:
		return job.Adventure
	case job.Allocate != nil:
		return job.Allocate
	case job.DailyQuests != nil:
		return job.DailyQuests
	case job.Questmaster != nil:
		return job.Questmaster
	case job.FoundVillage != nil:
		return job.FoundVillage
	case job.Ads != nil:
		return job.Ads
	default:
		return nil
	}
}
