package persistence

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/travian-go/internal/application/common"
	"github.com/andrescamacho/travian-go/internal/domain/shared"
)

// AgentLogModel represents the agent_log table.
type AgentLogModel struct {
	ID        int       `gorm:"column:id;primaryKey;autoIncrement"`
	Timestamp time.Time `gorm:"column:timestamp;not null;index"`
	Level     string    `gorm:"column:level;not null;default:'INFO'"`
	Message   string    `gorm:"column:message;type:text;not null"`
	Metadata  string    `gorm:"column:metadata;type:text"` // JSON as text
}

func (AgentLogModel) TableName() string {
	return "agent_log"
}

// GormAgentLogRepository persists agent events. It satisfies common.Logger,
// so it can back the context-carried logger directly.
//
// Repeated identical messages inside the dedup window are dropped: the
// planner logs the same infeasible-build line every pass and the ledger
// should not grow by one row per minute.
type GormAgentLogRepository struct {
	db    *gorm.DB
	clock shared.Clock

	dedupCache   map[string]time.Time
	dedupMu      sync.Mutex
	dedupWindow  time.Duration
	dedupMaxSize int
}

var _ common.Logger = (*GormAgentLogRepository)(nil)

// NewGormAgentLogRepository creates an agent log repository.
// If clock is nil, uses RealClock (production behavior).
func NewGormAgentLogRepository(db *gorm.DB, clock shared.Clock) *GormAgentLogRepository {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormAgentLogRepository{
		db:           db,
		clock:        clock,
		dedupCache:   make(map[string]time.Time),
		dedupWindow:  60 * time.Second,
		dedupMaxSize: 10000,
	}
}

func (r *GormAgentLogRepository) Log(level, message string, metadata map[string]interface{}) {
	now := r.clock.Now()

	r.dedupMu.Lock()
	if lastLogged, exists := r.dedupCache[message]; exists {
		if now.Sub(lastLogged) < r.dedupWindow {
			r.dedupMu.Unlock()
			return
		}
	}
	if len(r.dedupCache) >= r.dedupMaxSize {
		r.cleanupDedupCache(now)
	}
	r.dedupCache[message] = now
	r.dedupMu.Unlock()

	var metadataJSON string
	if len(metadata) > 0 {
		if jsonBytes, err := json.Marshal(metadata); err == nil {
			metadataJSON = string(jsonBytes)
		}
	}

	// The logger interface has no error return; a failed insert must not
	// take the loop down.
	r.db.Create(&AgentLogModel{
		Timestamp: now,
		Level:     level,
		Message:   message,
		Metadata:  metadataJSON,
	})
}

// cleanupDedupCache removes stale entries. Must be called holding dedupMu.
func (r *GormAgentLogRepository) cleanupDedupCache(now time.Time) {
	cutoff := now.Add(-r.dedupWindow)
	for key, timestamp := range r.dedupCache {
		if timestamp.Before(cutoff) {
			delete(r.dedupCache, key)
		}
	}
}

// Recent returns the latest log rows, newest first.
func (r *GormAgentLogRepository) Recent(ctx context.Context, limit int, level *string) ([]AgentLogModel, error) {
	query := r.db.WithContext(ctx)
	if level != nil {
		query = query.Where("level = ?", *level)
	}

	var models []AgentLogModel
	err := query.Order("timestamp DESC, id DESC").Limit(limit).Find(&models).Error
	return models, err
}
