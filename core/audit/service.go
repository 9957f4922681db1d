package audit

import (
	"time"

	"github.com/google/uuid"
)

// Actions
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionLogin  = "login"
)

type Repository interface {
	CreateLog(l Log) (Log, error)
	// RecentLogs returns at most limit entries, newest first.
	RecentLogs(limit int) ([]Log, error)
}

// Recorder appends entries to the audit trail.
type Recorder struct {
	repo Repository
	now  func() time.Time
}

func NewRecorder(repo Repository) *Recorder {
	return &Recorder{repo: repo, now: time.Now}
}

// Record stores one audit entry. A nil Recorder records nothing.
func (r *Recorder) Record(action, entity, entityID, actor string) error {
	if r == nil {
		return nil
	}
	_, err := r.repo.CreateLog(Log{
		ID:        uuid.New().String(),
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Actor:     actor,
		CreatedAt: r.now().UTC(),
	})
	return err
}

func (r *Recorder) Recent(limit int) ([]Log, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return r.repo.RecentLogs(limit)
}
