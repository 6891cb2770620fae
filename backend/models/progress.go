package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// ProgressRecord is one start/completion row. The table keeps history, so a
// (user, tutorial) pair may have several rows; the current state is a
// projection computed by the progress package.
type ProgressRecord struct {
	gorm.Model
	UserID      uuid.UUID  `gorm:"type:uuid;index:idx_progress_user_tutorial" json:"user_id"`
	TutorialID  uint       `gorm:"index:idx_progress_user_tutorial" json:"tutorial_id"`
	Status      *string    `json:"status"`
	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

func (p ProgressRecord) IsCompleted() bool {
	return p.CompletedAt != nil
}

func (p ProgressRecord) IsStarted() bool {
	return p.StartedAt != nil || p.CompletedAt != nil
}
