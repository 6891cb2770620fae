package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"techguide/backend/models"
)

type ProgressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

func (r *ProgressRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.ProgressRecord, error) {
	var records []models.ProgressRecord
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&records).Error
	return records, wrap("list progress by user", err)
}

// ListByTutorial returns rows in insertion order, duplicates included.
func (r *ProgressRepository) ListByTutorial(ctx context.Context, tutorialID uint) ([]models.ProgressRecord, error) {
	var records []models.ProgressRecord
	err := r.db.WithContext(ctx).Where("tutorial_id = ?", tutorialID).Order("id ASC").Find(&records).Error
	return records, wrap("list progress by tutorial", err)
}

func (r *ProgressRepository) ListAll(ctx context.Context) ([]models.ProgressRecord, error) {
	var records []models.ProgressRecord
	err := r.db.WithContext(ctx).Order("id ASC").Find(&records).Error
	return records, wrap("list progress", err)
}

func (r *ProgressRepository) latest(tx *gorm.DB, userID uuid.UUID, tutorialID uint) (models.ProgressRecord, bool, error) {
	var rec models.ProgressRecord
	err := tx.Where("user_id = ? AND tutorial_id = ?", userID, tutorialID).
		Order("completed_at IS NULL, completed_at DESC, id DESC").
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rec, false, nil
	}
	return rec, err == nil, err
}

// Start records that the user opened a tutorial. An existing row is
// returned unchanged.
func (r *ProgressRepository) Start(ctx context.Context, userID uuid.UUID, tutorialID uint, now time.Time) (models.ProgressRecord, error) {
	var out models.ProgressRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec, found, err := r.latest(tx, userID, tutorialID)
		if err != nil {
			return err
		}
		if found {
			out = rec
			return nil
		}
		status := models.StatusInProgress
		out = models.ProgressRecord{UserID: userID, TutorialID: tutorialID, Status: &status, StartedAt: &now}
		return tx.Create(&out).Error
	})
	return out, wrap("start tutorial", err)
}

// Complete marks the user's current row for the tutorial as finished. A
// tutorial that was never started gets a row started and completed at now;
// an already completed one keeps its first completion time.
func (r *ProgressRepository) Complete(ctx context.Context, userID uuid.UUID, tutorialID uint, now time.Time) (models.ProgressRecord, error) {
	var out models.ProgressRecord
	status := models.StatusCompleted
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec, found, err := r.latest(tx, userID, tutorialID)
		if err != nil {
			return err
		}
		switch {
		case !found:
			out = models.ProgressRecord{UserID: userID, TutorialID: tutorialID, Status: &status, StartedAt: &now, CompletedAt: &now}
			return tx.Create(&out).Error
		case rec.IsCompleted():
			out = rec
			return nil
		default:
			if rec.StartedAt == nil {
				rec.StartedAt = &now
			}
			rec.CompletedAt = &now
			rec.Status = &status
			out = rec
			return tx.Save(&out).Error
		}
	})
	return out, wrap("complete tutorial", err)
}
