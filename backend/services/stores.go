package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"techguide/backend/models"
	"techguide/backend/repository"
)

type CatalogStore interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListTutorials(ctx context.Context, filter repository.TutorialFilter) ([]models.Tutorial, error)
	GetTutorial(ctx context.Context, id uint) (models.Tutorial, error)
}

type ProgressStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.ProgressRecord, error)
	ListByTutorial(ctx context.Context, tutorialID uint) ([]models.ProgressRecord, error)
	ListAll(ctx context.Context) ([]models.ProgressRecord, error)
	Start(ctx context.Context, userID uuid.UUID, tutorialID uint, now time.Time) (models.ProgressRecord, error)
	Complete(ctx context.Context, userID uuid.UUID, tutorialID uint, now time.Time) (models.ProgressRecord, error)
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.User, error)
	List(ctx context.Context, page, pageSize int) ([]models.User, int64, error)
	UpdateName(ctx context.Context, id uuid.UUID, first, last string) (models.User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role models.Role) (models.User, error)
}
