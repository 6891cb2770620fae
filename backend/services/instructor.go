package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"techguide/backend/models"
	"techguide/backend/progress"
)

type StudentSummary struct {
	UserID      uuid.UUID  `json:"user_id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Status      string     `json:"status"`
	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

type TutorialReport struct {
	Tutorial       models.Tutorial  `json:"tutorial"`
	CategoryName   string           `json:"category_name"`
	Students       []StudentSummary `json:"students"`
	CompletedCount int              `json:"completed_count"`
	CompletionRate int              `json:"completion_rate"`
}

type InstructorService struct {
	catalog  *CatalogService
	progress ProgressStore
	users    UserStore
}

func NewInstructorService(catalog *CatalogService, store ProgressStore, users UserStore) *InstructorService {
	return &InstructorService{catalog: catalog, progress: store, users: users}
}

func (s *InstructorService) CategoryOverview(ctx context.Context) ([]progress.CategoryEngagement, error) {
	var (
		catalog progress.Catalog
		records []models.ProgressRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		catalog, err = s.catalog.Catalog(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		records, err = s.progress.ListAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return progress.InstructorRollup(catalog, records), nil
}

// TutorialStudents reports one row per student who touched the tutorial,
// even when the store holds several rows for them.
func (s *InstructorService) TutorialStudents(ctx context.Context, tutorialID uint) (TutorialReport, error) {
	var (
		tutorial models.Tutorial
		rows     []models.ProgressRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tutorial, err = s.catalog.Tutorial(gctx, tutorialID)
		return err
	})
	g.Go(func() error {
		var err error
		rows, err = s.progress.ListByTutorial(gctx, tutorialID)
		return err
	})
	if err := g.Wait(); err != nil {
		return TutorialReport{}, err
	}

	current := progress.CurrentStatus(rows)
	ids := make([]uuid.UUID, 0, len(current))
	for _, r := range current {
		ids = append(ids, r.UserID)
	}
	users, err := s.users.GetByIDs(ctx, ids)
	if err != nil {
		return TutorialReport{}, err
	}

	report := TutorialReport{
		Tutorial:     tutorial,
		CategoryName: tutorial.CategoryName(),
		Students:     make([]StudentSummary, 0, len(current)),
	}
	for _, r := range current {
		summary := StudentSummary{
			UserID:      r.UserID,
			Name:        models.UnknownUser,
			Status:      progress.StatusOf(r),
			StartedAt:   r.StartedAt,
			CompletedAt: r.CompletedAt,
		}
		if u, ok := users[r.UserID]; ok {
			summary.Name = u.DisplayName()
			summary.Email = u.Email
		}
		if r.IsCompleted() {
			report.CompletedCount++
		}
		report.Students = append(report.Students, summary)
	}
	report.CompletionRate = progress.Percentage(report.CompletedCount, len(report.Students))
	return report, nil
}
