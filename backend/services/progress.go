package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"techguide/backend/models"
	"techguide/backend/progress"
)

type Dashboard struct {
	Streak           int                         `json:"streak"`
	CompletedLessons int                         `json:"completed_lessons"`
	MinutesLearned   int                         `json:"minutes_learned"`
	Standing         progress.Standing           `json:"standing"`
	Categories       []progress.CategoryProgress `json:"categories"`
	Today            string                      `json:"today"`
}

type MyCourses struct {
	Categories []progress.CategoryProgress `json:"categories"`
	Courses    []progress.CourseProgress   `json:"courses"`
}

type Profile struct {
	User             models.User       `json:"user"`
	Streak           int               `json:"streak"`
	CompletedLessons int               `json:"completed_lessons"`
	Standing         progress.Standing `json:"standing"`
}

// ProgressService serves the student-facing progress views. Every view
// shares one Calculator, so dashboard and profile always agree on streaks.
type ProgressService struct {
	catalog  *CatalogService
	progress ProgressStore
	users    UserStore
	calc     *progress.Calculator
	now      func() time.Time
}

func NewProgressService(catalog *CatalogService, store ProgressStore, users UserStore, calc *progress.Calculator) *ProgressService {
	return &ProgressService{catalog: catalog, progress: store, users: users, calc: calc, now: time.Now}
}

// load fetches the catalog and the user's rows concurrently.
func (s *ProgressService) load(ctx context.Context, userID uuid.UUID) (progress.Catalog, []models.ProgressRecord, error) {
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
		records, err = s.progress.ListByUser(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return progress.Catalog{}, nil, err
	}
	return catalog, records, nil
}

func (s *ProgressService) Dashboard(ctx context.Context, userID uuid.UUID) (Dashboard, error) {
	catalog, records, err := s.load(ctx, userID)
	if err != nil {
		return Dashboard{}, err
	}

	streak := s.calc.StreakFromRecords(records)
	completed := progress.CompletedCount(records)
	return Dashboard{
		Streak:           streak,
		CompletedLessons: completed,
		MinutesLearned:   progress.CompletedMinutes(catalog, records),
		Standing:         progress.StandingFor(progress.Points(completed, streak)),
		Categories:       progress.CategoryRollup(catalog, records),
		Today:            s.calc.Today(),
	}, nil
}

// MyCourses lists the categories the user has started and every tutorial
// in them with its current status.
func (s *ProgressService) MyCourses(ctx context.Context, userID uuid.UUID) (MyCourses, error) {
	catalog, records, err := s.load(ctx, userID)
	if err != nil {
		return MyCourses{}, err
	}

	categories := progress.StartedCategories(catalog, records)
	started := make(map[uint]bool, len(categories))
	for _, cp := range categories {
		started[cp.CategoryID] = true
	}
	courses := make([]progress.CourseProgress, 0)
	for _, cp := range progress.CourseRollup(catalog, records) {
		if started[cp.CategoryID] {
			courses = append(courses, cp)
		}
	}
	return MyCourses{Categories: categories, Courses: courses}, nil
}

func (s *ProgressService) Profile(ctx context.Context, userID uuid.UUID) (Profile, error) {
	var (
		user    models.User
		records []models.ProgressRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = s.users.GetByID(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		records, err = s.progress.ListByUser(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return Profile{}, err
	}

	streak := s.calc.StreakFromRecords(records)
	completed := progress.CompletedCount(records)
	return Profile{
		User:             user,
		Streak:           streak,
		CompletedLessons: completed,
		Standing:         progress.StandingFor(progress.Points(completed, streak)),
	}, nil
}

func (s *ProgressService) StartTutorial(ctx context.Context, userID uuid.UUID, tutorialID uint) (models.ProgressRecord, error) {
	if _, err := s.catalog.Tutorial(ctx, tutorialID); err != nil {
		return models.ProgressRecord{}, err
	}
	return s.progress.Start(ctx, userID, tutorialID, s.now().UTC())
}

func (s *ProgressService) CompleteTutorial(ctx context.Context, userID uuid.UUID, tutorialID uint) (models.ProgressRecord, error) {
	if _, err := s.catalog.Tutorial(ctx, tutorialID); err != nil {
		return models.ProgressRecord{}, err
	}
	return s.progress.Complete(ctx, userID, tutorialID, s.now().UTC())
}
