package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"techguide/backend/models"
	"techguide/backend/progress"
	"techguide/backend/repository"
)

type fakeCatalog struct {
	categories []models.Category
	tutorials  []models.Tutorial
	err        error
	calls      atomic.Int32
}

func (f *fakeCatalog) ListCategories(ctx context.Context) ([]models.Category, error) {
	f.calls.Add(1)
	return f.categories, f.err
}

func (f *fakeCatalog) ListTutorials(ctx context.Context, _ repository.TutorialFilter) ([]models.Tutorial, error) {
	f.calls.Add(1)
	return f.tutorials, f.err
}

func (f *fakeCatalog) GetTutorial(ctx context.Context, id uint) (models.Tutorial, error) {
	for _, t := range f.tutorials {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Tutorial{}, repository.ErrNotFound
}

type fakeProgress struct {
	mu   sync.Mutex
	rows []models.ProgressRecord
	err  error
}

func (f *fakeProgress) filter(keep func(models.ProgressRecord) bool) []models.ProgressRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ProgressRecord
	for _, r := range f.rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func (f *fakeProgress) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.ProgressRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.filter(func(r models.ProgressRecord) bool { return r.UserID == userID }), nil
}

func (f *fakeProgress) ListByTutorial(ctx context.Context, tutorialID uint) ([]models.ProgressRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.filter(func(r models.ProgressRecord) bool { return r.TutorialID == tutorialID }), nil
}

func (f *fakeProgress) ListAll(ctx context.Context) ([]models.ProgressRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.filter(func(models.ProgressRecord) bool { return true }), nil
}

func (f *fakeProgress) Start(ctx context.Context, userID uuid.UUID, tutorialID uint, now time.Time) (models.ProgressRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec := models.ProgressRecord{UserID: userID, TutorialID: tutorialID, StartedAt: &now}
	f.rows = append(f.rows, rec)
	return rec, nil
}

func (f *fakeProgress) Complete(ctx context.Context, userID uuid.UUID, tutorialID uint, now time.Time) (models.ProgressRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec := models.ProgressRecord{UserID: userID, TutorialID: tutorialID, StartedAt: &now, CompletedAt: &now}
	f.rows = append(f.rows, rec)
	return rec, nil
}

type fakeUsers struct {
	mu    sync.Mutex
	users map[uuid.UUID]models.User
}

func newFakeUsers(users ...models.User) *fakeUsers {
	f := &fakeUsers{users: map[uuid.UUID]models.User{}}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUsers) Create(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if strings.EqualFold(u.Email, user.Email) {
			return repository.ErrEmailTaken
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.Email = strings.ToLower(user.Email)
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUsers) GetByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return models.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return models.User{}, repository.ErrNotFound
}

func (f *fakeUsers) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[uuid.UUID]models.User{}
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (f *fakeUsers) List(ctx context.Context, page, pageSize int) ([]models.User, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, int64(len(out)), nil
}

func (f *fakeUsers) UpdateName(ctx context.Context, id uuid.UUID, first, last string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return models.User{}, repository.ErrNotFound
	}
	u.FirstName, u.LastName = first, last
	f.users[id] = u
	return u, nil
}

func (f *fakeUsers) UpdateRole(ctx context.Context, id uuid.UUID, role models.Role) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return models.User{}, repository.ErrNotFound
	}
	u.Role = role
	f.users[id] = u
	return u, nil
}

type memoryCache struct {
	mu      sync.Mutex
	catalog *progress.Catalog
}

func (c *memoryCache) Get(context.Context) (progress.Catalog, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.catalog == nil {
		return progress.Catalog{}, false
	}
	return *c.catalog, true
}

func (c *memoryCache) Set(_ context.Context, catalog progress.Catalog) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.catalog = &catalog
}

func (c *memoryCache) Invalidate(context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.catalog = nil
}
