package services

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"techguide/backend/models"
	"techguide/backend/progress"
	"techguide/backend/repository"
)

// CatalogCache stores the full, unfiltered catalog. Implementations must be
// safe for concurrent use.
type CatalogCache interface {
	Get(ctx context.Context) (progress.Catalog, bool)
	Set(ctx context.Context, catalog progress.Catalog)
	Invalidate(ctx context.Context)
}

type noCache struct{}

func (noCache) Get(context.Context) (progress.Catalog, bool) { return progress.Catalog{}, false }
func (noCache) Set(context.Context, progress.Catalog)        {}
func (noCache) Invalidate(context.Context)                   {}

type CatalogService struct {
	store CatalogStore
	cache CatalogCache
}

// NewCatalogService caches the catalog in cache; a nil cache disables
// caching.
func NewCatalogService(store CatalogStore, cache CatalogCache) *CatalogService {
	if cache == nil {
		cache = noCache{}
	}
	return &CatalogService{store: store, cache: cache}
}

// Catalog returns every category and tutorial. Categories and tutorials are
// fetched concurrently on a cache miss.
func (s *CatalogService) Catalog(ctx context.Context) (progress.Catalog, error) {
	if cached, ok := s.cache.Get(ctx); ok {
		return cached, nil
	}

	var catalog progress.Catalog
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cats, err := s.store.ListCategories(gctx)
		catalog.Categories = cats
		return err
	})
	g.Go(func() error {
		tuts, err := s.store.ListTutorials(gctx, repository.TutorialFilter{})
		catalog.Tutorials = tuts
		return err
	})
	if err := g.Wait(); err != nil {
		return progress.Catalog{}, err
	}

	s.cache.Set(ctx, catalog)
	zerolog.Ctx(ctx).Debug().
		Int("categories", len(catalog.Categories)).
		Int("tutorials", len(catalog.Tutorials)).
		Msg("catalog loaded")
	return catalog, nil
}

// Categories lists categories in display order.
func (s *CatalogService) Categories(ctx context.Context) ([]progress.CategoryProgress, error) {
	catalog, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	rollup := progress.CategoryRollup(catalog, nil)

	// Categories without tutorials are still part of the catalog listing.
	listed := make(map[uint]bool, len(rollup))
	for _, cp := range rollup {
		listed[cp.CategoryID] = true
	}
	for _, cat := range catalog.Categories {
		if !listed[cat.ID] {
			rollup = append(rollup, progress.CategoryProgress{
				CategoryID:   cat.ID,
				CategoryName: cat.Name,
				Description:  cat.Description,
				DisplayOrder: cat.Order(),
				Status:       progress.CategoryNotStarted,
			})
		}
	}
	progress.SortCategories(rollup)
	return rollup, nil
}

func (s *CatalogService) Tutorials(ctx context.Context, filter repository.TutorialFilter) ([]models.Tutorial, error) {
	return s.store.ListTutorials(ctx, filter)
}

func (s *CatalogService) Tutorial(ctx context.Context, id uint) (models.Tutorial, error) {
	return s.store.GetTutorial(ctx, id)
}

func (s *CatalogService) Invalidate(ctx context.Context) {
	s.cache.Invalidate(ctx)
}
