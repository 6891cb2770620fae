package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"techguide/backend/models"
)

type TutorialFilter struct {
	CategoryID uint
	Difficulty models.Difficulty
	Search     string
}

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).Order("id ASC").Find(&categories).Error
	return categories, wrap("list categories", err)
}

func (r *CatalogRepository) ListTutorials(ctx context.Context, filter TutorialFilter) ([]models.Tutorial, error) {
	query := r.db.WithContext(ctx).Model(&models.Tutorial{}).Preload("Category")

	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Difficulty != "" {
		query = query.Where("difficulty = ?", filter.Difficulty)
	}
	if s := strings.ToLower(strings.TrimSpace(filter.Search)); s != "" {
		like := "%" + s + "%"
		query = query.Where("(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)", like, like)
	}

	var tutorials []models.Tutorial
	err := query.Order("id ASC").Find(&tutorials).Error
	return tutorials, wrap("list tutorials", err)
}

func (r *CatalogRepository) GetTutorial(ctx context.Context, id uint) (models.Tutorial, error) {
	var tutorial models.Tutorial
	err := r.db.WithContext(ctx).Preload("Category").First(&tutorial, id).Error
	return tutorial, wrap("get tutorial", err)
}

func (r *CatalogRepository) CountCategories(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Category{}).Count(&n).Error
	return n, wrap("count categories", err)
}

// CreateCategories inserts categories together with their tutorials in one
// transaction.
func (r *CatalogRepository) CreateCategories(ctx context.Context, categories []models.Category) error {
	return wrap("create categories", r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range categories {
			if err := tx.Create(&categories[i]).Error; err != nil {
				return err
			}
		}
		return nil
	}))
}
