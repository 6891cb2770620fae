package services

import (
	"context"

	"techguide/backend/models"
)

type CatalogSeeder interface {
	CountCategories(ctx context.Context) (int64, error)
	CreateCategories(ctx context.Context, categories []models.Category) error
}

// SeedCatalog inserts categories only into an empty catalog. It reports
// whether anything was written.
func SeedCatalog(ctx context.Context, store CatalogSeeder, categories []models.Category) (bool, error) {
	n, err := store.CountCategories(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	if err := store.CreateCategories(ctx, categories); err != nil {
		return false, err
	}
	return true, nil
}

// DefaultCatalog is the digital-literacy curriculum a fresh installation
// starts with.
func DefaultCatalog() []models.Category {
	intPtr := func(v int) *int { return &v }
	strPtr := func(s string) *string { return &s }
	return []models.Category{
		{
			Name:         "Getting Started",
			Description:  strPtr("First steps with a computer, tablet or phone"),
			DisplayOrder: intPtr(1),
			Tutorials: []models.Tutorial{
				{Title: "Turning your device on and off", Description: "Power buttons, sleep and restart", Difficulty: models.Beginner, EstimatedDuration: intPtr(5)},
				{Title: "Using a mouse and touchpad", Description: "Pointing, clicking and scrolling", Difficulty: models.Beginner, EstimatedDuration: intPtr(10)},
				{Title: "Typing on a keyboard", Description: "Letters, numbers and the keys that matter", Difficulty: models.Beginner, EstimatedDuration: intPtr(15)},
			},
		},
		{
			Name:         "Using the Internet",
			Description:  strPtr("Browse, search and stay connected"),
			DisplayOrder: intPtr(2),
			Tutorials: []models.Tutorial{
				{Title: "Opening a web browser", Description: "Finding and launching your browser", Difficulty: models.Beginner, EstimatedDuration: intPtr(5)},
				{Title: "Searching the web", Description: "Writing good search terms", Difficulty: models.Beginner, EstimatedDuration: intPtr(10)},
				{Title: "Setting up an email account", Description: "Creating and signing in to email", Difficulty: models.Intermediate, EstimatedDuration: intPtr(20)},
				{Title: "Video calls with family", Description: "Joining and starting a video call", Difficulty: models.Intermediate},
			},
		},
		{
			Name:         "Staying Safe Online",
			Description:  strPtr("Passwords, scams and privacy"),
			DisplayOrder: intPtr(3),
			Tutorials: []models.Tutorial{
				{Title: "Creating strong passwords", Description: "Passphrases and password managers", Difficulty: models.Intermediate, EstimatedDuration: intPtr(15)},
				{Title: "Spotting phishing emails", Description: "Recognising fake messages and links", Difficulty: models.Advanced, EstimatedDuration: intPtr(20)},
				{Title: "Two-step verification", Description: "Adding a second lock to your accounts", Difficulty: models.Advanced, EstimatedDuration: intPtr(15)},
			},
		},
	}
}
