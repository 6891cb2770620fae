package progress

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"techguide/backend/models"
)

const (
	CategoryNotStarted = "Not Started"
	CategoryInProgress = "In Progress"
	CategoryCompleted  = "Completed"
)

// Catalog is the tutorial catalog together with its category metadata.
type Catalog struct {
	Categories []models.Category
	Tutorials  []models.Tutorial
}

func (c Catalog) categoryIndex() map[uint]models.Category {
	idx := make(map[uint]models.Category, len(c.Categories))
	for _, cat := range c.Categories {
		idx[cat.ID] = cat
	}
	return idx
}

// TutorialByID returns the tutorial with the given id, if present.
func (c Catalog) TutorialByID(id uint) (models.Tutorial, bool) {
	for _, t := range c.Tutorials {
		if t.ID == id {
			return t, true
		}
	}
	return models.Tutorial{}, false
}

// CategoryName resolves id against the catalog, falling back to
// "Uncategorized".
func (c Catalog) CategoryName(id uint) string {
	for _, cat := range c.Categories {
		if cat.ID == id && cat.Name != "" {
			return cat.Name
		}
	}
	return models.Uncategorized
}

type CategoryProgress struct {
	CategoryID         uint    `json:"category_id"`
	CategoryName       string  `json:"category_name"`
	Description        *string `json:"description"`
	DisplayOrder       int     `json:"display_order"`
	TotalTutorials     int     `json:"total_tutorials"`
	CompletedTutorials int     `json:"completed_tutorials"`
	StartedTutorials   int     `json:"started_tutorials"`
	ProgressPercentage int     `json:"progress_percentage"`
	Status             string  `json:"status"`
}

type CourseProgress struct {
	TutorialID        uint              `json:"tutorial_id"`
	Title             string            `json:"title"`
	CategoryID        uint              `json:"category_id"`
	CategoryName      string            `json:"category_name"`
	Difficulty        models.Difficulty `json:"difficulty_level"`
	EstimatedDuration string            `json:"estimated_duration"`
	Status            string            `json:"status"`
	StartedAt         *time.Time        `json:"started_at"`
	CompletedAt       *time.Time        `json:"completed_at"`
}

// CategoryEngagement is the instructor view of a category. Its average is
// the mean of every engaged student's own completion percentage, which is
// not the same number as completed/total over all students.
type CategoryEngagement struct {
	CategoryID        uint        `json:"category_id"`
	CategoryName      string      `json:"category_name"`
	DisplayOrder      int         `json:"display_order"`
	TotalTutorials    int         `json:"total_tutorials"`
	StudentCount      int         `json:"student_count"`
	AverageCompletion int         `json:"average_completion"`
	StudentIDs        []uuid.UUID `json:"student_ids"`
}

// Percentage is round(part/whole*100), or 0 when whole is 0.
func Percentage(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}

func categoryStatus(cp CategoryProgress) string {
	switch {
	case cp.TotalTutorials > 0 && cp.CompletedTutorials == cp.TotalTutorials:
		return CategoryCompleted
	case cp.StartedTutorials > 0:
		return CategoryInProgress
	default:
		return CategoryNotStarted
	}
}

// CategoryRollup builds one CategoryProgress per category that owns at
// least one tutorial, from a single user's progress rows.
func CategoryRollup(catalog Catalog, records []models.ProgressRecord) []CategoryProgress {
	current := CurrentByTutorial(records)
	cats := catalog.categoryIndex()

	byID := make(map[uint]*CategoryProgress)
	for _, t := range catalog.Tutorials {
		cp, ok := byID[t.CategoryID]
		if !ok {
			cp = &CategoryProgress{CategoryID: t.CategoryID, CategoryName: models.Uncategorized, DisplayOrder: models.UnorderedDisplayOrder}
			if cat, found := cats[t.CategoryID]; found {
				cp.CategoryName = cat.Name
				cp.Description = cat.Description
				cp.DisplayOrder = cat.Order()
			}
			byID[t.CategoryID] = cp
		}
		cp.TotalTutorials++
		if r, ok := current[t.ID]; ok {
			if r.IsStarted() {
				cp.StartedTutorials++
			}
			if r.IsCompleted() {
				cp.CompletedTutorials++
			}
		}
	}

	out := make([]CategoryProgress, 0, len(byID))
	for _, cp := range byID {
		cp.ProgressPercentage = Percentage(cp.CompletedTutorials, cp.TotalTutorials)
		cp.Status = categoryStatus(*cp)
		out = append(out, *cp)
	}
	SortCategories(out)
	return out
}

// SortCategories orders by display order, then case-insensitive name, then id.
func SortCategories(cps []CategoryProgress) {
	sort.SliceStable(cps, func(i, j int) bool {
		return categoryLess(cps[i].DisplayOrder, cps[i].CategoryName, cps[i].CategoryID,
			cps[j].DisplayOrder, cps[j].CategoryName, cps[j].CategoryID)
	})
}

// StartedCategories is CategoryRollup restricted to categories in which
// the user has started at least one tutorial.
func StartedCategories(catalog Catalog, records []models.ProgressRecord) []CategoryProgress {
	all := CategoryRollup(catalog, records)
	out := all[:0]
	for _, cp := range all {
		if cp.StartedTutorials > 0 {
			out = append(out, cp)
		}
	}
	return out
}

// CourseRollup lists every tutorial with the user's current status, in
// category order and then by tutorial id.
func CourseRollup(catalog Catalog, records []models.ProgressRecord) []CourseProgress {
	current := CurrentByTutorial(records)
	cats := catalog.categoryIndex()

	out := make([]CourseProgress, 0, len(catalog.Tutorials))
	for _, t := range catalog.Tutorials {
		cp := CourseProgress{
			TutorialID:        t.ID,
			Title:             t.Title,
			CategoryID:        t.CategoryID,
			CategoryName:      models.Uncategorized,
			Difficulty:        t.Difficulty,
			EstimatedDuration: t.DurationLabel(),
			Status:            StatusNotStarted,
		}
		if cat, ok := cats[t.CategoryID]; ok {
			cp.CategoryName = cat.Name
		}
		if r, ok := current[t.ID]; ok {
			cp.Status = StatusOf(r)
			cp.StartedAt = r.StartedAt
			cp.CompletedAt = r.CompletedAt
		}
		out = append(out, cp)
	}

	order := func(id uint) int {
		if cat, ok := cats[id]; ok {
			return cat.Order()
		}
		return models.UnorderedDisplayOrder
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.CategoryID != b.CategoryID {
			return categoryLess(order(a.CategoryID), a.CategoryName, a.CategoryID,
				order(b.CategoryID), b.CategoryName, b.CategoryID)
		}
		return a.TutorialID < b.TutorialID
	})
	return out
}

// CompletedMinutes sums the estimated duration of completed tutorials;
// tutorials without a duration contribute nothing.
func CompletedMinutes(catalog Catalog, records []models.ProgressRecord) int {
	current := CurrentByTutorial(records)
	total := 0
	for _, t := range catalog.Tutorials {
		if r, ok := current[t.ID]; ok && r.IsCompleted() {
			total += t.DurationMinutes()
		}
	}
	return total
}

// CompletedCount is the number of distinct tutorials the user completed.
func CompletedCount(records []models.ProgressRecord) int {
	n := 0
	for _, r := range CurrentByTutorial(records) {
		if r.IsCompleted() {
			n++
		}
	}
	return n
}

// InstructorRollup computes per-category engagement over the progress rows
// of all users. Rows for tutorials missing from the catalog are ignored.
func InstructorRollup(catalog Catalog, records []models.ProgressRecord) []CategoryEngagement {
	cats := catalog.categoryIndex()
	tutorialCategory := make(map[uint]uint, len(catalog.Tutorials))
	totals := make(map[uint]int)
	for _, t := range catalog.Tutorials {
		tutorialCategory[t.ID] = t.CategoryID
		totals[t.CategoryID]++
	}

	type key struct {
		user     uuid.UUID
		tutorial uint
	}
	completed := make(map[key]bool)
	students := make(map[uint][]uuid.UUID)
	seen := make(map[uint]map[uuid.UUID]bool)
	for _, r := range records {
		catID, ok := tutorialCategory[r.TutorialID]
		if !ok {
			continue
		}
		if seen[catID] == nil {
			seen[catID] = make(map[uuid.UUID]bool)
		}
		if !seen[catID][r.UserID] {
			seen[catID][r.UserID] = true
			students[catID] = append(students[catID], r.UserID)
		}
		if r.IsCompleted() {
			completed[key{r.UserID, r.TutorialID}] = true
		}
	}

	perStudent := make(map[uint]map[uuid.UUID]int)
	for k := range completed {
		catID := tutorialCategory[k.tutorial]
		if perStudent[catID] == nil {
			perStudent[catID] = make(map[uuid.UUID]int)
		}
		perStudent[catID][k.user]++
	}

	out := make([]CategoryEngagement, 0, len(totals))
	for catID, total := range totals {
		ce := CategoryEngagement{
			CategoryID:     catID,
			CategoryName:   models.Uncategorized,
			DisplayOrder:   models.UnorderedDisplayOrder,
			TotalTutorials: total,
			StudentIDs:     students[catID],
		}
		if cat, ok := cats[catID]; ok {
			ce.CategoryName = cat.Name
			ce.DisplayOrder = cat.Order()
		}
		if ce.StudentIDs == nil {
			ce.StudentIDs = []uuid.UUID{}
		}
		ce.StudentCount = len(ce.StudentIDs)
		if ce.StudentCount > 0 {
			var sum float64
			for _, id := range ce.StudentIDs {
				sum += float64(perStudent[catID][id]) / float64(total) * 100
			}
			ce.AverageCompletion = int(math.Round(sum / float64(ce.StudentCount)))
		}
		out = append(out, ce)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return categoryLess(out[i].DisplayOrder, out[i].CategoryName, out[i].CategoryID,
			out[j].DisplayOrder, out[j].CategoryName, out[j].CategoryID)
	})
	return out
}

func categoryLess(orderA int, nameA string, idA uint, orderB int, nameB string, idB uint) bool {
	if orderA != orderB {
		return orderA < orderB
	}
	la, lb := strings.ToLower(nameA), strings.ToLower(nameB)
	if la != lb {
		return la < lb
	}
	return idA < idB
}
