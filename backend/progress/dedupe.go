package progress

import (
	"github.com/google/uuid"

	"techguide/backend/models"
)

const (
	StatusNotStarted = "not_started"
	StatusInProgress = models.StatusInProgress
	StatusCompleted  = models.StatusCompleted
)

// StatusOf derives the status of a single row from its timestamps; the
// stored status column is advisory and not trusted.
func StatusOf(r models.ProgressRecord) string {
	switch {
	case r.IsCompleted():
		return StatusCompleted
	case r.IsStarted():
		return StatusInProgress
	default:
		return StatusNotStarted
	}
}

// supersedes reports whether candidate should replace current as the row
// describing a student's state. A completed row beats an unfinished one,
// the later completion beats an earlier one, and nothing downgrades a
// completed row.
func supersedes(current, candidate models.ProgressRecord) bool {
	if !candidate.IsCompleted() {
		return false
	}
	if !current.IsCompleted() {
		return true
	}
	return candidate.CompletedAt.After(*current.CompletedAt)
}

// CurrentStatus collapses the rows recorded for one tutorial to a single
// row per user. Users keep the order in which they first appear.
func CurrentStatus(rows []models.ProgressRecord) []models.ProgressRecord {
	index := make(map[uuid.UUID]int, len(rows))
	out := make([]models.ProgressRecord, 0, len(rows))
	for _, r := range rows {
		i, seen := index[r.UserID]
		if !seen {
			index[r.UserID] = len(out)
			out = append(out, r)
			continue
		}
		if supersedes(out[i], r) {
			out[i] = r
		}
	}
	return out
}

// CurrentByTutorial applies the same precedence to one user's rows, keyed
// by tutorial.
func CurrentByTutorial(rows []models.ProgressRecord) map[uint]models.ProgressRecord {
	out := make(map[uint]models.ProgressRecord, len(rows))
	for _, r := range rows {
		cur, seen := out[r.TutorialID]
		if !seen || supersedes(cur, r) {
			out[r.TutorialID] = r
		}
	}
	return out
}
