package progress

import (
	"sort"
	"time"

	"github.com/stridehq/stride/internal/models"
)

// Health bucket labels, keyed off the task health score.
const (
	BucketHealthy  = "Healthy"
	BucketAtRisk   = "At Risk"
	BucketWarning  = "Warning"
	BucketCritical = "Critical"
)

const dateLayout = "2006-01-02"

// TaskHealth scores a task 0-100 for triage ordering. Completed tasks are
// always 100 and cancelled tasks always 0, regardless of due date or
// priority. Otherwise the score starts at 100 and takes deductions for
// status, due-date proximity, and priority.
func TaskHealth(task models.Task, today string) int {
	switch task.Status {
	case models.TaskCompleted:
		return 100
	case models.TaskCancelled:
		return 0
	}

	score := 100
	switch task.Status {
	case models.TaskNotStarted:
		score -= 20
	case models.TaskInProgress:
		score -= 10
	}

	if days, ok := daysUntilDue(task.DueDate, today); ok {
		switch {
		case days < 0:
			score -= 40
		case days == 0:
			score -= 30
		case days <= 3:
			score -= 20
		case days <= 7:
			score -= 10
		}
	}

	switch task.Priority {
	case models.PriorityHigh:
		score -= 20
	case models.PriorityMedium:
		score -= 10
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// HealthBucket maps a health score to its qualitative triage label.
func HealthBucket(score int) string {
	switch {
	case score >= 80:
		return BucketHealthy
	case score >= 60:
		return BucketAtRisk
	case score >= 40:
		return BucketWarning
	default:
		return BucketCritical
	}
}

// SortTasks orders tasks ascending by due date with undated tasks last.
// Ties keep their relative order so callers can pre-sort by a secondary key.
func SortTasks(tasks []models.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		di, dj := tasks[i].DueDate, tasks[j].DueDate
		if di == nil {
			return false
		}
		if dj == nil {
			return true
		}
		return *di < *dj
	})
}

// daysUntilDue returns the whole-day distance from today to the due date.
// Absent or malformed dates report ok=false and take no deduction.
func daysUntilDue(dueDate *string, today string) (int, bool) {
	if dueDate == nil || *dueDate == "" {
		return 0, false
	}
	due, err := time.Parse(dateLayout, *dueDate)
	if err != nil {
		return 0, false
	}
	now, err := time.Parse(dateLayout, today)
	if err != nil {
		return 0, false
	}
	return int(due.Sub(now).Hours() / 24), true
}
