// Package store is the persistence collaborator for the progress engine:
// read access over the OKR schema plus the single write the cycle sweep
// needs. Query errors propagate to callers; the engine itself never fails
// on business data.
package store

import (
	"fmt"

	"github.com/stridehq/stride/internal/models"
	"github.com/stridehq/stride/internal/progress"
	"gorm.io/gorm"
)

// ListKeyResults returns key results, optionally scoped to one objective.
func ListKeyResults(db *gorm.DB, objectiveID string) ([]models.KeyResult, error) {
	q := db.Model(&models.KeyResult{})
	if objectiveID != "" {
		q = q.Where("objective_id = ?", objectiveID)
	}
	var krs []models.KeyResult
	if err := q.Order("created_at ASC").Find(&krs).Error; err != nil {
		return nil, fmt.Errorf("store: list key results: %w", err)
	}
	return krs, nil
}

// ListObjectives returns objectives filtered by cycle and/or parent. An
// empty cycleID matches all cycles; parentID "" matches all objectives and
// the special value "root" matches only top-level objectives.
func ListObjectives(db *gorm.DB, cycleID, parentID string) ([]models.Objective, error) {
	q := db.Model(&models.Objective{})
	if cycleID != "" {
		q = q.Where("cycle_id = ?", cycleID)
	}
	switch parentID {
	case "":
	case "root":
		q = q.Where("parent_id IS NULL")
	default:
		q = q.Where("parent_id = ?", parentID)
	}
	var objectives []models.Objective
	if err := q.Order("created_at ASC").Find(&objectives).Error; err != nil {
		return nil, fmt.Errorf("store: list objectives: %w", err)
	}
	return objectives, nil
}

// ListCycles returns all cycles, oldest start date first.
func ListCycles(db *gorm.DB) ([]models.Cycle, error) {
	var cycles []models.Cycle
	if err := db.Order("start_date ASC").Find(&cycles).Error; err != nil {
		return nil, fmt.Errorf("store: list cycles: %w", err)
	}
	return cycles, nil
}

// UpdateCycleStatus persists a cycle's resolved lifecycle status.
func UpdateCycleStatus(db *gorm.DB, id, status string) error {
	if err := db.Model(&models.Cycle{}).Where("id = ?", id).
		Update("status", status).Error; err != nil {
		return fmt.Errorf("store: update cycle %s status: %w", id, err)
	}
	return nil
}

// InitiativeRow is one initiative under a key result. Initiative progress
// is independently tracked, never derived from the key result.
type InitiativeRow struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Progress float64 `json:"progress"`
	Status   string  `json:"status"`
	Priority string  `json:"priority"`
	DueDate  *string `json:"due_date,omitempty"`
}

// KeyResultRow is one key result with its normalized progress, for display.
type KeyResultRow struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	MeasurementType string          `json:"measurement_type"`
	BaseValue       float64         `json:"base_value"`
	TargetValue     float64         `json:"target_value"`
	CurrentValue    float64         `json:"current_value"`
	Achieved        bool            `json:"achieved"`
	DueDate         *string         `json:"due_date,omitempty"`
	Progress        float64         `json:"progress"`
	Initiatives     []InitiativeRow `json:"initiatives,omitempty"`
}

// ObjectiveDetail is an objective with recomputed progress and its key
// result breakdown.
type ObjectiveDetail struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	OwnerID    string         `json:"owner_id"`
	CycleID    string         `json:"cycle_id"`
	Status     string         `json:"status"`
	Label      progress.Label `json:"label"`
	Progress   float64        `json:"progress"`
	KeyResults []KeyResultRow `json:"key_results"`
}

// GetObjectiveDetail loads one objective and computes its progress from its
// key results at read time.
func GetObjectiveDetail(db *gorm.DB, id string) (*ObjectiveDetail, error) {
	var obj models.Objective
	if err := db.Where("id = ?", id).First(&obj).Error; err != nil {
		return nil, fmt.Errorf("store: objective %s: %w", id, err)
	}
	krs, err := ListKeyResults(db, id)
	if err != nil {
		return nil, err
	}

	krIDs := make([]string, len(krs))
	for i, kr := range krs {
		krIDs[i] = kr.ID
	}
	initiativesByKR := make(map[string][]InitiativeRow)
	if len(krIDs) > 0 {
		var initiatives []models.Initiative
		if err := db.Where("key_result_id IN ?", krIDs).
			Order("created_at ASC").Find(&initiatives).Error; err != nil {
			return nil, fmt.Errorf("store: list initiatives: %w", err)
		}
		for _, in := range initiatives {
			initiativesByKR[in.KeyResultID] = append(initiativesByKR[in.KeyResultID], InitiativeRow{
				ID:       in.ID,
				Title:    in.Title,
				Progress: in.Progress,
				Status:   in.Status,
				Priority: in.Priority,
				DueDate:  in.DueDate,
			})
		}
	}

	detail := &ObjectiveDetail{
		ID:       obj.ID,
		Title:    obj.Title,
		OwnerID:  obj.OwnerID,
		CycleID:  obj.CycleID,
		Status:   obj.Status,
		Label:    progress.ClassifyObjective(obj.Status),
		Progress: progress.ObjectiveProgress(krs),
	}
	detail.KeyResults = make([]KeyResultRow, len(krs))
	for i, kr := range krs {
		detail.KeyResults[i] = KeyResultRow{
			ID:              kr.ID,
			Title:           kr.Title,
			MeasurementType: kr.MeasurementType,
			BaseValue:       kr.BaseValue,
			TargetValue:     kr.TargetValue,
			CurrentValue:    kr.CurrentValue,
			Achieved:        kr.Achieved,
			DueDate:         kr.DueDate,
			Progress:        progress.Normalize(kr),
			Initiatives:     initiativesByKR[kr.ID],
		}
	}
	return detail, nil
}

// RecordCheckIn appends a check-in against a key result and mirrors its
// value into CurrentValue, the field the normalizer reads. Check-ins are
// append-only; the history stays in check_ins.
func RecordCheckIn(db *gorm.DB, keyResultID string, value float64, note, authorID string) (*models.CheckIn, error) {
	var kr models.KeyResult
	if err := db.Where("id = ?", keyResultID).First(&kr).Error; err != nil {
		return nil, fmt.Errorf("store: key result %s: %w", keyResultID, err)
	}

	checkIn := models.CheckIn{
		KeyResultID: keyResultID,
		Value:       value,
		Note:        note,
		AuthorID:    authorID,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&checkIn).Error; err != nil {
			return err
		}
		return tx.Model(&models.KeyResult{}).Where("id = ?", keyResultID).
			Update("current_value", value).Error
	})
	if err != nil {
		return nil, fmt.Errorf("store: check in on %s: %w", keyResultID, err)
	}
	return &checkIn, nil
}

// ObjectiveSummary is one objective with rolled-up progress for group views.
type ObjectiveSummary struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	OwnerID  string         `json:"owner_id"`
	Status   string         `json:"status"`
	Label    progress.Label `json:"label"`
	Progress float64        `json:"progress"`
}

// GroupSummary is a cycle's top-level rollup: each root objective's own
// progress plus the mean-of-means group score.
type GroupSummary struct {
	CycleID    string             `json:"cycle_id"`
	Progress   float64            `json:"progress"`
	Objectives []ObjectiveSummary `json:"objectives"`
}

// GetGroupSummary computes a cycle's group progress over its top-level
// objectives. Each objective contributes its own key result mean; the group
// score is the mean of those means.
func GetGroupSummary(db *gorm.DB, cycleID string) (*GroupSummary, error) {
	objectives, err := ListObjectives(db, cycleID, "root")
	if err != nil {
		return nil, err
	}

	summary := &GroupSummary{CycleID: cycleID, Objectives: make([]ObjectiveSummary, len(objectives))}
	means := make([]float64, len(objectives))
	for i, obj := range objectives {
		krs, err := ListKeyResults(db, obj.ID)
		if err != nil {
			return nil, err
		}
		p := progress.ObjectiveProgress(krs)
		means[i] = p
		summary.Objectives[i] = ObjectiveSummary{
			ID:       obj.ID,
			Title:    obj.Title,
			OwnerID:  obj.OwnerID,
			Status:   obj.Status,
			Label:    progress.ClassifyObjective(obj.Status),
			Progress: p,
		}
	}
	summary.Progress = progress.GroupProgress(means)
	return summary, nil
}

// TreeNode is one objective in the mindmap rollup.
type TreeNode struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	ParentID *string `json:"parent_id,omitempty"`
	Progress float64 `json:"progress"`
}

// GetObjectiveTree computes bottom-up rollup progress for every objective
// in a cycle.
func GetObjectiveTree(db *gorm.DB, cycleID string) ([]TreeNode, error) {
	objectives, err := ListObjectives(db, cycleID, "")
	if err != nil {
		return nil, err
	}

	krsByObjective := make(map[string][]models.KeyResult, len(objectives))
	for _, obj := range objectives {
		krs, err := ListKeyResults(db, obj.ID)
		if err != nil {
			return nil, err
		}
		krsByObjective[obj.ID] = krs
	}

	computed := progress.TreeProgress(objectives, krsByObjective)
	nodes := make([]TreeNode, len(objectives))
	for i, obj := range objectives {
		nodes[i] = TreeNode{
			ID:       obj.ID,
			Title:    obj.Title,
			ParentID: obj.ParentID,
			Progress: computed[obj.ID],
		}
	}
	return nodes, nil
}

// FocusTask is one task in the daily-focus view, scored for triage.
type FocusTask struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Status   string  `json:"status"`
	Priority string  `json:"priority"`
	DueDate  *string `json:"due_date,omitempty"`
	Health   int     `json:"health"`
	Bucket   string  `json:"bucket"`
}

// DailyFocus returns an assignee's open tasks sorted by due date (nulls
// last), each with its health score and bucket. Completed and cancelled
// tasks are excluded; they have nothing to triage.
func DailyFocus(db *gorm.DB, assigneeID, today string) ([]FocusTask, error) {
	q := db.Model(&models.Task{}).
		Where("status IN ?", []string{models.TaskNotStarted, models.TaskInProgress})
	if assigneeID != "" {
		q = q.Where("assignee_id = ?", assigneeID)
	}
	var tasks []models.Task
	if err := q.Order("created_at ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("store: daily focus: %w", err)
	}

	progress.SortTasks(tasks)
	result := make([]FocusTask, len(tasks))
	for i, task := range tasks {
		score := progress.TaskHealth(task, today)
		result[i] = FocusTask{
			ID:       task.ID,
			Title:    task.Title,
			Status:   task.Status,
			Priority: task.Priority,
			DueDate:  task.DueDate,
			Health:   score,
			Bucket:   progress.HealthBucket(score),
		}
	}
	return result, nil
}
