package store

import (
	"errors"
	"testing"

	"github.com/stridehq/stride/internal/models"
	"github.com/stridehq/stride/internal/progress"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB creates an in-memory SQLite database with all required tables.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Cycle{},
		&models.Objective{},
		&models.KeyResult{},
		&models.CheckIn{},
		&models.Initiative{},
		&models.Task{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func strPtr(s string) *string { return &s }

// seedObjectiveTree creates a small cycle with a root objective, one child,
// and key results at known progress values.
func seedObjectiveTree(t *testing.T, db *gorm.DB) {
	t.Helper()
	db.Create(&models.Cycle{ID: "q1", Name: "Q1 2025", StartDate: "2025-01-01", EndDate: "2025-03-31", Status: models.CycleActive})
	db.Create(&models.Objective{ID: "company", Title: "Grow revenue", CycleID: "q1", Status: models.ObjectiveOnTrack})
	db.Create(&models.Objective{ID: "sales", Title: "Close enterprise deals", CycleID: "q1", ParentID: strPtr("company"), Status: models.ObjectiveAtRisk})
	db.Create(&models.KeyResult{ID: "kr-a", ObjectiveID: "sales", Title: "ARR", MeasurementType: models.MeasureIncreaseTo, BaseValue: 0, TargetValue: 4, CurrentValue: 2})
	db.Create(&models.KeyResult{ID: "kr-b", ObjectiveID: "sales", Title: "SOC2", MeasurementType: models.MeasureAchieveOrNot, Achieved: false})
}

func TestListKeyResults_ScopedToObjective(t *testing.T) {
	db := testDB(t)
	seedObjectiveTree(t, db)
	db.Create(&models.KeyResult{ID: "kr-other", ObjectiveID: "company", Title: "NPS", MeasurementType: models.MeasureShouldStayAbove, TargetValue: 50, CurrentValue: 60})

	krs, err := ListKeyResults(db, "sales")
	if err != nil {
		t.Fatalf("ListKeyResults: %v", err)
	}
	if len(krs) != 2 {
		t.Errorf("got %d key results, want 2", len(krs))
	}

	all, err := ListKeyResults(db, "")
	if err != nil {
		t.Fatalf("ListKeyResults(all): %v", err)
	}
	if len(all) != 3 {
		t.Errorf("got %d key results, want 3", len(all))
	}
}

func TestListObjectives_RootFilter(t *testing.T) {
	db := testDB(t)
	seedObjectiveTree(t, db)

	roots, err := ListObjectives(db, "q1", "root")
	if err != nil {
		t.Fatalf("ListObjectives: %v", err)
	}
	if len(roots) != 1 || roots[0].ID != "company" {
		t.Errorf("roots = %+v, want just company", roots)
	}

	children, err := ListObjectives(db, "", "company")
	if err != nil {
		t.Fatalf("ListObjectives(children): %v", err)
	}
	if len(children) != 1 || children[0].ID != "sales" {
		t.Errorf("children = %+v, want just sales", children)
	}
}

func TestUpdateCycleStatus(t *testing.T) {
	db := testDB(t)
	seedObjectiveTree(t, db)

	if err := UpdateCycleStatus(db, "q1", models.CycleCompleted); err != nil {
		t.Fatalf("UpdateCycleStatus: %v", err)
	}
	var c models.Cycle
	db.First(&c, "id = ?", "q1")
	if c.Status != models.CycleCompleted {
		t.Errorf("status = %q, want completed", c.Status)
	}
}

func TestGetObjectiveDetail_RecomputesProgress(t *testing.T) {
	db := testDB(t)
	seedObjectiveTree(t, db)

	detail, err := GetObjectiveDetail(db, "sales")
	if err != nil {
		t.Fatalf("GetObjectiveDetail: %v", err)
	}

	// (50 + 0) / 2 = 25.
	if detail.Progress != 25 {
		t.Errorf("Progress = %v, want 25", detail.Progress)
	}
	if len(detail.KeyResults) != 2 {
		t.Fatalf("got %d key results, want 2", len(detail.KeyResults))
	}
	if detail.KeyResults[0].Progress != 50 {
		t.Errorf("kr-a progress = %v, want 50", detail.KeyResults[0].Progress)
	}
	if detail.Label.Text != "At Risk" {
		t.Errorf("label = %+v, want At Risk", detail.Label)
	}
}

func TestGetObjectiveDetail_IncludesInitiatives(t *testing.T) {
	db := testDB(t)
	seedObjectiveTree(t, db)
	db.Create(&models.Initiative{ID: "init-1", KeyResultID: "kr-a", Title: "Outbound campaign", Progress: 40, Status: models.InitiativeInProgress, Priority: models.PriorityHigh})

	detail, err := GetObjectiveDetail(db, "sales")
	if err != nil {
		t.Fatalf("GetObjectiveDetail: %v", err)
	}

	var krA *KeyResultRow
	for i := range detail.KeyResults {
		if detail.KeyResults[i].ID == "kr-a" {
			krA = &detail.KeyResults[i]
		}
	}
	if krA == nil {
		t.Fatal("kr-a missing from detail")
	}
	if len(krA.Initiatives) != 1 || krA.Initiatives[0].Progress != 40 {
		t.Errorf("kr-a initiatives = %+v, want one at 40%%", krA.Initiatives)
	}
	// Initiative progress is independent: it must not move the objective mean.
	if detail.Progress != 25 {
		t.Errorf("objective progress = %v, want 25", detail.Progress)
	}
}

func TestRecordCheckIn_MirrorsCurrentValue(t *testing.T) {
	db := testDB(t)
	seedObjectiveTree(t, db)

	checkIn, err := RecordCheckIn(db, "kr-a", 3, "closed two more", "ana")
	if err != nil {
		t.Fatalf("RecordCheckIn: %v", err)
	}
	if checkIn.ID == 0 {
		t.Error("check-in not persisted")
	}

	var kr models.KeyResult
	db.First(&kr, "id = ?", "kr-a")
	if kr.CurrentValue != 3 {
		t.Errorf("CurrentValue = %v, want 3", kr.CurrentValue)
	}

	// History is append-only.
	if _, err := RecordCheckIn(db, "kr-a", 4, "done", "ana"); err != nil {
		t.Fatalf("second RecordCheckIn: %v", err)
	}
	var count int64
	db.Model(&models.CheckIn{}).Where("key_result_id = ?", "kr-a").Count(&count)
	if count != 2 {
		t.Errorf("check-in history = %d rows, want 2", count)
	}
}

func TestRecordCheckIn_UnknownKeyResult(t *testing.T) {
	db := testDB(t)
	if _, err := RecordCheckIn(db, "ghost", 1, "", ""); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("err = %v, want record not found", err)
	}
}

func TestGetObjectiveDetail_NotFound(t *testing.T) {
	db := testDB(t)
	_, err := GetObjectiveDetail(db, "ghost")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("err = %v, want record not found", err)
	}
}

func TestGetGroupSummary_MeanOfMeans(t *testing.T) {
	db := testDB(t)
	db.Create(&models.Cycle{ID: "q1", Name: "Q1 2025", StartDate: "2025-01-01", EndDate: "2025-03-31", Status: models.CycleActive})
	// Objective "many" holds three complete KRs; "few" holds one empty KR.
	// Mean-of-means gives 50, a flattened mean would give 75.
	db.Create(&models.Objective{ID: "many", Title: "Many KRs", CycleID: "q1"})
	db.Create(&models.Objective{ID: "few", Title: "One KR", CycleID: "q1"})
	for _, id := range []string{"m1", "m2", "m3"} {
		db.Create(&models.KeyResult{ID: id, ObjectiveID: "many", MeasurementType: models.MeasureAchieveOrNot, Achieved: true})
	}
	db.Create(&models.KeyResult{ID: "f1", ObjectiveID: "few", MeasurementType: models.MeasureAchieveOrNot, Achieved: false})

	summary, err := GetGroupSummary(db, "q1")
	if err != nil {
		t.Fatalf("GetGroupSummary: %v", err)
	}
	if summary.Progress != 50 {
		t.Errorf("group progress = %v, want 50 (mean of means)", summary.Progress)
	}
}

func TestGetGroupSummary_EmptyCycle(t *testing.T) {
	db := testDB(t)
	summary, err := GetGroupSummary(db, "empty")
	if err != nil {
		t.Fatalf("GetGroupSummary: %v", err)
	}
	if summary.Progress != 0 {
		t.Errorf("empty cycle progress = %v, want 0", summary.Progress)
	}
}

func TestGetObjectiveTree_RollsUp(t *testing.T) {
	db := testDB(t)
	seedObjectiveTree(t, db)

	nodes, err := GetObjectiveTree(db, "q1")
	if err != nil {
		t.Fatalf("GetObjectiveTree: %v", err)
	}

	byID := make(map[string]TreeNode)
	for _, n := range nodes {
		byID[n.ID] = n
	}
	if byID["sales"].Progress != 25 {
		t.Errorf("sales = %v, want 25", byID["sales"].Progress)
	}
	// company's progress is the mean of its children, here just sales.
	if byID["company"].Progress != 25 {
		t.Errorf("company = %v, want 25", byID["company"].Progress)
	}
}

func TestDailyFocus_OrderingAndScores(t *testing.T) {
	db := testDB(t)
	db.Create(&models.Task{ID: "t-undated", AssigneeID: "ana", Title: "Write brief", Status: models.TaskInProgress, Priority: models.PriorityLow})
	db.Create(&models.Task{ID: "t-late", AssigneeID: "ana", Title: "Ship feature", Status: models.TaskNotStarted, Priority: models.PriorityHigh, DueDate: strPtr("2025-06-10")})
	db.Create(&models.Task{ID: "t-soon", AssigneeID: "ana", Title: "Review PR", Status: models.TaskInProgress, Priority: models.PriorityMedium, DueDate: strPtr("2025-06-16")})
	db.Create(&models.Task{ID: "t-done", AssigneeID: "ana", Title: "Old thing", Status: models.TaskCompleted, Priority: models.PriorityHigh})
	db.Create(&models.Task{ID: "t-other", AssigneeID: "bo", Title: "Not ana's", Status: models.TaskInProgress, Priority: models.PriorityLow})

	tasks, err := DailyFocus(db, "ana", "2025-06-15")
	if err != nil {
		t.Fatalf("DailyFocus: %v", err)
	}

	wantOrder := []string{"t-late", "t-soon", "t-undated"}
	if len(tasks) != len(wantOrder) {
		t.Fatalf("got %d tasks, want %d: %+v", len(tasks), len(wantOrder), tasks)
	}
	for i, want := range wantOrder {
		if tasks[i].ID != want {
			t.Errorf("tasks[%d] = %s, want %s", i, tasks[i].ID, want)
		}
	}

	// t-late: not_started (-20), overdue (-40), high (-20) = 20 → Critical.
	if tasks[0].Health != 20 || tasks[0].Bucket != progress.BucketCritical {
		t.Errorf("t-late = %d/%s, want 20/Critical", tasks[0].Health, tasks[0].Bucket)
	}
	// t-soon: in_progress (-10), due tomorrow (-20), medium (-10) = 60 → At Risk.
	if tasks[1].Health != 60 || tasks[1].Bucket != progress.BucketAtRisk {
		t.Errorf("t-soon = %d/%s, want 60/At Risk", tasks[1].Health, tasks[1].Bucket)
	}
}
