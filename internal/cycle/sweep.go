package cycle

import (
	"fmt"
	"log"
	"time"

	"github.com/stridehq/stride/internal/models"
	"github.com/stridehq/stride/internal/notify"
	"github.com/stridehq/stride/internal/store"
	"gorm.io/gorm"
)

// Transition reports one cycle moved to a new status by a sweep.
type Transition struct {
	CycleID   string `json:"cycle_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

// Sweep resolves every cycle's status and persists the ones that changed,
// writing a CycleTransition audit row per change. It is idempotent: a second
// pass with unchanged dates applies nothing. A cycle with malformed dates is
// logged and skipped; the sweep continues over the rest. Only collaborator
// I/O failures (listing cycles) abort the sweep.
func Sweep(db *gorm.DB, loc *time.Location, now time.Time, notifier notify.Notifier) ([]Transition, error) {
	cycles, err := store.ListCycles(db)
	if err != nil {
		return nil, fmt.Errorf("cycle: sweep: %w", err)
	}

	var applied []Transition
	for _, c := range cycles {
		resolved, err := Resolve(c.StartDate, c.EndDate, now, loc)
		if err != nil {
			log.Printf("sweep: cycle %s skipped: %v", c.ID, err)
			continue
		}
		if resolved == c.Status {
			continue
		}
		if err := store.UpdateCycleStatus(db, c.ID, resolved); err != nil {
			log.Printf("sweep: cycle %s update failed: %v", c.ID, err)
			continue
		}
		record := models.CycleTransition{CycleID: c.ID, OldStatus: c.Status, NewStatus: resolved}
		if err := db.Create(&record).Error; err != nil {
			log.Printf("sweep: cycle %s transition record failed: %v", c.ID, err)
		}
		applied = append(applied, Transition{CycleID: c.ID, OldStatus: c.Status, NewStatus: resolved})

		if notifier != nil {
			notifier.CycleTransition(c.Name, c.Status, resolved)
		}
	}
	return applied, nil
}
