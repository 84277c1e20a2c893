// Package cycle derives cycle lifecycle status from calendar dates and
// keeps the persisted status in sync via an idempotent sweep.
package cycle

import (
	"fmt"
	"time"

	"github.com/stridehq/stride/internal/models"
)

const dateLayout = "2006-01-02"

// Resolve maps a cycle's date range and the current instant to a lifecycle
// status. Comparison happens on calendar days in loc, not instants: a cycle
// is active from the first moment of its start day through the last moment
// of its end day in the organization's timezone, regardless of the server's
// local zone.
func Resolve(startDate, endDate string, now time.Time, loc *time.Location) (string, error) {
	if _, err := time.ParseInLocation(dateLayout, startDate, loc); err != nil {
		return "", fmt.Errorf("cycle: bad start date %q: %w", startDate, err)
	}
	if _, err := time.ParseInLocation(dateLayout, endDate, loc); err != nil {
		return "", fmt.Errorf("cycle: bad end date %q: %w", endDate, err)
	}

	today := now.In(loc).Format(dateLayout)
	switch {
	case today < startDate:
		return models.CyclePlanning, nil
	case today > endDate:
		return models.CycleCompleted, nil
	default:
		return models.CycleActive, nil
	}
}
