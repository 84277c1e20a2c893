// Package progress implements the OKR progress computation engine: key
// result normalization, objective and group aggregation, and task health
// scoring. Everything here is a pure function over entity values; nothing
// reads or writes the database.
package progress

import (
	"math"

	"github.com/stridehq/stride/internal/models"
)

// Normalize converts a key result's raw numeric state into a completion
// percentage in [0,100] according to its measurement type. It is total:
// unknown types and degenerate ranges produce 0, never an error.
func Normalize(kr models.KeyResult) float64 {
	base := finite(kr.BaseValue)
	target := finite(kr.TargetValue)
	current := finite(kr.CurrentValue)

	switch kr.MeasurementType {
	case models.MeasureAchieveOrNot:
		if kr.Achieved {
			return 100
		}
		return 0
	case models.MeasureIncreaseTo:
		if base == target {
			return 0
		}
		return clamp((current - base) / (target - base) * 100)
	case models.MeasureDecreaseTo:
		if base == target {
			return 0
		}
		return clamp((base - current) / (base - target) * 100)
	case models.MeasureShouldStayAbove:
		if current >= target {
			return 100
		}
		return 0
	case models.MeasureShouldStayBelow:
		if current <= target {
			return 100
		}
		return 0
	}
	return 0
}

// finite coerces NaN and infinities to 0 so malformed values can never
// poison an aggregate.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func clamp(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
