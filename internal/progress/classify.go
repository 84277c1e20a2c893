package progress

import "github.com/stridehq/stride/internal/models"

// Label is the presentational mapping of a stored objective status: the
// badge text shown in dashboards plus a color key the UI resolves to CSS.
type Label struct {
	Text  string `json:"text"`
	Color string `json:"color"`
}

// ClassifyObjective maps a stored objective status to its display label.
// Statuses are owner-set fields, not derived from progress; this mapping is
// pure presentation.
func ClassifyObjective(status string) Label {
	switch status {
	case models.ObjectiveOnTrack:
		return Label{Text: "On Track", Color: "green"}
	case models.ObjectiveAtRisk:
		return Label{Text: "At Risk", Color: "yellow"}
	case models.ObjectiveBehind:
		return Label{Text: "Behind", Color: "red"}
	case models.ObjectiveCompleted:
		return Label{Text: "Completed", Color: "blue"}
	}
	return Label{Text: "Unknown", Color: "gray"}
}
