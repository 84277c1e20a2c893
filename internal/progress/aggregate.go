package progress

import "github.com/stridehq/stride/internal/models"

// ObjectiveProgress is the unweighted mean of normalized progress across an
// objective's key results. An objective with no key results scores 0.
func ObjectiveProgress(krs []models.KeyResult) float64 {
	if len(krs) == 0 {
		return 0
	}
	var sum float64
	for _, kr := range krs {
		sum += Normalize(kr)
	}
	return sum / float64(len(krs))
}

// GroupProgress rolls member objectives up to a team/company/portfolio
// score as the unweighted mean of each objective's own aggregated progress.
// This is deliberately a mean of means: an objective with many key results
// carries the same weight as one with few.
func GroupProgress(objectiveProgress []float64) float64 {
	if len(objectiveProgress) == 0 {
		return 0
	}
	var sum float64
	for _, p := range objectiveProgress {
		sum += p
	}
	return sum / float64(len(objectiveProgress))
}

// TreeProgress computes progress for every objective in a tree, bottom-up.
// A leaf objective's progress is the mean of its key results; a node with
// children takes the mean of its children's computed progress. The result
// maps objective ID to progress. Unknown parent references and cycles in
// the parent chain are tolerated: such nodes fall back to their own key
// result mean.
func TreeProgress(objectives []models.Objective, krsByObjective map[string][]models.KeyResult) map[string]float64 {
	children := make(map[string][]string)
	byID := make(map[string]bool, len(objectives))
	for _, o := range objectives {
		byID[o.ID] = true
	}
	for _, o := range objectives {
		if o.ParentID != nil && byID[*o.ParentID] {
			children[*o.ParentID] = append(children[*o.ParentID], o.ID)
		}
	}

	result := make(map[string]float64, len(objectives))
	visiting := make(map[string]bool)

	var compute func(id string) float64
	compute = func(id string) float64 {
		if p, ok := result[id]; ok {
			return p
		}
		if visiting[id] {
			// Parent cycle; score this node as a leaf.
			return ObjectiveProgress(krsByObjective[id])
		}
		visiting[id] = true
		defer delete(visiting, id)

		kids := children[id]
		if len(kids) == 0 {
			p := ObjectiveProgress(krsByObjective[id])
			result[id] = p
			return p
		}
		var sum float64
		for _, kid := range kids {
			sum += compute(kid)
		}
		p := sum / float64(len(kids))
		result[id] = p
		return p
	}

	for _, o := range objectives {
		compute(o.ID)
	}
	return result
}
