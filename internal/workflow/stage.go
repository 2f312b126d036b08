package workflow

import (
	"sort"

	"github.com/halcyonworks/compass/internal/catalog"
	apperrors "github.com/halcyonworks/compass/internal/errors"
)

// CurrentStage locates the engagement inside a program's pipeline. Stages
// are walked from the last backward; the first stage whose non-empty
// required-artifact list is fully covered by active artifacts anchors the
// walk, and the current stage is the one after it, capped at the final
// stage. When no stage is satisfied the engagement is in the first stage.
func (p *Planner) CurrentStage(program catalog.Program, artifacts []ArtifactRef) (StageInfo, error) {
	stages, ok := p.catalog.Stages(program)
	if !ok {
		return StageInfo{}, unknownProgram(program)
	}

	active := activeTemplates(artifacts)

	satisfied := -1
	for i := len(stages) - 1; i >= 0; i-- {
		if len(stages[i].RequiredArtifacts) == 0 {
			continue
		}
		if covers(active, stages[i].RequiredArtifacts) {
			satisfied = i
			break
		}
	}

	current := satisfied + 1
	if current >= len(stages) {
		current = len(stages) - 1
	}
	stage := stages[current]

	completed := make([]string, 0, len(active))
	for id := range active {
		completed = append(completed, id)
	}
	sort.Strings(completed)

	next := []string{}
	for _, id := range stage.RequiredArtifacts {
		if !active[id] {
			next = append(next, id)
		}
	}

	return StageInfo{
		StageNumber:        stage.Sequence,
		StageName:          stage.Name,
		CompletedArtifacts: completed,
		NextArtifacts:      next,
	}, nil
}

func covers(active map[string]bool, required []string) bool {
	for _, id := range required {
		if !active[id] {
			return false
		}
	}
	return true
}

func unknownProgram(program catalog.Program) error {
	return apperrors.NewNotFoundError("program", string(program))
}
