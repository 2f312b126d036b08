package types

import (
	"github.com/halcyonworks/compass/internal/assessment"
	"github.com/halcyonworks/compass/internal/workflow"
)

// ScoreRequest carries an answer set for scoring. Partial and empty
// answer sets are valid.
type ScoreRequest struct {
	Answers []assessment.Answer `json:"answers"`
}

// ValidateStationRequest carries the engagement state a station check
// runs against.
type ValidateStationRequest struct {
	Artifacts []workflow.ArtifactRef `json:"artifacts"`
	Stations  []workflow.StationRun  `json:"stations"`
}

// AvailableStationsRequest asks which of a program's stations can run.
type AvailableStationsRequest struct {
	Program   string                 `json:"program" binding:"required"`
	Artifacts []workflow.ArtifactRef `json:"artifacts"`
	Stations  []workflow.StationRun  `json:"stations"`
}

// StageRequest asks where an engagement currently stands in its program.
type StageRequest struct {
	Program   string                 `json:"program" binding:"required"`
	Artifacts []workflow.ArtifactRef `json:"artifacts"`
}
