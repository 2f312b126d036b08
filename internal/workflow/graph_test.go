package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyonworks/compass/internal/catalog"
)

func defaultPlanner() *Planner {
	return NewPlanner(catalog.Default())
}

func TestValidateStationBlocksOnArtifactsAndPredecessor(t *testing.T) {
	p := defaultPlanner()

	// S-02 requires TPL-01 and TPL-02 and its predecessor S-01. Only
	// TPL-01 exists and S-01 has not completed.
	result := p.ValidateStation("S-02",
		[]ArtifactRef{{TemplateID: "TPL-01", Status: ArtifactDraft}},
		nil)

	assert.False(t, result.CanRun)
	assert.Equal(t, []string{"TPL-02"}, result.MissingArtifacts)
	assert.Equal(t, []string{"S-01"}, result.MissingStations)
	assert.Empty(t, result.Warnings)
}

func TestValidateStationPassesWhenSatisfied(t *testing.T) {
	p := defaultPlanner()

	result := p.ValidateStation("S-02",
		[]ArtifactRef{
			{TemplateID: "TPL-01", Status: ArtifactApproved},
			{TemplateID: "TPL-02", Status: ArtifactPendingReview},
		},
		[]StationRun{{StationID: "S-01", Status: StationComplete}})

	assert.True(t, result.CanRun)
	assert.Empty(t, result.MissingArtifacts)
	assert.Empty(t, result.MissingStations)
}

func TestValidateStationStatusRules(t *testing.T) {
	p := defaultPlanner()

	tests := []struct {
		name      string
		artifacts []ArtifactRef
		completed []StationRun
		canRun    bool
	}{
		{
			name: "archived artifact does not satisfy",
			artifacts: []ArtifactRef{
				{TemplateID: "TPL-01", Status: ArtifactArchived},
				{TemplateID: "TPL-02", Status: ArtifactApproved},
			},
			completed: []StationRun{{StationID: "S-01", Status: StationApproved}},
			canRun:    false,
		},
		{
			name: "rejected artifact does not satisfy",
			artifacts: []ArtifactRef{
				{TemplateID: "TPL-01", Status: ArtifactRejected},
				{TemplateID: "TPL-02", Status: ArtifactApproved},
			},
			completed: []StationRun{{StationID: "S-01", Status: StationApproved}},
			canRun:    false,
		},
		{
			name: "running predecessor does not satisfy",
			artifacts: []ArtifactRef{
				{TemplateID: "TPL-01", Status: ArtifactDraft},
				{TemplateID: "TPL-02", Status: ArtifactDraft},
			},
			completed: []StationRun{{StationID: "S-01", Status: StationRunning}},
			canRun:    false,
		},
		{
			name: "approved predecessor satisfies",
			artifacts: []ArtifactRef{
				{TemplateID: "TPL-01", Status: ArtifactDraft},
				{TemplateID: "TPL-02", Status: ArtifactDraft},
			},
			completed: []StationRun{{StationID: "S-01", Status: StationApproved}},
			canRun:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := p.ValidateStation("S-02", tt.artifacts, tt.completed)
			assert.Equal(t, tt.canRun, result.CanRun)
		})
	}
}

func TestValidateStationWarnsOnMissingOptionalInputs(t *testing.T) {
	p := defaultPlanner()

	// S-07 requires TPL-03 with predecessor S-02; TPL-05 and TPL-07 are
	// optional enrichments.
	result := p.ValidateStation("S-07",
		[]ArtifactRef{{TemplateID: "TPL-03", Status: ArtifactApproved}},
		[]StationRun{{StationID: "S-02", Status: StationComplete}})

	assert.True(t, result.CanRun)
	assert.Empty(t, result.MissingArtifacts)
	assert.Len(t, result.Warnings, 2)
	assert.Contains(t, result.Warnings[0], "TPL-05")
	assert.Contains(t, result.Warnings[1], "TPL-07")
}

func TestValidateStationWithoutRequirementsNeverBlocks(t *testing.T) {
	p := defaultPlanner()

	result := p.ValidateStation("S-99", nil, nil)

	assert.True(t, result.CanRun)
	assert.Empty(t, result.MissingArtifacts)
	assert.Empty(t, result.MissingStations)
	assert.Empty(t, result.Warnings)
}

func TestAvailableStationsWalksProgramInStageOrder(t *testing.T) {
	p := defaultPlanner()

	stations, err := p.AvailableStations(catalog.ProgramROIAudit,
		[]ArtifactRef{{TemplateID: "TPL-01", Status: ArtifactDraft}},
		nil)
	require.NoError(t, err)

	ids := make([]string, 0, len(stations))
	for _, s := range stations {
		ids = append(ids, s.StationID)
	}
	assert.Equal(t, []string{"S-01", "S-02", "S-04", "S-07"}, ids)

	// With only the intake questionnaire, discovery synthesis can run and
	// everything downstream is blocked.
	assert.True(t, stations[0].CanRun)
	assert.False(t, stations[1].CanRun)
	assert.False(t, stations[2].CanRun)
	assert.False(t, stations[3].CanRun)
	assert.Equal(t, "Discovery Synthesis", stations[0].Name)
}

func TestAvailableStationsUnknownProgram(t *testing.T) {
	p := defaultPlanner()

	_, err := p.AvailableStations(catalog.Program("bespoke"), nil, nil)
	require.Error(t, err)
}
