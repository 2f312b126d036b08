package catalog

var defaultTemplates = []ArtifactTemplate{
	{ID: "TPL-01", Name: "Intake Questionnaire"},
	{ID: "TPL-02", Name: "Discovery Brief"},
	{ID: "TPL-03", Name: "Readiness Report"},
	{ID: "TPL-04", Name: "Knowledge Inventory"},
	{ID: "TPL-05", Name: "ROI Model"},
	{ID: "TPL-06", Name: "Workflow Map"},
	{ID: "TPL-07", Name: "Pilot Plan"},
	{ID: "TPL-08", Name: "Executive Summary"},
}

// defaultStations declares what each delivery station consumes, produces,
// and which station must be approved or complete before it runs.
var defaultStations = []StationRequirement{
	{
		StationID:         "S-01",
		Name:              "Discovery Synthesis",
		RequiredArtifacts: []string{"TPL-01"},
		OutputArtifacts:   []string{"TPL-02"},
	},
	{
		StationID:         "S-02",
		Name:              "Readiness Deep Dive",
		RequiredArtifacts: []string{"TPL-01", "TPL-02"},
		OutputArtifacts:   []string{"TPL-03"},
		Predecessor:       "S-01",
	},
	{
		StationID:         "S-03",
		Name:              "Knowledge Audit",
		RequiredArtifacts: []string{"TPL-02"},
		OptionalArtifacts: []string{"TPL-03"},
		OutputArtifacts:   []string{"TPL-04"},
		Predecessor:       "S-01",
	},
	{
		StationID:         "S-04",
		Name:              "ROI Baseline",
		RequiredArtifacts: []string{"TPL-02", "TPL-03"},
		OutputArtifacts:   []string{"TPL-05"},
		Predecessor:       "S-02",
	},
	{
		StationID:         "S-05",
		Name:              "Workflow Mapping",
		RequiredArtifacts: []string{"TPL-02"},
		OptionalArtifacts: []string{"TPL-04"},
		OutputArtifacts:   []string{"TPL-06"},
		Predecessor:       "S-01",
	},
	{
		StationID:         "S-06",
		Name:              "Pilot Design",
		RequiredArtifacts: []string{"TPL-03", "TPL-06"},
		OptionalArtifacts: []string{"TPL-05"},
		OutputArtifacts:   []string{"TPL-07"},
		Predecessor:       "S-05",
	},
	{
		StationID:         "S-07",
		Name:              "Executive Readout",
		RequiredArtifacts: []string{"TPL-03"},
		OptionalArtifacts: []string{"TPL-05", "TPL-07"},
		OutputArtifacts:   []string{"TPL-08"},
		Predecessor:       "S-02",
	},
}

// defaultPrograms keys each offering's stage pipeline. Stage one has no
// required artifacts: it is the entry stage and cannot anchor the
// current-stage walk.
var defaultPrograms = map[Program][]WorkflowStage{
	ProgramKnowledgeSpine: {
		{Sequence: 1, Name: "Intake", Stations: []string{}, RequiredArtifacts: []string{}, OutputArtifacts: []string{"TPL-01"}},
		{Sequence: 2, Name: "Discovery", Stations: []string{"S-01"}, RequiredArtifacts: []string{"TPL-01"}, OutputArtifacts: []string{"TPL-02"}},
		{Sequence: 3, Name: "Knowledge Audit", Stations: []string{"S-03"}, RequiredArtifacts: []string{"TPL-02"}, OutputArtifacts: []string{"TPL-04"}},
		{Sequence: 4, Name: "Spine Assembly", Stations: []string{"S-02"}, RequiredArtifacts: []string{"TPL-02", "TPL-04"}, OutputArtifacts: []string{"TPL-03"}},
		{Sequence: 5, Name: "Readout", Stations: []string{"S-07"}, RequiredArtifacts: []string{"TPL-03"}, OutputArtifacts: []string{"TPL-08"}},
	},
	ProgramROIAudit: {
		{Sequence: 1, Name: "Intake", Stations: []string{}, RequiredArtifacts: []string{}, OutputArtifacts: []string{"TPL-01"}},
		{Sequence: 2, Name: "Discovery", Stations: []string{"S-01"}, RequiredArtifacts: []string{"TPL-01"}, OutputArtifacts: []string{"TPL-02"}},
		{Sequence: 3, Name: "Readiness Analysis", Stations: []string{"S-02"}, RequiredArtifacts: []string{"TPL-02"}, OutputArtifacts: []string{"TPL-03"}},
		{Sequence: 4, Name: "ROI Modeling", Stations: []string{"S-04"}, RequiredArtifacts: []string{"TPL-03"}, OutputArtifacts: []string{"TPL-05"}},
		{Sequence: 5, Name: "Readout", Stations: []string{"S-07"}, RequiredArtifacts: []string{"TPL-05"}, OutputArtifacts: []string{"TPL-08"}},
	},
	ProgramWorkflowSprint: {
		{Sequence: 1, Name: "Intake", Stations: []string{}, RequiredArtifacts: []string{}, OutputArtifacts: []string{"TPL-01"}},
		{Sequence: 2, Name: "Discovery", Stations: []string{"S-01"}, RequiredArtifacts: []string{"TPL-01"}, OutputArtifacts: []string{"TPL-02"}},
		{Sequence: 3, Name: "Workflow Mapping", Stations: []string{"S-05"}, RequiredArtifacts: []string{"TPL-02"}, OutputArtifacts: []string{"TPL-06"}},
		{Sequence: 4, Name: "Pilot Design", Stations: []string{"S-06"}, RequiredArtifacts: []string{"TPL-06"}, OutputArtifacts: []string{"TPL-07"}},
		{Sequence: 5, Name: "Readout", Stations: []string{"S-07"}, RequiredArtifacts: []string{"TPL-07"}, OutputArtifacts: []string{"TPL-08"}},
	},
}

// defaultProgramForPathway maps the readiness tier to the offering an
// engagement usually starts with. Low readiness starts at the knowledge
// foundation; high readiness can sprint on a live workflow.
var defaultProgramForPathway = map[Pathway]Program{
	PathwayAccelerated: ProgramWorkflowSprint,
	PathwayStandard:    ProgramROIAudit,
	PathwayExtended:    ProgramKnowledgeSpine,
}

// DefaultData returns the built-in rule tables.
func DefaultData() Data {
	return Data{
		Categories:        defaultCategories,
		Questions:         defaultQuestions,
		FollowUps:         defaultFollowUps,
		Templates:         defaultTemplates,
		Stations:          defaultStations,
		Programs:          defaultPrograms,
		ProgramForPathway: defaultProgramForPathway,
	}
}
