// Package catalog holds the declarative rule tables behind the readiness
// engine: the question bank, follow-up pool, category weights, artifact
// templates, station requirements, and per-program stage tables. Catalogs
// are validated once at construction and immutable afterwards; rule modules
// read them, never write them.
package catalog

import (
	"sort"
)

// QuestionType enumerates the supported answer shapes.
type QuestionType string

const (
	SingleChoice   QuestionType = "single_choice"
	MultipleChoice QuestionType = "multiple_choice"
	Scale          QuestionType = "scale"
	FreeText       QuestionType = "free_text"
	Numeric        QuestionType = "numeric"
)

var validQuestionTypes = map[QuestionType]bool{
	SingleChoice:   true,
	MultipleChoice: true,
	Scale:          true,
	FreeText:       true,
	Numeric:        true,
}

// Valid reports whether t is a known question type.
func (t QuestionType) Valid() bool {
	return validQuestionTypes[t]
}

// Scored reports whether answers of this type carry option scores.
func (t QuestionType) Scored() bool {
	return t == SingleChoice || t == MultipleChoice || t == Scale
}

// RiskLevel grades the risk an option flags when selected.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

var validRiskLevels = map[RiskLevel]bool{
	RiskLow:      true,
	RiskMedium:   true,
	RiskHigh:     true,
	RiskCritical: true,
}

// Valid reports whether r is a known risk level. The empty string is valid
// on options and means the option flags no risk.
func (r RiskLevel) Valid() bool {
	return r == "" || validRiskLevels[r]
}

// Pathway is the readiness tier the recommender produces.
type Pathway string

const (
	PathwayAccelerated Pathway = "accelerated"
	PathwayStandard    Pathway = "standard"
	PathwayExtended    Pathway = "extended"
)

var validPathways = map[Pathway]bool{
	PathwayAccelerated: true,
	PathwayStandard:    true,
	PathwayExtended:    true,
}

// Valid reports whether p is a known pathway.
func (p Pathway) Valid() bool {
	return validPathways[p]
}

// Program is the delivery offering whose stage tables gate the workflow.
// Pathway grades readiness; Program names what gets delivered. The two
// vocabularies are linked only through the pathway-to-program table.
type Program string

const (
	ProgramKnowledgeSpine Program = "knowledge_spine"
	ProgramROIAudit       Program = "roi_audit"
	ProgramWorkflowSprint Program = "workflow_sprint"
)

var validPrograms = map[Program]bool{
	ProgramKnowledgeSpine: true,
	ProgramROIAudit:       true,
	ProgramWorkflowSprint: true,
}

// Valid reports whether p is a known program.
func (p Program) Valid() bool {
	return validPrograms[p]
}

// Option is one selectable answer for a question.
type Option struct {
	ID               string    `json:"id"`
	Label            string    `json:"label"`
	Value            string    `json:"value"`
	Score            int       `json:"score"`
	Risk             RiskLevel `json:"risk,omitempty"`
	TriggersFollowUp []string  `json:"triggers_follow_up,omitempty"`
}

// Question is one entry in the assessment question bank.
type Question struct {
	ID       string       `json:"id"`
	Text     string       `json:"text"`
	Type     QuestionType `json:"type"`
	Category string       `json:"category"`
	Weight   int          `json:"weight"`
	Options  []Option     `json:"options,omitempty"`
}

// FollowUpQuestion is a question that only applies when a parent answer
// selects an option that triggers it. Applicability is derived from the
// answer set on every call and never stored.
type FollowUpQuestion struct {
	Question
	ParentID         string  `json:"parent_id"`
	TriggerValue     string  `json:"trigger_value"`
	ImpactMultiplier float64 `json:"impact_multiplier"`
}

// Category carries the category-level weight used by overall aggregation.
type Category struct {
	Name   string  `json:"name"`
	Label  string  `json:"label"`
	Weight float64 `json:"weight"`
}

// ArtifactTemplate names a document type the workflow produces or consumes.
type ArtifactTemplate struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// StationRequirement declares what a delivery station needs before it can
// run and what it produces.
type StationRequirement struct {
	StationID         string   `json:"station_id"`
	Name              string   `json:"name"`
	RequiredArtifacts []string `json:"required_artifacts"`
	OptionalArtifacts []string `json:"optional_artifacts,omitempty"`
	OutputArtifacts   []string `json:"output_artifacts"`
	Predecessor       string   `json:"predecessor,omitempty"`
}

// WorkflowStage is one step of a program's delivery pipeline.
type WorkflowStage struct {
	Sequence          int      `json:"sequence"`
	Name              string   `json:"name"`
	Stations          []string `json:"stations"`
	RequiredArtifacts []string `json:"required_artifacts"`
	OutputArtifacts   []string `json:"output_artifacts"`
}

// Data is the serializable form of a catalog, the shape JSON overlays use.
type Data struct {
	Categories        []Category                  `json:"categories"`
	Questions         []Question                  `json:"questions"`
	FollowUps         []FollowUpQuestion          `json:"follow_ups"`
	Templates         []ArtifactTemplate          `json:"artifact_templates"`
	Stations          []StationRequirement        `json:"stations"`
	Programs          map[Program][]WorkflowStage `json:"programs"`
	ProgramForPathway map[Pathway]Program         `json:"program_for_pathway"`
}

// Catalog is a validated, indexed rule-table set.
type Catalog struct {
	data Data

	categoryByName map[string]Category
	questionByID   map[string]Question
	followUpByID   map[string]FollowUpQuestion
	templateByID   map[string]ArtifactTemplate
	stationByID    map[string]StationRequirement
}

// New validates data and builds an indexed catalog. All violations are
// collected and returned together as a single configuration error.
func New(data Data) (*Catalog, error) {
	if err := validate(data); err != nil {
		return nil, err
	}

	c := &Catalog{
		data:           data,
		categoryByName: make(map[string]Category, len(data.Categories)),
		questionByID:   make(map[string]Question, len(data.Questions)),
		followUpByID:   make(map[string]FollowUpQuestion, len(data.FollowUps)),
		templateByID:   make(map[string]ArtifactTemplate, len(data.Templates)),
		stationByID:    make(map[string]StationRequirement, len(data.Stations)),
	}

	for _, cat := range data.Categories {
		c.categoryByName[cat.Name] = cat
	}
	for _, q := range data.Questions {
		c.questionByID[q.ID] = q
	}
	for _, f := range data.FollowUps {
		c.followUpByID[f.ID] = f
	}
	for _, tpl := range data.Templates {
		c.templateByID[tpl.ID] = tpl
	}
	for _, s := range data.Stations {
		c.stationByID[s.StationID] = s
	}

	return c, nil
}

// MustNew is New for tables known to be valid, such as the built-in ones.
func MustNew(data Data) *Catalog {
	c, err := New(data)
	if err != nil {
		panic(err)
	}
	return c
}

// Default returns the built-in engagement catalog.
func Default() *Catalog {
	return MustNew(DefaultData())
}

// Categories returns the category table in declared order.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.data.Categories))
	copy(out, c.data.Categories)
	return out
}

// CategoryWeight looks up the aggregation weight for a category name.
func (c *Catalog) CategoryWeight(name string) (float64, bool) {
	cat, ok := c.categoryByName[name]
	if !ok {
		return 0, false
	}
	return cat.Weight, true
}

// Questions returns the base question bank in declared order.
func (c *Catalog) Questions() []Question {
	out := make([]Question, len(c.data.Questions))
	copy(out, c.data.Questions)
	return out
}

// Question looks up a base question by id.
func (c *Catalog) Question(id string) (Question, bool) {
	q, ok := c.questionByID[id]
	return q, ok
}

// FollowUps returns the follow-up pool in declared order.
func (c *Catalog) FollowUps() []FollowUpQuestion {
	out := make([]FollowUpQuestion, len(c.data.FollowUps))
	copy(out, c.data.FollowUps)
	return out
}

// FollowUp looks up a follow-up question by id.
func (c *Catalog) FollowUp(id string) (FollowUpQuestion, bool) {
	f, ok := c.followUpByID[id]
	return f, ok
}

// AnyQuestion looks up id among base questions first, then follow-ups.
func (c *Catalog) AnyQuestion(id string) (Question, bool) {
	if q, ok := c.questionByID[id]; ok {
		return q, true
	}
	if f, ok := c.followUpByID[id]; ok {
		return f.Question, true
	}
	return Question{}, false
}

// Templates returns the artifact-template registry in declared order.
func (c *Catalog) Templates() []ArtifactTemplate {
	out := make([]ArtifactTemplate, len(c.data.Templates))
	copy(out, c.data.Templates)
	return out
}

// Template looks up an artifact template by id.
func (c *Catalog) Template(id string) (ArtifactTemplate, bool) {
	tpl, ok := c.templateByID[id]
	return tpl, ok
}

// Stations returns the station requirement table in declared order.
func (c *Catalog) Stations() []StationRequirement {
	out := make([]StationRequirement, len(c.data.Stations))
	copy(out, c.data.Stations)
	return out
}

// Station looks up a station requirement by id.
func (c *Catalog) Station(id string) (StationRequirement, bool) {
	s, ok := c.stationByID[id]
	return s, ok
}

// Programs returns the program names with stage tables, sorted for
// deterministic iteration.
func (c *Catalog) Programs() []Program {
	out := make([]Program, 0, len(c.data.Programs))
	for p := range c.data.Programs {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Stages returns a copy of the stage table for a program so callers cannot
// mutate the catalog through the returned slice.
func (c *Catalog) Stages(program Program) ([]WorkflowStage, bool) {
	stages, ok := c.data.Programs[program]
	if !ok {
		return nil, false
	}
	out := make([]WorkflowStage, len(stages))
	copy(out, stages)
	return out, true
}

// ProgramFor maps a readiness pathway to its default delivery program.
func (c *Catalog) ProgramFor(pathway Pathway) (Program, bool) {
	p, ok := c.data.ProgramForPathway[pathway]
	return p, ok
}

// ProgramStations lists the stations reachable through a program's stages,
// in stage order with duplicates removed.
func (c *Catalog) ProgramStations(program Program) ([]string, bool) {
	stages, ok := c.data.Programs[program]
	if !ok {
		return nil, false
	}
	seen := make(map[string]bool)
	var out []string
	for _, stage := range stages {
		for _, id := range stage.Stations {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	return out, true
}
