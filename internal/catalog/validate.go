package catalog

import (
	"fmt"

	apperrors "github.com/halcyonworks/compass/internal/errors"
)

// validate checks every rule table for configuration errors. Violations are
// collected rather than returned one at a time so a broken overlay surfaces
// all of its problems in a single load attempt.
func validate(data Data) error {
	violations := make(map[string]string)
	flag := func(key, format string, args ...interface{}) {
		violations[key] = fmt.Sprintf(format, args...)
	}

	categories := make(map[string]bool, len(data.Categories))
	for _, cat := range data.Categories {
		key := "category:" + cat.Name
		if cat.Name == "" {
			flag(key, "category with empty name")
			continue
		}
		if categories[cat.Name] {
			flag(key, "duplicate category %q", cat.Name)
		}
		categories[cat.Name] = true
		if cat.Weight <= 0 {
			flag(key, "category %q weight %v must be positive", cat.Name, cat.Weight)
		}
	}

	followUpByID := make(map[string]FollowUpQuestion, len(data.FollowUps))
	for _, f := range data.FollowUps {
		followUpByID[f.ID] = f
	}

	questionIDs := make(map[string]bool, len(data.Questions)+len(data.FollowUps))
	questionByID := make(map[string]Question, len(data.Questions))
	for _, q := range data.Questions {
		key := "question:" + q.ID
		if questionIDs[q.ID] {
			flag(key, "duplicate question id %q", q.ID)
		}
		questionIDs[q.ID] = true
		questionByID[q.ID] = q
		validateQuestion(key, q, categories, flag)

		for _, opt := range q.Options {
			for _, fid := range opt.TriggersFollowUp {
				f, ok := followUpByID[fid]
				if !ok {
					flag(key+":option:"+opt.ID, "triggers unknown follow-up %q", fid)
					continue
				}
				if f.ParentID != q.ID {
					flag(key+":option:"+opt.ID, "triggers follow-up %q whose parent is %q", fid, f.ParentID)
				}
			}
		}
	}

	for _, f := range data.FollowUps {
		key := "follow_up:" + f.ID
		if questionIDs[f.ID] {
			flag(key, "duplicate question id %q", f.ID)
		}
		questionIDs[f.ID] = true
		validateQuestion(key, f.Question, categories, flag)

		parent, ok := questionByID[f.ParentID]
		if !ok {
			if _, isFollowUp := followUpByID[f.ParentID]; isFollowUp {
				flag(key, "parent %q is itself a follow-up; nesting is not supported", f.ParentID)
			} else {
				flag(key, "parent question %q does not exist", f.ParentID)
			}
			continue
		}
		if f.ImpactMultiplier <= 0 {
			flag(key, "impact multiplier %v must be positive", f.ImpactMultiplier)
		}
		if f.TriggerValue != "" && !hasOptionValue(parent, f.TriggerValue) {
			flag(key, "trigger value %q is not an option of parent %q", f.TriggerValue, f.ParentID)
		}
	}

	templates := make(map[string]bool, len(data.Templates))
	for _, tpl := range data.Templates {
		key := "template:" + tpl.ID
		if tpl.ID == "" {
			flag(key, "artifact template with empty id")
			continue
		}
		if templates[tpl.ID] {
			flag(key, "duplicate artifact template %q", tpl.ID)
		}
		templates[tpl.ID] = true
	}

	stations := make(map[string]bool, len(data.Stations))
	for _, s := range data.Stations {
		stations[s.StationID] = true
	}
	seenStations := make(map[string]bool, len(data.Stations))
	for _, s := range data.Stations {
		key := "station:" + s.StationID
		if s.StationID == "" {
			flag(key, "station with empty id")
			continue
		}
		if seenStations[s.StationID] {
			flag(key, "duplicate station %q", s.StationID)
		}
		seenStations[s.StationID] = true

		checkTemplateRefs(key+":required", s.RequiredArtifacts, templates, flag)
		checkTemplateRefs(key+":optional", s.OptionalArtifacts, templates, flag)
		checkTemplateRefs(key+":output", s.OutputArtifacts, templates, flag)

		if s.Predecessor != "" {
			if s.Predecessor == s.StationID {
				flag(key, "station %q lists itself as predecessor", s.StationID)
			} else if !stations[s.Predecessor] {
				flag(key, "predecessor %q does not exist", s.Predecessor)
			}
		}
	}

	for program, stages := range data.Programs {
		key := "program:" + string(program)
		if !program.Valid() {
			flag(key, "unknown program %q", program)
		}
		if len(stages) == 0 {
			flag(key, "program %q has no stages", program)
			continue
		}
		prevSeq := 0
		for i, stage := range stages {
			stageKey := fmt.Sprintf("%s:stage:%d", key, i+1)
			if stage.Sequence <= prevSeq {
				flag(stageKey, "sequence %d does not increase from %d", stage.Sequence, prevSeq)
			}
			prevSeq = stage.Sequence
			for _, id := range stage.Stations {
				if !stations[id] {
					flag(stageKey, "stage references unknown station %q", id)
				}
			}
			checkTemplateRefs(stageKey+":required", stage.RequiredArtifacts, templates, flag)
			checkTemplateRefs(stageKey+":output", stage.OutputArtifacts, templates, flag)
		}
	}

	for pathway, program := range data.ProgramForPathway {
		key := "pathway:" + string(pathway)
		if !pathway.Valid() {
			flag(key, "unknown pathway %q", pathway)
		}
		if _, ok := data.Programs[program]; !ok {
			flag(key, "maps to program %q which has no stage table", program)
		}
	}
	for _, pathway := range []Pathway{PathwayAccelerated, PathwayStandard, PathwayExtended} {
		if _, ok := data.ProgramForPathway[pathway]; !ok {
			flag("pathway:"+string(pathway), "pathway %q has no program mapping", pathway)
		}
	}

	if len(violations) > 0 {
		return apperrors.NewConfigurationErrorWithMap("catalog validation failed", violations)
	}
	return nil
}

func validateQuestion(key string, q Question, categories map[string]bool, flag func(string, string, ...interface{})) {
	if q.ID == "" {
		flag(key, "question with empty id")
	}
	if q.Text == "" {
		flag(key, "question %q has no text", q.ID)
	}
	if !q.Type.Valid() {
		flag(key, "question %q has unknown type %q", q.ID, q.Type)
	}
	if !categories[q.Category] {
		flag(key, "question %q references unknown category %q", q.ID, q.Category)
	}
	if q.Weight < 1 || q.Weight > 5 {
		flag(key, "question %q weight %d outside 1..5", q.ID, q.Weight)
	}
	if q.Type.Scored() && len(q.Options) == 0 {
		flag(key, "question %q of type %s has no options", q.ID, q.Type)
	}

	optionIDs := make(map[string]bool, len(q.Options))
	optionValues := make(map[string]bool, len(q.Options))
	for _, opt := range q.Options {
		optKey := key + ":option:" + opt.ID
		if opt.ID == "" {
			flag(optKey, "option with empty id on question %q", q.ID)
		}
		if optionIDs[opt.ID] {
			flag(optKey, "duplicate option id %q", opt.ID)
		}
		optionIDs[opt.ID] = true
		if optionValues[opt.Value] {
			flag(optKey, "duplicate option value %q", opt.Value)
		}
		optionValues[opt.Value] = true
		if opt.Score < 0 || opt.Score > 100 {
			flag(optKey, "score %d outside 0..100", opt.Score)
		}
		if !opt.Risk.Valid() {
			flag(optKey, "unknown risk level %q", opt.Risk)
		}
	}
}

func checkTemplateRefs(key string, ids []string, templates map[string]bool, flag func(string, string, ...interface{})) {
	for _, id := range ids {
		if !templates[id] {
			flag(key, "references unknown artifact template %q", id)
		}
	}
}

func hasOptionValue(q Question, value string) bool {
	for _, opt := range q.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}
