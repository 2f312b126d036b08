package assessment

import (
	"github.com/halcyonworks/compass/internal/catalog"
)

// applicableFollowUps derives which follow-up questions the answer set has
// activated, de-duplicated by id. A follow-up applies when a base answer
// selects an option listing it in triggers_follow_up and the follow-up's
// parent is that question. Follow-up answers never trigger further
// follow-ups.
func (e *Engine) applicableFollowUps(byQuestion map[string]Answer) map[string]catalog.FollowUpQuestion {
	active := make(map[string]catalog.FollowUpQuestion)

	for questionID, answer := range byQuestion {
		question, ok := e.catalog.Question(questionID)
		if !ok {
			continue
		}

		selected := make(map[string]bool)
		for _, v := range answer.selectedValues() {
			selected[v] = true
		}

		for _, opt := range question.Options {
			if !selected[opt.Value] || len(opt.TriggersFollowUp) == 0 {
				continue
			}
			for _, followUpID := range opt.TriggersFollowUp {
				followUp, ok := e.catalog.FollowUp(followUpID)
				if !ok || followUp.ParentID != question.ID {
					continue
				}
				active[followUp.ID] = followUp
			}
		}
	}

	return active
}

// questionnaire returns the applicable questions in presentation order:
// base questions in catalog order, each followed by its active follow-ups.
// The same set drives grouping, completion counts, and NextQuestion, so
// the three can never disagree.
func (e *Engine) questionnaire(active map[string]catalog.FollowUpQuestion) []catalog.Question {
	followUps := e.catalog.FollowUps()

	var sequence []catalog.Question
	for _, q := range e.catalog.Questions() {
		sequence = append(sequence, q)
		for _, f := range followUps {
			if f.ParentID != q.ID {
				continue
			}
			if _, ok := active[f.ID]; ok {
				sequence = append(sequence, f.Question)
			}
		}
	}
	return sequence
}
