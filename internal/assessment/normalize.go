package assessment

// Normalize collapses an answer list into a map keyed by question id.
// When the same question was answered more than once the answer with the
// latest timestamp wins, with later list position breaking ties, so a
// re-answer always replaces the original.
func Normalize(answers []Answer) map[string]Answer {
	byQuestion := make(map[string]Answer, len(answers))
	for _, a := range answers {
		if a.QuestionID == "" {
			continue
		}
		prev, seen := byQuestion[a.QuestionID]
		if !seen || !a.AnsweredAt.Before(prev.AnsweredAt) {
			byQuestion[a.QuestionID] = a
		}
	}
	return byQuestion
}
