package catalog

// defaultCategories weights the six readiness dimensions. Data readiness
// dominates because it is the usual failure mode of a first engagement.
var defaultCategories = []Category{
	{Name: "strategic_alignment", Label: "Strategic Alignment", Weight: 1.5},
	{Name: "data_readiness", Label: "Data Readiness", Weight: 2.0},
	{Name: "team_capability", Label: "Team Capability", Weight: 1.5},
	{Name: "process_maturity", Label: "Process Maturity", Weight: 1.0},
	{Name: "technology_foundation", Label: "Technology Foundation", Weight: 1.5},
	{Name: "risk_governance", Label: "Risk and Governance", Weight: 1.0},
}

var defaultQuestions = []Question{
	{
		ID:       "Q-01",
		Text:     "What is the primary driver behind your AI initiative?",
		Type:     SingleChoice,
		Category: "strategic_alignment",
		Weight:   4,
		Options: []Option{
			{ID: "Q-01-A", Label: "Customer demand signals", Value: "customer_demand", Score: 85},
			{ID: "Q-01-B", Label: "Cost reduction targets", Value: "cost_reduction", Score: 70},
			{ID: "Q-01-C", Label: "Competitive pressure", Value: "competitive_pressure", Score: 60},
			{ID: "Q-01-D", Label: "Board or executive mandate", Value: "board_mandate", Score: 55},
			{ID: "Q-01-E", Label: "Exploratory interest only", Value: "exploratory", Score: 30, Risk: RiskMedium},
		},
	},
	{
		ID:       "Q-02",
		Text:     "How clearly are success metrics defined for the initiative?",
		Type:     Scale,
		Category: "strategic_alignment",
		Weight:   3,
		Options: []Option{
			{ID: "Q-02-1", Label: "Not defined", Value: "1", Score: 10, Risk: RiskHigh},
			{ID: "Q-02-2", Label: "Loosely discussed", Value: "2", Score: 30},
			{ID: "Q-02-3", Label: "Drafted but unapproved", Value: "3", Score: 55},
			{ID: "Q-02-4", Label: "Approved for the first use case", Value: "4", Score: 80},
			{ID: "Q-02-5", Label: "Approved with baselines measured", Value: "5", Score: 95},
		},
	},
	{
		ID:       "Q-03",
		Text:     "Who sponsors the initiative day to day?",
		Type:     SingleChoice,
		Category: "strategic_alignment",
		Weight:   3,
		Options: []Option{
			{ID: "Q-03-A", Label: "Dedicated executive sponsor", Value: "dedicated_exec", Score: 90},
			{ID: "Q-03-B", Label: "Delegated program lead", Value: "delegated_lead", Score: 70},
			{ID: "Q-03-C", Label: "Steering committee only", Value: "committee", Score: 45, Risk: RiskMedium},
			{ID: "Q-03-D", Label: "No named sponsor", Value: "nobody", Score: 10, Risk: RiskHigh, TriggersFollowUp: []string{"F-01"}},
		},
	},
	{
		ID:       "Q-04",
		Text:     "Where does the data needed for your first use case live?",
		Type:     SingleChoice,
		Category: "data_readiness",
		Weight:   5,
		Options: []Option{
			{ID: "Q-04-A", Label: "Central warehouse or lakehouse", Value: "central_warehouse", Score: 90},
			{ID: "Q-04-B", Label: "A few well-known systems", Value: "few_systems", Score: 70},
			{ID: "Q-04-C", Label: "Scattered across teams and tools", Value: "scattered", Score: 35, Risk: RiskMedium, TriggersFollowUp: []string{"F-02"}},
			{ID: "Q-04-D", Label: "We have not identified it", Value: "unknown", Score: 5, Risk: RiskHigh, TriggersFollowUp: []string{"F-02"}},
		},
	},
	{
		ID:       "Q-05",
		Text:     "Which data quality controls are in place today?",
		Type:     MultipleChoice,
		Category: "data_readiness",
		Weight:   4,
		Options: []Option{
			{ID: "Q-05-A", Label: "Automated quality checks", Value: "quality_checks", Score: 85},
			{ID: "Q-05-B", Label: "Lineage tracking", Value: "lineage", Score: 80},
			{ID: "Q-05-C", Label: "Named data owners", Value: "ownership", Score: 75},
			{ID: "Q-05-D", Label: "Searchable data catalog", Value: "data_catalog", Score: 70},
			{ID: "Q-05-E", Label: "None of these", Value: "none", Score: 5, Risk: RiskHigh},
		},
	},
	{
		ID:       "Q-06",
		Text:     "How is sensitive data classified and handled?",
		Type:     SingleChoice,
		Category: "data_readiness",
		Weight:   4,
		Options: []Option{
			{ID: "Q-06-A", Label: "Classification policy enforced by tooling", Value: "policy_enforced", Score: 90},
			{ID: "Q-06-B", Label: "Policy exists, manually applied", Value: "policy_manual", Score: 60},
			{ID: "Q-06-C", Label: "Informal conventions", Value: "informal", Score: 30, Risk: RiskHigh},
			{ID: "Q-06-D", Label: "No classification at all", Value: "none", Score: 0, Risk: RiskCritical, TriggersFollowUp: []string{"F-03"}},
		},
	},
	{
		ID:       "Q-07",
		Text:     "Who will build and operate the first AI workflows?",
		Type:     SingleChoice,
		Category: "team_capability",
		Weight:   4,
		Options: []Option{
			{ID: "Q-07-A", Label: "Established internal team", Value: "internal_team", Score: 85},
			{ID: "Q-07-B", Label: "Internal team with partner support", Value: "hybrid", Score: 75},
			{ID: "Q-07-C", Label: "Partner-led delivery", Value: "partner_led", Score: 55},
			{ID: "Q-07-D", Label: "Not yet staffed", Value: "unstaffed", Score: 15, Risk: RiskHigh, TriggersFollowUp: []string{"F-04"}},
		},
	},
	{
		ID:       "Q-08",
		Text:     "How would you rate current AI literacy among the affected teams?",
		Type:     Scale,
		Category: "team_capability",
		Weight:   3,
		Options: []Option{
			{ID: "Q-08-1", Label: "No exposure", Value: "1", Score: 10, Risk: RiskMedium},
			{ID: "Q-08-2", Label: "A few experimenters", Value: "2", Score: 35},
			{ID: "Q-08-3", Label: "Pockets of regular use", Value: "3", Score: 60},
			{ID: "Q-08-4", Label: "Broad familiarity", Value: "4", Score: 80},
			{ID: "Q-08-5", Label: "Established practice", Value: "5", Score: 95},
		},
	},
	{
		ID:       "Q-09",
		Text:     "Describe any prior automation or ML projects and their outcomes.",
		Type:     FreeText,
		Category: "team_capability",
		Weight:   2,
	},
	{
		ID:       "Q-10",
		Text:     "How are the target workflows documented today?",
		Type:     SingleChoice,
		Category: "process_maturity",
		Weight:   3,
		Options: []Option{
			{ID: "Q-10-A", Label: "Documented with cycle-time measures", Value: "documented_measured", Score: 90},
			{ID: "Q-10-B", Label: "Documented but unmeasured", Value: "documented", Score: 65},
			{ID: "Q-10-C", Label: "Varies by team", Value: "varies", Score: 45},
			{ID: "Q-10-D", Label: "Tribal knowledge only", Value: "tribal", Score: 25, Risk: RiskMedium, TriggersFollowUp: []string{"F-05"}},
		},
	},
	{
		ID:       "Q-11",
		Text:     "How many distinct handoffs does the target workflow contain end to end?",
		Type:     Numeric,
		Category: "process_maturity",
		Weight:   2,
	},
	{
		ID:       "Q-12",
		Text:     "How do systems in the target workflow expose integration points?",
		Type:     SingleChoice,
		Category: "technology_foundation",
		Weight:   4,
		Options: []Option{
			{ID: "Q-12-A", Label: "Modern APIs across the stack", Value: "apis", Score: 90},
			{ID: "Q-12-B", Label: "APIs for core systems only", Value: "partial_apis", Score: 65},
			{ID: "Q-12-C", Label: "Batch exports and file drops", Value: "exports", Score: 40, Risk: RiskMedium},
			{ID: "Q-12-D", Label: "Closed vendor systems", Value: "closed", Score: 15, Risk: RiskHigh},
		},
	},
	{
		ID:       "Q-13",
		Text:     "Which platform capabilities exist today?",
		Type:     MultipleChoice,
		Category: "technology_foundation",
		Weight:   3,
		Options: []Option{
			{ID: "Q-13-A", Label: "Centralized logging and monitoring", Value: "observability", Score: 80},
			{ID: "Q-13-B", Label: "Central secrets management", Value: "secrets", Score: 75},
			{ID: "Q-13-C", Label: "Separate dev and prod environments", Value: "environments", Score: 72},
			{ID: "Q-13-D", Label: "Single sign-on", Value: "sso", Score: 70},
			{ID: "Q-13-E", Label: "None of these", Value: "none", Score: 5, Risk: RiskHigh},
		},
	},
	{
		ID:       "Q-14",
		Text:     "What review exists for deploying automated decisions?",
		Type:     SingleChoice,
		Category: "risk_governance",
		Weight:   4,
		Options: []Option{
			{ID: "Q-14-A", Label: "Formal review board with documented gates", Value: "formal_board", Score: 90},
			{ID: "Q-14-B", Label: "Ad hoc reviews by leadership", Value: "adhoc", Score: 55, Risk: RiskMedium},
			{ID: "Q-14-C", Label: "No review process", Value: "none", Score: 10, Risk: RiskCritical},
		},
	},
}

// defaultFollowUps only apply when a parent answer selects an option that
// lists them in triggers_follow_up.
var defaultFollowUps = []FollowUpQuestion{
	{
		Question: Question{
			ID:       "F-01",
			Text:     "How quickly could a sponsor with budget authority be named?",
			Type:     SingleChoice,
			Category: "strategic_alignment",
			Weight:   3,
			Options: []Option{
				{ID: "F-01-A", Label: "Within two weeks", Value: "within_two_weeks", Score: 80},
				{ID: "F-01-B", Label: "Within the quarter", Value: "within_quarter", Score: 55},
				{ID: "F-01-C", Label: "No path to a sponsor", Value: "unknown", Score: 15, Risk: RiskHigh},
			},
		},
		ParentID:         "Q-03",
		TriggerValue:     "nobody",
		ImpactMultiplier: 1.2,
	},
	{
		Question: Question{
			ID:       "F-02",
			Text:     "Is there an inventory of the systems holding workflow data?",
			Type:     SingleChoice,
			Category: "data_readiness",
			Weight:   3,
			Options: []Option{
				{ID: "F-02-A", Label: "Complete and current", Value: "complete", Score: 85},
				{ID: "F-02-B", Label: "Partial or stale", Value: "partial", Score: 55},
				{ID: "F-02-C", Label: "No inventory", Value: "none", Score: 15, Risk: RiskMedium},
			},
		},
		ParentID:         "Q-04",
		TriggerValue:     "scattered",
		ImpactMultiplier: 1.1,
	},
	{
		Question: Question{
			ID:       "F-03",
			Text:     "Does the organization handle regulated or personally identifiable data?",
			Type:     SingleChoice,
			Category: "risk_governance",
			Weight:   4,
			Options: []Option{
				{ID: "F-03-A", Label: "No regulated data in scope", Value: "no", Score: 70},
				{ID: "F-03-B", Label: "Limited PII in isolated systems", Value: "some", Score: 40, Risk: RiskHigh},
				{ID: "F-03-C", Label: "Extensive regulated data", Value: "extensive", Score: 10, Risk: RiskCritical},
			},
		},
		ParentID:         "Q-06",
		TriggerValue:     "none",
		ImpactMultiplier: 1.5,
	},
	{
		Question: Question{
			ID:       "F-04",
			Text:     "What is the budget status for delivery staffing?",
			Type:     SingleChoice,
			Category: "team_capability",
			Weight:   3,
			Options: []Option{
				{ID: "F-04-A", Label: "Hiring or partner budget approved", Value: "approved", Score: 75},
				{ID: "F-04-B", Label: "Budget requested, not approved", Value: "requested", Score: 45, Risk: RiskMedium},
				{ID: "F-04-C", Label: "No budget identified", Value: "none", Score: 10, Risk: RiskHigh},
			},
		},
		ParentID:         "Q-07",
		TriggerValue:     "unstaffed",
		ImpactMultiplier: 1.2,
	},
	{
		Question: Question{
			ID:       "F-05",
			Text:     "Could process owners commit time to mapping sessions in the next month?",
			Type:     SingleChoice,
			Category: "process_maturity",
			Weight:   2,
			Options: []Option{
				{ID: "F-05-A", Label: "Yes, time is committed", Value: "yes", Score: 80},
				{ID: "F-05-B", Label: "Limited availability", Value: "limited", Score: 50},
				{ID: "F-05-C", Label: "No availability", Value: "no", Score: 15, Risk: RiskMedium},
			},
		},
		ParentID:         "Q-10",
		TriggerValue:     "tribal",
		ImpactMultiplier: 1.0,
	},
}
