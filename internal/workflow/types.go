// Package workflow gates delivery-station execution and locates the
// current stage of an engagement. Both checks are pure predicates over the
// caller-supplied artifact and station state; nothing is persisted and the
// current stage is derived on every call.
package workflow

// ArtifactStatus is the lifecycle state of a produced artifact.
type ArtifactStatus string

const (
	ArtifactDraft         ArtifactStatus = "draft"
	ArtifactApproved      ArtifactStatus = "approved"
	ArtifactPendingReview ArtifactStatus = "pending_review"
	ArtifactArchived      ArtifactStatus = "archived"
	ArtifactRejected      ArtifactStatus = "rejected"
)

var validArtifactStatuses = map[ArtifactStatus]bool{
	ArtifactDraft:         true,
	ArtifactApproved:      true,
	ArtifactPendingReview: true,
	ArtifactArchived:      true,
	ArtifactRejected:      true,
}

// activeArtifactStatuses satisfy artifact requirements. Archived and
// rejected artifacts exist but no longer count.
var activeArtifactStatuses = map[ArtifactStatus]bool{
	ArtifactDraft:         true,
	ArtifactApproved:      true,
	ArtifactPendingReview: true,
}

// Valid reports whether s is a known artifact status.
func (s ArtifactStatus) Valid() bool {
	return validArtifactStatuses[s]
}

// Active reports whether an artifact in this status satisfies requirements.
func (s ArtifactStatus) Active() bool {
	return activeArtifactStatuses[s]
}

// StationStatus is the lifecycle state of a station run.
type StationStatus string

const (
	StationPending          StationStatus = "pending"
	StationRunning          StationStatus = "running"
	StationComplete         StationStatus = "complete"
	StationAwaitingApproval StationStatus = "awaiting_approval"
	StationApproved         StationStatus = "approved"
	StationRejected         StationStatus = "rejected"
	StationFailed           StationStatus = "failed"
)

var validStationStatuses = map[StationStatus]bool{
	StationPending:          true,
	StationRunning:          true,
	StationComplete:         true,
	StationAwaitingApproval: true,
	StationApproved:         true,
	StationRejected:         true,
	StationFailed:           true,
}

// completedStationStatuses satisfy predecessor requirements.
var completedStationStatuses = map[StationStatus]bool{
	StationComplete: true,
	StationApproved: true,
}

// Valid reports whether s is a known station status.
func (s StationStatus) Valid() bool {
	return validStationStatuses[s]
}

// Completed reports whether a run in this status satisfies a predecessor
// requirement.
func (s StationStatus) Completed() bool {
	return completedStationStatuses[s]
}

// ArtifactRef is the caller's view of one produced artifact.
type ArtifactRef struct {
	TemplateID string         `json:"template_id"`
	Status     ArtifactStatus `json:"status"`
}

// StationRun is the caller's view of one station execution.
type StationRun struct {
	StationID string        `json:"station_id"`
	Status    StationStatus `json:"status"`
}

// ValidationResult reports whether a station can run and what blocks it.
type ValidationResult struct {
	StationID        string   `json:"station_id"`
	CanRun           bool     `json:"can_run"`
	MissingArtifacts []string `json:"missing_artifacts"`
	MissingStations  []string `json:"missing_stations"`
	Warnings         []string `json:"warnings"`
}

// StageInfo locates an engagement inside a program's stage pipeline.
type StageInfo struct {
	StageNumber        int      `json:"stage_number"`
	StageName          string   `json:"stage_name"`
	CompletedArtifacts []string `json:"completed_artifacts"`
	NextArtifacts      []string `json:"next_artifacts"`
}

// StationAvailability pairs a station with its validation verdict.
type StationAvailability struct {
	StationID  string           `json:"station_id"`
	Name       string           `json:"name"`
	CanRun     bool             `json:"can_run"`
	Validation ValidationResult `json:"validation"`
}
