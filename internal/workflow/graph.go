package workflow

import (
	"fmt"

	"github.com/halcyonworks/compass/internal/catalog"
)

// Planner answers workflow gating questions against one validated catalog.
type Planner struct {
	catalog *catalog.Catalog
}

// NewPlanner creates a planner bound to a catalog.
func NewPlanner(c *catalog.Catalog) *Planner {
	return &Planner{catalog: c}
}

// ValidateStation checks whether a station can run given the artifacts
// produced so far and the station runs recorded so far. Required artifacts
// must be present in an active status and a declared predecessor must have
// completed. Absent optional artifacts only produce warnings. A station
// with no declared requirements, including an id the catalog does not
// know, validates clean; the check is safe to call speculatively.
func (p *Planner) ValidateStation(stationID string, artifacts []ArtifactRef, completed []StationRun) ValidationResult {
	result := ValidationResult{
		StationID:        stationID,
		CanRun:           true,
		MissingArtifacts: []string{},
		MissingStations:  []string{},
		Warnings:         []string{},
	}

	station, ok := p.catalog.Station(stationID)
	if !ok {
		return result
	}

	active := activeTemplates(artifacts)

	for _, templateID := range station.RequiredArtifacts {
		if !active[templateID] {
			result.MissingArtifacts = append(result.MissingArtifacts, templateID)
			result.CanRun = false
		}
	}

	if station.Predecessor != "" && !stationCompleted(completed, station.Predecessor) {
		result.MissingStations = append(result.MissingStations, station.Predecessor)
		result.CanRun = false
	}

	for _, templateID := range station.OptionalArtifacts {
		if !active[templateID] {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("optional input %s is missing; station output may be less detailed", templateID))
		}
	}

	return result
}

// AvailableStations validates every station reachable through a program's
// stage tables, in stage order.
func (p *Planner) AvailableStations(program catalog.Program, artifacts []ArtifactRef, completed []StationRun) ([]StationAvailability, error) {
	ids, ok := p.catalog.ProgramStations(program)
	if !ok {
		return nil, unknownProgram(program)
	}

	out := make([]StationAvailability, 0, len(ids))
	for _, id := range ids {
		validation := p.ValidateStation(id, artifacts, completed)

		name := id
		if station, ok := p.catalog.Station(id); ok {
			name = station.Name
		}

		out = append(out, StationAvailability{
			StationID:  id,
			Name:       name,
			CanRun:     validation.CanRun,
			Validation: validation,
		})
	}
	return out, nil
}

// activeTemplates collects the template ids of artifacts whose status
// still counts.
func activeTemplates(artifacts []ArtifactRef) map[string]bool {
	active := make(map[string]bool, len(artifacts))
	for _, a := range artifacts {
		if a.Status.Active() {
			active[a.TemplateID] = true
		}
	}
	return active
}

func stationCompleted(runs []StationRun, stationID string) bool {
	for _, run := range runs {
		if run.StationID == stationID && run.Status.Completed() {
			return true
		}
	}
	return false
}
