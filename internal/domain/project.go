package domain

import (
	"errors"
	"time"
)

// Project is a unit of work that people are assigned to within a scenario.
type Project struct {
	ID               string
	Name             string
	ProjectType      string
	Location         string
	Priority         ProjectPriority
	Description      string
	AspirationStart  *time.Time
	AspirationFinish *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Validate checks required fields before a create/update call.
func (p *Project) Validate() error {
	if p.Name == "" {
		return errors.New("project name is required")
	}
	if p.Priority != 0 && (p.Priority < PriorityHigh || p.Priority > PriorityLow) {
		return errors.New("project priority must be 1 (high), 2 (medium), or 3 (low)")
	}
	return nil
}

// DisplayID returns a short identifier for display, truncating UUIDs.
func (p *Project) DisplayID() string {
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}
