package domain

import (
	"errors"
	"time"
)

// Person is a resource that can be assigned to projects.
type Person struct {
	ID                  string
	Name                string
	Email               string
	PrimaryRoleID       string
	WorkerType          string
	DefaultAvailability float64 // percent, 0-100
	DefaultHoursPerDay  float64
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Validate checks required fields before a create/update call.
func (p *Person) Validate() error {
	if p.Name == "" {
		return errors.New("person name is required")
	}
	if p.DefaultAvailability < 0 || p.DefaultAvailability > 100 {
		return errors.New("default availability must be between 0 and 100")
	}
	return nil
}

// Role is a job function people hold and projects demand.
type Role struct {
	ID          string
	Name        string
	Description string
}

// Assignment allocates a person to a project in a role for a date range.
type Assignment struct {
	ID         string
	ProjectID  string
	PersonID   string
	RoleID     string
	ScenarioID string
	Allocation float64 // percent of the person's time
	StartDate  *time.Time
	EndDate    *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate checks assignment invariants before a create/update call.
func (a *Assignment) Validate() error {
	if a.ProjectID == "" || a.PersonID == "" {
		return errors.New("assignment requires a project and a person")
	}
	if a.Allocation <= 0 || a.Allocation > 100 {
		return errors.New("allocation must be between 1 and 100 percent")
	}
	if a.StartDate != nil && a.EndDate != nil && a.EndDate.Before(*a.StartDate) {
		return errors.New("assignment end date is before its start date")
	}
	return nil
}
