package api

import (
	"context"

	"github.com/capacinator/capacinator/internal/domain"
)

type projectJSON struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	ProjectType      string  `json:"project_type"`
	Location         string  `json:"location"`
	Priority         int     `json:"priority"`
	Description      string  `json:"description"`
	AspirationStart  *string `json:"aspiration_start"`
	AspirationFinish *string `json:"aspiration_finish"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}

func (j *projectJSON) toDomain() *domain.Project {
	p := &domain.Project{
		ID:          j.ID,
		Name:        j.Name,
		ProjectType: j.ProjectType,
		Location:    j.Location,
		Priority:    domain.ProjectPriority(j.Priority),
		Description: j.Description,
		CreatedAt:   parseTimestamp(j.CreatedAt),
		UpdatedAt:   parseTimestamp(j.UpdatedAt),
	}
	if j.AspirationStart != nil {
		t := parseTimestamp(*j.AspirationStart)
		p.AspirationStart = &t
	}
	if j.AspirationFinish != nil {
		t := parseTimestamp(*j.AspirationFinish)
		p.AspirationFinish = &t
	}
	return p
}

type personJSON struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	Email               string  `json:"email"`
	PrimaryRoleID       string  `json:"primary_person_role_id"`
	WorkerType          string  `json:"worker_type"`
	DefaultAvailability float64 `json:"default_availability_percentage"`
	DefaultHoursPerDay  float64 `json:"default_hours_per_day"`
	CreatedAt           string  `json:"created_at"`
	UpdatedAt           string  `json:"updated_at"`
}

func (j *personJSON) toDomain() *domain.Person {
	return &domain.Person{
		ID:                  j.ID,
		Name:                j.Name,
		Email:               j.Email,
		PrimaryRoleID:       j.PrimaryRoleID,
		WorkerType:          j.WorkerType,
		DefaultAvailability: j.DefaultAvailability,
		DefaultHoursPerDay:  j.DefaultHoursPerDay,
		CreatedAt:           parseTimestamp(j.CreatedAt),
		UpdatedAt:           parseTimestamp(j.UpdatedAt),
	}
}

type roleJSON struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type assignmentJSON struct {
	ID         string  `json:"id"`
	ProjectID  string  `json:"project_id"`
	PersonID   string  `json:"person_id"`
	RoleID     string  `json:"role_id"`
	ScenarioID string  `json:"scenario_id"`
	Allocation float64 `json:"allocation_percentage"`
	StartDate  *string `json:"start_date"`
	EndDate    *string `json:"end_date"`
}

func (j *assignmentJSON) toDomain() *domain.Assignment {
	a := &domain.Assignment{
		ID:         j.ID,
		ProjectID:  j.ProjectID,
		PersonID:   j.PersonID,
		RoleID:     j.RoleID,
		ScenarioID: j.ScenarioID,
		Allocation: j.Allocation,
	}
	if j.StartDate != nil {
		t := parseTimestamp(*j.StartDate)
		a.StartDate = &t
	}
	if j.EndDate != nil {
		t := parseTimestamp(*j.EndDate)
		a.EndDate = &t
	}
	return a
}

// ListProjects fetches all projects.
func (c *Client) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	var rows []projectJSON
	if err := c.get(ctx, "/api/projects", &rows); err != nil {
		return nil, err
	}
	projects := make([]*domain.Project, 0, len(rows))
	for i := range rows {
		projects = append(projects, rows[i].toDomain())
	}
	return projects, nil
}

// GetProject fetches a single project by ID.
func (c *Client) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	var row projectJSON
	if err := c.get(ctx, "/api/projects/"+id, &row); err != nil {
		return nil, err
	}
	return row.toDomain(), nil
}

// ListPeople fetches all people.
func (c *Client) ListPeople(ctx context.Context) ([]*domain.Person, error) {
	var rows []personJSON
	if err := c.get(ctx, "/api/people", &rows); err != nil {
		return nil, err
	}
	people := make([]*domain.Person, 0, len(rows))
	for i := range rows {
		people = append(people, rows[i].toDomain())
	}
	return people, nil
}

// GetPerson fetches a single person by ID.
func (c *Client) GetPerson(ctx context.Context, id string) (*domain.Person, error) {
	var row personJSON
	if err := c.get(ctx, "/api/people/"+id, &row); err != nil {
		return nil, err
	}
	return row.toDomain(), nil
}

// ListRoles fetches all roles.
func (c *Client) ListRoles(ctx context.Context) ([]*domain.Role, error) {
	var rows []roleJSON
	if err := c.get(ctx, "/api/roles", &rows); err != nil {
		return nil, err
	}
	roles := make([]*domain.Role, 0, len(rows))
	for _, r := range rows {
		roles = append(roles, &domain.Role{ID: r.ID, Name: r.Name, Description: r.Description})
	}
	return roles, nil
}

// ListAssignments fetches assignments, scoped to a scenario when given.
func (c *Client) ListAssignments(ctx context.Context, scenarioID string) ([]*domain.Assignment, error) {
	path := "/api/assignments"
	if scenarioID != "" {
		path += "?scenario_id=" + scenarioID
	}
	var rows []assignmentJSON
	if err := c.get(ctx, path, &rows); err != nil {
		return nil, err
	}
	assignments := make([]*domain.Assignment, 0, len(rows))
	for i := range rows {
		assignments = append(assignments, rows[i].toDomain())
	}
	return assignments, nil
}
