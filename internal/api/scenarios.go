package api

import (
	"context"
	"fmt"
	"time"

	"github.com/capacinator/capacinator/internal/domain"
)

// scenarioJSON is the wire shape of a scenario.
type scenarioJSON struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ParentID    *string `json:"parent_scenario_id"`
	Type        string  `json:"scenario_type"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func (j *scenarioJSON) toDomain() *domain.Scenario {
	return &domain.Scenario{
		ID:          j.ID,
		Name:        j.Name,
		Description: j.Description,
		ParentID:    j.ParentID,
		Type:        domain.ScenarioType(j.Type),
		Status:      domain.ScenarioStatus(j.Status),
		CreatedAt:   parseTimestamp(j.CreatedAt),
		UpdatedAt:   parseTimestamp(j.UpdatedAt),
	}
}

func scenarioToJSON(s *domain.Scenario) scenarioJSON {
	return scenarioJSON{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		ParentID:    s.ParentID,
		Type:        string(s.Type),
		Status:      string(s.Status),
	}
}

// parseTimestamp tolerates the server's RFC3339 timestamps being absent or
// malformed; rendering falls back to the zero time.
func parseTimestamp(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

// ListScenarios fetches all scenarios, optionally including archived ones.
func (c *Client) ListScenarios(ctx context.Context, includeArchived bool) ([]*domain.Scenario, error) {
	path := "/api/scenarios"
	if includeArchived {
		path += "?include=archived"
	}
	var rows []scenarioJSON
	if err := c.get(ctx, path, &rows); err != nil {
		return nil, err
	}
	scenarios := make([]*domain.Scenario, 0, len(rows))
	for i := range rows {
		scenarios = append(scenarios, rows[i].toDomain())
	}
	return scenarios, nil
}

// GetScenario fetches a single scenario by ID.
func (c *Client) GetScenario(ctx context.Context, id string) (*domain.Scenario, error) {
	var row scenarioJSON
	if err := c.get(ctx, "/api/scenarios/"+id, &row); err != nil {
		return nil, err
	}
	return row.toDomain(), nil
}

// CreateScenario creates a scenario (or a branch, when ParentID is set) and
// returns the server's copy with its assigned ID and timestamps.
func (c *Client) CreateScenario(ctx context.Context, s *domain.Scenario) (*domain.Scenario, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	var row scenarioJSON
	if err := c.post(ctx, "/api/scenarios", scenarioToJSON(s), &row); err != nil {
		return nil, err
	}
	return row.toDomain(), nil
}

// UpdateScenario updates name/description on an existing scenario.
func (c *Client) UpdateScenario(ctx context.Context, s *domain.Scenario) (*domain.Scenario, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	var row scenarioJSON
	if err := c.put(ctx, "/api/scenarios/"+s.ID, scenarioToJSON(s), &row); err != nil {
		return nil, err
	}
	return row.toDomain(), nil
}

// DeleteScenario removes a scenario.
func (c *Client) DeleteScenario(ctx context.Context, id string) error {
	return c.del(ctx, "/api/scenarios/"+id)
}

// Comparison is the server-computed diff between a scenario and a baseline.
// Entries are opaque key/value records; the client renders them without
// interpreting their structure.
type Comparison struct {
	SourceName string           `json:"source_scenario_name"`
	TargetName string           `json:"target_scenario_name"`
	Added      []map[string]any `json:"added"`
	Modified   []map[string]any `json:"modified"`
	Removed    []map[string]any `json:"removed"`
}

// CompareScenario fetches the diff between a scenario and a comparison
// target (its parent when compareTo is empty).
func (c *Client) CompareScenario(ctx context.Context, id, compareTo string) (*Comparison, error) {
	path := fmt.Sprintf("/api/scenarios/%s/compare", id)
	if compareTo != "" {
		path += "?compare_to=" + compareTo
	}
	var cmp Comparison
	if err := c.get(ctx, path, &cmp); err != nil {
		return nil, err
	}
	return &cmp, nil
}
