package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/capacinator/capacinator/internal/api"
	"github.com/capacinator/capacinator/internal/domain"
)

// resolveScenarioID resolves user input (name, UUID, or UUID prefix) to a
// scenario ID. Falls back to the local cache when the server is unreachable.
func resolveScenarioID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("scenario is required")
	}

	scenarios, err := app.Scenarios.ListScenarios(ctx, true)
	if err != nil {
		if errors.Is(err, api.ErrUnavailable) && app.Cache != nil {
			scenarios, err = app.Cache.ListScenarios(ctx)
		}
		if err != nil {
			return "", err
		}
	} else {
		app.cacheScenarios(ctx, scenarios)
	}

	return matchScenario(scenarios, input)
}

func matchScenario(scenarios []*domain.Scenario, input string) (string, error) {
	// 1. Exact name match (case-insensitive)
	for _, s := range scenarios {
		if strings.EqualFold(s.Name, input) {
			return s.ID, nil
		}
	}

	// 2. Exact UUID match
	for _, s := range scenarios {
		if s.ID == input {
			return s.ID, nil
		}
	}

	// 3. UUID prefix match
	var matches []string
	for _, s := range scenarios {
		if strings.HasPrefix(s.ID, input) {
			matches = append(matches, s.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("scenario not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("scenario ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
