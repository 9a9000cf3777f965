package api

import (
	"context"
	"net/url"

	"github.com/capacinator/capacinator/internal/domain"
)

// Utilization fetches the server-computed utilization report. scenarioID
// scopes the report to one scenario; from/to are YYYY-MM-DD bounds and may
// be empty for the server's default period.
func (c *Client) Utilization(ctx context.Context, scenarioID, from, to string) ([]domain.UtilizationRow, error) {
	q := url.Values{}
	if scenarioID != "" {
		q.Set("scenario_id", scenarioID)
	}
	if from != "" {
		q.Set("from", from)
	}
	if to != "" {
		q.Set("to", to)
	}

	path := "/api/reporting/utilization"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var rows []domain.UtilizationRow
	if err := c.get(ctx, path, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
