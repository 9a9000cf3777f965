package api

import (
	"context"
	"fmt"

	"github.com/capacinator/capacinator/internal/domain"
)

// mergeRequest is the body for POST /api/scenarios/{id}/merge. The analysis
// call sends only the strategy; the execute call adds the resolution set.
type mergeRequest struct {
	ResolveConflictsAs domain.MergeStrategy `json:"resolve_conflicts_as"`
	Resolutions        []domain.Resolution  `json:"resolutions,omitempty"`
}

// MergeResult is the server's answer to a merge call: either a completed
// merge (Success with a summary message) or the detected conflict list.
type MergeResult struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	Conflicts []domain.Conflict `json:"conflict_details"`
}

// AnalyzeMerge asks the server to analyze merging the scenario into its
// parent under the given strategy. Under source/target priority the server
// auto-resolves and the result is already final.
func (c *Client) AnalyzeMerge(ctx context.Context, scenarioID string, strategy domain.MergeStrategy) (*MergeResult, error) {
	var result MergeResult
	path := fmt.Sprintf("/api/scenarios/%s/merge", scenarioID)
	if err := c.post(ctx, path, mergeRequest{ResolveConflictsAs: strategy}, &result); err != nil {
		return nil, err
	}
	if !result.Success && len(result.Conflicts) == 0 {
		// Malformed outcome: neither completed nor conflicted.
		return nil, &StatusError{Code: 200, Message: "merge result missing both success and conflict_details"}
	}
	return &result, nil
}

// ExecuteMerge applies the merge with the full per-conflict resolution set.
// Never retried: the call is not idempotent. A success:false response maps
// to ErrMergeConflicted, so a nil error always means the merge completed.
func (c *Client) ExecuteMerge(ctx context.Context, scenarioID string, strategy domain.MergeStrategy, resolutions []domain.Resolution) (*MergeResult, error) {
	var result MergeResult
	path := fmt.Sprintf("/api/scenarios/%s/merge", scenarioID)
	body := mergeRequest{ResolveConflictsAs: strategy, Resolutions: resolutions}
	if err := c.post(ctx, path, body, &result); err != nil {
		return nil, err
	}
	if !result.Success {
		if len(result.Conflicts) == 0 {
			// Malformed outcome: neither completed nor conflicted.
			return nil, &StatusError{Code: 200, Message: "merge result missing both success and conflict_details"}
		}
		return nil, fmt.Errorf("%w (%d)", ErrMergeConflicted, len(result.Conflicts))
	}
	return &result, nil
}
