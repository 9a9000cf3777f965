package domain

import "fmt"

// Conflict is one disagreement between a branch scenario and its parent for
// a single affected entity. Conflicts are produced by the server during
// merge analysis; the client never constructs one.
//
// SourceData and TargetData are opaque key/value snapshots whose shape
// depends on the conflict type. The client renders them without
// interpreting their contents.
type Conflict struct {
	Type        string         `json:"type"`
	EntityID    string         `json:"entity_id"`
	Description string         `json:"conflict_description"`
	SourceData  map[string]any `json:"source_data"`
	TargetData  map[string]any `json:"target_data"`
}

// Label returns a short human-readable heading for the conflict.
func (c *Conflict) Label() string {
	if c.Description != "" {
		return c.Description
	}
	return fmt.Sprintf("%s conflict on %s", c.Type, c.EntityID)
}

// Resolution pairs a conflict reference with the user's choice, in the shape
// the merge execute call expects. Ref is the conflict's position within the
// analysis response; conflict identity is positional within one session.
type Resolution struct {
	Ref    int              `json:"conflict_ref"`
	Choice ResolutionChoice `json:"choice"`
}

// CountByType aggregates a conflict list by type, for the preview step's
// impact summary.
func CountByType(conflicts []Conflict) map[string]int {
	counts := make(map[string]int, len(conflicts))
	for _, c := range conflicts {
		counts[c.Type]++
	}
	return counts
}
