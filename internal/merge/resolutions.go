package merge

import "github.com/capacinator/capacinator/internal/domain"

// ResolutionStore records the user's per-conflict choices for one wizard
// session. Choices are keyed by conflict index; conflict identity is
// positional within a single analysis response, so the store is discarded
// whenever a fresh analysis arrives.
type ResolutionStore struct {
	choices []domain.ResolutionChoice
}

// NewResolutionStore creates a store for n conflicts, all unresolved.
func NewResolutionStore(n int) *ResolutionStore {
	return &ResolutionStore{choices: make([]domain.ResolutionChoice, n)}
}

// Len returns the number of conflicts the store tracks.
func (r *ResolutionStore) Len() int {
	return len(r.choices)
}

// Set records the choice for conflict i. Overwrites are idempotent;
// out-of-range indices are ignored.
func (r *ResolutionStore) Set(i int, choice domain.ResolutionChoice) {
	if i < 0 || i >= len(r.choices) {
		return
	}
	r.choices[i] = choice
}

// Get returns the choice recorded for conflict i, or ResolutionUnset.
func (r *ResolutionStore) Get(i int) domain.ResolutionChoice {
	if i < 0 || i >= len(r.choices) {
		return domain.ResolutionUnset
	}
	return r.choices[i]
}

// Resolved counts conflicts with a non-unset choice.
func (r *ResolutionStore) Resolved() int {
	n := 0
	for _, c := range r.choices {
		if c != domain.ResolutionUnset {
			n++
		}
	}
	return n
}

// Remaining counts conflicts still unresolved.
func (r *ResolutionStore) Remaining() int {
	return len(r.choices) - r.Resolved()
}

// AllResolved reports whether every conflict has a choice. True for an
// empty store.
func (r *ResolutionStore) AllResolved() bool {
	return r.Remaining() == 0
}

// Payload serializes the resolved choices in conflict-list order, in the
// shape the merge execute call expects. Unset entries are skipped; callers
// gate on AllResolved before executing under the manual strategy.
func (r *ResolutionStore) Payload() []domain.Resolution {
	out := make([]domain.Resolution, 0, len(r.choices))
	for i, c := range r.choices {
		if c == domain.ResolutionUnset {
			continue
		}
		out = append(out, domain.Resolution{Ref: i, Choice: c})
	}
	return out
}
