package domain

// UtilizationRow is one person's allocation summary for a reporting period.
// Computed server-side; the client only renders it.
type UtilizationRow struct {
	PersonID     string  `json:"person_id"`
	PersonName   string  `json:"person_name"`
	RoleName     string  `json:"role_name"`
	Allocated    float64 `json:"total_allocation_percent"`
	Available    float64 `json:"available_percent"`
	ProjectCount int     `json:"project_count"`
}

// Overallocated reports whether the person is committed beyond availability.
func (r *UtilizationRow) Overallocated() bool {
	return r.Allocated > r.Available
}

// UtilizationBand buckets a row for display coloring.
type UtilizationBand int

const (
	BandUnder UtilizationBand = iota
	BandHealthy
	BandFull
	BandOver
)

// Band classifies the row's allocation against its availability.
func (r *UtilizationRow) Band() UtilizationBand {
	switch {
	case r.Allocated > r.Available:
		return BandOver
	case r.Available > 0 && r.Allocated >= r.Available*0.9:
		return BandFull
	case r.Available > 0 && r.Allocated >= r.Available*0.5:
		return BandHealthy
	default:
		return BandUnder
	}
}
