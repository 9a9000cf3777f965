package formatter

import (
	"fmt"
	"strings"

	"github.com/capacinator/capacinator/internal/domain"
)

// Utilization renders the utilization report as a plain table.
func Utilization(rows []domain.UtilizationRow) string {
	if len(rows) == 0 {
		return Dim("No utilization data.") + "\n"
	}

	var b strings.Builder
	b.WriteString(Header("Utilization") + "\n")
	for _, r := range rows {
		bar := allocationBar(r.Allocated, r.Available)
		b.WriteString(fmt.Sprintf("%s %s %s %s  %s\n",
			PadRight(r.PersonName, 22),
			Dim(PadRight(r.RoleName, 14)),
			bar,
			BandColor(r.Band()).Render(PadRight(Percent(r.Allocated), 6)),
			BandIndicator(r.Band()),
		))
	}
	return b.String()
}

// allocationBar renders a 20-cell bar of allocated vs available capacity.
func allocationBar(allocated, available float64) string {
	const width = 20
	scale := available
	if allocated > scale {
		scale = allocated
	}
	if scale <= 0 {
		return StyleDim.Render(strings.Repeat("░", width))
	}

	filled := int(allocated / scale * width)
	if filled > width {
		filled = width
	}

	style := StyleGreen
	if allocated > available {
		style = StyleRed
	}
	return style.Render(strings.Repeat("█", filled)) +
		StyleDim.Render(strings.Repeat("░", width-filled))
}

// ProjectList renders projects as a plain table.
func ProjectList(projects []*domain.Project) string {
	if len(projects) == 0 {
		return Dim("No projects.") + "\n"
	}

	var b strings.Builder
	b.WriteString(Header("Projects") + "\n")
	for _, p := range projects {
		b.WriteString(fmt.Sprintf("%-9s %s %s %s\n",
			StyleGreen.Render(p.DisplayID()),
			PadRight(p.Name, 28),
			priorityTag(p.Priority),
			Dim(p.ProjectType),
		))
	}
	return b.String()
}

func priorityTag(p domain.ProjectPriority) string {
	switch p {
	case domain.PriorityHigh:
		return StyleRed.Render("[high]  ")
	case domain.PriorityLow:
		return StyleDim.Render("[low]   ")
	default:
		return StyleYellow.Render("[medium]")
	}
}

// PeopleList renders people as a plain table.
func PeopleList(people []*domain.Person) string {
	if len(people) == 0 {
		return Dim("No people.") + "\n"
	}

	var b strings.Builder
	b.WriteString(Header("People") + "\n")
	for _, p := range people {
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			PadRight(p.Name, 24),
			Dim(PadRight(p.WorkerType, 12)),
			Percent(p.DefaultAvailability)+" available",
		))
	}
	return b.String()
}
