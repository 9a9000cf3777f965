package formatter

import (
	"fmt"
	"strings"

	"github.com/capacinator/capacinator/internal/api"
	"github.com/capacinator/capacinator/internal/domain"
)

// ScenarioList renders scenarios as a plain table for non-interactive output.
func ScenarioList(scenarios []*domain.Scenario) string {
	if len(scenarios) == 0 {
		return Dim("No scenarios.") + "\n"
	}

	var b strings.Builder
	b.WriteString(Header("Scenarios") + "\n")
	for _, s := range scenarios {
		parent := Dim("—")
		if s.HasParent() {
			parent = Dim("↳ " + shortID(*s.ParentID))
		}
		b.WriteString(fmt.Sprintf("%-9s %s  %s  %s  %s\n",
			StyleGreen.Render(s.DisplayID()),
			PadRight(s.Name, 28),
			StylePurple.Render(PadRight(string(s.Type), 9)),
			StatusPill(s.Status),
			parent,
		))
	}
	return b.String()
}

// ScenarioDetail renders one scenario for inspect output.
func ScenarioDetail(s *domain.Scenario) string {
	var b strings.Builder
	b.WriteString(Header(s.Name) + "\n")
	b.WriteString(row("ID", s.ID))
	if s.HasParent() {
		b.WriteString(row("Parent", *s.ParentID))
	} else {
		b.WriteString(row("Parent", "(none — cannot be merged)"))
	}
	b.WriteString(row("Type", string(s.Type)))
	b.WriteString(row("Status", string(s.Status)))
	if s.Description != "" {
		b.WriteString(row("Description", s.Description))
	}
	b.WriteString(row("Updated", RelativeTime(s.UpdatedAt)))
	return b.String()
}

// Compare renders the server-computed scenario diff. Entries are opaque
// records; each is rendered as key=value pairs.
func Compare(cmp *api.Comparison) string {
	var b strings.Builder
	title := "Comparison"
	if cmp.SourceName != "" && cmp.TargetName != "" {
		title = cmp.SourceName + " vs " + cmp.TargetName
	}
	b.WriteString(Header(title) + "\n")

	section := func(label string, style func(string) string, entries []map[string]any) {
		b.WriteString(style(fmt.Sprintf("%s (%d)", label, len(entries))) + "\n")
		if len(entries) == 0 {
			b.WriteString("  " + Dim("none") + "\n")
			return
		}
		for _, e := range entries {
			b.WriteString("  " + KeyValues(e) + "\n")
		}
	}

	section("Added", func(s string) string { return StyleGreen.Render(s) }, cmp.Added)
	section("Modified", func(s string) string { return StyleYellow.Render(s) }, cmp.Modified)
	section("Removed", func(s string) string { return StyleRed.Render(s) }, cmp.Removed)
	return b.String()
}

func row(label, value string) string {
	return fmt.Sprintf("  %s %s\n", Dim(PadRight(label, 12)), value)
}

func shortID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}
