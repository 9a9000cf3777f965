package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/capacinator/capacinator/internal/domain"
)

// ResolvedBadge renders the wizard's "k/N resolved" counter.
func ResolvedBadge(resolved, total int) string {
	badge := fmt.Sprintf("%d/%d resolved", resolved, total)
	if resolved == total {
		return StyleGreen.Render(badge)
	}
	return StyleYellow.Render(badge)
}

// PreviewGateLabel is the preview button text: the remaining count while the
// gate is closed, the action label once it opens.
func PreviewGateLabel(remaining int) string {
	switch remaining {
	case 0:
		return "Preview Merge"
	case 1:
		return "Resolve 1 more conflict"
	default:
		return fmt.Sprintf("Resolve %d more conflicts", remaining)
	}
}

// ConflictCard renders one conflict with its source and target snapshots and
// the current choice, if any.
func ConflictCard(c *domain.Conflict, choice domain.ResolutionChoice) string {
	var b strings.Builder

	b.WriteString("  " + StylePurple.Render("["+c.Type+"]") + " " + Bold(c.Label()) + "\n")
	b.WriteString("  " + Dim("entity "+c.EntityID) + "\n\n")

	sourceMark, targetMark := "  ", "  "
	sourceStyle, targetStyle := StyleFg, StyleFg
	switch choice {
	case domain.ResolutionSource:
		sourceMark = StyleGreen.Render("▸ ")
		sourceStyle = StyleBold
	case domain.ResolutionTarget:
		targetMark = StyleGreen.Render("▸ ")
		targetStyle = StyleBold
	}

	b.WriteString("  " + sourceMark + sourceStyle.Render("Source (this scenario)") + "\n")
	b.WriteString("      " + KeyValues(c.SourceData) + "\n")
	b.WriteString("  " + targetMark + targetStyle.Render("Target (parent scenario)") + "\n")
	b.WriteString("      " + KeyValues(c.TargetData) + "\n")

	return b.String()
}

// ResolutionLine renders one preview row: the conflict and the side chosen.
func ResolutionLine(c *domain.Conflict, choice domain.ResolutionChoice) string {
	side := Dim("unresolved")
	switch choice {
	case domain.ResolutionSource:
		side = StyleGreen.Render("source")
	case domain.ResolutionTarget:
		side = StyleBlue.Render("target")
	}
	return fmt.Sprintf("  %s %s → %s", StylePurple.Render("["+c.Type+"]"), c.Label(), side)
}

// ImpactSummary renders the preview's aggregate impact: entities affected by
// conflict type, in stable order.
func ImpactSummary(conflicts []domain.Conflict) string {
	counts := domain.CountByType(conflicts)
	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Strings(types)

	parts := make([]string, 0, len(types))
	for _, t := range types {
		noun := "entities"
		if counts[t] == 1 {
			noun = "entity"
		}
		parts = append(parts, fmt.Sprintf("%d %s %s", counts[t], t, noun))
	}
	return Dim("Impact: ") + strings.Join(parts, ", ")
}
