package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// PadRight pads a string to a minimum width, truncating with an ellipsis if
// needed.
func PadRight(s string, width int) string {
	if len(s) > width {
		return s[:width-1] + "…"
	}
	return s + strings.Repeat(" ", width-len(s))
}

// RelativeTime renders a timestamp as "3d ago" style text, dimmed.
func RelativeTime(t time.Time) string {
	if t.IsZero() {
		return Dim("—")
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return Dim("just now")
	case d < time.Hour:
		return Dim(fmt.Sprintf("%dm ago", int(d.Minutes())))
	case d < 24*time.Hour:
		return Dim(fmt.Sprintf("%dh ago", int(d.Hours())))
	default:
		return Dim(fmt.Sprintf("%dd ago", int(d.Hours()/24)))
	}
}

// KeyValues renders an opaque key/value record as "key=value" pairs in
// stable key order. Used for conflict snapshots and comparison entries whose
// shape the client does not interpret.
func KeyValues(data map[string]any) string {
	if len(data) == 0 {
		return Dim("(empty)")
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, data[k]))
	}
	return strings.Join(parts, "  ")
}

// Percent renders a percentage with no trailing zeros.
func Percent(v float64) string {
	if v == float64(int(v)) {
		return fmt.Sprintf("%d%%", int(v))
	}
	return fmt.Sprintf("%.1f%%", v)
}
