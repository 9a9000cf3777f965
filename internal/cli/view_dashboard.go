package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/capacinator/capacinator/internal/api"
	"github.com/capacinator/capacinator/internal/cli/formatter"
	"github.com/capacinator/capacinator/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// dashboardLoadedMsg carries the dashboard's data after the initial fetch.
type dashboardLoadedMsg struct {
	scenarios []*domain.Scenario
	rows      []domain.UtilizationRow
	cached    bool
	cachedAt  time.Time
	err       error
}

// dashboardView is the landing view: scenario summary plus a utilization
// snapshot for the active scenario.
type dashboardView struct {
	state *SharedState

	scenarios []*domain.Scenario
	rows      []domain.UtilizationRow
	cached    bool
	cachedAt  time.Time
	loading   bool
	errText   string
}

func newDashboardView(state *SharedState) *dashboardView {
	return &dashboardView{state: state, loading: true}
}

func (v *dashboardView) ID() ViewID    { return ViewDashboard }
func (v *dashboardView) Title() string { return "Capacinator" }

func (v *dashboardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "scenarios")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	}
}

func (v *dashboardView) Init() tea.Cmd {
	return v.loadCmd()
}

func (v *dashboardView) loadCmd() tea.Cmd {
	app := v.state.App
	scenarioID := v.state.ActiveScenarioID
	return func() tea.Msg {
		ctx := context.Background()
		scenarios, err := app.Scenarios.ListScenarios(ctx, false)
		if err != nil {
			// Offline: fall back to the local cache when the server is
			// unreachable.
			if errors.Is(err, api.ErrUnavailable) && app.Cache != nil {
				cached, cerr := app.Cache.ListScenarios(ctx)
				if cerr == nil {
					fetchedAt, _ := app.Cache.FetchedAt(ctx, "scenarios")
					return dashboardLoadedMsg{scenarios: cached, cached: true, cachedAt: fetchedAt}
				}
			}
			return dashboardLoadedMsg{err: err}
		}
		app.cacheScenarios(ctx, scenarios)

		var rows []domain.UtilizationRow
		if scenarioID != "" {
			rows, _ = app.Reports.Utilization(ctx, scenarioID, "", "")
		}
		return dashboardLoadedMsg{scenarios: scenarios, rows: rows}
	}
}

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case dashboardLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.errText = msg.err.Error()
			return v, nil
		}
		v.errText = ""
		v.scenarios = msg.scenarios
		v.rows = msg.rows
		v.cached = msg.cached
		v.cachedAt = msg.cachedAt
		return v, nil

	case refreshViewMsg:
		v.loading = true
		return v, v.loadCmd()

	case tea.KeyMsg:
		switch msg.String() {
		case "s", "enter":
			return v, pushView(newScenarioListView(v.state))
		case "r":
			v.loading = true
			return v, v.loadCmd()
		}
	}
	return v, nil
}

func (v *dashboardView) View() string {
	var b strings.Builder
	b.WriteString("\n")

	if v.loading {
		b.WriteString("  " + formatter.Dim("Loading...") + "\n")
		return b.String()
	}
	if v.errText != "" {
		b.WriteString("  " + formatter.Error(v.errText) + "\n")
		return b.String()
	}

	source := ""
	if v.cached {
		source = " " + formatter.Dim("(offline, cached ") + formatter.RelativeTime(v.cachedAt) + formatter.Dim(")")
	}
	b.WriteString("  " + formatter.Header("Scenarios") + source + "\n")

	branches := 0
	for _, s := range v.scenarios {
		if s.HasParent() {
			branches++
		}
	}
	b.WriteString(fmt.Sprintf("  %d scenarios, %d branches\n\n", len(v.scenarios), branches))

	if v.state.ActiveScenarioID != "" {
		b.WriteString("  " + formatter.Bold("Active: "+v.state.ActiveScenarioName) + "\n\n")
		if len(v.rows) > 0 {
			b.WriteString(indent(formatter.Utilization(v.rows), "  "))
		}
	} else {
		b.WriteString("  " + formatter.Dim("No active scenario. Press s to pick one.") + "\n")
	}
	return b.String()
}

// indent prefixes every non-empty line of s.
func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
