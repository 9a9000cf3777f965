package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/capacinator/capacinator/internal/api"
	"github.com/capacinator/capacinator/internal/cli/formatter"
	"github.com/capacinator/capacinator/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type scenarioListLoadedMsg struct {
	scenarios []*domain.Scenario
	cached    bool
	err       error
}

type scenarioDeletedMsg struct {
	name string
	err  error
}

type compareLoadedMsg struct {
	cmp *api.Comparison
	err error
}

// scenarioListView lists scenarios with a cursor. It is the entry point for
// switching the active scenario, branching, comparing, and the merge wizard.
type scenarioListView struct {
	state *SharedState

	scenarios    []*domain.Scenario
	cursor       int
	showArchived bool
	cached       bool
	loading      bool
	errText      string

	// confirmDelete holds the scenario pending deletion, nil otherwise.
	confirmDelete *domain.Scenario
}

func newScenarioListView(state *SharedState) *scenarioListView {
	return &scenarioListView{state: state, loading: true}
}

func (v *scenarioListView) ID() ViewID    { return ViewScenarioList }
func (v *scenarioListView) Title() string { return "Scenarios" }

func (v *scenarioListView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "activate")),
		key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "merge")),
		key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "branch")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "compare")),
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
	}
}

func (v *scenarioListView) Init() tea.Cmd {
	return v.loadCmd()
}

func (v *scenarioListView) loadCmd() tea.Cmd {
	app := v.state.App
	includeArchived := v.showArchived
	return func() tea.Msg {
		ctx := context.Background()
		scenarios, err := app.Scenarios.ListScenarios(ctx, includeArchived)
		if err != nil {
			if errors.Is(err, api.ErrUnavailable) && app.Cache != nil {
				cached, cerr := app.Cache.ListScenarios(ctx)
				if cerr == nil {
					return scenarioListLoadedMsg{scenarios: cached, cached: true}
				}
			}
			return scenarioListLoadedMsg{err: err}
		}
		app.cacheScenarios(ctx, scenarios)
		return scenarioListLoadedMsg{scenarios: scenarios}
	}
}

func (v *scenarioListView) deleteCmd(s *domain.Scenario) tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		err := app.Scenarios.DeleteScenario(context.Background(), s.ID)
		return scenarioDeletedMsg{name: s.Name, err: err}
	}
}

func (v *scenarioListView) compareCmd(s *domain.Scenario) tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		cmp, err := app.Scenarios.CompareScenario(context.Background(), s.ID, *s.ParentID)
		return compareLoadedMsg{cmp: cmp, err: err}
	}
}

func (v *scenarioListView) selected() *domain.Scenario {
	if v.cursor < 0 || v.cursor >= len(v.scenarios) {
		return nil
	}
	return v.scenarios[v.cursor]
}

func (v *scenarioListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case scenarioListLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.errText = msg.err.Error()
			return v, nil
		}
		v.errText = ""
		v.scenarios = msg.scenarios
		v.cached = msg.cached
		if v.cursor >= len(v.scenarios) {
			v.cursor = len(v.scenarios) - 1
		}
		if v.cursor < 0 {
			v.cursor = 0
		}
		return v, nil

	case scenarioDeletedMsg:
		if msg.err != nil {
			return v, showStatus(formatter.Error(msg.err.Error()))
		}
		return v, tea.Batch(
			showStatus(formatter.Success("Deleted "+msg.name)),
			v.loadCmd(),
		)

	case compareLoadedMsg:
		if msg.err != nil {
			return v, showStatus(formatter.Error(msg.err.Error()))
		}
		return v, pushView(newCompareView(msg.cmp))

	case refreshViewMsg:
		return v, v.loadCmd()

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *scenarioListView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if v.confirmDelete != nil {
		switch msg.String() {
		case "y", "Y":
			target := v.confirmDelete
			v.confirmDelete = nil
			return v, v.deleteCmd(target)
		default:
			v.confirmDelete = nil
		}
		return v, nil
	}

	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.scenarios)-1 {
			v.cursor++
		}
	case "enter":
		if s := v.selected(); s != nil {
			v.state.SetActiveScenario(s)
			return v, showStatus(formatter.Success("Active scenario: " + s.Name))
		}
	case "m":
		if s := v.selected(); s != nil {
			if !s.HasParent() {
				return v, showStatus(formatter.Error("scenario has no parent to merge into"))
			}
			return v, pushView(newMergeWizardView(v.state, s))
		}
	case "c":
		if s := v.selected(); s != nil {
			if !s.HasParent() {
				return v, showStatus(formatter.Error("scenario has no parent to compare against"))
			}
			return v, v.compareCmd(s)
		}
	case "b":
		if s := v.selected(); s != nil {
			return v, pushView(newScenarioFormView(v.state, s))
		}
	case "n":
		return v, pushView(newScenarioFormView(v.state, nil))
	case "d":
		if s := v.selected(); s != nil {
			v.confirmDelete = s
		}
	case "a":
		v.showArchived = !v.showArchived
		v.loading = true
		return v, v.loadCmd()
	case "r":
		v.loading = true
		return v, v.loadCmd()
	}
	return v, nil
}

func (v *scenarioListView) View() string {
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

	if v.confirmDelete != nil {
		b.WriteString("  " + formatter.StyleYellow.Render(
			fmt.Sprintf("Delete scenario %q?", v.confirmDelete.Name)) + " " + formatter.Dim("y/n") + "\n\n")
	}

	if v.cached {
		b.WriteString("  " + formatter.Dim("offline, showing cached scenarios") + "\n\n")
	}

	if len(v.scenarios) == 0 {
		b.WriteString("  " + formatter.Dim("No scenarios. Press n to create one.") + "\n")
		return b.String()
	}

	for i, s := range v.scenarios {
		cursor := "  "
		nameStyle := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			nameStyle = formatter.StyleBold
		}
		active := ""
		if s.ID == v.state.ActiveScenarioID {
			active = " " + formatter.StyleGreen.Render("●")
		}
		branch := ""
		if s.HasParent() {
			branch = formatter.Dim(" ⎇")
		}
		b.WriteString(fmt.Sprintf("  %s%s%s%s %s %s\n",
			cursor,
			nameStyle.Render(formatter.PadRight(s.Name, 28)),
			branch,
			active,
			formatter.StatusPill(s.Status),
			formatter.Dim(s.DisplayID()),
		))
	}
	return b.String()
}

// compareView renders a scenario comparison as a static page.
type compareView struct {
	cmp *api.Comparison
}

func newCompareView(cmp *api.Comparison) *compareView {
	return &compareView{cmp: cmp}
}

func (v *compareView) ID() ViewID    { return ViewCompare }
func (v *compareView) Title() string { return "Compare" }

func (v *compareView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

func (v *compareView) Init() tea.Cmd { return nil }

func (v *compareView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return v, nil
}

func (v *compareView) View() string {
	return "\n" + indent(formatter.Compare(v.cmp), "  ")
}
