package cli

import (
	"context"
	"fmt"

	"github.com/capacinator/capacinator/internal/cli/formatter"
	"github.com/capacinator/capacinator/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// huhTheme returns a custom huh theme using the existing Gruvbox palette.
func huhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// formView wraps a huh.Form as a View on the navigation stack. When the
// form completes, it sends a wizardCompleteMsg with the done callback's
// result, allowing chained multi-step wizards.
type formView struct {
	state    *SharedState
	form     *huh.Form
	titleStr string
	done     func() tea.Cmd
}

func newFormView(state *SharedState, title string, form *huh.Form, done func() tea.Cmd) *formView {
	return &formView{
		state:    state,
		form:     form,
		titleStr: title,
		done:     done,
	}
}

func (v *formView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *formView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Escape cancels the form.
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return wizardCompleteMsg{nextCmd: showStatus(formatter.Dim("Cancelled."))}
		}
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}

	if v.form.State == huh.StateCompleted {
		var doneCmd tea.Cmd
		if v.done != nil {
			doneCmd = v.done()
		}
		return v, func() tea.Msg {
			return wizardCompleteMsg{nextCmd: tea.Batch(cmd, doneCmd)}
		}
	}

	return v, cmd
}

func (v *formView) View() string {
	return v.form.View()
}

func (v *formView) ID() ViewID    { return ViewForm }
func (v *formView) Title() string { return v.titleStr }
func (v *formView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// scenarioFormFields holds form-bound values for the scenario form.
type scenarioFormFields struct {
	name        string
	description string
}

// newScenarioFormView creates a form for a new scenario. With a non-nil
// parent it creates a branch of that scenario, otherwise a baseline.
func newScenarioFormView(state *SharedState, parent *domain.Scenario) View {
	f := &scenarioFormFields{}

	title := "New Scenario"
	nameTitle := "Scenario Name"
	if parent != nil {
		title = "Branch Scenario"
		nameTitle = fmt.Sprintf("Branch Name (from %s)", parent.Name)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(nameTitle).
				Placeholder("Q3 hiring plan").
				Value(&f.name).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description").
				Placeholder("optional").
				Value(&f.description),
		),
	).WithTheme(huhTheme()).WithShowHelp(false)

	done := func() tea.Cmd {
		return func() tea.Msg {
			s := &domain.Scenario{
				Name:        f.name,
				Description: f.description,
				Type:        domain.ScenarioBaseline,
				Status:      domain.ScenarioActive,
			}
			if parent != nil {
				s.Type = domain.ScenarioBranch
				s.ParentID = &parent.ID
			}

			created, err := state.App.Scenarios.CreateScenario(context.Background(), s)
			if err != nil {
				return statusMsg{text: formatter.Error(err.Error())}
			}

			state.SetActiveScenario(created)
			return scenarioSavedMsg{text: formatter.Success("Created " + created.Name)}
		}
	}

	return newFormView(state, title, form, done)
}
