package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/capacinator/capacinator/internal/api"
	"github.com/capacinator/capacinator/internal/cli/formatter"
	"github.com/capacinator/capacinator/internal/domain"
	"github.com/capacinator/capacinator/internal/merge"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// analyzeDoneMsg and executeDoneMsg carry merge call outcomes back to the
// wizard, tagged with the session generation the call was issued under.
type analyzeDoneMsg struct {
	gen    int
	result *api.MergeResult
	err    error
}

type executeDoneMsg struct {
	gen    int
	result *api.MergeResult
	err    error
}

// strategyOptions is the setup step's selection order.
var strategyOptions = []struct {
	label    string
	strategy domain.MergeStrategy
}{
	{"Manual — resolve each conflict yourself", domain.StrategyManual},
	{"Source priority — auto-resolve preferring this scenario", domain.StrategySourcePriority},
	{"Target priority — auto-resolve preferring the parent", domain.StrategyTargetPriority},
}

// mergeWizardView drives a merge.Session through analyzing, resolving,
// previewing, and executing a scenario merge. The session holds all wizard
// state; the view renders it and turns key events and API outcomes into
// session events.
type mergeWizardView struct {
	state   *SharedState
	session *merge.Session

	// Strategy selection cursor on the setup step.
	strategyCursor int

	// confirming is the close-with-unsaved-progress sub-state.
	confirming bool

	// onMergeComplete fires exactly once, after the merge has completed
	// server-side and before onClose.
	onMergeComplete func() tea.Cmd
	onClose         func() tea.Cmd
	completeFired   bool
}

func newMergeWizardView(state *SharedState, scenario *domain.Scenario) *mergeWizardView {
	v := &mergeWizardView{
		state:   state,
		session: merge.NewSession(scenario, domain.StrategyManual),
	}
	v.onMergeComplete = func() tea.Cmd {
		return tea.Batch(
			refreshViews(),
			showStatus(formatter.Success("Scenario merged: "+scenario.Name)),
		)
	}
	v.onClose = func() tea.Cmd { return popView() }
	return v
}

func (v *mergeWizardView) ID() ViewID    { return ViewMergeWizard }
func (v *mergeWizardView) Title() string { return "Merge" }

func (v *mergeWizardView) ShortHelp() []key.Binding {
	switch v.session.Step {
	case merge.StepConflicts:
		return []key.Binding{
			key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "use source")),
			key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "use target")),
			key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "conflict")),
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "preview")),
		}
	case merge.StepPreview:
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "execute merge")),
			key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "back")),
		}
	default:
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "continue")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		}
	}
}

func (v *mergeWizardView) Init() tea.Cmd {
	return nil
}

// ── commands ─────────────────────────────────────────────────────────────────

func (v *mergeWizardView) analyzeCmd() tea.Cmd {
	app := v.state.App
	scenarioID := v.session.Scenario.ID
	strategy := v.session.Strategy
	gen := v.session.Generation()
	return func() tea.Msg {
		result, err := app.Scenarios.AnalyzeMerge(context.Background(), scenarioID, strategy)
		return analyzeDoneMsg{gen: gen, result: result, err: err}
	}
}

func (v *mergeWizardView) executeCmd() tea.Cmd {
	app := v.state.App
	scenarioID := v.session.Scenario.ID
	strategy := v.session.Strategy
	resolutions := v.session.Resolutions.Payload()
	gen := v.session.Generation()
	return func() tea.Msg {
		result, err := app.Scenarios.ExecuteMerge(context.Background(), scenarioID, strategy, resolutions)
		return executeDoneMsg{gen: gen, result: result, err: err}
	}
}

// ── update ───────────────────────────────────────────────────────────────────

func (v *mergeWizardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case analyzeDoneMsg:
		if msg.err != nil {
			v.session.Apply(merge.AnalysisFailed{Gen: msg.gen, Err: msg.err})
			return v, nil
		}
		v.session.Apply(merge.AnalysisSucceeded{
			Gen:       msg.gen,
			Message:   msg.result.Message,
			Conflicts: msg.result.Conflicts,
		})
		return v, v.fireCompleteOnce()

	case executeDoneMsg:
		// A conflicted execute response (success:false) is a failure even
		// when the transport call itself went through.
		if msg.err == nil && !msg.result.Success {
			msg.err = fmt.Errorf("%w (%d)", api.ErrMergeConflicted, len(msg.result.Conflicts))
		}
		if msg.err != nil {
			v.session.Apply(merge.ExecuteFailed{Gen: msg.gen, Err: msg.err})
			return v, nil
		}
		v.session.Apply(merge.ExecuteSucceeded{Gen: msg.gen, Message: msg.result.Message})
		return v, v.fireCompleteOnce()

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

// fireCompleteOnce invokes the completion callback the first time the
// session reaches the complete step. A zero-conflict analysis completes the
// merge server-side in one call, so it counts as a completion too.
func (v *mergeWizardView) fireCompleteOnce() tea.Cmd {
	if v.session.Step != merge.StepComplete || v.completeFired {
		return nil
	}
	v.completeFired = true
	if v.onMergeComplete != nil {
		return v.onMergeComplete()
	}
	return nil
}

func (v *mergeWizardView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if v.confirming {
		return v.handleConfirmKey(msg)
	}

	// The executing step is non-interactive: every control is disabled
	// while the request is in flight.
	if v.session.Step == merge.StepExecuting || v.session.Inflight {
		return v, nil
	}

	if msg.Type == tea.KeyCtrlC {
		return v, func() tea.Msg { return quitMsg{} }
	}

	switch v.session.Step {
	case merge.StepSetup:
		return v.handleSetupKey(msg)
	case merge.StepConflicts:
		return v.handleConflictsKey(msg)
	case merge.StepPreview:
		return v.handlePreviewKey(msg)
	case merge.StepComplete:
		switch msg.String() {
		case "enter", "esc", "q":
			return v, v.close()
		}
	}
	return v, nil
}

func (v *mergeWizardView) handleSetupKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.strategyCursor > 0 {
			v.strategyCursor--
		}
	case "down", "j":
		if v.strategyCursor < len(strategyOptions)-1 {
			v.strategyCursor++
		}
	case "enter", "a":
		v.session.Strategy = strategyOptions[v.strategyCursor].strategy
		v.session.Apply(merge.AnalyzeRequested{})
		if v.session.Inflight {
			return v, v.analyzeCmd()
		}
		// Precondition failed (no parent): error is inline, no call issued.
	case "esc", "q":
		return v, v.close()
	}
	return v, nil
}

func (v *mergeWizardView) handleConflictsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		v.session.Apply(merge.PrevConflict{})
	case "right", "l":
		v.session.Apply(merge.NextConflict{})
	case "s":
		v.session.Apply(merge.ResolveCurrent{Choice: domain.ResolutionSource})
	case "t":
		v.session.Apply(merge.ResolveCurrent{Choice: domain.ResolutionTarget})
	case "enter", "p":
		v.session.Apply(merge.PreviewRequested{})
	case "b":
		v.session.Apply(merge.BackToSetup{})
	case "esc", "q":
		return v, v.requestClose()
	}
	return v, nil
}

func (v *mergeWizardView) handlePreviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "e":
		v.session.Apply(merge.ExecuteRequested{})
		if v.session.Step == merge.StepExecuting {
			return v, v.executeCmd()
		}
	case "b":
		v.session.Apply(merge.BackToConflicts{})
	case "esc", "q":
		return v, v.requestClose()
	}
	return v, nil
}

func (v *mergeWizardView) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.confirming = false
		return v, v.close()
	case "n", "N", "esc":
		v.confirming = false
	}
	return v, nil
}

// requestClose closes immediately unless manual progress would be lost, in
// which case it enters the confirmation sub-state.
func (v *mergeWizardView) requestClose() tea.Cmd {
	if v.session.Dirty() {
		v.confirming = true
		return nil
	}
	return v.close()
}

// close resets the session so any in-flight response arriving later is
// dropped, then invokes the close callback. Reopening the wizard always
// starts from a fresh session.
func (v *mergeWizardView) close() tea.Cmd {
	v.session.Apply(merge.ResetRequested{})
	if v.onClose != nil {
		return v.onClose()
	}
	return nil
}

// ── view ─────────────────────────────────────────────────────────────────────

func (v *mergeWizardView) View() string {
	var b strings.Builder
	b.WriteString("\n")

	s := v.session
	b.WriteString("  " + formatter.Header("Merge "+s.Scenario.Name) + "\n\n")

	if v.confirming {
		b.WriteString("  " + formatter.StyleYellow.Render("Discard conflict resolutions and close?") + " " +
			formatter.Dim("y/n") + "\n")
		return b.String()
	}

	switch s.Step {
	case merge.StepSetup:
		v.renderSetup(&b)
	case merge.StepConflicts:
		v.renderConflicts(&b)
	case merge.StepPreview:
		v.renderPreview(&b)
	case merge.StepExecuting:
		b.WriteString("  " + formatter.Dim("Executing merge...") + "\n")
	case merge.StepComplete:
		b.WriteString("  " + formatter.Success("Merge Completed Successfully") + "\n")
		if s.Message != "" {
			b.WriteString("  " + s.Message + "\n")
		}
		b.WriteString("\n  " + formatter.Dim("enter: close") + "\n")
	}

	if s.ErrText != "" {
		b.WriteString("\n  " + formatter.Error(s.ErrText) + "\n")
	}
	return b.String()
}

func (v *mergeWizardView) renderSetup(b *strings.Builder) {
	s := v.session
	if s.Scenario.HasParent() {
		b.WriteString("  Merging into parent " + formatter.Dim(*s.Scenario.ParentID) + "\n\n")
	} else {
		b.WriteString("  " + formatter.Dim("This scenario has no parent.") + "\n\n")
	}

	b.WriteString("  " + formatter.Bold("Conflict resolution strategy") + "\n")
	for i, opt := range strategyOptions {
		cursor := "  "
		style := formatter.StyleFg
		if i == v.strategyCursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			style = formatter.StyleBold
		}
		b.WriteString("  " + cursor + style.Render(opt.label) + "\n")
	}

	action := "Analyze Conflicts"
	if s.Inflight {
		action = "Analyzing..."
	}
	b.WriteString("\n  " + formatter.StyleHeader.Render("[ "+action+" ]") + " " + formatter.Dim("(enter)") + "\n")
}

func (v *mergeWizardView) renderConflicts(b *strings.Builder) {
	s := v.session
	total := len(s.Conflicts)

	b.WriteString(fmt.Sprintf("  Conflict %d of %d  %s\n\n",
		s.Cursor+1, total, formatter.ResolvedBadge(s.Resolutions.Resolved(), total)))

	if c := s.Current(); c != nil {
		b.WriteString(formatter.ConflictCard(c, s.Resolutions.Get(s.Cursor)))
	}

	b.WriteString("\n")
	prev := formatter.Dim("← previous")
	if !s.CanPrev() {
		prev = formatter.Dim("          ")
	}
	next := formatter.Dim("next →")
	if !s.CanNext() {
		next = formatter.Dim("      ")
	}
	b.WriteString("  " + prev + "   " + next + "\n")

	gate := formatter.PreviewGateLabel(s.Resolutions.Remaining())
	if s.Resolutions.AllResolved() {
		b.WriteString("\n  " + formatter.StyleHeader.Render("[ "+gate+" ]") + " " + formatter.Dim("(enter)") + "\n")
	} else {
		b.WriteString("\n  " + formatter.Dim("[ "+gate+" ]") + "\n")
	}
}

func (v *mergeWizardView) renderPreview(b *strings.Builder) {
	s := v.session

	b.WriteString("  " + formatter.Bold(fmt.Sprintf("Conflict Resolutions (%d)", len(s.Conflicts))) + "\n")
	for i := range s.Conflicts {
		b.WriteString(formatter.ResolutionLine(&s.Conflicts[i], s.Resolutions.Get(i)) + "\n")
	}

	b.WriteString("\n  " + formatter.ImpactSummary(s.Conflicts) + "\n")
	b.WriteString("\n  " + formatter.StyleHeader.Render("[ Execute Merge ]") + " " +
		formatter.Dim("(enter)  b: back") + "\n")
}
