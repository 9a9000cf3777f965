package cli

import tea "github.com/charmbracelet/bubbletea"

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

// pushViewMsg pushes a new view onto the navigation stack.
type pushViewMsg struct {
	view View
}

// popViewMsg pops the current view off the navigation stack,
// returning to the previous view.
type popViewMsg struct{}

// refreshViewMsg asks every view on the stack to reload its data, e.g.
// after a merge completed in a view above it.
type refreshViewMsg struct{}

// statusMsg carries transient status text (merge completed, errors from
// forms) to be shown above the bottom bar.
type statusMsg struct {
	text string
}

// quitMsg asks the appModel to terminate the program.
type quitMsg struct{}

// scenarioSavedMsg reports a completed scenario mutation made from a form.
// The appModel shows the text and refreshes every view on the stack.
type scenarioSavedMsg struct {
	text string
}

// wizardCompleteMsg pops a completed form view and then runs nextCmd,
// allowing chained multi-step wizards.
type wizardCompleteMsg struct {
	nextCmd tea.Cmd
}

// pushView returns a tea.Cmd that pushes a view onto the stack.
func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

// popView returns a tea.Cmd that pops the current view.
func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}

// refreshViews returns a tea.Cmd that broadcasts a refresh to the stack.
func refreshViews() tea.Cmd {
	return func() tea.Msg { return refreshViewMsg{} }
}

// showStatus returns a tea.Cmd carrying transient status text.
func showStatus(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}
