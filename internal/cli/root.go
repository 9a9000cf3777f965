package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the top-level "capacinator" command and registers all
// subcommands against the provided App. With no subcommand on an
// interactive terminal it launches the TUI.
func NewRootCmd(app *App, serverURL string, interactive func() bool) *cobra.Command {
	root := &cobra.Command{
		Use:   "capacinator",
		Short: "Capacity planning client: scenarios, assignments, and merges",
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive != nil && interactive() {
				return RunTUI(app)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newScenarioCmd(app),
		newProjectCmd(app),
		newPersonCmd(app),
		newAssignmentCmd(app),
		newReportCmd(app),
		newStatusCmd(app, serverURL),
	)

	return root
}

// RunTUI starts the interactive terminal UI.
func RunTUI(app *App) error {
	p := tea.NewProgram(newAppModel(app), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
