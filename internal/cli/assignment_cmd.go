package cli

import (
	"context"
	"fmt"

	"github.com/capacinator/capacinator/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newAssignmentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assignment",
		Short: "Inspect assignments within a scenario",
	}

	cmd.AddCommand(newAssignmentListCmd(app))

	return cmd
}

func newAssignmentListCmd(app *App) *cobra.Command {
	var scenario string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List assignments in a scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			scenarioID, err := scenarioContext(ctx, app, scenario)
			if err != nil {
				return err
			}

			assignments, err := app.Resources.ListAssignments(ctx, scenarioID)
			if err != nil {
				return err
			}

			if len(assignments) == 0 {
				fmt.Println("No assignments found.")
				return nil
			}

			for _, a := range assignments {
				window := ""
				if a.StartDate != nil && a.EndDate != nil {
					window = fmt.Sprintf("  %s to %s",
						a.StartDate.Format("2006-01-02"),
						a.EndDate.Format("2006-01-02"))
				}
				fmt.Printf("%s %s %s %s%s\n",
					formatter.Dim(shortID(a.PersonID)),
					formatter.Dim("on"),
					shortID(a.ProjectID),
					formatter.Bold(formatter.Percent(a.Allocation)),
					formatter.Dim(window),
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&scenario, "scenario", "", "Scenario name or ID")
	_ = cmd.MarkFlagRequired("scenario")

	return cmd
}

// shortID truncates a UUID for display.
func shortID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}
