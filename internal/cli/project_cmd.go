package cli

import (
	"context"
	"fmt"

	"github.com/capacinator/capacinator/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectListCmd(app),
		newProjectInspectCmd(app),
	)

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projects, err := app.Resources.ListProjects(ctx)
			if err != nil {
				return err
			}
			app.cacheProjects(ctx, projects)

			if len(projects) == 0 {
				fmt.Println("No projects found.")
				return nil
			}

			fmt.Printf("%s\n", formatter.ProjectList(projects))
			return nil
		},
	}
}

func newProjectInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ID",
		Short: "Show project details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Resources.GetProject(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.Bold(p.Name))
			if p.Description != "" {
				fmt.Printf("%s\n", p.Description)
			}
			fmt.Printf("%s %s\n", formatter.Dim("id:"), p.ID)
			fmt.Printf("%s %d\n", formatter.Dim("priority:"), p.Priority)
			if p.AspirationStart != nil && p.AspirationFinish != nil {
				fmt.Printf("%s %s to %s\n", formatter.Dim("window:"),
					p.AspirationStart.Format("2006-01-02"),
					p.AspirationFinish.Format("2006-01-02"))
			}
			return nil
		},
	}
}
