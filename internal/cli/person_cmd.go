package cli

import (
	"context"
	"fmt"

	"github.com/capacinator/capacinator/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newPersonCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "person",
		Short: "Manage people and roles",
	}

	cmd.AddCommand(
		newPersonListCmd(app),
		newPersonInspectCmd(app),
		newRoleListCmd(app),
	)

	return cmd
}

func newPersonListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List people",
		RunE: func(cmd *cobra.Command, args []string) error {
			people, err := app.Resources.ListPeople(context.Background())
			if err != nil {
				return err
			}

			if len(people) == 0 {
				fmt.Println("No people found.")
				return nil
			}

			fmt.Printf("%s\n", formatter.PeopleList(people))
			return nil
		},
	}
}

func newPersonInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ID",
		Short: "Show person details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Resources.GetPerson(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.Bold(p.Name))
			if p.Email != "" {
				fmt.Printf("%s %s\n", formatter.Dim("email:"), p.Email)
			}
			fmt.Printf("%s %s\n", formatter.Dim("id:"), p.ID)
			fmt.Printf("%s %s\n", formatter.Dim("availability:"), formatter.Percent(p.DefaultAvailability))
			fmt.Printf("%s %.1f\n", formatter.Dim("hours/day:"), p.DefaultHoursPerDay)
			return nil
		},
	}
}

func newRoleListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "roles",
		Short: "List roles",
		RunE: func(cmd *cobra.Command, args []string) error {
			roles, err := app.Resources.ListRoles(context.Background())
			if err != nil {
				return err
			}

			if len(roles) == 0 {
				fmt.Println("No roles found.")
				return nil
			}

			for _, r := range roles {
				fmt.Printf("%s  %s\n", formatter.Bold(formatter.PadRight(r.Name, 24)), formatter.Dim(r.ID))
			}
			return nil
		},
	}
}
