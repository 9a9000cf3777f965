package cli

import (
	"context"
	"fmt"

	"github.com/capacinator/capacinator/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newReportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Server-computed reports",
	}

	cmd.AddCommand(newReportUtilizationCmd(app))

	return cmd
}

func newReportUtilizationCmd(app *App) *cobra.Command {
	var scenario, from, to string

	cmd := &cobra.Command{
		Use:   "utilization",
		Short: "Show per-person utilization for a scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			scenarioID, err := scenarioContext(ctx, app, scenario)
			if err != nil {
				return err
			}

			rows, err := app.Reports.Utilization(ctx, scenarioID, from, to)
			if err != nil {
				return err
			}

			if len(rows) == 0 {
				fmt.Println("No utilization data.")
				return nil
			}

			fmt.Printf("%s\n", formatter.Utilization(rows))

			over := 0
			for _, r := range rows {
				if r.Overallocated() {
					over++
				}
			}
			if over > 0 {
				fmt.Printf("%s\n", formatter.Error(fmt.Sprintf("%d people overallocated", over)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&scenario, "scenario", "", "Scenario name or ID")
	cmd.Flags().StringVar(&from, "from", "", "Period start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Period end (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("scenario")

	return cmd
}
