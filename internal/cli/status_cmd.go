package cli

import (
	"context"
	"fmt"

	"github.com/capacinator/capacinator/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App, serverURL string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show server reachability and cache freshness",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			fmt.Printf("%s %s\n", formatter.Dim("server:"), serverURL)
			if app.Health != nil && app.Health.Available(ctx) {
				fmt.Printf("%s\n", formatter.Success("server reachable"))
			} else {
				fmt.Printf("%s\n", formatter.Error("server unreachable"))
			}

			if app.Cache == nil {
				fmt.Printf("%s\n", formatter.Dim("cache: disabled"))
				return nil
			}
			for _, resource := range []string{"scenarios", "projects"} {
				fetchedAt, err := app.Cache.FetchedAt(ctx, resource)
				if err != nil {
					fmt.Printf("%s %s\n", formatter.Dim("cache "+resource+":"), formatter.Dim("never fetched"))
					continue
				}
				fmt.Printf("%s %s\n", formatter.Dim("cache "+resource+":"), formatter.RelativeTime(fetchedAt))
			}
			return nil
		},
	}
}
