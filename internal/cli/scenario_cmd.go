package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/capacinator/capacinator/internal/api"
	"github.com/capacinator/capacinator/internal/cli/formatter"
	"github.com/capacinator/capacinator/internal/domain"
	"github.com/capacinator/capacinator/internal/merge"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newScenarioCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Manage planning scenarios",
	}

	cmd.AddCommand(
		newScenarioListCmd(app),
		newScenarioInspectCmd(app),
		newScenarioCreateCmd(app),
		newScenarioBranchCmd(app),
		newScenarioUpdateCmd(app),
		newScenarioRemoveCmd(app),
		newScenarioCompareCmd(app),
		newScenarioMergeCmd(app),
	)

	return cmd
}

func newScenarioListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			cached := false
			scenarios, err := app.Scenarios.ListScenarios(ctx, all)
			switch {
			case err == nil:
				app.cacheScenarios(ctx, scenarios)
			case errors.Is(err, api.ErrUnavailable) && app.Cache != nil:
				scenarios, err = app.Cache.ListScenarios(ctx)
				if err != nil {
					return err
				}
				cached = true
			default:
				return err
			}

			if cached {
				fmt.Println(formatter.Dim("(offline, showing cached scenarios)"))
			}
			if len(scenarios) == 0 {
				fmt.Println("No scenarios found.")
				return nil
			}

			fmt.Printf("%s\n", formatter.ScenarioList(scenarios))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include archived scenarios")

	return cmd
}

func newScenarioInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect SCENARIO",
		Short: "Show scenario details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			scenarioID, err := resolveScenarioID(ctx, app, args[0])
			if err != nil {
				return err
			}
			s, err := app.Scenarios.GetScenario(ctx, scenarioID)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.ScenarioDetail(s))
			return nil
		},
	}
}

func newScenarioCreateCmd(app *App) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new baseline scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := &domain.Scenario{
				Name:        name,
				Description: description,
				Type:        domain.ScenarioBaseline,
				Status:      domain.ScenarioActive,
			}

			created, err := app.Scenarios.CreateScenario(context.Background(), s)
			if err != nil {
				return err
			}

			fmt.Printf("Created scenario %s [%s]\n", created.Name, created.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Scenario name")
	cmd.Flags().StringVar(&description, "description", "", "Scenario description")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newScenarioBranchCmd(app *App) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "branch SCENARIO",
		Short: "Create a branch of an existing scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			parentID, err := resolveScenarioID(ctx, app, args[0])
			if err != nil {
				return err
			}

			s := &domain.Scenario{
				Name:        name,
				Description: description,
				Type:        domain.ScenarioBranch,
				Status:      domain.ScenarioActive,
				ParentID:    &parentID,
			}

			created, err := app.Scenarios.CreateScenario(ctx, s)
			if err != nil {
				return err
			}

			fmt.Printf("Branched scenario %s [%s] from %s\n",
				created.Name, created.DisplayID(), args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Branch name")
	cmd.Flags().StringVar(&description, "description", "", "Branch description")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newScenarioUpdateCmd(app *App) *cobra.Command {
	var name, description, status string

	cmd := &cobra.Command{
		Use:   "update SCENARIO",
		Short: "Update a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			scenarioID, err := resolveScenarioID(ctx, app, args[0])
			if err != nil {
				return err
			}
			s, err := app.Scenarios.GetScenario(ctx, scenarioID)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				s.Name = name
			}
			if cmd.Flags().Changed("description") {
				s.Description = description
			}
			if cmd.Flags().Changed("status") {
				s.Status = domain.ScenarioStatus(status)
			}

			updated, err := app.Scenarios.UpdateScenario(ctx, s)
			if err != nil {
				return err
			}

			fmt.Printf("Updated scenario %s [%s]\n", updated.Name, updated.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Scenario name")
	cmd.Flags().StringVar(&description, "description", "", "Scenario description")
	cmd.Flags().StringVar(&status, "status", "", "Scenario status (active|archived)")

	return cmd
}

func newScenarioRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove SCENARIO",
		Short: "Remove a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			scenarioID, err := resolveScenarioID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Scenarios.DeleteScenario(ctx, scenarioID); err != nil {
				return err
			}
			fmt.Printf("Removed scenario %s\n", scenarioID)
			return nil
		},
	}
}

func newScenarioCompareCmd(app *App) *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "compare SCENARIO",
		Short: "Compare a scenario against its parent or another scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			scenarioID, err := resolveScenarioID(ctx, app, args[0])
			if err != nil {
				return err
			}

			compareTo := to
			if compareTo == "" {
				s, err := app.Scenarios.GetScenario(ctx, scenarioID)
				if err != nil {
					return err
				}
				if !s.HasParent() {
					return domain.ErrNoParentScenario
				}
				compareTo = *s.ParentID
			} else {
				compareTo, err = resolveScenarioID(ctx, app, compareTo)
				if err != nil {
					return err
				}
			}

			cmp, err := app.Scenarios.CompareScenario(ctx, scenarioID, compareTo)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.Compare(cmp))
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Scenario to compare against (defaults to parent)")

	return cmd
}

func newScenarioMergeCmd(app *App) *cobra.Command {
	var strategy, resolve string

	cmd := &cobra.Command{
		Use:   "merge SCENARIO",
		Short: "Merge a scenario into its parent",
		Long: `Merge a scenario into its parent.

With --strategy source_priority or target_priority the server resolves
conflicts automatically. With the default manual strategy, conflicts are
printed and --resolve source|target applies one choice to all of them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if !domain.ValidMergeStrategies[strategy] {
				return fmt.Errorf("invalid strategy %q (manual|source_priority|target_priority)", strategy)
			}
			if resolve != "" && resolve != "source" && resolve != "target" && resolve != "interactive" {
				return fmt.Errorf("invalid --resolve %q (source|target|interactive)", resolve)
			}

			scenarioID, err := resolveScenarioID(ctx, app, args[0])
			if err != nil {
				return err
			}
			s, err := app.Scenarios.GetScenario(ctx, scenarioID)
			if err != nil {
				return err
			}

			return runHeadlessMerge(ctx, app, s, domain.MergeStrategy(strategy), resolve)
		},
	}

	cmd.Flags().StringVar(&strategy, "strategy", string(domain.StrategyManual),
		"Conflict resolution strategy (manual|source_priority|target_priority)")
	cmd.Flags().StringVar(&resolve, "resolve", "",
		"Conflict resolution: source or target for all, or interactive prompts")

	return cmd
}

// runHeadlessMerge drives a merge session without the TUI: analyze, apply a
// blanket resolution if one was given, then execute.
func runHeadlessMerge(ctx context.Context, app *App, s *domain.Scenario, strategy domain.MergeStrategy, resolve string) error {
	session := merge.NewSession(s, strategy)

	session.Apply(merge.AnalyzeRequested{})
	if !session.Inflight {
		return domain.ErrNoParentScenario
	}

	result, err := app.Scenarios.AnalyzeMerge(ctx, s.ID, strategy)
	if err != nil {
		session.Apply(merge.AnalysisFailed{Gen: session.Generation(), Err: err})
		return err
	}
	session.Apply(merge.AnalysisSucceeded{
		Gen:       session.Generation(),
		Message:   result.Message,
		Conflicts: result.Conflicts,
	})

	if session.Step == merge.StepComplete {
		fmt.Printf("%s\n", formatter.Success(session.Message))
		return nil
	}

	fmt.Printf("%d conflicts:\n\n", len(session.Conflicts))
	for i := range session.Conflicts {
		fmt.Printf("%s\n", formatter.ConflictCard(&session.Conflicts[i], session.Resolutions.Get(i)))
	}

	switch resolve {
	case "":
		return fmt.Errorf("manual merge has unresolved conflicts: rerun with --resolve source|target|interactive")
	case "interactive":
		if err := promptResolutions(session); err != nil {
			return err
		}
	default:
		choice := domain.ResolutionSource
		if resolve == "target" {
			choice = domain.ResolutionTarget
		}
		fmt.Printf("Resolving all conflicts as %s...\n", resolve)
		for range session.Conflicts {
			session.Apply(merge.ResolveCurrent{Choice: choice})
			session.Apply(merge.NextConflict{})
		}
	}
	session.Apply(merge.PreviewRequested{})
	session.Apply(merge.ExecuteRequested{})
	if session.Step != merge.StepExecuting {
		return fmt.Errorf("merge is not ready to execute")
	}

	execResult, err := app.Scenarios.ExecuteMerge(ctx, s.ID, strategy, session.Resolutions.Payload())
	if err == nil && !execResult.Success {
		err = fmt.Errorf("%w (%d)", api.ErrMergeConflicted, len(execResult.Conflicts))
	}
	if err != nil {
		session.Apply(merge.ExecuteFailed{Gen: session.Generation(), Err: err})
		return err
	}
	session.Apply(merge.ExecuteSucceeded{Gen: session.Generation(), Message: execResult.Message})

	fmt.Printf("%s\n", formatter.Success(session.Message))
	return nil
}

// promptResolutions asks for a choice per conflict with standalone huh
// forms, advancing the session cursor as each one is answered.
func promptResolutions(session *merge.Session) error {
	for i := range session.Conflicts {
		c := &session.Conflicts[i]
		var choice string

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title(fmt.Sprintf("Conflict %d of %d: %s", i+1, len(session.Conflicts), c.Label())).
					Options(
						huh.NewOption("Use source (this scenario)", "source"),
						huh.NewOption("Use target (parent)", "target"),
					).
					Value(&choice),
			),
		).WithTheme(huhTheme()).WithShowHelp(false)

		if err := form.Run(); err != nil {
			return fmt.Errorf("resolving conflict %d: %w", i+1, err)
		}

		session.Apply(merge.ResolveCurrent{Choice: domain.ResolutionChoice(choice)})
		session.Apply(merge.NextConflict{})
	}
	return nil
}

// scenarioContext resolves the scenario used by resource and report
// commands: an explicit flag value wins, otherwise the flag is required.
func scenarioContext(ctx context.Context, app *App, flagValue string) (string, error) {
	if flagValue == "" {
		return "", fmt.Errorf("--scenario is required")
	}
	return resolveScenarioID(ctx, app, flagValue)
}
