package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danialarif/gigdesk/internal/cli/formatter"
	"github.com/danialarif/gigdesk/internal/domain"
)

// resolveProjectID accepts a full ID, an unambiguous ID prefix, or an
// index into the recent-projects list ("1" = most recent).
func resolveProjectID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("project ID is required")
	}

	recent, err := app.Sessions.RecentProjects(ctx, 20)
	if err != nil {
		return "", err
	}
	for _, r := range recent {
		if r.ProjectID == input {
			return r.ProjectID, nil
		}
	}

	var matches []string
	for _, r := range recent {
		if strings.HasPrefix(r.ProjectID, input) {
			matches = append(matches, r.ProjectID)
		}
	}
	switch len(matches) {
	case 0:
		// Unknown locally; let the backend decide.
		return input, nil
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("project ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Inspect marketplace projects",
	}

	cmd.AddCommand(
		newProjectListCmd(app),
		newProjectShowCmd(app),
		newProjectRecentCmd(app),
		newProjectProposalsCmd(app),
	)

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var completed bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects visible to your role",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			var (
				projects []domain.Project
				err      error
			)
			if completed {
				projects, err = app.Client.ListCompletedProjects(ctx, app.Role())
			} else {
				projects, err = app.Client.ListProjects(ctx, app.Role())
			}
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatProjectList(projects))
			return nil
		},
	}

	cmd.Flags().BoolVar(&completed, "completed", false, "Only projects eligible for review")
	return cmd
}

func newProjectShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <project-id>",
		Short: "Show a project with its milestone plan and dispute state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			state, err := app.Workflow().Refresh(ctx, id)
			if err != nil {
				return err
			}
			_ = app.Sessions.RememberProject(ctx, state.Project.ID, state.Project.Title, app.Role())

			fmt.Print(formatter.FormatProject(state.Project))
			fmt.Println()
			fmt.Print(formatter.FormatMilestonePlan(state.Plan.Milestones, state.Plan.Approval, state.Project.BidAmount))
			if state.Dispute != nil {
				fmt.Println()
				fmt.Print(formatter.FormatDispute(state.Dispute, state.Project))
			}
			return nil
		},
	}
}

func newProjectRecentCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "recent",
		Short: "List recently opened projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			recent, err := app.Sessions.RecentProjects(context.Background(), 10)
			if err != nil {
				return err
			}
			if len(recent) == 0 {
				fmt.Println(formatter.Dim("No recent projects."))
				return nil
			}
			rows := make([][]string, 0, len(recent))
			for _, r := range recent {
				rows = append(rows, []string{
					formatter.TruncID(r.ProjectID),
					formatter.Truncate(r.Title, 40),
					string(r.Role),
					formatter.HumanTimestamp(r.OpenedAt),
				})
			}
			fmt.Print(formatter.RenderTable([]string{"ID", "Title", "Role", "Opened"}, rows))
			return nil
		},
	}
}

func newProjectProposalsCmd(app *App) *cobra.Command {
	var accept, reject string

	cmd := &cobra.Command{
		Use:   "proposals <project-id>",
		Short: "List a project's proposals; accept or reject one (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRole(app, domain.RoleAdmin); err != nil {
				return err
			}
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			switch {
			case accept != "":
				p, err := app.Client.AcceptProposal(ctx, accept)
				if err != nil {
					return err
				}
				fmt.Printf("Accepted proposal %s at %s\n", p.ID, p.BidAmount)
				return nil
			case reject != "":
				if _, err := app.Client.RejectProposal(ctx, reject); err != nil {
					return err
				}
				fmt.Printf("Rejected proposal %s\n", reject)
				return nil
			}

			proposals, err := app.Client.ListProposals(ctx, id)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatProposalList(proposals))
			return nil
		},
	}

	cmd.Flags().StringVar(&accept, "accept", "", "Proposal ID to accept")
	cmd.Flags().StringVar(&reject, "reject", "", "Proposal ID to reject")
	return cmd
}
