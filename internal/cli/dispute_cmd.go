package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danialarif/gigdesk/internal/api"
	"github.com/danialarif/gigdesk/internal/cli/formatter"
	"github.com/danialarif/gigdesk/internal/domain"
	"github.com/danialarif/gigdesk/internal/upload"
	"github.com/danialarif/gigdesk/internal/viewmodel"
)

func newDisputeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dispute",
		Short: "Open, follow, and resolve project disputes",
	}

	cmd.AddCommand(
		newDisputeOpenCmd(app),
		newDisputeShowCmd(app),
		newDisputeUpdateCmd(app),
		newDisputeListCmd(app),
		newDisputeResolveCmd(app),
	)

	return cmd
}

func disputeDesk(app *App) *viewmodel.DisputeDesk {
	return viewmodel.NewDisputeDesk(app.Client, app.Uploader)
}

func readUploadFiles(paths []string) ([]upload.File, error) {
	files := make([]upload.File, 0, len(paths))
	for _, p := range paths {
		f, err := readUploadFile(p)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

func newDisputeOpenCmd(app *App) *cobra.Command {
	var (
		milestoneSeq string
		reason       string
		description  string
		amountStr    string
		suggestion   string
		attachments  []string
	)

	cmd := &cobra.Command{
		Use:   "open <project-id>",
		Short: "Open a dispute; freezes the contested milestone",
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
			if state.Dispute != nil && !state.Dispute.Status.Final() {
				return fmt.Errorf("project already has an open dispute (%s)", state.Dispute.ID)
			}

			if description == "" && app.IsInteractive != nil && app.IsInteractive() {
				if err := disputeForm(&reason, &description, &amountStr, &suggestion).Run(); err != nil {
					return err
				}
			}

			input := viewmodel.CreateInput{
				ProjectID:           id,
				Reason:              reason,
				Description:         description,
				SuggestedResolution: suggestion,
			}
			if milestoneSeq != "" {
				m, err := milestoneBySeq(state, milestoneSeq)
				if err != nil {
					return err
				}
				input.MilestoneID = m.ID
			}
			if strings.TrimSpace(amountStr) != "" {
				amount, err := domain.ParseAmount(amountStr)
				if err != nil {
					return fmt.Errorf("invalid contested amount %q: %w", amountStr, err)
				}
				input.ContestedAmount = amount
			}
			if input.Attachments, err = readUploadFiles(attachments); err != nil {
				return err
			}

			d, err := disputeDesk(app).Create(ctx, input)
			if err != nil {
				return err
			}
			fmt.Printf("Opened dispute %s\n", d.ID)
			fmt.Println(formatter.Dim("milestone actions are frozen until it is resolved"))
			return nil
		},
	}

	cmd.Flags().StringVar(&milestoneSeq, "milestone", "", "Sequence number of the contested milestone")
	cmd.Flags().StringVar(&reason, "reason", "", "Dispute reason (QUALITY, DEADLINE, PAYMENT, SCOPE, OTHER)")
	cmd.Flags().StringVar(&description, "description", "", "What happened")
	cmd.Flags().StringVar(&amountStr, "amount", "", "Contested amount")
	cmd.Flags().StringVar(&suggestion, "suggest", "", "Suggested resolution")
	cmd.Flags().StringSliceVar(&attachments, "file", nil, "Evidence file to attach (repeatable)")
	return cmd
}

func newDisputeShowCmd(app *App) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "show <project-id>",
		Short: "Show a project's dispute with its full update thread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if watch {
				return runDisputeTUI(app, id)
			}
			state, err := app.Workflow().Refresh(ctx, id)
			if err != nil {
				return err
			}
			if state.Dispute == nil {
				fmt.Println(formatter.Dim("No dispute for this project."))
				return nil
			}
			fmt.Print(formatter.FormatDispute(state.Dispute, state.Project))
			return nil
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "interactive thread view")
	return cmd
}

func newDisputeUpdateCmd(app *App) *cobra.Command {
	var (
		notes       string
		attachments []string
	)

	cmd := &cobra.Command{
		Use:   "update <project-id>",
		Short: "Append an update to the dispute thread",
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
			if state.Dispute == nil {
				return fmt.Errorf("no dispute exists for project %s", id)
			}

			sess, err := app.Sessions.Load(ctx)
			if err != nil {
				return err
			}
			files, err := readUploadFiles(attachments)
			if err != nil {
				return err
			}

			d, err := disputeDesk(app).AddUpdate(ctx, state.Dispute, sess.Name, notes, files)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatDispute(d, state.Project))
			return nil
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "Update text")
	cmd.Flags().StringSliceVar(&attachments, "file", nil, "Evidence file to attach (repeatable)")
	return cmd
}

func newDisputeListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all disputes (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRole(app, domain.RoleAdmin); err != nil {
				return err
			}
			disputes, err := app.Client.ListDisputes(context.Background())
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatDisputeList(disputes))
			return nil
		},
	}
}

func newDisputeResolveCmd(app *App) *cobra.Command {
	var (
		status string
		result string
		note   string
	)

	cmd := &cobra.Command{
		Use:   "resolve <dispute-id>",
		Short: "Resolve or close a dispute with a resolution note (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRole(app, domain.RoleAdmin); err != nil {
				return err
			}
			target := domain.DisputeStatus(strings.ToUpper(status))
			switch target {
			case domain.DisputeResolved, domain.DisputeClosed, domain.DisputeRejected, domain.DisputeUnderReview:
			default:
				return fmt.Errorf("invalid status %q", status)
			}
			if strings.TrimSpace(result) == "" {
				return fmt.Errorf("--result is required")
			}

			// The structured result and the free-text note travel as one
			// field, separated so readers can split them back apart.
			full := result
			if strings.TrimSpace(note) != "" {
				full += domain.AdminNoteSeparator + note
			}

			d, err := app.Client.ResolveDispute(context.Background(), args[0], api.ResolveDisputeRequest{
				Status: target,
				Note:   full,
			})
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatDispute(d, nil))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "RESOLVED", "Final status (RESOLVED, CLOSED, REJECTED, UNDER_REVIEW)")
	cmd.Flags().StringVar(&result, "result", "", "Structured resolution result, e.g. \"Partial refund of RM 200.00\"")
	cmd.Flags().StringVar(&note, "note", "", "Free-text admin comment")
	return cmd
}
