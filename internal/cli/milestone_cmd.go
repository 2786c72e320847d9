package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/danialarif/gigdesk/internal/cli/formatter"
	"github.com/danialarif/gigdesk/internal/domain"
	"github.com/danialarif/gigdesk/internal/upload"
	"github.com/danialarif/gigdesk/internal/viewmodel"
)

func newMilestoneCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "milestone",
		Aliases: []string{"ms"},
		Short:   "Manage a project's milestone plan and lifecycle",
	}

	cmd.AddCommand(
		newMilestoneListCmd(app),
		newMilestoneTimelineCmd(app),
		newMilestoneAddCmd(app),
		newMilestoneEditCmd(app),
		newMilestoneRemoveCmd(app),
		newMilestoneApproveCmd(app),
		newMilestoneStartCmd(app),
		newMilestoneSubmitCmd(app),
	)

	return cmd
}

// loadEditor fetches fresh state and builds a plan editor over it.
func loadEditor(ctx context.Context, app *App, projectID string) (*viewmodel.PlanEditor, *viewmodel.ProjectState, error) {
	state, err := app.Workflow().Refresh(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	editor := viewmodel.NewPlanEditor(state.Project.ID, state.Project.BidAmount, state.Plan.Milestones, state.Plan.Approval)
	return editor, state, nil
}

// milestoneBySeq resolves a 1-based sequence argument against the plan.
func milestoneBySeq(state *viewmodel.ProjectState, arg string) (domain.Milestone, error) {
	seq, err := strconv.Atoi(arg)
	if err != nil {
		for _, m := range state.Plan.Milestones {
			if m.ID == arg {
				return m, nil
			}
		}
		return domain.Milestone{}, fmt.Errorf("milestone %q not found", arg)
	}
	for _, m := range state.Plan.Milestones {
		if m.Sequence == seq {
			return m, nil
		}
	}
	return domain.Milestone{}, fmt.Errorf("no milestone with sequence %d", seq)
}

func printPlan(state *viewmodel.ProjectState) {
	fmt.Print(formatter.FormatMilestonePlan(state.Plan.Milestones, state.Plan.Approval, state.Project.BidAmount))
}

func newMilestoneListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <project-id>",
		Short: "Show the milestone plan with amounts and approval state",
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
			printPlan(state)
			if state.Dispute != nil && !state.Dispute.Status.Final() {
				fmt.Println(formatter.StyleRed.Render("An open dispute is freezing all milestone actions."))
			}
			return nil
		},
	}
}

func newMilestoneTimelineCmd(app *App) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "timeline <project-id>",
		Short: "Show the milestone lifecycle timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if watch {
				if app.IsInteractive == nil || !app.IsInteractive() {
					return fmt.Errorf("--watch needs an interactive terminal")
				}
				return runTimelineTUI(app, id)
			}
			state, err := app.Workflow().Refresh(ctx, id)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatTimeline(state.Plan.Milestones))
			return nil
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "Open the interactive timeline view")
	return cmd
}

func newMilestoneAddCmd(app *App) *cobra.Command {
	var title, desc, amountStr, due string

	cmd := &cobra.Command{
		Use:   "add <project-id>",
		Short: "Add a milestone to the draft plan and save it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			editor, _, err := loadEditor(ctx, app, id)
			if err != nil {
				return err
			}

			if title == "" && app.IsInteractive != nil && app.IsInteractive() {
				if err := milestoneForm(&title, &desc, &amountStr, &due).Run(); err != nil {
					return err
				}
			}
			m, err := milestoneFromFlags(title, desc, amountStr, due)
			if err != nil {
				return err
			}
			if err := editor.Add(m); err != nil {
				return err
			}

			state, err := app.Workflow().SavePlan(ctx, editor, id)
			if err != nil {
				return err
			}
			printPlan(state)
			return nil
		},
	}

	addMilestoneFlags(cmd, &title, &desc, &amountStr, &due)
	return cmd
}

func newMilestoneEditCmd(app *App) *cobra.Command {
	var title, desc, amountStr, due string

	cmd := &cobra.Command{
		Use:   "edit <project-id> <seq>",
		Short: "Edit a draft milestone by sequence number and save the plan",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			editor, _, err := loadEditor(ctx, app, id)
			if err != nil {
				return err
			}

			seq, err := strconv.Atoi(args[1])
			if err != nil || seq < 1 || seq > len(editor.Milestones()) {
				return fmt.Errorf("invalid milestone sequence %q", args[1])
			}
			current := editor.Milestones()[seq-1]

			// Unset flags keep the current values.
			if title == "" {
				title = current.Title
			}
			if desc == "" {
				desc = current.Description
			}
			if amountStr == "" {
				amountStr = current.Amount.String()
			}
			if due == "" {
				due = current.DueDate.String()
			}
			m, err := milestoneFromFlags(title, desc, amountStr, due)
			if err != nil {
				return err
			}
			if err := editor.Update(seq-1, m); err != nil {
				return err
			}

			state, err := app.Workflow().SavePlan(ctx, editor, id)
			if err != nil {
				return err
			}
			printPlan(state)
			return nil
		},
	}

	addMilestoneFlags(cmd, &title, &desc, &amountStr, &due)
	return cmd
}

func newMilestoneRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <project-id> <seq>",
		Short: "Remove a draft milestone and save the renumbered plan",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			editor, _, err := loadEditor(ctx, app, id)
			if err != nil {
				return err
			}
			seq, err := strconv.Atoi(args[1])
			if err != nil || seq < 1 || seq > len(editor.Milestones()) {
				return fmt.Errorf("invalid milestone sequence %q", args[1])
			}
			if err := editor.Remove(seq - 1); err != nil {
				return err
			}
			state, err := app.Workflow().SavePlan(ctx, editor, id)
			if err != nil {
				return err
			}
			printPlan(state)
			return nil
		},
	}
}

func newMilestoneApproveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "approve <project-id>",
		Short: "Approve the saved plan as your party; locks when both approve",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			editor, _, err := loadEditor(ctx, app, id)
			if err != nil {
				return err
			}
			state, err := app.Workflow().ApprovePlan(ctx, editor, id)
			if err != nil {
				return err
			}
			printPlan(state)
			return nil
		},
	}
}

func newMilestoneStartCmd(app *App) *cobra.Command {
	var planText string

	cmd := &cobra.Command{
		Use:   "start <project-id> <seq>",
		Short: "Start work on a locked milestone (provider)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRole(app, domain.RoleProvider); err != nil {
				return err
			}
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			state, err := app.Workflow().Refresh(ctx, id)
			if err != nil {
				return err
			}
			m, err := milestoneBySeq(state, args[1])
			if err != nil {
				return err
			}
			state, err = app.Workflow().StartMilestone(ctx, state, m.ID, planText)
			if err != nil {
				return err
			}
			fmt.Printf("Started %s\n", formatter.Bold(m.Title))
			printPlan(state)
			return nil
		},
	}

	cmd.Flags().StringVar(&planText, "plan", "", "What you intend to deliver for this milestone")
	return cmd
}

func newMilestoneSubmitCmd(app *App) *cobra.Command {
	var deliverables, note, file string

	cmd := &cobra.Command{
		Use:   "submit <project-id> <seq>",
		Short: "Submit completed work for review (provider)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRole(app, domain.RoleProvider); err != nil {
				return err
			}
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			state, err := app.Workflow().Refresh(ctx, id)
			if err != nil {
				return err
			}
			m, err := milestoneBySeq(state, args[1])
			if err != nil {
				return err
			}

			if deliverables == "" && app.IsInteractive != nil && app.IsInteractive() {
				if err := submissionForm(&deliverables, &note).Run(); err != nil {
					return err
				}
			}

			sub := viewmodel.Submission{Deliverables: deliverables, Note: note}
			if file != "" {
				f, err := readUploadFile(file)
				if err != nil {
					return err
				}
				sub.Attachment = &f
			}

			state, err = app.Workflow().SubmitMilestone(ctx, state, m.ID, sub)
			if err != nil {
				return err
			}
			fmt.Printf("Submitted %s for review\n", formatter.Bold(m.Title))
			printPlan(state)
			return nil
		},
	}

	cmd.Flags().StringVar(&deliverables, "deliverables", "", "Summary of what was delivered")
	cmd.Flags().StringVar(&note, "note", "", "Note for the reviewer")
	cmd.Flags().StringVar(&file, "file", "", "Path to an attachment to upload with the submission")
	return cmd
}

func addMilestoneFlags(cmd *cobra.Command, title, desc, amountStr, due *string) {
	cmd.Flags().StringVar(title, "title", "", "Milestone title")
	cmd.Flags().StringVar(desc, "desc", "", "Milestone description")
	cmd.Flags().StringVar(amountStr, "amount", "", "Amount, e.g. 400 or RM 400.00")
	cmd.Flags().StringVar(due, "due", "", "Due date (YYYY-MM-DD)")
}

func milestoneFromFlags(title, desc, amountStr, due string) (domain.Milestone, error) {
	amount, err := domain.ParseAmount(amountStr)
	if err != nil {
		return domain.Milestone{}, fmt.Errorf("invalid amount %q: %w", amountStr, err)
	}
	date, err := domain.ParseDate(due)
	if err != nil {
		return domain.Milestone{}, fmt.Errorf("invalid due date %q: %w", due, err)
	}
	return domain.Milestone{
		Title:       title,
		Description: desc,
		Amount:      amount,
		DueDate:     date,
	}, nil
}

// readUploadFile loads a local file and guesses an upload name and MIME
// type from its extension.
func readUploadFile(path string) (upload.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return upload.File{}, err
	}
	return upload.File{
		Name:     filepath.Base(path),
		MimeType: mimeTypeFor(path),
		Data:     data,
	}, nil
}
