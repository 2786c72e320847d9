package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danialarif/gigdesk/internal/cli/formatter"
	"github.com/danialarif/gigdesk/internal/domain"
	"github.com/danialarif/gigdesk/internal/viewmodel"
)

func newReviewCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Write, reply to, and summarize reviews",
	}

	cmd.AddCommand(
		newReviewListCmd(app),
		newReviewCreateCmd(app),
		newReviewReplyCmd(app),
		newReviewStatsCmd(app),
	)

	return cmd
}

func newReviewListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List reviews for your role",
		RunE: func(cmd *cobra.Command, args []string) error {
			reviews, err := app.Client.ListReviews(context.Background(), app.Role())
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatReviewList(reviews))
			return nil
		},
	}
}

func newReviewCreateCmd(app *App) *cobra.Command {
	var (
		recipient  string
		content    string
		comm       int
		quality    int
		timeliness int
		prof       int
	)

	cmd := &cobra.Command{
		Use:   "create <project-id>",
		Short: "Review the other party on a completed project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			if content == "" && app.IsInteractive != nil && app.IsInteractive() {
				if err := reviewForm(app.Role(), &comm, &quality, &timeliness, &prof, &content).Run(); err != nil {
					return err
				}
			}

			if recipient == "" {
				// Default to the counterparty on the project.
				project, err := app.Client.GetProject(ctx, app.Role(), id)
				if err != nil {
					return err
				}
				sess, err := app.Sessions.Load(ctx)
				if err != nil {
					return err
				}
				switch {
				case project.Provider != nil && project.Provider.ID != sess.AccountID:
					recipient = project.Provider.ID
				case project.Customer != nil:
					recipient = project.Customer.ID
				}
			}

			form := &viewmodel.ReviewForm{
				ProjectID:   id,
				RecipientID: recipient,
				Content:     content,
				Ratings: domain.CategoryRatings{
					Communication:   comm,
					Quality:         quality,
					Timeliness:      timeliness,
					Professionalism: prof,
				},
			}
			review, err := viewmodel.NewReviewDesk(app.Client, app.Role()).Submit(ctx, form)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatReview(review))
			return nil
		},
	}

	cmd.Flags().StringVar(&recipient, "recipient", "", "Account to review (defaults to the counterparty)")
	cmd.Flags().StringVar(&content, "content", "", "Review text")
	cmd.Flags().IntVar(&comm, "communication", 0, "Communication rating 1-5")
	cmd.Flags().IntVar(&quality, "quality", 0, "Quality rating 1-5")
	cmd.Flags().IntVar(&timeliness, "timeliness", 0, "Timeliness rating 1-5")
	cmd.Flags().IntVar(&prof, "professionalism", 0, "Professionalism rating 1-5")
	return cmd
}

func newReviewReplyCmd(app *App) *cobra.Command {
	var content string

	cmd := &cobra.Command{
		Use:   "reply <review-id>",
		Short: "Reply to a review you received (one reply per review)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			reviews, err := app.Client.ListReviews(ctx, app.Role())
			if err != nil {
				return err
			}
			var target *domain.Review
			for i := range reviews {
				if reviews[i].ID == args[0] {
					target = &reviews[i]
					break
				}
			}
			if target == nil {
				return fmt.Errorf("review %s not found", args[0])
			}

			sess, err := app.Sessions.Load(ctx)
			if err != nil {
				return err
			}
			review, err := viewmodel.NewReviewDesk(app.Client, app.Role()).
				Reply(ctx, target, sess.AccountID, content)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatReview(review))
			return nil
		},
	}

	cmd.Flags().StringVar(&content, "content", "", "Reply text")
	return cmd
}

func newReviewStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate review statistics for your role",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := app.Client.GetReviewStats(context.Background(), app.Role())
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatReviewStats(stats))
			return nil
		},
	}
}
