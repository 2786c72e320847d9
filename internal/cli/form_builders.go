package cli

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/danialarif/gigdesk/internal/domain"
)

func validateRequired(label string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(label + " is required")
		}
		return nil
	}
}

func validateDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("due date is required")
	}
	_, err := domain.ParseDate(s)
	return err
}

func validateAmount(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("amount is required")
	}
	_, err := domain.ParseAmount(s)
	return err
}

// milestoneForm collects the editable milestone fields.
func milestoneForm(title, desc, amount, due *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(title).
				Validate(validateRequired("title")),
			huh.NewText().
				Title("Description").
				Value(desc).
				Validate(validateRequired("description")),
			huh.NewInput().
				Title("Amount").
				Placeholder("400.00").
				Value(amount).
				Validate(validateAmount),
			huh.NewInput().
				Title("Due Date (YYYY-MM-DD)").
				Placeholder("2026-10-31").
				Value(due).
				Validate(validateDate),
		),
	).WithTheme(gigdeskHuhTheme()).WithShowHelp(false)
}

// submissionForm collects the provider's completed-work package.
func submissionForm(deliverables, note *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Deliverables").
				Description("What you completed for this milestone").
				Value(deliverables).
				Validate(validateRequired("deliverables")),
			huh.NewText().
				Title("Note for the reviewer").
				Value(note),
		),
	).WithTheme(gigdeskHuhTheme()).WithShowHelp(false)
}

// disputeForm collects the fields needed to open a dispute.
func disputeForm(reason, description, amount, suggestion *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Reason").
				Options(
					huh.NewOption("Quality of work", "QUALITY"),
					huh.NewOption("Missed deadline", "DEADLINE"),
					huh.NewOption("Payment", "PAYMENT"),
					huh.NewOption("Scope disagreement", "SCOPE"),
					huh.NewOption("Other", "OTHER"),
				).
				Value(reason),
			huh.NewText().
				Title("Description").
				Description("What happened, with dates and specifics").
				Value(description).
				Validate(validateRequired("description")),
			huh.NewInput().
				Title("Contested amount (optional)").
				Placeholder("400.00").
				Value(amount),
			huh.NewInput().
				Title("Suggested resolution (optional)").
				Value(suggestion),
		),
	).WithTheme(gigdeskHuhTheme()).WithShowHelp(false)
}

// reviewForm collects the four category ratings and the review body.
// Axis titles depend on who is reviewing whom.
func reviewForm(reviewer domain.Role, comm, quality, timeliness, prof *int, content *string) *huh.Form {
	ratingOptions := []huh.Option[int]{
		huh.NewOption("★★★★★", 5),
		huh.NewOption("★★★★", 4),
		huh.NewOption("★★★", 3),
		huh.NewOption("★★", 2),
		huh.NewOption("★", 1),
	}
	labels := domain.CategoryLabels(reviewer)
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().Title(labels[0]).Options(ratingOptions...).Value(comm),
			huh.NewSelect[int]().Title(labels[1]).Options(ratingOptions...).Value(quality),
			huh.NewSelect[int]().Title(labels[2]).Options(ratingOptions...).Value(timeliness),
			huh.NewSelect[int]().Title(labels[3]).Options(ratingOptions...).Value(prof),
			huh.NewText().
				Title("Review").
				Value(content).
				Validate(validateRequired("review text")),
		),
	).WithTheme(gigdeskHuhTheme()).WithShowHelp(false)
}
