// Package cli wires the gigdesk commands: a terminal back-office for
// the marketplace covering milestones, disputes, reviews, and file
// uploads, talking to the backend over the typed API client.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danialarif/gigdesk/internal/api"
	"github.com/danialarif/gigdesk/internal/config"
	"github.com/danialarif/gigdesk/internal/domain"
	"github.com/danialarif/gigdesk/internal/session"
	"github.com/danialarif/gigdesk/internal/upload"
	"github.com/danialarif/gigdesk/internal/viewmodel"
)

// App holds everything the commands need. A nil Sessions or Client
// would be a wiring bug in main, not a runtime condition.
type App struct {
	Config   *config.Config
	Sessions *session.Store
	Client   *api.Client
	Uploader *upload.Uploader

	// IsInteractive gates huh forms and the TUI timeline.
	IsInteractive func() bool

	// roleOverride is the value of the persistent --role flag.
	roleOverride string
}

// Role resolves the acting role: the --role flag wins, then the role
// claim from the saved session, then provider.
func (a *App) Role() domain.Role {
	if a.roleOverride != "" {
		return domain.Role(a.roleOverride)
	}
	if sess, err := a.Sessions.Load(context.Background()); err == nil && sess.Role != "" {
		return sess.Role
	}
	return domain.RoleProvider
}

// Workflow builds the milestone workflow for the acting role.
func (a *App) Workflow() *viewmodel.Workflow {
	return viewmodel.NewWorkflow(a.Client, a.Uploader, a.Role())
}

// NewRootCmd creates the top-level "gigdesk" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "gigdesk",
		Short:         "Terminal back-office for the freelance marketplace",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&app.roleOverride, "role", "",
		"Act as a specific role (admin, provider, company); defaults to the session's role")

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newProjectCmd(app),
		newMilestoneCmd(app),
		newDisputeCmd(app),
		newReviewCmd(app),
		newUploadCmd(app),
		newDownloadCmd(app),
	)

	return root
}

// requireRole rejects commands that only one role may run.
func requireRole(app *App, allowed ...domain.Role) error {
	role := app.Role()
	for _, r := range allowed {
		if role == r {
			return nil
		}
	}
	return fmt.Errorf("this command requires one of roles %v (acting as %s)", allowed, role)
}
