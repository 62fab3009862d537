package cli

import (
	"github.com/cosebhq/ganttd/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands,
// plus the identity acting on their behalf.
type App struct {
	Tasks  service.TaskService
	Status service.StatusService
	Links  service.LinkService

	// Requester identifies the caller for authorization and audit fields.
	// Defaults from the environment; overridable per invocation.
	Requester string
}

// NewRootCmd creates the top-level "ganttd" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "ganttd",
		Short: "Hierarchical task and dependency manager",
	}

	root.PersistentFlags().StringVar(&app.Requester, "as", app.Requester, "Acting identity (email), defaults to GANTTD_USER")

	root.AddCommand(
		newTaskCmd(app),
		newLinkCmd(app),
	)

	return root
}
