package cli

import (
	"time"

	"github.com/spf13/cobra"
)

// App holds what planctl commands share.
type App struct {
	// Now anchors plan generation when --today is not given.
	Now func() time.Time
}

// NewRootCmd creates the top-level "planctl" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	if app.Now == nil {
		app.Now = time.Now
	}

	root := &cobra.Command{
		Use:           "planctl",
		Short:         "Generate training plans and preview schedule changes offline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newGenerateCmd(app),
		newPreviewMoveCmd(),
		newPreviewSkipCmd(),
		newDropDatesCmd(),
	)

	return root
}
