package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the brisa command tree over app.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "brisa",
		Short:         "Command line client for the Brisa school administration API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringP("output", "o", "table", "Output format: table, json")

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newRefreshCmd(app),
		newPermissionsCmd(app),
		newStatusCmd(app),
		newStudentsCmd(app),
		newProfessorsCmd(app),
		newStaffCmd(app),
		newSubjectsCmd(app),
		newCoursesCmd(app),
		newCodesCmd(app),
		newNotesCmd(app),
		newReportsCmd(app),
	)
	return root
}

// Execute runs args against a fresh command tree. A 401 anywhere comes back
// as ErrSessionExpired.
func Execute(ctx context.Context, app *App, args []string) error {
	root := NewRootCmd(app)
	root.SetArgs(args)
	if app.Out != nil {
		root.SetOut(app.Out)
	}
	if app.Err != nil {
		root.SetErr(app.Err)
	}
	return app.translate(root.ExecuteContext(ctx))
}

func addExportFlag(cmd *cobra.Command) {
	cmd.Flags().String("export", "", "Also save the report: local or r2")
}
