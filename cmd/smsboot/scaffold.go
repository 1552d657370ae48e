// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"sms-launcher/internal/issue"
	"sms-launcher/internal/launcher"
	"sms-launcher/internal/scaffold"
)

func newScaffoldCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "scaffold [dir]",
		Short: "Create an empty Sales Management System project tree",
		Long: `Create the sales_management_system/ skeleton under dir (default ".").

Existing directories and files are kept, so running it again is safe.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			silence(cmd)

			base := "."
			if len(args) == 1 {
				base = args[0]
			}

			res, err := scaffold.Create(base)
			if err != nil {
				err = issue.NewErrorContext().
					WithOperation("create project structure").
					WithResource(base).
					WithSuggestion("Check that the target directory is writable").
					Wrap(err).
					BuildError()
				fmt.Fprintf(app.stderr, "%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, false))
				return &ExitError{Code: launcher.ExitFailure, Err: err}
			}

			fmt.Fprintf(app.stdout, "%s Project structure created successfully at %s\n",
				SuccessStyle.Render("✓"), CmdStyle.Render(res.Root))
			return nil
		},
	}
}
