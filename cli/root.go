package cli

import (
	"github.com/spf13/cobra"
)

// RootCmd builds the greetly command tree. The CLI is the external trigger
// seam: it loads configuration, resolves the target date, and invokes the
// pipeline exactly once per execution.
func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "greetly",
		Short:         "Greetly - birthday notifications from a roster spreadsheet",
		Long:          "Greetly reads a spreadsheet of people and birth dates, finds today's birthdays and delivers one consolidated message through an HTTP messaging gateway.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().String("log-level", "", "Override log level (debug|info|warn|error)")
	root.PersistentFlags().Bool("log-json", false, "Emit JSON logs")

	root.AddCommand(sendCmd())
	root.AddCommand(previewCmd())

	return root
}
