package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Version is set with -ldflags at build time.
var Version = "0.0.0-dev"

type options struct {
	verbose bool
	noColor bool
}

// NewRootCommand builds the pushkit command tree writing to stdout and
// stderr.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:   "pushkit",
		Short: "Adds push notification and deep link support to native app projects",
		Long: `pushkit edits the generated ios/ and android/ projects of an app so that
the Iterable SDK can receive push notifications and open deep links: it adds
a notification service extension to the Xcode project, the push entitlements,
the Firebase Gradle setup and the Android manifest entries. Running it again
changes nothing.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor || !isColorEnabled() {
				disableColors()
			}
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(newApplyCommand(opts))
	rootCmd.AddCommand(newDumpCommand())
	rootCmd.AddCommand(newVersionCommand())
	return rootCmd
}

func Execute() {
	if err := NewRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", colorError.Sprint("Error:"), err)
		os.Exit(1)
	}
}
