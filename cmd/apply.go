package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/soapywu/pushkit/config"
	"github.com/soapywu/pushkit/logger"
	"github.com/soapywu/pushkit/pipeline"
	"github.com/soapywu/pushkit/plugin"
	"github.com/soapywu/pushkit/workspace"
	"github.com/spf13/cobra"
)

type applyOptions struct {
	*options
	projectRoot string
	configFile  string
	platform    string
	dryRun      bool
}

func newApplyCommand(root *options) *cobra.Command {
	opts := &applyOptions{options: root}
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply the push notification setup to the native projects",
		Long: `Loads the app config and the ios/ and android/ projects under the project
root, runs every mutation step in order and writes the changed files back.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.projectRoot, "project-root", ".", "App project root containing ios/ and android/")
	cmd.Flags().StringVar(&opts.configFile, "config", "", "App config file (default: first of pushkit.yaml, app.yaml, app.json)")
	cmd.Flags().StringVar(&opts.platform, "platform", string(pipeline.PlatformAll), "Platform to apply: ios, android or all")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Run every step without writing any file")
	return cmd
}

func parsePlatform(value string) (pipeline.Platform, error) {
	switch platform := pipeline.Platform(value); platform {
	case pipeline.PlatformIOS, pipeline.PlatformAndroid, pipeline.PlatformAll:
		return platform, nil
	default:
		return "", fmt.Errorf("invalid platform %q, expected ios, android or all", value)
	}
}

func runApply(stdout, stderr io.Writer, opts *applyOptions) error {
	platform, err := parsePlatform(opts.platform)
	if err != nil {
		return err
	}
	root, err := filepath.Abs(opts.projectRoot)
	if err != nil {
		return fmt.Errorf("failed to resolve project root: %w", err)
	}

	configFile := opts.configFile
	if configFile == "" {
		if configFile, err = config.Find(root); err != nil {
			return err
		}
	}
	app, err := config.Load(configFile)
	if err != nil {
		return err
	}

	level := logger.InfoLevel
	if opts.verbose {
		level = logger.DebugLevel
	}
	log := logger.NewLogger(stderr, level).ForContext("Project", filepath.Base(root))
	log.Debug("Using config {ConfigFile}", configFile)

	ws, err := workspace.Load(root, app, workspace.WithLogger(log), workspace.WithDryRun(opts.dryRun))
	if err != nil {
		return err
	}

	steps := pipeline.Filter(plugin.Steps(app.Plugin.WithDefaults()), platform)
	err = ws.Apply(steps)
	printWarnings(stderr, ws.Config.Warnings)
	if err != nil {
		return err
	}

	if opts.dryRun {
		fmt.Fprintln(stdout, colorHeader.Sprint("Dry run, no files written"))
		return nil
	}
	if err := ws.Save(); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%s %d steps applied to %s\n", colorSuccess.Sprint("Done:"), len(steps), displayName(ws.Config, root))
	return nil
}

func displayName(config *pipeline.Config, root string) string {
	if config.Name != "" {
		return config.Name
	}
	return root
}

func printWarnings(w io.Writer, warnings *pipeline.Warnings) {
	if warnings == nil {
		return
	}
	for _, warning := range warnings.All() {
		fmt.Fprintf(w, "%s [%s] %s\n", colorWarning.Sprint("Warning:"), warning.Platform, warning)
	}
}
