package cmd

import (
	"fmt"
	"os"

	"github.com/soapywu/pushkit/pbxproj"
	"github.com/spf13/cobra"
)

func newDumpCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "dump PBXPROJ",
		Short: "Print a project.pbxproj as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project := pbxproj.NewPbxProject(args[0])
			if err := project.Parse(); err != nil {
				return err
			}
			if output == "" {
				return project.Dump(cmd.OutOrStdout())
			}
			file, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", output, err)
			}
			defer file.Close()
			return project.Dump(file)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the JSON to a file instead of stdout")
	return cmd
}
