package cmd

import (
	"fmt"

	"pjuskeby-rumors/internal/markdown"

	"github.com/spf13/cobra"
)

// inspectCmd parses a generated newsletter file and prints its metadata,
// mainly useful for checking the output of the digest builder.
var inspectCmd = &cobra.Command{
	Use:   "inspect <file.md>",
	Short: "Parse a generated newsletter and print its frontmatter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := markdown.ParseFile(args[0])
		if err != nil {
			return err
		}
		for k, v := range doc.Frontmatter {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", k, v)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "body: %d bytes\n", len(doc.Body))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
