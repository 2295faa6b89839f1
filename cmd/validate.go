package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brockcataldi/deodar-docs/internal/site"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Checks the site configuration and lists every problem",
	RunE: func(cmd *cobra.Command, args []string) error {
		err := site.Validate(siteConfig)
		if err == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "site configuration for %q is valid\n", siteConfig.Identity.Title)
			return nil
		}

		problems := []error{err}
		var joined interface{ Unwrap() []error }
		if errors.As(err, &joined) {
			problems = joined.Unwrap()
		}
		for _, e := range problems {
			fmt.Fprintf(cmd.OutOrStdout(), "  - %v\n", e)
		}
		return fmt.Errorf("%w: %d problem(s)", site.ErrInvalidConfig, len(problems))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
