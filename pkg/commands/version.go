package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/timeline_viewer/pkg/updater"
)

func addVersion(topLevel *cobra.Command) {
	var check bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version and optionally look for a newer release",
		Example: `
tlv version
tlv version --check
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "tlv %s\n", updater.Version)
			if !check {
				return nil
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			rel, err := updater.NewChecker().CheckForUpdates(ctx)
			if err != nil {
				return fmt.Errorf("checking for updates: %w", err)
			}
			if rel == nil {
				fmt.Fprintln(out, "up to date")
				return nil
			}
			fmt.Fprintf(out, "%s is available: %s\n", rel.TagName, rel.HTMLURL)
			return nil
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "Query GitHub for the latest release.")

	topLevel.AddCommand(cmd)
}
