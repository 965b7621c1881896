package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/soxofaan/jsonfold/pkg/update"
	"github.com/soxofaan/jsonfold/pkg/version"
	"github.com/spf13/cobra"
)

func newUpdateCommand() *cobra.Command {
	var opts update.Options
	var checkOnly bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update jsonfold to the latest version",
		Long: `Update jsonfold from GitHub releases.

Examples:
  jsonfold update                    # Update to latest version
  jsonfold update --check            # Check for updates without updating
  jsonfold update --version v1.2.3   # Install a specific version
  jsonfold update --force            # Reinstall even if already up to date`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			updater, err := update.NewUpdater()
			if err != nil {
				return err
			}
			if checkOnly {
				return checkForUpdates(cmd.Context(), cmd.OutOrStdout(), updater)
			}
			return performUpdate(cmd.Context(), cmd.OutOrStdout(), updater, opts)
		},
	}

	cmd.Flags().BoolVar(&checkOnly, "check", false, "Check for updates without updating")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Force update even if current version is latest")
	cmd.Flags().StringVar(&opts.TargetVersion, "version", "", "Update to specific version")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 5*time.Minute, "Timeout for update operation")

	return cmd
}

func checkForUpdates(ctx context.Context, w io.Writer, updater *update.Updater) error {
	info, err := updater.CheckForUpdates(ctx)
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}

	fmt.Fprintf(w, "Current version: %s\nLatest version: %s\n", info.CurrentVersion, info.LatestVersion)
	if !info.UpdateNeeded {
		fmt.Fprintln(w, "You are already using the latest version.")
		return nil
	}
	if info.ReleaseNotes != "" {
		fmt.Fprintf(w, "\nRelease notes:\n%s\n", info.ReleaseNotes)
	}
	fmt.Fprintln(w, "\nRun 'jsonfold update' to install it.")
	return nil
}

func performUpdate(ctx context.Context, w io.Writer, updater *update.Updater, opts update.Options) error {
	fmt.Fprintf(w, "Current version: %s\n", version.GetVersion())

	info, err := updater.Update(ctx, opts)
	if err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	if !info.UpdateNeeded && !opts.Force && opts.TargetVersion == "" {
		fmt.Fprintf(w, "Already using the latest version (%s). Use --force to reinstall.\n", info.LatestVersion)
		return nil
	}

	fmt.Fprintf(w, "Updated to version %s.\n", info.LatestVersion)
	return nil
}
