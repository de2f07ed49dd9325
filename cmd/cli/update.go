package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nlsh-dev/nlsh/pkg/update"
	"github.com/nlsh-dev/nlsh/pkg/version"
)

var (
	checkOnly   bool
	forceUpdate bool
	timeout     time.Duration
)

func newUpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update nlsh to the latest version",
		Long: `Update nlsh to the latest version from GitHub releases.

Examples:
  nlsh update           # Update to latest version
  nlsh update --check   # Check for updates without updating
  nlsh update --force   # Force update even if same version`,
		Args: cobra.NoArgs,
		RunE: runUpdateCommand,
	}

	cmd.Flags().BoolVar(&checkOnly, "check", false, "Check for updates without updating")
	cmd.Flags().BoolVar(&forceUpdate, "force", false, "Force update even if current version is latest")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "Timeout for update operation")

	return cmd
}

func runUpdateCommand(cmd *cobra.Command, args []string) error {
	updater, err := update.NewUpdater()
	if err != nil {
		return fmt.Errorf("failed to create updater: %w", err)
	}

	if checkOnly {
		return checkForUpdates(cmd.Context(), updater)
	}
	return performUpdate(cmd.Context(), updater)
}

func checkForUpdates(ctx context.Context, updater *update.Updater) error {
	fmt.Fprintf(os.Stderr, "Current version: %s\n", version.GetVersion())
	fmt.Fprintln(os.Stderr, "Checking for updates...")

	updateInfo, err := updater.CheckForUpdates(ctx)
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Latest version: %s\n", updateInfo.LatestVersion)

	if updateInfo.UpdateNeeded {
		fmt.Fprintf(os.Stderr, "A new version is available: %s → %s\n", updateInfo.CurrentVersion, updateInfo.LatestVersion)
		if updateInfo.ReleaseNotes != "" {
			fmt.Fprintf(os.Stderr, "\nRelease Notes:\n%s\n", updateInfo.ReleaseNotes)
		}
		fmt.Fprintln(os.Stderr, "\nRun 'nlsh update' to update to the latest version.")
	} else {
		printCheck("you are already using the latest version.")
	}

	return nil
}

func performUpdate(ctx context.Context, updater *update.Updater) error {
	fmt.Fprintf(os.Stderr, "Current version: %s\n", version.GetVersion())

	if !forceUpdate {
		updateInfo, err := updater.CheckForUpdates(ctx)
		if err != nil {
			return fmt.Errorf("failed to check for updates: %w", err)
		}

		if !updateInfo.UpdateNeeded {
			printCheck(fmt.Sprintf("you are already using the latest version (%s).", updateInfo.LatestVersion))
			fmt.Fprintln(os.Stderr, "Use --force to reinstall the current version.")
			return nil
		}

		fmt.Fprintf(os.Stderr, "Updating from %s to %s...\n", updateInfo.CurrentVersion, updateInfo.LatestVersion)
		if updateInfo.ReleaseNotes != "" {
			fmt.Fprintf(os.Stderr, "\nRelease Notes:\n%s\n\n", updateInfo.ReleaseNotes)
		}
	} else {
		fmt.Fprintln(os.Stderr, "Force updating...")
	}

	opts := update.UpdateOptions{
		Force:   forceUpdate,
		Timeout: timeout,
	}

	updateInfo, err := updater.UpdateWithOptions(ctx, opts)
	if err != nil {
		return fmt.Errorf("update failed: %w", err)
	}

	printCheck(fmt.Sprintf("successfully updated to version %s!", updateInfo.LatestVersion))
	fmt.Fprintln(os.Stderr, "Restart your shell to use the new version.")
	return nil
}

func init() {
	RootCmd.AddCommand(newUpdateCommand())
}
