package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/nlsh-dev/nlsh/pkg/config"
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Configure the API provider",
	Long:  `Interactively select an LLM provider and store its model, endpoint, and API key.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		existing, err := config.Load()
		if err != nil && !errors.Is(err, config.ErrNotConfigured) {
			return err
		}
		_, err = config.NewSetup(os.Stdin, os.Stderr).Run(existing)
		return err
	},
}

func init() {
	RootCmd.AddCommand(apiCmd)
}
