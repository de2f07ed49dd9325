package main

import (
	"os"

	"github.com/nlsh-dev/nlsh/cmd/cli"
	"github.com/nlsh-dev/nlsh/pkg/version"
)

func main() {
	// Set custom version template that shows more detailed version info
	cli.RootCmd.SetVersionTemplate(version.GetInfo().String() + "\n")
	if err := cli.RootCmd.Execute(); err != nil {
		// The root command silences cobra's printing; report here.
		cli.PrintError(err.Error())
		os.Exit(1)
	}
}
