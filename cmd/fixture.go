package cmd

import (
	"github.com/spf13/cobra"

	"github.com/wisdomhq/shellprobe/fixture"
)

var fixtureCMD = &cobra.Command{
	Use:   "fixture",
	Short: "Serve the built-in stub shell implementing the DOM contract",
	Args:  cobra.MatchAll(cobra.NoArgs),
	RunE:  serveFixture,
}

func serveFixture(cmd *cobra.Command, args []string) error {
	return fixture.NewServer("127.0.0.1", config.App.Port).Listen()
}

func init() {
	RootCmd.AddCommand(fixtureCMD)
}
