package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/liftblock/fwrelease/internal/build"
)

var versionCmd = &cobra.Command{
	Use:               "version",
	Short:             "Print version information",
	Args:              cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), build.String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
