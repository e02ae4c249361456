package cli

import (
	"github.com/spf13/cobra"

	clierrors "github.com/liftblock/fwrelease/internal/errors"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Print the translation tables in effect",
	Long: `Print the device type, indicator and model name tables as YAML: the built-in
tables merged with tables_file when one is configured.

The output is a valid tables file and can be used as a starting point.`,
	Example: `  fwrelease tables
  fwrelease tables > tables.yml`,
	GroupID: GroupInspect,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := cfg.Tables()
		if err != nil {
			return clierrors.ConfigParseError(cfg.TablesFile, err)
		}
		return t.Encode(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(tablesCmd)
}
