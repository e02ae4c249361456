package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/liftblock/fwrelease/internal/changelog"
	clierrors "github.com/liftblock/fwrelease/internal/errors"
	"github.com/liftblock/fwrelease/internal/textio"
)

var parseFormat string

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Show what was read from the changelog",
	Long: `Parse the changelog and print the common, model and device records it holds,
without touching the catalog. Useful to check a changelog before a release.`,
	Example: `  fwrelease parse
  fwrelease parse --format yaml > changelog.yml`,
	GroupID: GroupInspect,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if parseFormat != "text" && parseFormat != "yaml" {
			return clierrors.NewArgumentErrorWithUsage(
				fmt.Sprintf("unknown format %q", parseFormat),
				"fwrelease parse --format text|yaml",
			)
		}

		t, err := cfg.Tables()
		if err != nil {
			return clierrors.ConfigParseError(cfg.TablesFile, err)
		}
		rc, err := textio.Open(cfg.ChangelogFile, cfg.Encoding)
		if err != nil {
			return clierrors.MissingChangelogFile(cfg.ChangelogFile, err)
		}
		defer rc.Close()

		doc, err := changelog.ParseReader(rc, t)
		if err != nil {
			return err
		}

		if parseFormat == "yaml" {
			return changelog.RenderYAML(doc, cmd.OutOrStdout())
		}
		return changelog.RenderText(doc, cmd.OutOrStdout(), cfg.VersionWidth)
	},
}

func init() {
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "text", "Output format: text or yaml")
	rootCmd.AddCommand(parseCmd)
}
