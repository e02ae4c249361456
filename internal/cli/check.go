package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/liftblock/fwrelease/internal/changelog"
	"github.com/liftblock/fwrelease/internal/release"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report changelog models missing from the catalog",
	Long: `Compare the model blocks of the changelog with the models the catalog lists
for the previous version of the reference type (lb7 unless configured otherwise).

Exits with code 1 when some models are missing. Nothing is written.`,
	Example: `  fwrelease check
  fwrelease check --catalog export.csv && fwrelease generate --no-pause`,
	GroupID: GroupInspect,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPipeline(cfg)
		if err != nil {
			return err
		}
		if err := p.load(cmd.Context()); err != nil {
			return err
		}

		rep := release.Check(p.doc, p.catalog.Rows, p.matcher, cfg.ReferenceType)
		out := cmd.OutOrStdout()
		if rep.Skipped {
			fmt.Fprintf(out, "Нет общей части для %s, проверка пропущена.\n", rep.ReferenceType)
			return nil
		}
		reportConsistency(cmd.ErrOrStderr(), rep)
		if len(rep.Missing) > 0 {
			return NewExitError(ExitFailed)
		}
		fmt.Fprintf(out, "Ок, все модели есть в выгрузке (%s %s).\n",
			rep.ReferenceType, changelog.FormatDotted(rep.PriorVersion, cfg.VersionWidth))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
