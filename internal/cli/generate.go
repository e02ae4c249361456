package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	clierrors "github.com/liftblock/fwrelease/internal/errors"
	"github.com/liftblock/fwrelease/internal/lifecycle"
	"github.com/liftblock/fwrelease/internal/output"
	"github.com/liftblock/fwrelease/internal/release"
)

// missingModelsWarning heads the list of models the catalog does not know yet.
const missingModelsWarning = "ВАЖНО! Есть в списке изменений, но нет в выгрузке с сайта"

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Write next-version catalog rows (default command)",
	Long: `Read the changelog and the catalog export, and write one new row per model
for every version announced in the changelog.

For each common block ("<type> Общая часть") the rows of the previous version of
that type are copied with the version bumped in the name, identifier and file
path, the sort key raised, the release date set and the release notes filled
from the common block followed by the model's own block.

Standalone device blocks ("<model> V<version> <date>") produce rows for
the device record type (lb7 unless configured otherwise).`,
	Example: `  fwrelease generate
  fwrelease generate --changelog changes.txt --catalog export.csv -o res.csv
  fwrelease generate --no-pause`,
	GroupID: GroupRelease,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

// runGenerate performs one generate pass and waits for a key if configured.
func runGenerate(cmd *cobra.Command) error {
	var n int
	err := lifecycle.Run(runLogger(), "generate", func() error {
		var err error
		n, err = generate(cmd.Context(), cmd.ErrOrStderr())
		return err
	})
	if err != nil {
		return err
	}
	output.PrintSuccess(cmd.OutOrStdout(), writtenMessage(n))
	if cfg.Pause {
		waitForKey(cmd.InOrStdin(), cmd.OutOrStdout())
	}
	return nil
}

// generate loads both inputs, merges them and writes the output file.
// It returns the number of rows written.
func generate(ctx context.Context, errOut io.Writer) (int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	p, err := newPipeline(cfg)
	if err != nil {
		return 0, err
	}
	if err := p.load(ctx); err != nil {
		return 0, err
	}

	o, err := p.run()
	if err != nil {
		return 0, err
	}
	reportConsistency(errOut, o.report)
	logUnmatched(o.result.Unmatched)

	if err := p.write(o.result.Rows); err != nil {
		return 0, err
	}
	logger.Info("output written",
		zap.String("file", cfg.OutputFile),
		zap.Int("rows", len(o.result.Rows)))
	return len(o.result.Rows), nil
}

func writtenMessage(n int) string {
	return fmt.Sprintf("Ок, записано строк: %d.", n)
}

// runLogger logs how long each run took.
func runLogger() lifecycle.Handler {
	return lifecycle.HandlerFunc(func(name string, err error, d time.Duration) {
		logger.Debug("run finished",
			zap.String("run", name),
			zap.Bool("ok", err == nil),
			zap.Duration("took", d))
	})
}

// reportConsistency prints the models missing from the catalog, if any.
func reportConsistency(w io.Writer, rep release.Report) {
	if rep.Skipped {
		logger.Debug("consistency check skipped", zap.String("reference_type", rep.ReferenceType))
		return
	}
	if len(rep.Missing) == 0 {
		return
	}
	clierrors.FprintWarning(w, missingModelsWarning, rep.Missing...)
}

func logUnmatched(unmatched []release.Unmatched) {
	for _, u := range unmatched {
		logger.Warn("no catalog rows at previous version",
			zap.String("key", u.Key),
			zap.Int("version", u.Version))
	}
}
