package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	clierrors "github.com/liftblock/fwrelease/internal/errors"
	"github.com/liftblock/fwrelease/internal/lifecycle"
	"github.com/liftblock/fwrelease/internal/output"
	"github.com/liftblock/fwrelease/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate whenever the changelog or catalog changes",
	Long: `Generate once, then keep watching the changelog and the catalog export and
generate again after every change. Failed runs are reported and watching goes on.

Stop with Ctrl+C.`,
	Example: `  fwrelease watch
  FWRELEASE_WATCH_DEBOUNCE=1s fwrelease watch`,
	GroupID: GroupRelease,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		w, err := watch.New([]string{cfg.ChangelogFile, cfg.CatalogFile}, cfg.WatchDebounce)
		if err != nil {
			return clierrors.WrapWithMessage(err, clierrors.Runtime, "cannot watch input files")
		}
		defer w.Close()

		errOut := cmd.ErrOrStderr()
		out := cmd.OutOrStdout()
		w.OnError = func(err error) {
			clierrors.FprintError(errOut, clierrors.FromRunError(err, cfg.ChangelogFile))
		}

		job := func(ctx context.Context, changed []string) error {
			output.PrintRunSeparator(out, time.Now().Format("15:04:05"))
			if len(changed) > 0 {
				logger.Info("inputs changed", zap.Strings("files", changed))
			}
			var n int
			err := lifecycle.Run(runLogger(), "watch", func() error {
				var err error
				n, err = generate(ctx, errOut)
				return err
			})
			if err != nil {
				return err
			}
			output.PrintSuccess(out, writtenMessage(n))
			return nil
		}

		if err := job(ctx, nil); err != nil {
			w.OnError(err)
		}
		logger.Info("watching", zap.Strings("files", w.Files()), zap.Duration("debounce", cfg.WatchDebounce))
		return w.Run(ctx, job)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
