// Package cli implements the fwrelease command line.
package cli

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/liftblock/fwrelease/internal/config"
	clierrors "github.com/liftblock/fwrelease/internal/errors"
	"github.com/liftblock/fwrelease/internal/logging"
	"github.com/liftblock/fwrelease/internal/textio"
)

var (
	configPath    string
	changelogFlag string
	catalogFlag   string
	outputFlag    string
	noPauseFlag   bool
	verboseFlag   bool

	// cfg and logger are set by the root command's PersistentPreRunE.
	cfg    *config.Configuration
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "fwrelease",
	Short: "Build next-version firmware catalog rows from a changelog",
	Long: `fwrelease reads the firmware changelog (changes.txt) and the site catalog
export (export.csv), and writes one new catalog row per device model for every
version announced in the changelog (res.csv): bumped version, file path and
identifier, release date and HTML release notes.

Models that have a changelog block but no row in the catalog at the previous
version are reported before anything is written.

Run without a subcommand to generate.`,
	Example: `  fwrelease                                # same as 'fwrelease generate'
  fwrelease generate --catalog export.csv
  fwrelease check                          # only report models missing from the catalog
  fwrelease parse --format yaml            # show what was read from changes.txt
  fwrelease watch                          # regenerate whenever an input changes`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd)
	},
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupRelease, Title: "Release Commands:"},
		&cobra.Group{ID: GroupInspect, Title: "Inspection Commands:"},
		&cobra.Group{ID: GroupConfiguration, Title: "Configuration Commands:"},
	)

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "Config file (default: .fwrelease/config.yml)")
	pf.StringVar(&changelogFlag, "changelog", "", "Changelog file (default from config: changes.txt)")
	pf.StringVar(&catalogFlag, "catalog", "", "Catalog export file (default from config: export.csv)")
	pf.StringVarP(&outputFlag, "output", "o", "", "Output file (default from config: res.csv)")
	pf.BoolVar(&noPauseFlag, "no-pause", false, "Do not wait for a key before exiting")
	pf.BoolVarP(&verboseFlag, "verbose", "v", false, "Debug logging")
}

// Execute runs the root command and prints any error in the structured CLI format.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		reportError(rootCmd, err)
	}
	return err
}

// setup loads the configuration, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.LoadWithOptions(config.LoadOptions{
		ProjectConfigPath: configPath,
		WarningWriter:     cmd.ErrOrStderr(),
	})
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return clierrors.ConfigFileNotFound(configPath)
		}
		return clierrors.ConfigParseError(configDisplayPath(), err)
	}
	applyFlagOverrides(cmd, loaded)
	cfg = loaded

	l, err := logging.New(cmd.ErrOrStderr(), logging.Options{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Verbose: verboseFlag,
	})
	if err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Configuration, "building logger")
	}
	logger = l
	return nil
}

// applyFlagOverrides copies explicitly set flags over configuration values.
func applyFlagOverrides(cmd *cobra.Command, c *config.Configuration) {
	flags := cmd.Flags()
	if flags.Changed("changelog") {
		c.ChangelogFile = changelogFlag
	}
	if flags.Changed("catalog") {
		c.CatalogFile = catalogFlag
	}
	if flags.Changed("output") {
		c.OutputFile = outputFlag
	}
	if noPauseFlag {
		c.Pause = false
	}
}

func configDisplayPath() string {
	if configPath != "" {
		return configPath
	}
	return config.ProjectConfigPath()
}

// reportError prints err to stderr. ExitErrors carry no message.
func reportError(cmd *cobra.Command, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return
	}
	path := "changes.txt"
	if cfg != nil {
		path = cfg.ChangelogFile
	}
	clierrors.FprintError(cmd.ErrOrStderr(), clierrors.FromRunError(err, path))
}

// ExitCodeFor classifies an error returned by Execute for the process exit code.
func ExitCodeFor(err error) int {
	if code := ExitCode(err); code != ExitFailed {
		return code
	}
	if errors.Is(err, textio.ErrMissingInput) {
		return ExitMissingInput
	}
	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		switch cliErr.Category {
		case clierrors.Argument, clierrors.Configuration:
			return ExitInvalidArguments
		case clierrors.Input:
			return ExitMissingInput
		}
	}
	return ExitFailed
}
