package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/liftblock/fwrelease/internal/config"
	clierrors "github.com/liftblock/fwrelease/internal/errors"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Manage fwrelease configuration",
	GroupID: GroupConfiguration,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented config file",
	Args:  cobra.NoArgs,
	Long: `Write a fully commented configuration file with every option at its default.

The file goes to .fwrelease/config.yml, or to the path given with --config.`,
	Example: `  fwrelease config init
  fwrelease config init --config fwrelease.yml --force`,
	// The config file may not exist or be invalid yet, so the root setup is skipped.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configDisplayPath()
		if _, err := os.Stat(path); err == nil && !configForce {
			return clierrors.NewArgumentError(
				fmt.Sprintf("%s already exists", path),
				"Use --force to overwrite it",
			)
		}

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return clierrors.FileNotWritable(path, err)
		}
		if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
			return clierrors.FileNotWritable(path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long:  `Print the configuration after merging defaults, config files, environment and flags.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "changelog_file:   %s\n", cfg.ChangelogFile)
		fmt.Fprintf(out, "catalog_file:     %s\n", cfg.CatalogFile)
		fmt.Fprintf(out, "output_file:      %s\n", cfg.OutputFile)
		fmt.Fprintf(out, "tables_file:      %s\n", cfg.TablesFile)
		fmt.Fprintf(out, "encoding:         %s\n", cfg.Encoding)
		fmt.Fprintf(out, "output_encoding:  %s\n", cfg.OutputEncoding)
		fmt.Fprintf(out, "delimiter:        %q\n", cfg.Delimiter)
		fmt.Fprintf(out, "crlf:             %t\n", cfg.CRLF)
		fmt.Fprintf(out, "version_width:    %d\n", cfg.VersionWidth)
		fmt.Fprintf(out, "name_pattern:     %s\n", cfg.NamePattern)
		fmt.Fprintf(out, "sort_step:        %d\n", cfg.SortStep)
		fmt.Fprintf(out, "device_sort_step: %d\n", cfg.DeviceSortStep)
		fmt.Fprintf(out, "reference_type:   %s\n", cfg.ReferenceType)
		fmt.Fprintf(out, "device_type:      %s\n", cfg.DeviceType)
		fmt.Fprintf(out, "pause:            %t\n", cfg.Pause)
		fmt.Fprintf(out, "log_level:        %s\n", cfg.LogLevel)
		fmt.Fprintf(out, "log_format:       %s\n", cfg.LogFormat)
		fmt.Fprintf(out, "watch_debounce:   %s\n", cfg.WatchDebounce)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd, configShowCmd)
	rootCmd.AddCommand(configCmd)
}
