// Package config provides hierarchical configuration management for fwrelease using koanf.
// Configuration is loaded with priority: environment variables (FWRELEASE_*) > project config
// (.fwrelease/config.yml or --config) > user config (~/.config/fwrelease/config.yml) > defaults.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/liftblock/fwrelease/internal/catalog"
	"github.com/liftblock/fwrelease/internal/tables"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "FWRELEASE_"

// ErrConfigNotFound is returned when an explicitly requested config file does not exist.
var ErrConfigNotFound = errors.New("config file not found")

// Configuration represents the fwrelease CLI configuration
type Configuration struct {
	ChangelogFile string `koanf:"changelog_file" validate:"required"`
	CatalogFile   string `koanf:"catalog_file" validate:"required"`
	OutputFile    string `koanf:"output_file" validate:"required"`
	// TablesFile is an optional YAML file merged over the built-in translation tables.
	TablesFile string `koanf:"tables_file"`

	Encoding       string `koanf:"encoding" validate:"required"`
	OutputEncoding string `koanf:"output_encoding" validate:"required"`
	Delimiter      string `koanf:"delimiter" validate:"required"`
	// CRLF ends output lines with \r\n.
	CRLF bool `koanf:"crlf"`

	// VersionWidth is the digit count dotted versions are zero-padded to.
	VersionWidth int `koanf:"version_width" validate:"min=1,max=9"`
	// NamePattern formats the display name column; must contain exactly one %s.
	NamePattern    string `koanf:"name_pattern" validate:"required"`
	SortStep       int    `koanf:"sort_step" validate:"min=1"`
	DeviceSortStep int    `koanf:"device_sort_step" validate:"min=1"`
	ReferenceType  string `koanf:"reference_type" validate:"required"`
	DeviceType     string `koanf:"device_type" validate:"required"`

	Pause         bool          `koanf:"pause"`
	LogLevel      string        `koanf:"log_level" validate:"oneof=debug info warn error"`
	LogFormat     string        `koanf:"log_format" validate:"oneof=console json"`
	WatchDebounce time.Duration `koanf:"watch_debounce" validate:"min=0"`

	Columns catalog.Columns `koanf:"columns"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .fwrelease/config.yml).
	// An override that does not exist is an error; the default path is optional.
	ProjectConfigPath string
	// SkipUserConfig ignores ~/.config/fwrelease/config.yml (used by tests).
	SkipUserConfig bool
	// WarningWriter receives warnings about unknown keys (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses warnings
	SkipWarnings bool
}

// Load loads configuration from user, project, and environment sources.
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := getWarningWriter(opts.WarningWriter)

	loadDefaults(k)

	if !opts.SkipUserConfig {
		if err := loadUserConfig(k); err != nil {
			return nil, err
		}
	}

	if err := loadProjectConfig(k, opts.ProjectConfigPath); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	if !opts.SkipWarnings {
		warnUnknownKeys(k, warningWriter)
	}

	return finalizeConfig(k)
}

// getWarningWriter returns the warning writer or defaults to stderr
func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads ~/.config/fwrelease/config.yml when it exists.
func loadUserConfig(k *koanf.Koanf) error {
	userPath, err := UserConfigPath()
	if err != nil || !fileExists(userPath) {
		return nil
	}
	if err := loadFile(k, userPath, "user"); err != nil {
		return fmt.Errorf("loading user config: %w", err)
	}
	return nil
}

// loadProjectConfig loads the project config. A custom path must exist.
func loadProjectConfig(k *koanf.Koanf, customPath string) error {
	path := ProjectConfigPath()
	if customPath != "" {
		if !fileExists(customPath) {
			return fmt.Errorf("%w: %s", ErrConfigNotFound, customPath)
		}
		path = customPath
	}
	if !fileExists(path) {
		return nil
	}
	if err := loadFile(k, path, "project"); err != nil {
		return fmt.Errorf("loading project config: %w", err)
	}
	return nil
}

// loadFile validates and loads a config file; .json files use the JSON parser.
func loadFile(k *koanf.Koanf, path, configType string) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
		}
		return nil
	}

	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// envTransform converts environment variable names to config keys
// Example: FWRELEASE_SORT_STEP -> sort_step, FWRELEASE_COLUMNS_XML_ID -> columns.xml_id
func envTransform(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if rest, ok := strings.CutPrefix(key, "columns_"); ok {
		return "columns." + rest
	}
	return key
}

// warnUnknownKeys reports keys no Configuration field reads, usually typos.
func warnUnknownKeys(k *koanf.Koanf, w io.Writer) {
	known := knownKeys()
	for _, key := range k.Keys() {
		if !slices.Contains(known, key) {
			fmt.Fprintf(w, "Warning: unknown config key %q (ignored)\n", key)
		}
	}
}

// knownKeys returns the flattened default keys.
func knownKeys() []string {
	k := koanf.New(".")
	loadDefaults(k)
	return k.Keys()
}

// finalizeConfig unmarshals, validates, and applies final transformations
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.ChangelogFile = expandHomePath(cfg.ChangelogFile)
	cfg.CatalogFile = expandHomePath(cfg.CatalogFile)
	cfg.OutputFile = expandHomePath(cfg.OutputFile)
	cfg.TablesFile = expandHomePath(cfg.TablesFile)

	return &cfg, nil
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}

// Tables returns the translation tables: the built-in ones, overlaid with TablesFile if set.
func (c *Configuration) Tables() (*tables.Tables, error) {
	if c.TablesFile == "" {
		return tables.Default(), nil
	}
	t, err := tables.Load(c.TablesFile)
	if err != nil {
		return nil, fmt.Errorf("loading tables file %s: %w", c.TablesFile, err)
	}
	return t, nil
}

// Matcher builds the catalog matcher described by the configuration.
func (c *Configuration) Matcher(t *tables.Tables) *catalog.Matcher {
	m := catalog.NewMatcher(c.Columns, t)
	m.NamePattern = c.NamePattern
	m.Width = c.VersionWidth
	return m
}

// CSVOptions returns the catalog dialect.
func (c *Configuration) CSVOptions() (catalog.CSVOptions, error) {
	r, err := catalog.ParseDelimiter(c.Delimiter)
	if err != nil {
		return catalog.CSVOptions{}, err
	}
	return catalog.CSVOptions{Delimiter: r, CRLF: c.CRLF}, nil
}
