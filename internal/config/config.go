// internal/config/config.go
//
// This package handles configuration and the .staffdesk directory structure.
// Every directory staffdesk runs in gets a .staffdesk/ folder holding the
// config file, the logs and the exports of past sessions.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kingrea/staffdesk/internal/export"
)

const (
	// DataDir is the name of the directory we create in each working directory
	DataDir = ".staffdesk"

	// Environment overrides applied after the config file is read.
	EnvExportDir = "STAFFDESK_EXPORT_DIR"
	EnvLogLevel  = "STAFFDESK_LOG_LEVEL"

	defaultExportDir     = "exports"
	defaultExportName    = "staff_data"
	defaultHistogramBins = 8
	defaultBarWidth      = 36
	defaultTableHeight   = 12
	defaultTheme         = "dark"
	defaultLogLevel      = "info"
)

const defaultProjectConfigYAML = `# staffdesk configuration
version: 1

# Where exports land. Relative paths resolve against the .staffdesk directory.
export:
  dir: exports
  file_name: staff_data
  # csv is always available; add xlsx for a spreadsheet copy.
  formats:
    - csv

charts:
  histogram_bins: 8
  bar_width: 36

ui:
  # dark or light
  theme: dark
  table_height: 12

logging:
  # debug, info, warn or error
  level: info
`

// ExportConfig controls where and how records are exported.
type ExportConfig struct {
	Dir      string   `yaml:"dir"`
	FileName string   `yaml:"file_name"`
	Formats  []string `yaml:"formats,omitempty"`
}

// ChartsConfig shapes the charts page.
type ChartsConfig struct {
	HistogramBins int `yaml:"histogram_bins"`
	BarWidth      int `yaml:"bar_width"`
}

// UIConfig holds presentation preferences.
type UIConfig struct {
	Theme       string `yaml:"theme"`
	TableHeight int    `yaml:"table_height"`
}

// LoggingConfig sets the diagnostic log level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// ProjectConfig models .staffdesk/config.yaml.
type ProjectConfig struct {
	Version int           `yaml:"version"`
	Export  ExportConfig  `yaml:"export"`
	Charts  ChartsConfig  `yaml:"charts"`
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
}

// Config holds the runtime configuration for staffdesk.
type Config struct {
	// WorkDir is the directory where the user ran `staffdesk` from
	WorkDir string

	// DataPath is WorkDir/.staffdesk
	DataPath string

	Project ProjectConfig
}

// InitDataDir creates the .staffdesk directory structure in the given directory.
//
// Structure created:
// .staffdesk/
// ├── config.yaml
// ├── logs/      <- staffdesk.log (diagnostics) and journal.log (activity)
// └── exports/   <- CSV / XLSX exports
func InitDataDir(workDir string) error {
	dataDir := filepath.Join(workDir, DataDir)
	dirs := []string{
		filepath.Join(dataDir, "logs"),
		filepath.Join(dataDir, defaultExportDir),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: create %s: %w", dir, err)
		}
	}
	return ensureProjectConfig(filepath.Join(dataDir, "config.yaml"))
}

// NewConfig loads the config for workDir, falling back to defaults when the
// file is missing.
func NewConfig(workDir string) (*Config, error) {
	cfg := &Config{
		WorkDir:  workDir,
		DataPath: filepath.Join(workDir, DataDir),
		Project:  defaultProjectConfig(),
	}
	if err := cfg.Reload(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Reload re-reads config.yaml and applies environment overrides. On error
// the previous settings are kept.
func (c *Config) Reload() error {
	parsed, err := c.readProjectConfig()
	if err != nil {
		return err
	}
	parsed.applyEnv()
	parsed.normalize(c.DataPath)
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	c.Project = parsed
	return nil
}

// ConfigPath returns the on-disk location for the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.DataPath, "config.yaml")
}

// LogsDir returns the path to the logs directory
func (c *Config) LogsDir() string {
	return filepath.Join(c.DataPath, "logs")
}

// JournalPath returns the activity journal shown in the TUI.
func (c *Config) JournalPath() string {
	return filepath.Join(c.LogsDir(), "journal.log")
}

// ExportDir returns the resolved export directory.
func (c *Config) ExportDir() string {
	return c.Project.Export.Dir
}

// ExportFormats returns the configured formats, csv when none are set.
func (c *Config) ExportFormats() []export.Format {
	formats := make([]export.Format, 0, len(c.Project.Export.Formats))
	for _, raw := range c.Project.Export.Formats {
		if f, err := export.ParseFormat(raw); err == nil {
			formats = append(formats, f)
		}
	}
	if len(formats) == 0 {
		formats = append(formats, export.FormatCSV)
	}
	return formats
}

// LogLevel returns the configured log level name.
func (c *Config) LogLevel() string {
	return c.Project.Logging.Level
}

func (c *Config) readProjectConfig() (ProjectConfig, error) {
	parsed := defaultProjectConfig()
	path := c.ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return parsed, nil
		}
		return parsed, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return parsed, fmt.Errorf("config: parse %s: %w", path, err)
	}
	parsed.applyDefaults()
	return parsed, nil
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version: 1,
		Export: ExportConfig{
			Dir:      defaultExportDir,
			FileName: defaultExportName,
			Formats:  []string{string(export.FormatCSV)},
		},
		Charts: ChartsConfig{
			HistogramBins: defaultHistogramBins,
			BarWidth:      defaultBarWidth,
		},
		UI: UIConfig{
			Theme:       defaultTheme,
			TableHeight: defaultTableHeight,
		},
		Logging: LoggingConfig{Level: defaultLogLevel},
	}
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if strings.TrimSpace(pc.Export.Dir) == "" {
		pc.Export.Dir = defaultExportDir
	}
	if strings.TrimSpace(pc.Export.FileName) == "" {
		pc.Export.FileName = defaultExportName
	}
	if pc.Charts.HistogramBins == 0 {
		pc.Charts.HistogramBins = defaultHistogramBins
	}
	if pc.Charts.BarWidth == 0 {
		pc.Charts.BarWidth = defaultBarWidth
	}
	if pc.UI.TableHeight == 0 {
		pc.UI.TableHeight = defaultTableHeight
	}
	if strings.TrimSpace(pc.UI.Theme) == "" {
		pc.UI.Theme = defaultTheme
	}
	if strings.TrimSpace(pc.Logging.Level) == "" {
		pc.Logging.Level = defaultLogLevel
	}
}

func (pc *ProjectConfig) applyEnv() {
	if dir, ok := os.LookupEnv(EnvExportDir); ok && strings.TrimSpace(dir) != "" {
		pc.Export.Dir = dir
	}
	if level, ok := os.LookupEnv(EnvLogLevel); ok && strings.TrimSpace(level) != "" {
		pc.Logging.Level = level
	}
}

func (pc *ProjectConfig) normalize(base string) {
	pc.Export.Dir = resolvePath(base, pc.Export.Dir)
	name := strings.TrimSpace(pc.Export.FileName)
	pc.Export.FileName = strings.TrimSuffix(name, filepath.Ext(name))
	formats := make([]string, 0, len(pc.Export.Formats))
	for _, raw := range pc.Export.Formats {
		f := strings.ToLower(strings.TrimSpace(raw))
		if !slices.Contains(formats, f) {
			formats = append(formats, f)
		}
	}
	pc.Export.Formats = formats
	pc.UI.Theme = strings.ToLower(strings.TrimSpace(pc.UI.Theme))
	pc.Logging.Level = strings.ToLower(strings.TrimSpace(pc.Logging.Level))
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if pc.Export.FileName == "" || strings.ContainsAny(pc.Export.FileName, `/\`) {
		return fmt.Errorf("export.file_name must be a plain file name")
	}
	for i, raw := range pc.Export.Formats {
		if _, err := export.ParseFormat(raw); err != nil {
			return fmt.Errorf("export.formats[%d]: %w", i, err)
		}
	}
	if pc.Charts.HistogramBins < 1 || pc.Charts.HistogramBins > 50 {
		return fmt.Errorf("charts.histogram_bins must be between 1 and 50")
	}
	if pc.Charts.BarWidth < 5 {
		return fmt.Errorf("charts.bar_width must be at least 5")
	}
	if pc.UI.TableHeight < 3 {
		return fmt.Errorf("ui.table_height must be at least 3")
	}
	switch pc.UI.Theme {
	case "dark", "light":
	default:
		return fmt.Errorf("ui.theme must be 'dark' or 'light'")
	}
	switch pc.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error")
	}
	return nil
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0o644)
}
