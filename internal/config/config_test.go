package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kingrea/staffdesk/internal/export"
)

func TestNewConfigDefaultsWhenMissing(t *testing.T) {
	workDir := t.TempDir()
	c, err := NewConfig(workDir)
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if c.Project.Version != 1 {
		t.Fatalf("expected default version == 1, got %d", c.Project.Version)
	}
	wantDir := filepath.Join(workDir, DataDir, "exports")
	if c.ExportDir() != wantDir {
		t.Fatalf("export dir = %s, want %s", c.ExportDir(), wantDir)
	}
	if c.Project.Export.FileName != defaultExportName {
		t.Fatalf("file name = %q, want %q", c.Project.Export.FileName, defaultExportName)
	}
	formats := c.ExportFormats()
	if len(formats) != 1 || formats[0] != export.FormatCSV {
		t.Fatalf("formats = %v, want [csv]", formats)
	}
	if c.LogLevel() != "info" {
		t.Fatalf("log level = %s, want info", c.LogLevel())
	}
}

func TestInitDataDirWritesDefaultConfig(t *testing.T) {
	workDir := t.TempDir()
	if err := InitDataDir(workDir); err != nil {
		t.Fatalf("init data dir: %v", err)
	}
	for _, dir := range []string{"logs", "exports"} {
		if info, err := os.Stat(filepath.Join(workDir, DataDir, dir)); err != nil || !info.IsDir() {
			t.Fatalf("expected %s directory, err=%v", dir, err)
		}
	}
	c, err := NewConfig(workDir)
	if err != nil {
		t.Fatalf("default config must parse: %v", err)
	}
	if c.Project.Charts.HistogramBins != defaultHistogramBins {
		t.Fatalf("histogram bins = %d", c.Project.Charts.HistogramBins)
	}

	custom := []byte("version: 1\nui:\n  theme: light\n")
	if err := os.WriteFile(c.ConfigPath(), custom, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := InitDataDir(workDir); err != nil {
		t.Fatalf("second init: %v", err)
	}
	data, err := os.ReadFile(c.ConfigPath())
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != string(custom) {
		t.Fatalf("InitDataDir must not overwrite an existing config")
	}
}

func TestNewConfigParsesYaml(t *testing.T) {
	workDir := t.TempDir()
	writeConfig(t, workDir, `
version: 1
export:
  dir: /tmp/staff-exports
  file_name: quarterly.csv
  formats:
    - CSV
    - xlsx
charts:
  histogram_bins: 5
  bar_width: 20
ui:
  theme: Light
  table_height: 8
logging:
  level: DEBUG
`)
	c, err := NewConfig(workDir)
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if c.ExportDir() != "/tmp/staff-exports" {
		t.Fatalf("export dir = %s", c.ExportDir())
	}
	if c.Project.Export.FileName != "quarterly" {
		t.Fatalf("file name should drop its extension, got %q", c.Project.Export.FileName)
	}
	formats := c.ExportFormats()
	if len(formats) != 2 || formats[0] != export.FormatCSV || formats[1] != export.FormatXLSX {
		t.Fatalf("formats = %v", formats)
	}
	if c.Project.UI.Theme != "light" || c.Project.UI.TableHeight != 8 {
		t.Fatalf("ui = %+v", c.Project.UI)
	}
	if c.LogLevel() != "debug" {
		t.Fatalf("log level = %s", c.LogLevel())
	}
}

func TestDuplicateFormatsCollapse(t *testing.T) {
	workDir := t.TempDir()
	writeConfig(t, workDir, "version: 1\nexport:\n  formats: [csv, CSV, ' xlsx', xlsx]\n")
	c, err := NewConfig(workDir)
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	formats := c.ExportFormats()
	if len(formats) != 2 || formats[0] != export.FormatCSV || formats[1] != export.FormatXLSX {
		t.Fatalf("formats = %v, want [csv xlsx]", formats)
	}
}

func TestNewConfigValidation(t *testing.T) {
	cases := map[string]string{
		"format":  "export:\n  formats: [pdf]\n",
		"bins":    "charts:\n  histogram_bins: 500\n",
		"theme":   "ui:\n  theme: neon\n",
		"level":   "logging:\n  level: loud\n",
		"name":    "export:\n  file_name: a/b\n",
		"version": "version: -1\n",
	}
	for name, body := range cases {
		workDir := t.TempDir()
		writeConfig(t, workDir, body)
		if _, err := NewConfig(workDir); err == nil {
			t.Fatalf("%s: expected validation error but got none", name)
		}
	}
}

func TestEnvOverrides(t *testing.T) {
	workDir := t.TempDir()
	t.Setenv(EnvExportDir, "shared")
	t.Setenv(EnvLogLevel, "warn")
	c, err := NewConfig(workDir)
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	want := filepath.Join(workDir, DataDir, "shared")
	if c.ExportDir() != want {
		t.Fatalf("export dir = %s, want %s", c.ExportDir(), want)
	}
	if c.LogLevel() != "warn" {
		t.Fatalf("log level = %s, want warn", c.LogLevel())
	}
}

func TestReloadKeepsPreviousOnError(t *testing.T) {
	workDir := t.TempDir()
	writeConfig(t, workDir, "charts:\n  bar_width: 12\n")
	c, err := NewConfig(workDir)
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	writeConfig(t, workDir, "charts: [not, a, map\n")
	if err := c.Reload(); err == nil {
		t.Fatalf("expected parse error")
	}
	if c.Project.Charts.BarWidth != 12 {
		t.Fatalf("bar width = %d, want previous value 12", c.Project.Charts.BarWidth)
	}
}

func writeConfig(t *testing.T, workDir, body string) {
	t.Helper()
	dataDir := filepath.Join(workDir, DataDir)
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dataDir, "config.yaml"), []byte(strings.TrimSpace(body)+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}
