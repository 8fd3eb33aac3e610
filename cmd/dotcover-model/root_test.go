package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IgorBayerl/ReportGenerator/dotcover_model/internal/parser"
	"github.com/IgorBayerl/ReportGenerator/dotcover_model/internal/reportconfig"
)

const report = `<?xml version="1.0" encoding="utf-8"?>
<Root DotCoverVersion="2023.3.1" ReportType="DetailedXml">
  <File Index="1" Name="C:\src\App\Calc.cs" />
  <Assembly Name="App.dll">
    <Namespace Name="App">
      <Type Name="Calc">
        <Method Name="Add(System.Int32,System.Int32):System.Int32">
          <Statement FileIndex="1" Line="5" Column="9" EndLine="5" EndColumn="10" Covered="True" />
          <Statement FileIndex="1" Line="6" Column="9" EndLine="6" EndColumn="10" Covered="False" />
        </Method>
      </Type>
    </Namespace>
  </Assembly>
  <Assembly Name="App.Tests.dll">
    <Type Name="CalcTests">
      <Method Name="Adds():System.Void">
        <Statement FileIndex="1" Line="2" Column="9" EndLine="2" EndColumn="10" Covered="True" />
      </Method>
    </Type>
  </Assembly>
</Root>`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmd_LogsAssemblySummary(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "coverage.xml", report)

	out, err := executeRoot(t, "--report", filepath.Join(dir, "*.xml"), "--parallelism", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "name=App.dll classes=1 coverable=2 covered=1 coverage=50.0%")
	assert.Contains(t, out, "name=App.Tests.dll classes=1 coverable=1 covered=1 coverage=100.0%")
	assert.Contains(t, out, "assemblies=2 coverable=3 covered=2 coverage=66.7%")
}

func TestRootCmd_AppliesFilters(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "coverage.xml", report)

	out, err := executeRoot(t, "--report", path, "--assemblyfilters", "-*.Tests.dll")
	require.NoError(t, err)

	assert.Contains(t, out, "name=App.dll")
	assert.NotContains(t, out, "name=App.Tests.dll")
}

func TestRootCmd_ReadsEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "coverage.xml", report)
	t.Setenv("DOTCOVER_REPORT", path)
	t.Setenv("DOTCOVER_VERBOSITY", "Warning")

	out, err := executeRoot(t)
	require.NoError(t, err)
	assert.NotContains(t, out, "name=App.dll", "summary is logged at Info")
}

func TestRootCmd_ReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "coverage.xml", report)
	configPath := writeFile(t, dir, "dotcover.yaml", "report: "+filepath.ToSlash(path)+"\nclassfilters: \"-*Tests\"\n")

	out, err := executeRoot(t, "--config", configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "name=App.Tests.dll classes=0")
}

func TestRootCmd_WarnsAboutMissingSourceFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "coverage.xml", report)
	srcDir := filepath.Join(dir, "src")
	require.NoError(t, os.MkdirAll(srcDir, 0o755))

	out, err := executeRoot(t, "--report", path, "--sourcedirs", srcDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Source file not found")

	require.NoError(t, os.MkdirAll(filepath.Join(srcDir, "App"), 0o755))
	writeFile(t, filepath.Join(srcDir, "App"), "Calc.cs", "class Calc {}")

	out, err = executeRoot(t, "--report", path, "--sourcedirs", srcDir)
	require.NoError(t, err)
	assert.NotContains(t, out, "Source file not found")
}

func TestRootCmd_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("No report files", func(t *testing.T) {
		_, err := executeRoot(t, "--report", filepath.Join(dir, "*.xml"))
		assert.ErrorIs(t, err, reportconfig.ErrNoReportFiles)
	})

	t.Run("Unsupported report", func(t *testing.T) {
		path := writeFile(t, dir, "cobertura.xml", `<coverage line-rate="1"/>`)
		_, err := executeRoot(t, "--report", path)
		assert.ErrorIs(t, err, parser.ErrNoParser)
	})

	t.Run("Invalid verbosity", func(t *testing.T) {
		path := writeFile(t, dir, "coverage.xml", report)
		_, err := executeRoot(t, "--report", path, "--verbosity", "loud")
		assert.ErrorContains(t, err, "invalid verbosity level")
	})

	t.Run("Missing config file", func(t *testing.T) {
		_, err := executeRoot(t, "--config", filepath.Join(dir, "missing.yaml"))
		assert.ErrorContains(t, err, "failed to read config file")
	})

	t.Run("Unexpected argument", func(t *testing.T) {
		_, err := executeRoot(t, "extra")
		assert.Error(t, err)
	})
}
