// Package reportconfig turns command line and config file options into the
// configuration of a run.
package reportconfig

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/IgorBayerl/ReportGenerator/dotcover_model/internal/filesystem"
	"github.com/IgorBayerl/ReportGenerator/dotcover_model/internal/glob"
	"github.com/IgorBayerl/ReportGenerator/dotcover_model/internal/logging"
	"github.com/IgorBayerl/ReportGenerator/dotcover_model/internal/parser"
	"github.com/IgorBayerl/ReportGenerator/dotcover_model/internal/parser/filtering"
	"github.com/IgorBayerl/ReportGenerator/dotcover_model/internal/settings"
	"github.com/IgorBayerl/ReportGenerator/dotcover_model/internal/utils"
)

// ErrNoReportFiles is returned when no pattern resolves to an existing file.
var ErrNoReportFiles = errors.New("no valid report files found")

// Options are the raw settings as given on the command line or in a config file.
// List values are separated by ';'; report patterns may also be separated by ','.
type Options struct {
	Reports           string `mapstructure:"report"`
	SourceDirectories string `mapstructure:"sourcedirs"`
	AssemblyFilters   string `mapstructure:"assemblyfilters"`
	ClassFilters      string `mapstructure:"classfilters"`
	FileFilters       string `mapstructure:"filefilters"`
	Verbosity         string `mapstructure:"verbosity"`
	Parallelism       int    `mapstructure:"parallelism"`
}

// ReportConfiguration is the validated configuration of a run.
type ReportConfiguration struct {
	reportFiles     []string
	invalidPatterns []string
	sourceDirs      []string
	assemblyFilter  filtering.IFilter
	classFilter     filtering.IFilter
	fileFilter      filtering.IFilter
	verbosity       logging.VerbosityLevel
	settings        *settings.Settings
}

var _ parser.ParserConfig = (*ReportConfiguration)(nil)

// NewReportConfiguration validates opts and expands the report patterns on fsys.
// Patterns that match nothing are remembered in InvalidReportFilePatterns; it is an
// error only if no pattern yields a file.
func NewReportConfiguration(opts Options, fsys filesystem.Filesystem) (*ReportConfiguration, error) {
	verbosity := logging.Info
	if strings.TrimSpace(opts.Verbosity) != "" {
		v, err := logging.ParseVerbosity(opts.Verbosity)
		if err != nil {
			return nil, err
		}
		verbosity = v
	}

	assemblyFilter, err := filtering.NewDefaultFilter(splitList(opts.AssemblyFilters), false)
	if err != nil {
		return nil, fmt.Errorf("assembly filters: %w", err)
	}
	classFilter, err := filtering.NewDefaultFilter(splitList(opts.ClassFilters), false)
	if err != nil {
		return nil, fmt.Errorf("class filters: %w", err)
	}
	fileFilter, err := filtering.NewDefaultFilter(splitList(opts.FileFilters), true)
	if err != nil {
		return nil, fmt.Errorf("file filters: %w", err)
	}

	if opts.Parallelism < 0 {
		return nil, fmt.Errorf("parallelism must not be negative, got %d", opts.Parallelism)
	}
	s := settings.NewSettings()
	s.MaxDegreeOfParallelism = opts.Parallelism

	rc := &ReportConfiguration{
		sourceDirs:     splitList(opts.SourceDirectories),
		assemblyFilter: assemblyFilter,
		classFilter:    classFilter,
		fileFilter:     fileFilter,
		verbosity:      verbosity,
		settings:       s,
	}
	if err := rc.expandReports(splitPatterns(opts.Reports), fsys); err != nil {
		return nil, err
	}
	return rc, nil
}

func (rc *ReportConfiguration) expandReports(patterns []string, fsys filesystem.Filesystem) error {
	seen := make(map[string]struct{})
	for _, pattern := range patterns {
		files, err := glob.NewGlob(pattern, fsys).Expand()
		if err != nil {
			slog.Warn("Error expanding report file pattern", "pattern", pattern, "error", err)
			rc.invalidPatterns = append(rc.invalidPatterns, pattern)
			continue
		}
		if len(files) == 0 {
			slog.Warn("No files found for report pattern", "pattern", pattern)
			rc.invalidPatterns = append(rc.invalidPatterns, pattern)
			continue
		}
		for _, f := range files {
			if _, ok := seen[f]; ok {
				continue
			}
			seen[f] = struct{}{}
			rc.reportFiles = append(rc.reportFiles, f)
		}
	}

	if len(rc.reportFiles) == 0 {
		if len(rc.invalidPatterns) > 0 {
			return fmt.Errorf("%w; patterns that yielded no files: %s", ErrNoReportFiles, strings.Join(rc.invalidPatterns, ", "))
		}
		return ErrNoReportFiles
	}
	return nil
}

func (rc *ReportConfiguration) ReportFiles() []string                  { return rc.reportFiles }
func (rc *ReportConfiguration) InvalidReportFilePatterns() []string    { return rc.invalidPatterns }
func (rc *ReportConfiguration) SourceDirectories() []string            { return rc.sourceDirs }
func (rc *ReportConfiguration) AssemblyFilters() filtering.IFilter     { return rc.assemblyFilter }
func (rc *ReportConfiguration) ClassFilters() filtering.IFilter        { return rc.classFilter }
func (rc *ReportConfiguration) FileFilters() filtering.IFilter         { return rc.fileFilter }
func (rc *ReportConfiguration) VerbosityLevel() logging.VerbosityLevel { return rc.verbosity }
func (rc *ReportConfiguration) Settings() *settings.Settings           { return rc.settings }

// splitList splits a ';' separated list.
func splitList(s string) []string {
	return utils.SplitThatEnsuresGlobsAreSafe(s, ';')
}

// splitPatterns splits report patterns at ';' and ',' outside of brace groups,
// so "{unit,it}/*.xml" stays one pattern.
func splitPatterns(s string) []string {
	return utils.SplitThatEnsuresGlobsAreSafe(s, ';', ',')
}
