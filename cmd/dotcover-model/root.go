package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/IgorBayerl/ReportGenerator/dotcover_model/internal/filesystem"
	"github.com/IgorBayerl/ReportGenerator/dotcover_model/internal/logging"
	"github.com/IgorBayerl/ReportGenerator/dotcover_model/internal/model"
	"github.com/IgorBayerl/ReportGenerator/dotcover_model/internal/parser"
	_ "github.com/IgorBayerl/ReportGenerator/dotcover_model/internal/parser/dotcover"
	"github.com/IgorBayerl/ReportGenerator/dotcover_model/internal/reportconfig"
	"github.com/IgorBayerl/ReportGenerator/dotcover_model/internal/utils"
)

const envPrefix = "DOTCOVER"

func newRootCmd() *cobra.Command {
	v := viper.New()
	var configFile string

	cmd := &cobra.Command{
		Use:   "dotcover-model",
		Short: "Build a line coverage model from dotCover DetailedXml reports",
		Long: `dotcover-model reads dotCover DetailedXml coverage reports and builds the
assembly / class / file coverage model, then logs a per-assembly summary.

Every flag can also be set in a config file (--config) or through an
environment variable prefixed with DOTCOVER_, e.g. DOTCOVER_REPORT.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := loadOptions(v, configFile)
			if err != nil {
				return err
			}
			return run(opts, filesystem.NewOS(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configFile, "config", "", "Config file (yaml, json or toml)")
	flags.String("report", "", "Coverage report files or patterns, ';' separated (e.g. \"./coverage/*.xml;./more.xml\")")
	flags.String("sourcedirs", "", "Source directories used to locate the files named in the reports, ';' separated")
	flags.String("assemblyfilters", "", "Assembly filters, ';' separated (e.g. \"+Included;-Excluded*\")")
	flags.String("classfilters", "", "Class filters, ';' separated")
	flags.String("filefilters", "", "File filters, ';' separated")
	flags.String("verbosity", "Info", "Logging verbosity level (Verbose, Info, Warning, Error, Off)")
	flags.Int("parallelism", 0, "Maximum number of assemblies and classes built concurrently (0 = number of CPUs)")

	_ = v.BindPFlags(flags)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	return cmd
}

// loadOptions merges flags, environment and the optional config file.
// Precedence: flag > environment > config file > default.
func loadOptions(v *viper.Viper, configFile string) (reportconfig.Options, error) {
	var opts reportconfig.Options
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return opts, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}
	if err := v.Unmarshal(&opts); err != nil {
		return opts, fmt.Errorf("failed to decode configuration: %w", err)
	}
	return opts, nil
}

func run(opts reportconfig.Options, fsys filesystem.Filesystem, logOutput io.Writer) error {
	start := time.Now()

	if level, err := logging.ParseVerbosity(opts.Verbosity); err == nil {
		logging.Configure(level, logOutput)
	}

	config, err := reportconfig.NewReportConfiguration(opts, fsys)
	if err != nil {
		return err
	}

	for _, file := range config.ReportFiles() {
		slog.Info("Processing coverage report", "file", file)
		result, err := parser.ParseFile(file, config)
		if err != nil {
			return err
		}
		logSummary(file, result.Model)
		if len(result.SourceDirectories) > 0 {
			checkSourceFiles(result.Model, result.SourceDirectories, fsys)
		}
	}

	slog.Info("Coverage model built", "reports", len(config.ReportFiles()), "duration", time.Since(start).Round(time.Millisecond))
	return nil
}

func logSummary(file string, m *model.CoverageModel) {
	for _, a := range m.Assemblies() {
		slog.Info("Assembly",
			"name", a.Name,
			"classes", len(a.Classes()),
			"coverable", a.CoverableLines(),
			"covered", a.CoveredLines(),
			"coverage", formatQuota(a.CoverageQuota()))
	}
	slog.Info("Report summary",
		"file", file,
		"assemblies", len(m.Assemblies()),
		"coverable", m.CoverableLines(),
		"covered", m.CoveredLines(),
		"coverage", formatQuota(m.CoverageQuota()))
}

// checkSourceFiles warns about files of the model that cannot be found in the source directories.
func checkSourceFiles(m *model.CoverageModel, sourceDirs []string, fsys filesystem.Filesystem) {
	checked := make(map[string]struct{})
	for _, a := range m.Assemblies() {
		for _, c := range a.Classes() {
			for _, f := range c.Files {
				if _, ok := checked[f.Path]; ok {
					continue
				}
				checked[f.Path] = struct{}{}
				if resolved, err := utils.FindFileInSourceDirs(f.Path, sourceDirs, fsys); err != nil {
					slog.Warn("Source file not found", "file", f.Path)
				} else {
					slog.Debug("Source file resolved", "file", f.Path, "path", resolved)
				}
			}
		}
	}
}

func formatQuota(q *float64) string {
	if q == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", *q)
}
