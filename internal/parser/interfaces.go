package parser

import (
	"github.com/IgorBayerl/ReportGenerator/dotcover_model/internal/model"
	"github.com/IgorBayerl/ReportGenerator/dotcover_model/internal/parser/filtering"
	"github.com/IgorBayerl/ReportGenerator/dotcover_model/internal/settings"
)

// ParserResult holds the coverage model built from a single coverage report file.
type ParserResult struct {
	Model                  *model.CoverageModel
	SourceDirectories      []string
	SupportsBranchCoverage bool
	ParserName             string
}

// ParserConfig defines the lean configuration required by a parser.
// This consumer-defined interface decouples parsers from the main report configuration.
type ParserConfig interface {
	SourceDirectories() []string
	AssemblyFilters() filtering.IFilter
	ClassFilters() filtering.IFilter
	FileFilters() filtering.IFilter
	Settings() *settings.Settings
}

// IParser defines the contract for all coverage report parsers.
type IParser interface {
	Name() string
	SupportsFile(filePath string) bool
	Parse(filePath string, config ParserConfig) (*ParserResult, error)
}
