package dotcover

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/IgorBayerl/ReportGenerator/dotcover_model/internal/inputxml"
	"github.com/IgorBayerl/ReportGenerator/dotcover_model/internal/language/csharp"
	"github.com/IgorBayerl/ReportGenerator/dotcover_model/internal/model"
	"github.com/IgorBayerl/ReportGenerator/dotcover_model/internal/parser"
	"github.com/IgorBayerl/ReportGenerator/dotcover_model/internal/parser/filtering"
	"github.com/IgorBayerl/ReportGenerator/dotcover_model/internal/settings"
)

// This file turns a decoded dotCover report into the coverage model.
//
// The report index is built once and shared read-only. One task per distinct
// assembly name builds an assembly; inside it one task per distinct class name
// builds a class with its files. Completed classes and assemblies are inserted
// into their parents, which lock on insertion. The first error cancels the
// remaining tasks and no partial model is returned.

// processingOrchestrator holds the dependencies of a single build.
type processingOrchestrator struct {
	index  *reportIndex
	config parser.ParserConfig
}

// methodRecord is a <Method> with its declaring type name and parsed statements.
type methodRecord struct {
	typeName   string
	name       string
	statements []statement
}

func newProcessingOrchestrator(index *reportIndex, config parser.ParserConfig) *processingOrchestrator {
	if config == nil {
		config = defaultParserConfig{}
	}
	return &processingOrchestrator{index: index, config: config}
}

// BuildModel builds the coverage model of a decoded report.
// A nil config includes everything and uses default settings.
func BuildModel(report *inputxml.DotCoverRoot, config parser.ParserConfig) (*model.CoverageModel, error) {
	index, err := newReportIndex(report)
	if err != nil {
		return nil, err
	}
	return newProcessingOrchestrator(index, config).processModel(context.Background())
}

// processModel is the entry point for the orchestrator.
func (o *processingOrchestrator) processModel(ctx context.Context) (*model.CoverageModel, error) {
	names, err := o.index.moduleNames()
	if err != nil {
		return nil, err
	}

	root := model.NewCoverageModel()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.config.Settings().Parallelism())

	for _, name := range names {
		if !o.config.AssemblyFilters().IsElementIncludedInReport(name) {
			slog.Debug("Assembly excluded by filter", "assembly", name)
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			assembly, err := o.processAssembly(ctx, name)
			if err != nil {
				return fmt.Errorf("assembly %q: %w", name, err)
			}
			if !root.AddAssembly(assembly) {
				slog.Warn("Duplicate assembly ignored", "assembly", name)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return root, nil
}

// processAssembly builds one assembly from every module record with that name.
func (o *processingOrchestrator) processAssembly(ctx context.Context, name string) (*model.Assembly, error) {
	typesByClass, classNames, err := groupTypesByClassName(o.index.modulesNamed(name))
	if err != nil {
		return nil, err
	}

	assembly := model.NewAssembly(name)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.config.Settings().Parallelism())

	for _, className := range classNames {
		if csharp.IsCompilerGeneratedClass(className) {
			continue
		}
		if !o.config.ClassFilters().IsElementIncludedInReport(className) {
			slog.Debug("Class excluded by filter", "assembly", name, "class", className)
			continue
		}
		types := typesByClass[className]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			class, err := o.processClass(className, types)
			if err != nil {
				return fmt.Errorf("class %q: %w", className, err)
			}
			if class == nil {
				return nil
			}
			if !assembly.AddClass(class) {
				slog.Warn("Duplicate class ignored", "assembly", name, "class", className)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	slog.Debug("Assembly processed", "assembly", name, "classes", len(assembly.Classes()))
	return assembly, nil
}

// processClass builds a class from all type records sharing its full name.
// It returns nil if the class ends up without files.
func (o *processingOrchestrator) processClass(className string, types []*inputxml.DotCoverTypeXML) (*model.Class, error) {
	methods, err := collectMethods(types)
	if err != nil {
		return nil, err
	}

	class := model.NewClass(className, csharp.FormatClassName(className), nil)
	for _, fileIndex := range distinctFileIndexes(methods) {
		codeFile, err := o.processFile(fileIndex, methods)
		if err != nil {
			return nil, err
		}
		if codeFile != nil {
			class.AddFile(codeFile)
		}
	}

	if len(class.Files) == 0 {
		return nil, nil
	}
	return class, nil
}

// processFile builds the CodeFile of one file index within a class.
// It returns nil if the file is excluded by the file filter.
func (o *processingOrchestrator) processFile(fileIndex string, methods []methodRecord) (*model.CodeFile, error) {
	path, err := o.index.filePath(fileIndex)
	if err != nil {
		return nil, err
	}
	if !o.config.FileFilters().IsElementIncludedInReport(path) {
		return nil, nil
	}

	var statementsOfFile []statement
	for _, m := range methods {
		for _, s := range m.statements {
			if s.fileIndex == fileIndex {
				statementsOfFile = append(statementsOfFile, s)
			}
		}
	}
	sort.SliceStable(statementsOfFile, func(i, j int) bool {
		return statementsOfFile[i].endLine < statementsOfFile[j].endLine
	})

	coverage, lineVisitStatus := resolveLineCoverage(statementsOfFile)
	codeFile := model.NewCodeFile(path, coverage, lineVisitStatus)

	for _, m := range methods {
		if len(m.statements) == 0 || m.statements[0].fileIndex != fileIndex {
			continue
		}
		name, elementType, ok := csharp.NormalizeMethodName(m.typeName, m.name)
		if !ok {
			continue
		}
		codeFile.AddCodeElement(model.CodeElement{
			Name:      name,
			Type:      elementType,
			FirstLine: m.statements[0].startLine,
		})
	}
	return codeFile, nil
}

// groupTypesByClassName maps class full names to their type records. Types inside a
// namespace are named "<namespace>.<type>"; names are returned sorted.
func groupTypesByClassName(modules []*inputxml.DotCoverModuleXML) (map[string][]*inputxml.DotCoverTypeXML, []string, error) {
	grouped := make(map[string][]*inputxml.DotCoverTypeXML)
	add := func(prefix string, t *inputxml.DotCoverTypeXML) error {
		if t.Name == "" {
			return fmt.Errorf("%w: Type/@Name", parser.ErrMissingAttribute)
		}
		grouped[prefix+t.Name] = append(grouped[prefix+t.Name], t)
		return nil
	}

	for _, m := range modules {
		for i := range m.Namespaces {
			ns := &m.Namespaces[i]
			if ns.Name == "" {
				return nil, nil, fmt.Errorf("%w: Namespace/@Name", parser.ErrMissingAttribute)
			}
			for j := range ns.Types {
				if err := add(ns.Name+".", &ns.Types[j]); err != nil {
					return nil, nil, err
				}
			}
		}
		for i := range m.Types {
			if err := add("", &m.Types[i]); err != nil {
				return nil, nil, err
			}
		}
	}

	names := make([]string, 0, len(grouped))
	for name := range grouped {
		names = append(names, name)
	}
	sort.Strings(names)
	return grouped, names, nil
}

// collectMethods returns the methods of the types and of all their nested types,
// with statements parsed and kept in document order.
func collectMethods(types []*inputxml.DotCoverTypeXML) ([]methodRecord, error) {
	var methods []methodRecord
	var walk func(t *inputxml.DotCoverTypeXML) error
	walk = func(t *inputxml.DotCoverTypeXML) error {
		if t.Name == "" {
			return fmt.Errorf("%w: Type/@Name", parser.ErrMissingAttribute)
		}
		for _, rawMethod := range t.Methods {
			if rawMethod.Name == "" {
				return fmt.Errorf("%w: Method/@Name in type %q", parser.ErrMissingAttribute, t.Name)
			}
			record := methodRecord{
				typeName:   t.Name,
				name:       rawMethod.Name,
				statements: make([]statement, 0, len(rawMethod.Statements)),
			}
			for _, rawStatement := range rawMethod.Statements {
				s, err := parseStatement(rawStatement)
				if err != nil {
					return fmt.Errorf("method %q: %w", rawMethod.Name, err)
				}
				record.statements = append(record.statements, s)
			}
			methods = append(methods, record)
		}
		for i := range t.Types {
			if err := walk(&t.Types[i]); err != nil {
				return err
			}
		}
		return nil
	}

	for _, t := range types {
		if err := walk(t); err != nil {
			return nil, err
		}
	}
	return methods, nil
}

// distinctFileIndexes returns the file indexes referenced by the methods, in order of first use.
func distinctFileIndexes(methods []methodRecord) []string {
	seen := make(map[string]struct{})
	var indexes []string
	for _, m := range methods {
		for _, s := range m.statements {
			if _, ok := seen[s.fileIndex]; ok {
				continue
			}
			seen[s.fileIndex] = struct{}{}
			indexes = append(indexes, s.fileIndex)
		}
	}
	return indexes
}

// defaultParserConfig includes everything and uses default settings.
type defaultParserConfig struct{}

func (defaultParserConfig) SourceDirectories() []string        { return nil }
func (defaultParserConfig) AssemblyFilters() filtering.IFilter { return filtering.IncludeAll() }
func (defaultParserConfig) ClassFilters() filtering.IFilter    { return filtering.IncludeAll() }
func (defaultParserConfig) FileFilters() filtering.IFilter     { return filtering.IncludeAll() }
func (defaultParserConfig) Settings() *settings.Settings       { return settings.NewSettings() }
