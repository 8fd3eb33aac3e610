package dotcover

import (
	"fmt"

	"github.com/IgorBayerl/ReportGenerator/dotcover_model/internal/inputxml"
	"github.com/IgorBayerl/ReportGenerator/dotcover_model/internal/parser"
)

// reportIndex flattens a report into the lookup tables the builders share.
// It is read-only once created and safe to use from many goroutines.
type reportIndex struct {
	modules []*inputxml.DotCoverModuleXML
	files   map[string]string
}

func newReportIndex(report *inputxml.DotCoverRoot) (*reportIndex, error) {
	if report == nil {
		return nil, parser.ErrNilReport
	}

	idx := &reportIndex{
		modules: make([]*inputxml.DotCoverModuleXML, 0, len(report.Assemblies)),
		files:   make(map[string]string, len(report.Files)),
	}
	for i := range report.Assemblies {
		idx.modules = append(idx.modules, &report.Assemblies[i])
	}
	for _, f := range report.Files {
		idx.files[f.Index] = f.Name
	}
	return idx, nil
}

// moduleNames returns the distinct module names in document order.
func (idx *reportIndex) moduleNames() ([]string, error) {
	seen := make(map[string]struct{}, len(idx.modules))
	var names []string
	for _, m := range idx.modules {
		if m.Name == "" {
			return nil, fmt.Errorf("%w: Assembly/@Name", parser.ErrMissingAttribute)
		}
		if _, ok := seen[m.Name]; ok {
			continue
		}
		seen[m.Name] = struct{}{}
		names = append(names, m.Name)
	}
	return names, nil
}

// modulesNamed returns every module record carrying the given name.
func (idx *reportIndex) modulesNamed(name string) []*inputxml.DotCoverModuleXML {
	var modules []*inputxml.DotCoverModuleXML
	for _, m := range idx.modules {
		if m.Name == name {
			modules = append(modules, m)
		}
	}
	return modules
}

// filePath resolves a statement's file index.
func (idx *reportIndex) filePath(fileIndex string) (string, error) {
	path, ok := idx.files[fileIndex]
	if !ok {
		return "", fmt.Errorf("%w: %q", parser.ErrUnknownFileIndex, fileIndex)
	}
	if path == "" {
		return "", fmt.Errorf("%w: File[@Index=%q]/@Name", parser.ErrMissingAttribute, fileIndex)
	}
	return path, nil
}
