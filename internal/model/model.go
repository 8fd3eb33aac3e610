// Package model holds the coverage hierarchy produced by the parsers:
// CoverageModel -> Assembly -> Class -> CodeFile -> CodeElement.
//
// Everything is created during a single build pass. Insertion of assemblies and
// classes is safe for concurrent use; after the build the model is read-only.
package model

import (
	"sort"
	"sync"
)

// CoverageModel is the root of the hierarchy.
type CoverageModel struct {
	mu         sync.Mutex
	assemblies map[string]*Assembly
}

func NewCoverageModel() *CoverageModel {
	return &CoverageModel{assemblies: make(map[string]*Assembly)}
}

// AddAssembly inserts an assembly. It reports false if the name is already taken.
func (m *CoverageModel) AddAssembly(assembly *Assembly) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.assemblies[assembly.Name]; exists {
		return false
	}
	m.assemblies[assembly.Name] = assembly
	return true
}

func (m *CoverageModel) Assembly(name string) (*Assembly, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.assemblies[name]
	return a, ok
}

// Assemblies returns all assemblies ordered by name.
func (m *CoverageModel) Assemblies() []*Assembly {
	m.mu.Lock()
	assemblies := make([]*Assembly, 0, len(m.assemblies))
	for _, a := range m.assemblies {
		assemblies = append(assemblies, a)
	}
	m.mu.Unlock()

	sort.Slice(assemblies, func(i, j int) bool { return assemblies[i].Name < assemblies[j].Name })
	return assemblies
}

func (m *CoverageModel) CoverableLines() int {
	n := 0
	for _, a := range m.Assemblies() {
		n += a.CoverableLines()
	}
	return n
}

func (m *CoverageModel) CoveredLines() int {
	n := 0
	for _, a := range m.Assemblies() {
		n += a.CoveredLines()
	}
	return n
}

func (m *CoverageModel) CoverageQuota() *float64 {
	return coverageQuota(m.CoveredLines(), m.CoverableLines())
}
