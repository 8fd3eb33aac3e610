package model

import (
	"sort"
	"sync"
)

// Assembly is a module of the report. Classes may be added concurrently while the
// assembly is being built; readers see them sorted by name.
type Assembly struct {
	Name string

	mu      sync.Mutex
	classes map[string]*Class
}

func NewAssembly(name string) *Assembly {
	return &Assembly{
		Name:    name,
		classes: make(map[string]*Class),
	}
}

// AddClass inserts a class. It reports false if a class with the same name already exists.
func (a *Assembly) AddClass(class *Class) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, exists := a.classes[class.Name]; exists {
		return false
	}
	class.Assembly = a
	a.classes[class.Name] = class
	return true
}

// Class returns the class with the given full name.
func (a *Assembly) Class(name string) (*Class, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	c, ok := a.classes[name]
	return c, ok
}

// Classes returns all classes ordered by name.
func (a *Assembly) Classes() []*Class {
	a.mu.Lock()
	classes := make([]*Class, 0, len(a.classes))
	for _, c := range a.classes {
		classes = append(classes, c)
	}
	a.mu.Unlock()

	sort.Slice(classes, func(i, j int) bool { return classes[i].Name < classes[j].Name })
	return classes
}

func (a *Assembly) CoverableLines() int {
	n := 0
	for _, c := range a.Classes() {
		n += c.CoverableLines()
	}
	return n
}

func (a *Assembly) CoveredLines() int {
	n := 0
	for _, c := range a.Classes() {
		n += c.CoveredLines()
	}
	return n
}

func (a *Assembly) CoverageQuota() *float64 {
	return coverageQuota(a.CoveredLines(), a.CoverableLines())
}
