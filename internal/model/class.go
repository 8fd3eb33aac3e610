package model

// Class is a type of an assembly together with the source files it spans.
type Class struct {
	Name        string
	DisplayName string
	Assembly    *Assembly
	Files       []*CodeFile
}

// NewClass creates an empty class belonging to the given assembly.
func NewClass(name, displayName string, assembly *Assembly) *Class {
	if displayName == "" {
		displayName = name
	}
	return &Class{
		Name:        name,
		DisplayName: displayName,
		Assembly:    assembly,
		Files:       []*CodeFile{},
	}
}

// AddFile appends a file. Files keep insertion order.
func (c *Class) AddFile(file *CodeFile) {
	c.Files = append(c.Files, file)
}

// File returns the file with the given path.
func (c *Class) File(path string) (*CodeFile, bool) {
	for _, f := range c.Files {
		if f.Path == path {
			return f, true
		}
	}
	return nil, false
}

func (c *Class) CoverableLines() int {
	n := 0
	for _, f := range c.Files {
		n += f.CoverableLines()
	}
	return n
}

func (c *Class) CoveredLines() int {
	n := 0
	for _, f := range c.Files {
		n += f.CoveredLines()
	}
	return n
}

// CoverageQuota returns the line coverage in percent, or nil if no line is coverable.
func (c *Class) CoverageQuota() *float64 {
	return coverageQuota(c.CoveredLines(), c.CoverableLines())
}

func coverageQuota(covered, coverable int) *float64 {
	if coverable == 0 {
		return nil
	}
	q := float64(covered) / float64(coverable) * 100.0
	return &q
}
