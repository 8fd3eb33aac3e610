package model

// CodeElementType tells whether a code element is a method or a property accessor.
type CodeElementType int

const (
	MethodElementType CodeElementType = iota
	PropertyElementType
)

func (t CodeElementType) String() string {
	if t == PropertyElementType {
		return "Property"
	}
	return "Method"
}

// CodeElement is a reportable method or property located at the line of its first statement.
type CodeElement struct {
	Name      string
	Type      CodeElementType
	FirstLine int
}

// CodeFile is the coverage of one source file as seen from one class.
// Coverage and LineVisitStatus are indexed by 1-based line number; index 0 is unused.
type CodeFile struct {
	Path            string
	Coverage        []int
	LineVisitStatus []LineVisitStatus
	CodeElements    []CodeElement
}

// NewCodeFile creates a CodeFile. Both arrays must have the same length.
func NewCodeFile(path string, coverage []int, lineVisitStatus []LineVisitStatus) *CodeFile {
	if coverage == nil {
		coverage = []int{}
	}
	if lineVisitStatus == nil {
		lineVisitStatus = []LineVisitStatus{}
	}
	return &CodeFile{
		Path:            path,
		Coverage:        coverage,
		LineVisitStatus: lineVisitStatus,
		CodeElements:    []CodeElement{},
	}
}

// AddCodeElement appends the element unless an identical one is already present.
func (f *CodeFile) AddCodeElement(element CodeElement) {
	for _, existing := range f.CodeElements {
		if existing == element {
			return
		}
	}
	f.CodeElements = append(f.CodeElements, element)
}

// LineCoverage returns the coverage value of a line and whether the line has coverage data at all.
func (f *CodeFile) LineCoverage(line int) (int, bool) {
	if line <= 0 || line >= len(f.Coverage) || f.Coverage[line] == NoCoverage {
		return NoCoverage, false
	}
	return f.Coverage[line], true
}

// CoverableLines counts the lines that carry coverage data.
func (f *CodeFile) CoverableLines() int {
	n := 0
	for line := 1; line < len(f.Coverage); line++ {
		if f.Coverage[line] != NoCoverage {
			n++
		}
	}
	return n
}

// CoveredLines counts the lines that were executed.
func (f *CodeFile) CoveredLines() int {
	n := 0
	for line := 1; line < len(f.Coverage); line++ {
		if f.Coverage[line] > 0 {
			n++
		}
	}
	return n
}
