package model

// LineVisitStatus classifies a source line for display.
// The zero value is NotCoverable, so an uninitialized slot reads as "no data".
type LineVisitStatus int

const (
	NotCoverable LineVisitStatus = iota
	NotCovered
	PartiallyCovered // only produced by formats with branch data
	Covered
)

func (s LineVisitStatus) String() string {
	switch s {
	case NotCovered:
		return "NotCovered"
	case PartiallyCovered:
		return "PartiallyCovered"
	case Covered:
		return "Covered"
	default:
		return "NotCoverable"
	}
}

// NoCoverage marks a line in CodeFile.Coverage that no statement touches.
const NoCoverage = -1
