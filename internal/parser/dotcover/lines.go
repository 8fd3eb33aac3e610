package dotcover

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/IgorBayerl/ReportGenerator/dotcover_model/internal/inputxml"
	"github.com/IgorBayerl/ReportGenerator/dotcover_model/internal/model"
	"github.com/IgorBayerl/ReportGenerator/dotcover_model/internal/parser"
)

// maxLineNumber bounds Line and EndLine, since the per-file line arrays are sized by them.
const maxLineNumber = 1 << 24

// statement is a validated <Statement> record. Lines are 1-based and inclusive.
type statement struct {
	fileIndex string
	startLine int
	endLine   int
	visited   bool
}

func parseStatement(raw inputxml.DotCoverStatementXML) (statement, error) {
	if raw.FileIndex == "" {
		return statement{}, fmt.Errorf("%w: Statement/@FileIndex", parser.ErrMissingAttribute)
	}
	if raw.Covered == nil {
		return statement{}, fmt.Errorf("%w: Statement/@Covered", parser.ErrMissingAttribute)
	}
	startLine, err := parseLineNumber("Line", raw.Line)
	if err != nil {
		return statement{}, err
	}
	endLine, err := parseLineNumber("EndLine", raw.EndLine)
	if err != nil {
		return statement{}, err
	}

	return statement{
		fileIndex: raw.FileIndex,
		startLine: startLine,
		endLine:   endLine,
		visited:   strings.EqualFold(strings.TrimSpace(*raw.Covered), "true"),
	}, nil
}

func parseLineNumber(attr, value string) (int, error) {
	if value == "" {
		return 0, fmt.Errorf("%w: Statement/@%s", parser.ErrMissingAttribute, attr)
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%w: Statement/@%s=%q: %v", parser.ErrMalformedNumber, attr, value, err)
	}
	if n < 1 {
		return 0, fmt.Errorf("%w: Statement/@%s=%q is not a line number", parser.ErrMalformedNumber, attr, value)
	}
	if n > maxLineNumber {
		return 0, fmt.Errorf("%w: Statement/@%s=%q exceeds %d", parser.ErrMalformedNumber, attr, value, maxLineNumber)
	}
	return n, nil
}

// resolveLineCoverage merges statements into per-line arrays of length max(endLine)+1.
// Lines outside every statement keep model.NoCoverage / model.NotCoverable. A line is
// covered as soon as one visited statement spans it, whatever the statement order.
func resolveLineCoverage(statements []statement) ([]int, []model.LineVisitStatus) {
	if len(statements) == 0 {
		return []int{}, []model.LineVisitStatus{}
	}

	maxLine := 0
	for _, s := range statements {
		if s.endLine > maxLine {
			maxLine = s.endLine
		}
	}

	coverage := make([]int, maxLine+1)
	for i := range coverage {
		coverage[i] = model.NoCoverage
	}
	lineVisitStatus := make([]model.LineVisitStatus, maxLine+1)

	for _, s := range statements {
		mergeStatement(coverage, lineVisitStatus, s)
	}
	return coverage, lineVisitStatus
}

func mergeStatement(coverage []int, lineVisitStatus []model.LineVisitStatus, s statement) {
	visits := 0
	if s.visited {
		visits = 1
	}

	for line := s.startLine; line <= s.endLine; line++ {
		if coverage[line] == model.NoCoverage {
			coverage[line] = visits
		} else {
			coverage[line] = min(coverage[line]+visits, 1)
		}

		if lineVisitStatus[line] == model.Covered || s.visited {
			lineVisitStatus[line] = model.Covered
		} else {
			lineVisitStatus[line] = model.NotCovered
		}
	}
}
