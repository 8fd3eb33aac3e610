// Package filtering implements the "+Include*" / "-Exclude*" name filters used to
// restrict which assemblies, classes and files end up in the coverage model.
package filtering

import (
	"fmt"
	"regexp"
	"strings"
)

// IFilter decides whether a named element is part of the report.
type IFilter interface {
	IsElementIncludedInReport(name string) bool
	HasCustomFilters() bool
}

// DefaultFilter matches names against wildcard patterns. Excludes win over includes;
// without include patterns every name not excluded is included.
type DefaultFilter struct {
	includeFilters []*regexp.Regexp
	excludeFilters []*regexp.Regexp
}

// NewDefaultFilter compiles the given filters. With pathFilters set, '/' and '\' in a
// pattern match either separator, so file filters work for reports from any OS.
func NewDefaultFilter(filters []string, pathFilters bool) (*DefaultFilter, error) {
	df := &DefaultFilter{}
	var errs []string

	for _, f := range filters {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if f[0] != '+' && f[0] != '-' {
			errs = append(errs, fmt.Sprintf("filter '%s' must start with '+' or '-'", f))
			continue
		}
		re, err := compileFilter(f[1:], pathFilters)
		if err != nil {
			errs = append(errs, fmt.Sprintf("invalid filter '%s': %v", f, err))
			continue
		}
		if f[0] == '+' {
			df.includeFilters = append(df.includeFilters, re)
		} else {
			df.excludeFilters = append(df.excludeFilters, re)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("error creating filter: %s", strings.Join(errs, "; "))
	}
	return df, nil
}

// IncludeAll returns a filter without patterns.
func IncludeAll() *DefaultFilter {
	return &DefaultFilter{}
}

func (df *DefaultFilter) IsElementIncludedInReport(name string) bool {
	for _, re := range df.excludeFilters {
		if re.MatchString(name) {
			return false
		}
	}
	if len(df.includeFilters) == 0 {
		return true
	}
	for _, re := range df.includeFilters {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

func (df *DefaultFilter) HasCustomFilters() bool {
	return len(df.includeFilters) > 0 || len(df.excludeFilters) > 0
}

// compileFilter turns a wildcard pattern into an anchored, case-insensitive regex.
// '*' matches any run of characters, '?' a single one.
func compileFilter(pattern string, pathFilters bool) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, fmt.Errorf("empty pattern")
	}

	var sb strings.Builder
	sb.WriteString("(?i)^")
	for _, r := range pattern {
		switch {
		case r == '*':
			sb.WriteString(".*")
		case r == '?':
			sb.WriteString(".")
		case pathFilters && (r == '/' || r == '\\'):
			sb.WriteString(`[/\\]`)
		default:
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	sb.WriteString("$")

	return regexp.Compile(sb.String())
}
