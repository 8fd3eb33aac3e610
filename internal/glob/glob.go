// Package glob expands report file patterns into file paths.
//
// Supported syntax, matched case-insensitively per path segment:
//   - `?`: any single character of a name.
//   - `*`: zero or more characters of a name.
//   - `**`: zero or more directories.
//   - `[...]`: a set of characters, e.g. `[abc]` or `[a-z]`.
//   - `{a,b,...}`: any of the groups; groups may contain separators and nest.
package glob

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/IgorBayerl/ReportGenerator/dotcover_model/internal/filesystem"
)

const globCharacters = "*?["

var (
	// regexSpecialChars are escaped when a segment is turned into a regex.
	regexSpecialChars = map[rune]bool{
		'[': true, '\\': true, '^': true, '$': true, '.': true, '|': true,
		'?': true, '*': true, '+': true, '(': true, ')': true, '{': true, '}': true,
	}

	segmentCache sync.Map // segment pattern -> *regexp.Regexp
)

// Glob is a pattern bound to the filesystem it is expanded on.
type Glob struct {
	Pattern string
	fs      filesystem.Filesystem
}

func NewGlob(pattern string, fsys filesystem.Filesystem) *Glob {
	return &Glob{Pattern: pattern, fs: fsys}
}

func (g *Glob) String() string {
	return g.Pattern
}

// Expand returns the absolute paths of all regular files matching the pattern, sorted.
// Unreadable directories are skipped; only a malformed pattern is an error.
func (g *Glob) Expand() ([]string, error) {
	patterns, err := ungroup(g.Pattern)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var files []string
	for _, pattern := range patterns {
		matches, err := g.expandPattern(pattern)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files, nil
}

func (g *Glob) expandPattern(pattern string) ([]string, error) {
	abs, err := g.fs.Abs(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid path pattern '%s': %w", pattern, err)
	}

	if !strings.ContainsAny(abs, globCharacters) {
		info, err := g.fs.Stat(abs)
		if err != nil || info.IsDir() {
			return nil, nil
		}
		return []string{abs}, nil
	}

	segments := strings.Split(filepath.ToSlash(abs), "/")
	start := 0
	for start < len(segments)-1 && !strings.ContainsAny(segments[start], globCharacters) {
		start++
	}
	dirs := []string{baseDirectory(segments[:start])}

	for i := start; i < len(segments); i++ {
		segment := segments[i]
		last := i == len(segments)-1
		switch {
		case segment == "":
			continue
		case segment == "**" && last:
			return g.matchEntries(g.descendants(dirs), "*", false)
		case segment == "**":
			dirs = g.descendants(dirs)
		case last:
			return g.matchEntries(dirs, segment, false)
		default:
			if dirs, err = g.matchEntries(dirs, segment, true); err != nil {
				return nil, err
			}
		}
	}
	return nil, nil
}

// baseDirectory joins the literal leading segments of an absolute slash path.
func baseDirectory(segments []string) string {
	base := strings.Join(segments, "/")
	if base == "" || strings.HasSuffix(base, ":") {
		base += "/"
	}
	return filepath.FromSlash(base)
}

// matchEntries returns the entries of dirs whose names match segment, either
// directories or regular files.
func (g *Glob) matchEntries(dirs []string, segment string, wantDirs bool) ([]string, error) {
	re, err := segmentRegex(segment)
	if err != nil {
		return nil, err
	}

	var matches []string
	for _, dir := range dirs {
		entries, err := g.fs.ReadDir(dir)
		if err != nil {
			slog.Debug("Skipping unreadable directory", "directory", dir, "error", err)
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() != wantDirs || !re.MatchString(entry.Name()) {
				continue
			}
			matches = append(matches, filepath.Join(dir, entry.Name()))
		}
	}
	return matches, nil
}

// descendants returns dirs plus every directory below them.
func (g *Glob) descendants(dirs []string) []string {
	seen := make(map[string]struct{})
	var out []string
	var walk func(dir string)
	walk = func(dir string) {
		if _, ok := seen[dir]; ok {
			return
		}
		seen[dir] = struct{}{}
		out = append(out, dir)

		entries, err := g.fs.ReadDir(dir)
		if err != nil {
			slog.Debug("Skipping unreadable directory", "directory", dir, "error", err)
			return
		}
		for _, entry := range entries {
			if entry.IsDir() {
				walk(filepath.Join(dir, entry.Name()))
			}
		}
	}
	for _, dir := range dirs {
		walk(dir)
	}
	return out
}

func segmentRegex(segment string) (*regexp.Regexp, error) {
	if cached, ok := segmentCache.Load(segment); ok {
		return cached.(*regexp.Regexp), nil
	}
	pattern, err := globToRegexPattern(segment)
	if err != nil {
		return nil, err
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to compile regex '%s' from glob segment '%s': %w", pattern, segment, err)
	}
	segmentCache.Store(segment, re)
	return re, nil
}

// globToRegexPattern converts one path segment into an anchored, case-insensitive regex.
func globToRegexPattern(segment string) (string, error) {
	var regex strings.Builder
	regex.WriteString("(?i)^")

	inCharClass := false
	for _, r := range segment {
		if inCharClass {
			if r == ']' {
				inCharClass = false
			}
			regex.WriteRune(r)
			continue
		}

		switch r {
		case '*':
			regex.WriteString(".*")
		case '?':
			regex.WriteRune('.')
		case '[':
			inCharClass = true
			regex.WriteRune(r)
		default:
			if regexSpecialChars[r] {
				regex.WriteRune('\\')
			}
			regex.WriteRune(r)
		}
	}

	if inCharClass {
		return "", fmt.Errorf("unterminated character class in glob segment: %s", segment)
	}
	regex.WriteRune('$')
	return regex.String(), nil
}

// ungroup performs brace expansion: "{a,b}c" -> ["ac", "bc"]. Groups may nest.
func ungroup(pattern string) ([]string, error) {
	if !strings.ContainsAny(pattern, "{}") {
		return []string{pattern}, nil
	}

	level := 0
	open := -1
	for i, r := range pattern {
		switch r {
		case '{':
			if level == 0 {
				open = i
			}
			level++
		case '}':
			level--
			if level < 0 {
				return nil, fmt.Errorf("unbalanced braces in pattern: %s", pattern)
			}
			if level > 0 {
				continue
			}

			prefix, suffix := pattern[:open], pattern[i+1:]
			suffixes, err := ungroup(suffix)
			if err != nil {
				return nil, err
			}
			var results []string
			for _, part := range splitGroup(pattern[open+1 : i]) {
				heads, err := ungroup(prefix + part)
				if err != nil {
					return nil, err
				}
				for _, h := range heads {
					for _, s := range suffixes {
						results = append(results, h+s)
					}
				}
			}
			return results, nil
		}
	}
	return nil, fmt.Errorf("unbalanced braces in pattern: %s", pattern)
}

// splitGroup splits the content of a brace group at its top-level commas.
func splitGroup(content string) []string {
	var parts []string
	var part strings.Builder
	level := 0
	for _, r := range content {
		switch {
		case r == '{':
			level++
		case r == '}':
			level--
		case r == ',' && level == 0:
			parts = append(parts, part.String())
			part.Reset()
			continue
		}
		part.WriteRune(r)
	}
	return append(parts, part.String())
}
