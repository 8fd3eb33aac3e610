package parser

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrNoParser is returned when no registered parser understands a report file.
var ErrNoParser = errors.New("no suitable parser found")

var (
	registryMu        sync.RWMutex
	registeredParsers []IParser
)

// RegisterParser makes a parser available to FindParserForFile.
// Parser packages call it from init().
func RegisterParser(p IParser) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registeredParsers = append(registeredParsers, p)
}

// FindParserForFile returns the first registered parser whose SupportsFile accepts the file.
func FindParserForFile(filePath string) (IParser, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	for _, p := range registeredParsers {
		if p.SupportsFile(filePath) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w for file: %s", ErrNoParser, filePath)
}

// ParseFile detects the report format of filePath and parses it.
func ParseFile(filePath string, config ParserConfig) (*ParserResult, error) {
	p, err := FindParserForFile(filePath)
	if err != nil {
		return nil, err
	}
	slog.Debug("Parsing coverage report", "file", filePath, "parser", p.Name())
	result, err := p.Parse(filePath, config)
	if err != nil {
		return nil, fmt.Errorf("%s parser failed on %s: %w", p.Name(), filePath, err)
	}
	return result, nil
}
