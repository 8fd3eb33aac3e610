package parser

import "errors"

// Errors returned by parsers when a report violates the structure they rely on.
// They are wrapped with the offending record; test with errors.Is.
var (
	ErrNilReport        = errors.New("report is nil")
	ErrMissingAttribute = errors.New("required attribute missing")
	ErrMalformedNumber  = errors.New("malformed number")
	ErrUnknownFileIndex = errors.New("statement references unknown file index")
)
