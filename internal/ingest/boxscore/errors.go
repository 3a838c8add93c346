package boxscore

import (
	"errors"
	"fmt"
)

// ParseErrorKind classifies the fatal ingestion failures. Any of these abort
// the whole ingestion before a single persistence side effect.
type ParseErrorKind int

const (
	// TitleFormat means the title did not match the "<team> <score> at
	// <team> <score>" pattern.
	TitleFormat ParseErrorKind = iota
	// MissingTitle means the export carried no title at all.
	MissingTitle
	// MissingStatsTable means the export carried no stats table.
	MissingStatsTable
)

func (k ParseErrorKind) String() string {
	switch k {
	case TitleFormat:
		return "title format"
	case MissingTitle:
		return "missing title"
	case MissingStatsTable:
		return "missing stats table"
	}
	return "unknown"
}

// ParseError is a fatal box-score parse failure.
type ParseError struct {
	Kind   ParseErrorKind
	Detail string
}

func (e *ParseError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("box score parse error: %s", e.Kind)
	}
	return fmt.Sprintf("box score parse error: %s: %s", e.Kind, e.Detail)
}

// IsParseError reports whether err is (or wraps) a ParseError of the given kind.
func IsParseError(err error, kind ParseErrorKind) bool {
	var pe *ParseError
	return errors.As(err, &pe) && pe.Kind == kind
}
