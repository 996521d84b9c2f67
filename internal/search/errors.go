package search

import "fmt"

// ParseError reports a required attribute that is missing or malformed.
// It aborts the extraction.
type ParseError struct {
	Element string
	Attr    string
	Value   string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("<%s> missing required attribute %q", e.Element, e.Attr)
	}
	return fmt.Sprintf("<%s> invalid %s %q: %v", e.Element, e.Attr, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
