package collector

import "fmt"

// ParseError marks a result artifact that could not be decoded. It keeps
// the offending path so the CLI can report it and exit with the parse
// failure code.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse result file %q: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
