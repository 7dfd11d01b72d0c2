package table

import "errors"

// Assembly errors. These surface to the caller as descriptive messages:
// authoring mistakes are rejected explicitly, never silently defaulted.
var (
	ErrUnknownStyle            = errors.New("unknown table style")
	ErrHeaderCountMismatch     = errors.New("header count mismatch")
	ErrExpressionCountMismatch = errors.New("expression count mismatch")
	ErrExpectedList            = errors.New("expected a list of records")
)
