package ifx

import "errors"

// Common errors reported while reading IFX documents
var (
	// ErrMalformedHeaderLine indicates a non-blank header line without a '=' separator.
	ErrMalformedHeaderLine = errors.New("header line has no '=' separator")
	// ErrMissingColumns indicates the header ended without the mandatory column declaration.
	ErrMissingColumns = errors.New("header has no column declaration")
	// ErrUnterminatedHeader indicates the input ended before a [Data] marker line.
	ErrUnterminatedHeader = errors.New("input ended before [Data] marker")
	// ErrEmptyDataSection is returned under RequireRows when the data section has no rows.
	ErrEmptyDataSection = errors.New("data section has no rows")

	// ErrConfigValidation is returned when configuration validation fails.
	ErrConfigValidation = errors.New("configuration validation failed")
)
