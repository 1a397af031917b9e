package codetest

import (
	"errors"
	"strings"
)

// Sentinel errors for the failure classes of both jobs.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	_, err := loader.Load(ctx, cfg)
//	if errors.Is(err, codetest.ErrInputUnreadable) {
//	    // places or people file could not be opened
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrConnectionFailed indicates database connection failed.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrUnsupportedAuthMethod indicates the requested authentication method is not supported.
	ErrUnsupportedAuthMethod = errors.New("unsupported authentication method")

	// ErrInputUnreadable indicates an input file is missing or cannot be read.
	ErrInputUnreadable = errors.New("input file unreadable")

	// ErrInvalidInput indicates an input file is not a well-formed table with the expected header.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStoreWrite indicates an insert or commit was rejected by the store.
	ErrStoreWrite = errors.New("store write failed")

	// ErrQueryFailed indicates the summary query failed.
	ErrQueryFailed = errors.New("query failed")

	// ErrOutputWrite indicates the summary file could not be written.
	ErrOutputWrite = errors.New("output write failed")
)

var usageErrorPatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"required flag",
	"invalid argument",
	"flag needs an argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig), errors.Is(err, ErrUnsupportedAuthMethod):
		return ExitConfigError
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrInputUnreadable):
		return ExitInputError
	case errors.Is(err, ErrInvalidInput):
		return ExitInvalidInput
	case errors.Is(err, ErrStoreWrite):
		return ExitStoreWriteError
	case errors.Is(err, ErrQueryFailed):
		return ExitQueryError
	case errors.Is(err, ErrOutputWrite):
		return ExitOutputError
	}

	errStr := err.Error()

	// Cobra reports flag and argument misuse as plain errors
	for _, pattern := range usageErrorPatterns {
		if strings.Contains(errStr, pattern) {
			return ExitUsageError
		}
	}

	// Check for common connection error patterns
	if strings.Contains(errStr, "failed to connect") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	return ExitGeneralError
}
