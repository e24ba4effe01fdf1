package cmd

import (
	"errors"

	"github.com/elentirmo/agraph-java-client/packages/http"
)

// Exit codes for the agraph CLI
const (
	// ExitSuccess indicates the command succeeded
	ExitSuccess = 0

	// ExitFailure indicates a request failed on the server
	ExitFailure = 1

	// ExitDataError indicates the server rejected a query or data as malformed or
	// in an unsupported format
	ExitDataError = 2

	// ExitConfigError indicates a configuration error
	ExitConfigError = 3

	// ExitNetworkError indicates a network/connection error
	ExitNetworkError = 4

	// ExitAuthError indicates the server refused the credentials
	ExitAuthError = 5

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)

// configError marks failures to load or apply configuration.
type configError struct{ err error }

func (e *configError) Error() string { return "configuration: " + e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

// exitCodeFor maps an error to the process exit code.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var cfgErr *configError
	if errors.As(err, &cfgErr) {
		return ExitConfigError
	}

	var e *http.Error
	if !errors.As(err, &e) {
		return ExitFailure
	}
	switch e.Kind {
	case http.KindUnauthorized:
		return ExitAuthError
	case http.KindMalformedData, http.KindUnsupportedFormat:
		return ExitDataError
	case http.KindRequestFailed:
		if e.StatusCode == 0 {
			return ExitNetworkError
		}
		return ExitFailure
	default:
		return ExitFailure
	}
}
