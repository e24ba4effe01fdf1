package http

import (
	"strings"
)

// ErrorType is the error classification the server puts at the start of an error body.
type ErrorType string

const (
	ErrorTypeUnknown                  ErrorType = ""
	ErrorTypeMalformedQuery           ErrorType = "MALFORMED QUERY"
	ErrorTypeMalformedData            ErrorType = "MALFORMED DATA"
	ErrorTypeUnsupportedQueryLanguage ErrorType = "UNSUPPORTED QUERY LANGUAGE"
	ErrorTypeUnsupportedFileFormat    ErrorType = "UNSUPPORTED FILE FORMAT"
	ErrorTypePreconditionFailed       ErrorType = "PRECONDITION FAILED"
	ErrorTypeIOError                  ErrorType = "IO ERROR"
	ErrorTypeQueryTimeout             ErrorType = "QUERY TIMEOUT"
)

var knownErrorTypes = []ErrorType{
	ErrorTypeMalformedQuery,
	ErrorTypeMalformedData,
	ErrorTypeUnsupportedQueryLanguage,
	ErrorTypeUnsupportedFileFormat,
	ErrorTypePreconditionFailed,
	ErrorTypeIOError,
	ErrorTypeQueryTimeout,
}

// FallbackErrorMessage replaces the message when the error body cannot be read.
const FallbackErrorMessage = "unable to retrieve error info from server"

// ErrorInfo is the server's description of a failed request.
type ErrorInfo struct {
	Type    ErrorType
	Message string
}

func (i ErrorInfo) String() string {
	if i.Type == ErrorTypeUnknown {
		return i.Message
	}
	return string(i.Type) + ": " + i.Message
}

// Kind maps the server classification onto the client's error kinds.
func (i ErrorInfo) Kind() ErrorKind {
	switch i.Type {
	case ErrorTypeMalformedQuery, ErrorTypeMalformedData:
		return KindMalformedData
	case ErrorTypeUnsupportedQueryLanguage, ErrorTypeUnsupportedFileFormat:
		return KindUnsupportedFormat
	default:
		return KindRequestFailed
	}
}

// ParseErrorInfo extracts the error classification and message from a response body
// of the form "<TYPE>: <message>". It never fails: a body without a known marker keeps
// its text with an unknown type, and an empty body yields FallbackErrorMessage.
// The server's real classification is lost in both cases.
func ParseErrorInfo(body string) ErrorInfo {
	body = strings.TrimSpace(body)
	if body == "" {
		return ErrorInfo{Message: FallbackErrorMessage}
	}

	if head, rest, ok := strings.Cut(body, ":"); ok {
		head = strings.ToUpper(strings.TrimSpace(head))
		for _, t := range knownErrorTypes {
			if head == string(t) {
				return ErrorInfo{Type: t, Message: strings.TrimSpace(rest)}
			}
		}
	}

	return ErrorInfo{Message: body}
}
