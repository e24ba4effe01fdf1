package output

import (
	"fmt"
	"strings"

	"github.com/elentirmo/agraph-java-client/packages/ping"
	"github.com/elentirmo/agraph-java-client/packages/rdf"
)

// Formatter renders command results.
type Formatter interface {
	FormatHeader(version string)
	FormatMessage(msg string)
	FormatList(title string, items []string)
	FormatValue(name string, value any)
	FormatTuples(result *rdf.TupleResult)
	FormatPing(result ping.Result)
	FormatPingSummary(summary *ping.Summary)
	FormatError(err error)
}

// New returns the formatter for name: "json", or console for anything else.
func New(name string, opts ...ConsoleOption) Formatter {
	switch strings.ToLower(name) {
	case "json":
		f := NewConsoleFormatter(opts...)
		return NewJSONFormatter(WithJSONWriter(f.writer))
	default:
		return NewConsoleFormatter(opts...)
	}
}

// formatValue formats a value for display, truncating long values
func formatValue(v any, maxLen int) string {
	switch val := v.(type) {
	case nil:
		return ""
	case []string:
		return fmt.Sprintf("[list with %d items]", len(val))
	case rdf.Value:
		return truncate(rdf.NTriples(val), maxLen)
	}
	return truncate(fmt.Sprintf("%v", v), maxLen)
}

func truncate(s string, maxLen int) string {
	if maxLen > 0 && len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	return s
}
