// Package output provides formatters for displaying command results.
//
// Supported output formats:
//   - Console: Human-readable colored terminal output
//   - JSON: Machine-readable JSON output, one document per call
//
// Both formatters implement the Formatter interface.
package output
