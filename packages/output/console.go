package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/elentirmo/agraph-java-client/packages/ping"
	"github.com/elentirmo/agraph-java-client/packages/rdf"
)

// maxCellWidth caps table cells so long literals do not wreck the layout.
const maxCellWidth = 60

type ConsoleFormatter struct {
	writer  io.Writer
	verbose bool
	noColor bool
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		color.NoColor = true
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

func (f *ConsoleFormatter) FormatHeader(version string) {
	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(f.writer, "%s %s\n", bold("agraph"), version)
}

func (f *ConsoleFormatter) FormatMessage(msg string) {
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(f.writer, "%s %s\n", green("✓"), msg)
}

func (f *ConsoleFormatter) FormatList(title string, items []string) {
	bold := color.New(color.Bold).SprintFunc()
	if title != "" {
		fmt.Fprintf(f.writer, "%s\n", bold(title))
	}
	if len(items) == 0 {
		yellow := color.New(color.FgYellow).SprintFunc()
		fmt.Fprintf(f.writer, "  %s\n", yellow("(none)"))
		return
	}
	for _, item := range items {
		fmt.Fprintf(f.writer, "  %s\n", item)
	}
}

func (f *ConsoleFormatter) FormatValue(name string, value any) {
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(f.writer, "%s: %s\n", cyan(name), formatValue(value, 0))
}

// FormatTuples prints a result as an aligned table.
func (f *ConsoleFormatter) FormatTuples(result *rdf.TupleResult) {
	bold := color.New(color.Bold).SprintFunc()
	if result == nil || len(result.Vars) == 0 {
		fmt.Fprintf(f.writer, "(no results)\n")
		return
	}

	widths := make([]int, len(result.Vars))
	cells := make([][]string, len(result.Rows))
	for i, v := range result.Vars {
		widths[i] = len(v)
	}
	for r, row := range result.Rows {
		cells[r] = make([]string, len(result.Vars))
		for i, v := range result.Vars {
			cell := formatValue(row.Value(v), maxCellWidth)
			cells[r][i] = cell
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	header := make([]string, len(result.Vars))
	for i, v := range result.Vars {
		header[i] = pad(v, widths[i])
	}
	fmt.Fprintf(f.writer, "%s\n", bold(strings.TrimRight(strings.Join(header, "  "), " ")))
	for _, row := range cells {
		line := make([]string, len(row))
		for i, c := range row {
			line[i] = pad(c, widths[i])
		}
		fmt.Fprintf(f.writer, "%s\n", strings.TrimRight(strings.Join(line, "  "), " "))
	}
	fmt.Fprintf(f.writer, "\n%d rows\n", result.Len())
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func (f *ConsoleFormatter) FormatPing(result ping.Result) {
	red := color.New(color.FgRed).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	if result.Err != nil {
		fmt.Fprintf(f.writer, "  %s seq=%d %s\n", red("x"), result.Seq, red(result.Err.Error()))
		return
	}
	if !f.verbose {
		return
	}
	fmt.Fprintf(f.writer, "  seq=%d version=%s %s\n", result.Seq, result.Version, cyan(formatDuration(result.Latency)))
}

func (f *ConsoleFormatter) FormatPingSummary(s *ping.Summary) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	fmt.Fprintf(f.writer, "\n%s\n", bold("Ping summary"))
	fmt.Fprintf(f.writer, "  Requests: %d (%s, ", s.Total, green(fmt.Sprintf("%d ok", s.Success)))
	if s.Errors > 0 {
		fmt.Fprintf(f.writer, "%s)\n", red(fmt.Sprintf("%d failed", s.Errors)))
	} else {
		fmt.Fprintf(f.writer, "0 failed)\n")
	}
	fmt.Fprintf(f.writer, "  Duration: %s (%.1f req/s)\n", formatDuration(s.Duration), s.RPS)
	if s.Success > 0 {
		fmt.Fprintf(f.writer, "  Latency:  min %s  p50 %s  p95 %s  p99 %s  max %s\n",
			formatDuration(s.Min), formatDuration(s.P50), formatDuration(s.P95),
			formatDuration(s.P99), formatDuration(s.Max))
	}
	if len(s.ErrorKinds) > 0 {
		kinds := make([]string, 0, len(s.ErrorKinds))
		for k := range s.ErrorKinds {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
		for _, k := range kinds {
			fmt.Fprintf(f.writer, "  %s %s: %d\n", red("→"), k, s.ErrorKinds[k])
		}
	}
}

func (f *ConsoleFormatter) FormatError(err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(f.writer, "%s %v\n", red("Error:"), err)
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%.2fms", float64(d.Microseconds())/1000)
	default:
		return d.Round(time.Millisecond).String()
	}
}
