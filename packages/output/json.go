package output

import (
	"encoding/json"
	"errors"
	"io"
	"os"

	"github.com/elentirmo/agraph-java-client/packages/http"
	"github.com/elentirmo/agraph-java-client/packages/ping"
	"github.com/elentirmo/agraph-java-client/packages/rdf"
)

// JSONTerm is one RDF term in SPARQL JSON results form.
type JSONTerm struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Datatype string `json:"datatype,omitempty"`
	Lang     string `json:"xml:lang,omitempty"`
}

// JSONTuples is a tuple result.
type JSONTuples struct {
	Vars []string              `json:"vars"`
	Rows []map[string]JSONTerm `json:"rows"`
}

// JSONPingSummary is the summary of a ping run, durations in milliseconds.
type JSONPingSummary struct {
	Total      int64            `json:"total"`
	Success    int64            `json:"success"`
	Errors     int64            `json:"errors"`
	ErrorKinds map[string]int64 `json:"errorKinds,omitempty"`
	RPS        float64          `json:"rps"`
	Duration   float64          `json:"duration"`
	P50        float64          `json:"p50"`
	P95        float64          `json:"p95"`
	P99        float64          `json:"p99"`
	Min        float64          `json:"min"`
	Max        float64          `json:"max"`
}

// JSONError describes a failed command.
type JSONError struct {
	Error      string `json:"error"`
	Kind       string `json:"kind,omitempty"`
	StatusCode int    `json:"statusCode,omitempty"`
}

// JSONFormatter writes one JSON document per call.
type JSONFormatter struct {
	writer io.Writer
}

type JSONOption func(*JSONFormatter)

func NewJSONFormatter(opts ...JSONOption) *JSONFormatter {
	f := &JSONFormatter{writer: os.Stdout}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func WithJSONWriter(w io.Writer) JSONOption {
	return func(f *JSONFormatter) {
		f.writer = w
	}
}

func (f *JSONFormatter) write(v any) {
	enc := json.NewEncoder(f.writer)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func (f *JSONFormatter) FormatHeader(version string) {
	f.write(map[string]string{"version": version})
}

func (f *JSONFormatter) FormatMessage(msg string) {
	f.write(map[string]string{"message": msg})
}

func (f *JSONFormatter) FormatList(title string, items []string) {
	if items == nil {
		items = []string{}
	}
	f.write(items)
}

func (f *JSONFormatter) FormatValue(name string, value any) {
	if v, ok := value.(rdf.Value); ok {
		value = toJSONTerm(v)
	}
	f.write(map[string]any{name: value})
}

func (f *JSONFormatter) FormatTuples(result *rdf.TupleResult) {
	out := JSONTuples{Vars: []string{}, Rows: []map[string]JSONTerm{}}
	if result != nil {
		out.Vars = append(out.Vars, result.Vars...)
		for _, row := range result.Rows {
			m := make(map[string]JSONTerm, len(row))
			for name, v := range row {
				m[name] = toJSONTerm(v)
			}
			out.Rows = append(out.Rows, m)
		}
	}
	f.write(out)
}

// FormatPing is silent; JSON output only carries the summary.
func (f *JSONFormatter) FormatPing(ping.Result) {}

func (f *JSONFormatter) FormatPingSummary(s *ping.Summary) {
	f.write(JSONPingSummary{
		Total:      s.Total,
		Success:    s.Success,
		Errors:     s.Errors,
		ErrorKinds: s.ErrorKinds,
		RPS:        s.RPS,
		Duration:   ms(s.Duration.Microseconds()),
		P50:        ms(s.P50.Microseconds()),
		P95:        ms(s.P95.Microseconds()),
		P99:        ms(s.P99.Microseconds()),
		Min:        ms(s.Min.Microseconds()),
		Max:        ms(s.Max.Microseconds()),
	})
}

func ms(us int64) float64 {
	return float64(us) / 1000
}

func (f *JSONFormatter) FormatError(err error) {
	out := JSONError{Error: err.Error()}
	if kind, ok := http.KindOf(err); ok {
		out.Kind = kind.String()
	}
	var e *http.Error
	if errors.As(err, &e) {
		out.StatusCode = e.StatusCode
	}
	f.write(out)
}

func toJSONTerm(v rdf.Value) JSONTerm {
	switch t := v.(type) {
	case rdf.Literal:
		return JSONTerm{Type: t.Kind().String(), Value: t.Label, Datatype: string(t.Datatype), Lang: t.Lang}
	default:
		return JSONTerm{Type: v.Kind().String(), Value: v.String()}
	}
}
