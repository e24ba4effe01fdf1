package http

import (
	"io"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/elentirmo/agraph-java-client/packages/protocol"
	"github.com/elentirmo/agraph-java-client/packages/rdf"
)

// Handler consumes a successful response of a known MIME type.
type Handler interface {
	// MIMEType is the media type the handler expects; it is also sent as Accept.
	MIMEType() string
	// Handle parses the response. A response of another MIME type fails with a
	// protocol error before the body is read.
	Handle(resp *Response) error
	// ReleaseConnection reports whether the client should release the connection
	// once Handle returns. Streaming handlers return false and release it themselves.
	ReleaseConnection() bool
}

func checkMIMEType(expected string, resp *Response) error {
	got := resp.MIMEType()
	if got != strings.ToLower(expected) {
		return protocolErrorf("unexpected response MIME type: %s", got)
	}
	return nil
}

// StringHandler reads a text/plain body. Trailing newlines are dropped.
type StringHandler struct {
	result string
}

func NewStringHandler() *StringHandler {
	return &StringHandler{}
}

func (h *StringHandler) MIMEType() string        { return protocol.MIMEText }
func (h *StringHandler) ReleaseConnection() bool { return true }

func (h *StringHandler) Handle(resp *Response) error {
	if err := checkMIMEType(h.MIMEType(), resp); err != nil {
		return err
	}
	s, err := resp.BodyString()
	if err != nil {
		return err
	}
	h.result = strings.TrimRight(s, "\r\n")
	return nil
}

func (h *StringHandler) Result() string {
	return h.result
}

// Lines splits the result on newlines. An empty result has no lines.
func (h *StringHandler) Lines() []string {
	return splitLines(h.result)
}

func splitLines(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}

// BooleanHandler parses a boolean query result, either text/boolean or the
// SPARQL JSON results format.
type BooleanHandler struct {
	mimeType string
	result   bool
}

// NewBooleanHandler expects text/boolean.
func NewBooleanHandler() *BooleanHandler {
	return &BooleanHandler{mimeType: protocol.MIMEBoolean}
}

// NewBooleanJSONHandler expects application/sparql-results+json.
func NewBooleanJSONHandler() *BooleanHandler {
	return &BooleanHandler{mimeType: protocol.MIMESPARQLJSON}
}

func (h *BooleanHandler) MIMEType() string        { return h.mimeType }
func (h *BooleanHandler) ReleaseConnection() bool { return true }

func (h *BooleanHandler) Handle(resp *Response) error {
	if err := checkMIMEType(h.mimeType, resp); err != nil {
		return err
	}
	body, err := resp.ReadAll()
	if err != nil {
		return err
	}

	if h.mimeType == protocol.MIMESPARQLJSON {
		if err := validateSPARQLResults("boolean query result", body); err != nil {
			return err
		}
		v := gjson.GetBytes(body, "boolean")
		if v.Type != gjson.True && v.Type != gjson.False {
			return protocolErrorf("malformed boolean query result: missing boolean field")
		}
		h.result = v.Bool()
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(string(body))) {
	case "true":
		h.result = true
	case "false":
		h.result = false
	default:
		return protocolErrorf("malformed boolean query result: %q", strings.TrimSpace(string(body)))
	}
	return nil
}

func (h *BooleanHandler) Result() bool {
	return h.result
}

// TupleHandler parses a SPARQL JSON results document into rows of bindings.
type TupleHandler struct {
	result *rdf.TupleResult
}

func NewTupleHandler() *TupleHandler {
	return &TupleHandler{}
}

func (h *TupleHandler) MIMEType() string        { return protocol.MIMESPARQLJSON }
func (h *TupleHandler) ReleaseConnection() bool { return true }

func (h *TupleHandler) Handle(resp *Response) error {
	if err := checkMIMEType(h.MIMEType(), resp); err != nil {
		return err
	}
	body, err := resp.ReadAll()
	if err != nil {
		return err
	}
	result, err := ParseTupleResult(body)
	if err != nil {
		return err
	}
	h.result = result
	return nil
}

func (h *TupleHandler) Result() *rdf.TupleResult {
	return h.result
}

// ParseTupleResult decodes a SPARQL 1.1 JSON results document. The document is
// validated against the results schema before any binding is read.
func ParseTupleResult(body []byte) (*rdf.TupleResult, error) {
	if !gjson.ValidBytes(body) {
		return nil, protocolErrorf("malformed tuple query result: invalid JSON")
	}
	if err := validateSPARQLResults("tuple query result", body); err != nil {
		return nil, err
	}
	doc := gjson.ParseBytes(body)

	result := &rdf.TupleResult{Vars: []string{}, Rows: []rdf.BindingSet{}}
	for _, v := range doc.Get("head.vars").Array() {
		result.Vars = append(result.Vars, v.String())
	}

	bindings := doc.Get("results.bindings")
	if !bindings.IsArray() {
		return nil, protocolErrorf("malformed tuple query result: missing results.bindings")
	}

	var parseErr error
	bindings.ForEach(func(_, row gjson.Result) bool {
		set := make(rdf.BindingSet)
		row.ForEach(func(name, term gjson.Result) bool {
			v, err := parseTerm(term)
			if err != nil {
				parseErr = err
				return false
			}
			set[name.String()] = v
			return true
		})
		if parseErr != nil {
			return false
		}
		result.Rows = append(result.Rows, set)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return result, nil
}

func parseTerm(term gjson.Result) (rdf.Value, error) {
	var typ, value, datatype, lang string
	term.ForEach(func(k, v gjson.Result) bool {
		switch k.String() {
		case "type":
			typ = v.String()
		case "value":
			value = v.String()
		case "datatype":
			datatype = v.String()
		case "xml:lang":
			lang = v.String()
		}
		return true
	})

	switch typ {
	case "uri":
		return rdf.IRI(value), nil
	case "bnode":
		return rdf.BlankNode(value), nil
	case "literal", "typed-literal":
		return rdf.Literal{Label: value, Datatype: rdf.IRI(datatype), Lang: lang}, nil
	default:
		return nil, protocolErrorf("malformed tuple query result: unknown term type %q", typ)
	}
}

// ErrorHandler reads an error body of any type into an ErrorInfo. It never fails.
type ErrorHandler struct {
	result ErrorInfo
}

func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

func (h *ErrorHandler) MIMEType() string        { return protocol.MIMEText }
func (h *ErrorHandler) ReleaseConnection() bool { return true }

func (h *ErrorHandler) Handle(resp *Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		h.result = ErrorInfo{Message: FallbackErrorMessage}
		return nil
	}
	h.result = ParseErrorInfo(string(body))
	return nil
}

func (h *ErrorHandler) Result() ErrorInfo {
	return h.result
}

const maxErrorBody = 1 << 20

// StreamHandler hands the open response body to the caller, who must Close it to
// release the connection.
type StreamHandler struct {
	mimeType string
	stream   io.ReadCloser
}

func NewStreamHandler(mimeType string) *StreamHandler {
	return &StreamHandler{mimeType: mimeType}
}

func (h *StreamHandler) MIMEType() string        { return h.mimeType }
func (h *StreamHandler) ReleaseConnection() bool { return false }

func (h *StreamHandler) Handle(resp *Response) error {
	if err := checkMIMEType(h.mimeType, resp); err != nil {
		return err
	}
	h.stream = &responseStream{resp: resp}
	return nil
}

// Result is the body stream; nil until Handle succeeds.
func (h *StreamHandler) Result() io.ReadCloser {
	return h.stream
}

type responseStream struct {
	resp *Response
}

func (s *responseStream) Read(p []byte) (int, error) {
	return s.resp.Body.Read(p)
}

func (s *responseStream) Close() error {
	s.resp.Release()
	return nil
}
