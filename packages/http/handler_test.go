package http

import (
	"bytes"
	"compress/gzip"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elentirmo/agraph-java-client/packages/rdf"
)

// trackingBody records whether it was read or closed.
type trackingBody struct {
	r      io.Reader
	read   bool
	closed bool
}

func (b *trackingBody) Read(p []byte) (int, error) {
	b.read = true
	return b.r.Read(p)
}

func (b *trackingBody) Close() error {
	b.closed = true
	return nil
}

func fakeResponse(contentType, body string) (*Response, *trackingBody) {
	tb := &trackingBody{r: strings.NewReader(body)}
	httpResp := &http.Response{
		StatusCode: http.StatusOK,
		Status:     "200 OK",
		Header:     http.Header{"Content-Type": {contentType}},
		Body:       tb,
	}
	return newResponse(NewRequest("GET", "http://localhost/x"), httpResp, quietLogger()), tb
}

func TestStringHandler(t *testing.T) {
	resp, _ := fakeResponse("text/plain; charset=UTF-8", "hello\r\n")
	h := NewStringHandler()

	require.NoError(t, h.Handle(resp))
	assert.Equal(t, "hello", h.Result())
	assert.True(t, h.ReleaseConnection())
}

func TestHandler_MIMEMismatchDoesNotReadBody(t *testing.T) {
	handlers := []Handler{
		NewStringHandler(),
		NewBooleanHandler(),
		NewBooleanJSONHandler(),
		NewTupleHandler(),
		NewStreamHandler("text/x-nquads"),
	}

	for _, h := range handlers {
		t.Run(h.MIMEType(), func(t *testing.T) {
			resp, body := fakeResponse("application/octet-stream", "data")

			err := h.Handle(resp)

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrProtocol))
			assert.Contains(t, err.Error(), "unexpected response MIME type: application/octet-stream")
			assert.False(t, body.read)
		})
	}
}

func TestBooleanHandler(t *testing.T) {
	tests := []struct {
		name    string
		handler *BooleanHandler
		ct      string
		body    string
		want    bool
		wantErr bool
	}{
		{"text true", NewBooleanHandler(), "text/boolean", "true", true, false},
		{"text false with newline", NewBooleanHandler(), "text/boolean", "false\n", false, false},
		{"text upper case", NewBooleanHandler(), "text/boolean", "TRUE", true, false},
		{"text garbage", NewBooleanHandler(), "text/boolean", "maybe", false, true},
		{"json true", NewBooleanJSONHandler(), "application/sparql-results+json", `{"head":{},"boolean":true}`, true, false},
		{"json false", NewBooleanJSONHandler(), "application/sparql-results+json", `{"head":{},"boolean":false}`, false, false},
		{"json missing field", NewBooleanJSONHandler(), "application/sparql-results+json", `{"head":{}}`, false, true},
		{"json boolean as string", NewBooleanJSONHandler(), "application/sparql-results+json", `{"head":{},"boolean":"true"}`, false, true},
		{"json head not an object", NewBooleanJSONHandler(), "application/sparql-results+json", `{"head":[],"boolean":true}`, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := fakeResponse(tt.ct, tt.body)

			err := tt.handler.Handle(resp)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrProtocol))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, tt.handler.Result())
		})
	}
}

func TestTupleHandler(t *testing.T) {
	body := `{
	  "head": {"vars": ["id", "uri", "title", "node"]},
	  "results": {"bindings": [
	    {
	      "id": {"type": "literal", "value": "people"},
	      "uri": {"type": "uri", "value": "http://localhost:10035/repositories/people"},
	      "title": {"type": "literal", "value": "People", "xml:lang": "en"},
	      "node": {"type": "bnode", "value": "b1"}
	    },
	    {
	      "id": {"type": "typed-literal", "value": "42", "datatype": "http://www.w3.org/2001/XMLSchema#integer"}
	    }
	  ]}
	}`
	resp, _ := fakeResponse("application/sparql-results+json", body)
	h := NewTupleHandler()

	require.NoError(t, h.Handle(resp))
	result := h.Result()

	assert.Equal(t, []string{"id", "uri", "title", "node"}, result.Vars)
	require.Equal(t, 2, result.Len())
	assert.Equal(t, rdf.Literal{Label: "people"}, result.Rows[0]["id"])
	assert.Equal(t, rdf.IRI("http://localhost:10035/repositories/people"), result.Rows[0]["uri"])
	assert.Equal(t, rdf.Literal{Label: "People", Lang: "en"}, result.Rows[0]["title"])
	assert.Equal(t, rdf.BlankNode("b1"), result.Rows[0]["node"])
	assert.Equal(t, rdf.Literal{Label: "42", Datatype: rdf.IRI("http://www.w3.org/2001/XMLSchema#integer")}, result.Rows[1]["id"])
	assert.False(t, result.Rows[1].Has("uri"))
}

func TestParseTupleResult_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "id\nfoo"},
		{"no bindings", `{"head":{"vars":[]}}`},
		{"unknown term type", `{"head":{"vars":["x"]},"results":{"bindings":[{"x":{"type":"triple","value":"?"}}]}}`},
		{"vars not an array", `{"head":{"vars":"s"},"results":{"bindings":[]}}`},
		{"term without value", `{"head":{"vars":["s"]},"results":{"bindings":[{"s":{"type":"uri"}}]}}`},
		{"bindings not an array", `{"head":{"vars":["s"]},"results":{"bindings":{"s":{"type":"uri","value":"x"}}}}`},
		{"binding not an object", `{"head":{"vars":["s"]},"results":{"bindings":["s"]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTupleResult([]byte(tt.body))
			assert.True(t, errors.Is(err, ErrProtocol))
		})
	}
}

func TestErrorHandler_AcceptsAnyType(t *testing.T) {
	resp, _ := fakeResponse("text/html", "MALFORMED DATA: broken")
	h := NewErrorHandler()

	require.NoError(t, h.Handle(resp))
	assert.Equal(t, ErrorInfo{Type: ErrorTypeMalformedData, Message: "broken"}, h.Result())
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestErrorHandler_ReadFailure(t *testing.T) {
	resp, _ := fakeResponse("text/plain", "")
	resp.Body = failingReader{}
	h := NewErrorHandler()

	require.NoError(t, h.Handle(resp))
	assert.Equal(t, FallbackErrorMessage, h.Result().Message)
}

func TestResponse_ReleaseOnce(t *testing.T) {
	resp, body := fakeResponse("text/plain", "unread body")
	calls := 0
	resp.onClose = func() { calls++ }

	resp.Release()
	resp.Release()

	assert.True(t, body.read, "body is drained before close")
	assert.True(t, body.closed)
	assert.Equal(t, 1, calls)
}

// failingBody errors on every read and counts closes.
type failingBody struct {
	closes int
}

func (b *failingBody) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func (b *failingBody) Close() error {
	b.closes++
	return nil
}

func TestResponse_ReleaseAfterFailedDrain(t *testing.T) {
	body := &failingBody{}
	httpResp := &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": {"text/plain"}},
		Body:       body,
	}
	resp := newResponse(NewRequest("GET", "http://localhost/x"), httpResp, quietLogger())
	calls := 0
	resp.onClose = func() { calls++ }

	resp.Release()
	resp.Release()

	assert.Equal(t, 1, body.closes)
	assert.Equal(t, 1, calls)
}

func TestResponse_GzipBody(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, _ = zw.Write([]byte("compressed"))
	require.NoError(t, zw.Close())

	httpResp := &http.Response{
		StatusCode: http.StatusOK,
		Header: http.Header{
			"Content-Type":     {"text/plain"},
			"Content-Encoding": {"gzip"},
		},
		Body: io.NopCloser(&buf),
	}
	resp := newResponse(NewRequest("GET", "http://localhost"), httpResp, quietLogger())

	s, err := resp.BodyString()
	require.NoError(t, err)
	assert.Equal(t, "compressed", s)
}

func TestMimeBase(t *testing.T) {
	assert.Equal(t, "text/plain", mimeBase("Text/Plain; charset=UTF-8"))
	assert.Equal(t, "application/sparql-results+json", mimeBase("application/sparql-results+json"))
	assert.Equal(t, "", mimeBase(""))
}
