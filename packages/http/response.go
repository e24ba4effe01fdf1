package http

import (
	"compress/gzip"
	"io"
	"mime"
	"net/http"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Response is a server response handed to a Handler. Body yields the decoded
// (gunzipped) entity; the underlying connection is released with Release.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       io.Reader
	Method     string
	URL        string

	raw     io.ReadCloser
	once    sync.Once
	logger  zerolog.Logger
	onClose func()
}

func newResponse(req *Request, httpResp *http.Response, logger zerolog.Logger) *Response {
	r := &Response{
		StatusCode: httpResp.StatusCode,
		Status:     httpResp.Status,
		Header:     httpResp.Header,
		Method:     req.Method,
		URL:        req.URL,
		raw:        httpResp.Body,
		logger:     logger,
	}
	if strings.EqualFold(httpResp.Header.Get("Content-Encoding"), "gzip") {
		r.Body = &lazyGzipReader{src: httpResp.Body}
	} else {
		r.Body = httpResp.Body
	}
	return r
}

// ContentType returns the raw Content-Type header.
func (r *Response) ContentType() string {
	return r.Header.Get("Content-Type")
}

// MIMEType returns the media type of the response with parameters removed, lower-cased.
func (r *Response) MIMEType() string {
	return mimeBase(r.ContentType())
}

// ReadAll reads the remaining body.
func (r *Response) ReadAll() ([]byte, error) {
	return io.ReadAll(r.Body)
}

// BodyString reads the remaining body as text.
func (r *Response) BodyString() (string, error) {
	b, err := r.ReadAll()
	return string(b), err
}

func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Release drains whatever is left of the body and closes it so the connection can be
// reused. Only the first call has any effect. Drain failures are logged, not returned.
func (r *Response) Release() {
	r.once.Do(func() {
		if _, err := io.Copy(io.Discard, r.raw); err != nil {
			r.logger.Warn().Err(err).Str("url", r.URL).Msg("I/O error upon releasing connection")
		}
		if err := r.raw.Close(); err != nil {
			r.logger.Warn().Err(err).Str("url", r.URL).Msg("error closing response body")
		}
		if r.onClose != nil {
			r.onClose()
		}
	})
}

// lazyGzipReader defers reading the gzip header until the first Read so that an empty
// body does not fail before a handler looks at it.
type lazyGzipReader struct {
	src io.Reader
	zr  *gzip.Reader
	err error
}

func (l *lazyGzipReader) Read(p []byte) (int, error) {
	if l.zr == nil && l.err == nil {
		l.zr, l.err = gzip.NewReader(l.src)
	}
	if l.err != nil {
		return 0, l.err
	}
	return l.zr.Read(p)
}

func mimeBase(contentType string) string {
	if contentType == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mt, _, _ = strings.Cut(contentType, ";")
	}
	return strings.ToLower(strings.TrimSpace(mt))
}
