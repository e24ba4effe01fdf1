package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strings"

	"github.com/elentirmo/agraph-java-client/packages/protocol"
)

// Entity is an explicit request body with its content type.
type Entity struct {
	Body        io.Reader
	ContentType string
}

func NewEntity(body io.Reader, contentType string) *Entity {
	return &Entity{Body: body, ContentType: contentType}
}

// StringEntity wraps s as a request body.
func StringEntity(s, contentType string) *Entity {
	return &Entity{Body: strings.NewReader(s), ContentType: contentType}
}

// BytesEntity wraps b as a request body.
func BytesEntity(b []byte, contentType string) *Entity {
	return &Entity{Body: bytes.NewReader(b), ContentType: contentType}
}

// Request describes one call against the server.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Params neturl.Values
	Entity *Entity
}

func NewRequest(method, requestURL string) *Request {
	return &Request{
		Method: strings.ToUpper(method),
		URL:    requestURL,
		Header: make(http.Header),
		Params: make(neturl.Values),
	}
}

func (r *Request) SetHeader(key, value string) *Request {
	r.Header.Set(key, value)
	return r
}

// AddParam appends a parameter value; repeated names are kept.
func (r *Request) AddParam(key, value string) *Request {
	r.Params.Add(key, value)
	return r
}

func (r *Request) SetEntity(e *Entity) *Request {
	r.Entity = e
	return r
}

// contentType is the declared request content type, from the headers first and the
// entity second.
func (r *Request) contentType() string {
	if ct := r.Header.Get(protocol.HeaderContentType); ct != "" {
		return ct
	}
	if r.Entity != nil {
		return r.Entity.ContentType
	}
	return ""
}

// formEncoded reports whether the params travel as a form body rather than in the
// query string.
func (r *Request) formEncoded() bool {
	if r.Method != http.MethodPost && r.Method != http.MethodPut {
		return false
	}
	if r.Entity != nil {
		return false
	}
	ct := r.contentType()
	return ct == "" || mimeBase(ct) == protocol.MIMEForm
}

// build assembles the net/http request without any client-level headers.
func (r *Request) build(ctx context.Context) (*http.Request, error) {
	switch r.Method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return nil, fmt.Errorf("unsupported method: %s", r.Method)
	}

	u, err := neturl.Parse(r.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	var body io.Reader
	contentType := r.contentType()
	if r.formEncoded() {
		body = strings.NewReader(r.Params.Encode())
		contentType = protocol.MIMEForm
	} else {
		if len(r.Params) > 0 {
			if u.RawQuery == "" {
				u.RawQuery = r.Params.Encode()
			} else {
				u.RawQuery += "&" + r.Params.Encode()
			}
		}
		if r.Entity != nil {
			body = r.Entity.Body
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, r.Method, u.String(), body)
	if err != nil {
		return nil, err
	}

	for k, values := range r.Header {
		for _, v := range values {
			httpReq.Header.Add(k, v)
		}
	}
	if body != nil && contentType != "" {
		httpReq.Header.Set(protocol.HeaderContentType, contentType)
	}

	return httpReq, nil
}
