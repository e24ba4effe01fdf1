package http

import (
	"io"
	"net/http"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// countingTransport counts how often response bodies are closed.
type countingTransport struct {
	rt     http.RoundTripper
	closes atomic.Int32
}

func newCountingTransport() *countingTransport {
	t := newPooledTransport()
	return &countingTransport{rt: t}
}

func (t *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.rt.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	resp.Body = &countingBody{ReadCloser: resp.Body, closes: &t.closes}
	return resp, nil
}

type countingBody struct {
	io.ReadCloser
	closes *atomic.Int32
}

func (b *countingBody) Close() error {
	b.closes.Add(1)
	return b.ReadCloser.Close()
}

func quietLogger() zerolog.Logger {
	return zerolog.Nop()
}

// textHandler answers every request with a text/plain body.
func textHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=UTF-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
	}
}
