package agraph

import (
	"context"
	"sync/atomic"

	"github.com/elentirmo/agraph-java-client/packages/http"
	"github.com/elentirmo/agraph-java-client/packages/protocol"
)

// Session is a dedicated server process bound to one store. It expires after the
// requested lifetime unless pinged.
type Session struct {
	client     *http.Client
	url        string
	autocommit bool
	closed     atomic.Bool
}

func (s *Session) URL() string {
	return s.url
}

func (s *Session) Autocommit() bool {
	return s.autocommit
}

// Ping keeps the session alive.
func (s *Session) Ping(ctx context.Context) error {
	return s.client.Get(ctx, protocol.SessionPingURL(s.url), nil, nil, nil)
}

func (s *Session) Commit(ctx context.Context) error {
	return s.client.Post(ctx, protocol.SessionCommitURL(s.url), nil, nil, nil, nil)
}

func (s *Session) Rollback(ctx context.Context) error {
	return s.client.Post(ctx, protocol.SessionRollbackURL(s.url), nil, nil, nil, nil)
}

// Close ends the session. Only the first call contacts the server.
func (s *Session) Close(ctx context.Context) error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.client.Post(ctx, protocol.SessionCloseURL(s.url), nil, nil, nil, nil)
}
