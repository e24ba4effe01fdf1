// Package agraph exposes servers, catalogs, repositories and sessions on top of the
// request core in packages/http.
package agraph

import (
	"context"
	"fmt"
	"strings"

	"github.com/elentirmo/agraph-java-client/packages/http"
	"github.com/elentirmo/agraph-java-client/packages/protocol"
)

// Server is an AllegroGraph server reachable through one client.
type Server struct {
	client *http.Client
}

// NewServer connects to serverURL. Options are passed to the underlying client.
func NewServer(serverURL string, opts ...http.ClientOption) *Server {
	return &Server{client: http.NewClient(serverURL, opts...)}
}

// NewServerWithClient wraps an existing client.
func NewServerWithClient(client *http.Client) *Server {
	return &Server{client: client}
}

func (s *Server) Client() *http.Client {
	return s.client
}

func (s *Server) URL() string {
	return s.client.ServerURL()
}

func (s *Server) Version(ctx context.Context) (string, error) {
	return s.client.Version(ctx)
}

// ListCatalogs returns the ids of the named catalogs. The root catalog is not listed.
func (s *Server) ListCatalogs(ctx context.Context) ([]string, error) {
	lines, err := s.client.GetStringArray(ctx, protocol.CatalogsURL(s.URL()))
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		id := strings.TrimSpace(line)
		if id == "" || protocol.IsRootCatalog(id) {
			continue
		}
		ids = append(ids, strings.TrimPrefix(id, "/"))
	}
	return ids, nil
}

// RootCatalog is the catalog served at the server URL itself.
func (s *Server) RootCatalog() *Catalog {
	return s.OpenCatalog(protocol.RootCatalogID)
}

// OpenCatalog returns a handle on the named catalog without contacting the server.
func (s *Server) OpenCatalog(name string) *Catalog {
	if protocol.IsRootCatalog(name) {
		name = protocol.RootCatalogID
	}
	return &Catalog{
		server: s,
		name:   name,
		url:    protocol.CatalogURL(s.URL(), name),
	}
}

// CreateCatalog creates a named catalog and returns it.
func (s *Server) CreateCatalog(ctx context.Context, name string) (*Catalog, error) {
	if protocol.IsRootCatalog(name) {
		return nil, fmt.Errorf("cannot create the root catalog")
	}
	cat := s.OpenCatalog(name)
	if err := s.client.PutCatalog(ctx, cat.URL()); err != nil {
		return nil, fmt.Errorf("creating catalog %s: %w", name, err)
	}
	return cat, nil
}

func (s *Server) DeleteCatalog(ctx context.Context, name string) error {
	if protocol.IsRootCatalog(name) {
		return fmt.Errorf("cannot delete the root catalog")
	}
	return s.client.DeleteCatalog(ctx, protocol.CatalogURL(s.URL(), name))
}

// Close releases the server's connection pool.
func (s *Server) Close() error {
	return s.client.Close()
}
