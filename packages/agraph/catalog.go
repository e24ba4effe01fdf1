package agraph

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/elentirmo/agraph-java-client/packages/protocol"
	"github.com/elentirmo/agraph-java-client/packages/rdf"
)

// Catalog is a named group of repositories, or the server's root catalog.
type Catalog struct {
	server *Server
	name   string
	url    string
}

func (c *Catalog) Name() string {
	return c.name
}

func (c *Catalog) IsRoot() bool {
	return protocol.IsRootCatalog(c.name)
}

func (c *Catalog) URL() string {
	return c.url
}

func (c *Catalog) Server() *Server {
	return c.server
}

func (c *Catalog) RepositoriesURL() string {
	return protocol.RepositoriesURL(c.url)
}

func (c *Catalog) RepositoryURL(id string) string {
	return protocol.RepositoryURL(c.url, id)
}

// RepositoryInfo is one row of a catalog's repository listing.
type RepositoryInfo struct {
	ID       string
	URI      string
	Title    string
	Readable bool
	Writable bool
}

// ListRepositoryInfo fetches the catalog's repository listing.
func (c *Catalog) ListRepositoryInfo(ctx context.Context) ([]RepositoryInfo, error) {
	result, err := c.server.client.GetTupleQueryResult(ctx, c.RepositoriesURL())
	if err != nil {
		return nil, err
	}
	infos := make([]RepositoryInfo, 0, result.Len())
	for _, row := range result.Rows {
		infos = append(infos, RepositoryInfo{
			ID:       valueString(row, "id"),
			URI:      valueString(row, "uri"),
			Title:    valueString(row, "title"),
			Readable: valueBool(row, "readable"),
			Writable: valueBool(row, "writable"),
		})
	}
	return infos, nil
}

// ListRepositories returns the ids of the catalog's repositories.
func (c *Catalog) ListRepositories(ctx context.Context) ([]string, error) {
	infos, err := c.ListRepositoryInfo(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(infos))
	for i, info := range infos {
		ids[i] = info.ID
	}
	return ids, nil
}

// OpenRepository returns a handle on a repository without contacting the server.
func (c *Catalog) OpenRepository(id string) *Repository {
	return &Repository{
		catalog: c,
		id:      id,
		url:     c.RepositoryURL(id),
	}
}

// CreateRepository creates the repository if it does not exist yet.
func (c *Catalog) CreateRepository(ctx context.Context, id string) (*Repository, error) {
	repo := c.OpenRepository(id)
	if err := c.server.client.PutRepository(ctx, repo.URL()); err != nil {
		return nil, fmt.Errorf("creating repository %s: %w", id, err)
	}
	return repo, nil
}

// CreateTempRepository creates a repository named prefix plus a random suffix.
func (c *Catalog) CreateTempRepository(ctx context.Context, prefix string) (*Repository, error) {
	if prefix == "" {
		prefix = "temp"
	}
	id := prefix + "-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return c.CreateRepository(ctx, id)
}

func (c *Catalog) DeleteRepository(ctx context.Context, id string) error {
	return c.server.client.DeleteRepository(ctx, c.RepositoryURL(id))
}

func valueString(row rdf.BindingSet, name string) string {
	if v := row.Value(name); v != nil {
		return v.String()
	}
	return ""
}

func valueBool(row rdf.BindingSet, name string) bool {
	return strings.EqualFold(valueString(row, name), "true")
}
