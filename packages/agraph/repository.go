package agraph

import (
	"bytes"
	"context"
	"fmt"
	"io"
	neturl "net/url"
	"strconv"
	"strings"

	"github.com/elentirmo/agraph-java-client/packages/http"
	"github.com/elentirmo/agraph-java-client/packages/protocol"
	"github.com/elentirmo/agraph-java-client/packages/rdf"
)

// Duplicate suppression policies accepted by SetDuplicateSuppressionPolicy.
const (
	DuplicatesOff  = "false"
	DuplicatesSPO  = "spo"
	DuplicatesSPOG = "spog"
)

// Repository is a triple store inside a catalog.
type Repository struct {
	catalog *Catalog
	id      string
	url     string
}

func (r *Repository) ID() string {
	return r.id
}

func (r *Repository) URL() string {
	return r.url
}

func (r *Repository) Catalog() *Catalog {
	return r.catalog
}

func (r *Repository) client() *http.Client {
	return r.catalog.server.client
}

// Spec is the store spec used to open sessions on this repository.
func (r *Repository) Spec() string {
	return protocol.StoreSpec(r.catalog.name, r.id)
}

// IsWritable looks the repository up in its catalog's listing. A repository missing
// from the listing is an error.
func (r *Repository) IsWritable(ctx context.Context) (bool, error) {
	infos, err := r.catalog.ListRepositoryInfo(ctx)
	if err != nil {
		return false, err
	}
	for _, info := range infos {
		if info.URI == r.url {
			return info.Writable, nil
		}
	}
	return false, fmt.Errorf("repository not found in catalog's list of repositories: %s", r.url)
}

// Size returns the number of statements in the repository.
func (r *Repository) Size(ctx context.Context) (int64, error) {
	s, err := r.client().GetString(ctx, protocol.SizeURL(r.url))
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing repository size %q: %w", s, err)
	}
	return n, nil
}

// SetBulkMode turns bulk loading on or off. The setting persists on the server.
func (r *Repository) SetBulkMode(ctx context.Context, on bool) error {
	if on {
		return r.client().Put(ctx, protocol.BulkModeURL(r.url), nil, nil, nil, nil)
	}
	return r.client().Delete(ctx, protocol.BulkModeURL(r.url), nil, nil, nil)
}

func (r *Repository) IsBulkMode(ctx context.Context) (bool, error) {
	s, err := r.client().GetString(ctx, protocol.BulkModeURL(r.url))
	if err != nil {
		return false, err
	}
	return strconv.ParseBool(strings.TrimSpace(s))
}

// SetDuplicateSuppressionPolicy sets how duplicates are removed at commit time:
// DuplicatesOff, DuplicatesSPO or DuplicatesSPOG.
func (r *Repository) SetDuplicateSuppressionPolicy(ctx context.Context, policy string) error {
	switch policy {
	case DuplicatesOff, DuplicatesSPO, DuplicatesSPOG:
	default:
		return fmt.Errorf("invalid duplicate suppression policy %q", policy)
	}
	params := neturl.Values{protocol.ParamType: {policy}}
	return r.client().Put(ctx, protocol.SuppressDuplicatesURL(r.url), nil, params, nil, nil)
}

func (r *Repository) DuplicateSuppressionPolicy(ctx context.Context) (string, error) {
	return r.client().GetString(ctx, protocol.SuppressDuplicatesURL(r.url))
}

func (r *Repository) ForceCheckpoint(ctx context.Context) error {
	return r.client().Post(ctx, protocol.ForceCheckpointURL(r.url), nil, nil, nil, nil)
}

// EnsureDBIdle blocks server side until background work on the repository is done.
func (r *Repository) EnsureDBIdle(ctx context.Context) error {
	return r.client().Post(ctx, protocol.EnsureDBIdleURL(r.url), nil, nil, nil, nil)
}

func queryParams(query string) neturl.Values {
	return neturl.Values{
		protocol.ParamQuery:   {query},
		protocol.ParamQueryLn: {"sparql"},
	}
}

// Query evaluates a SPARQL SELECT query.
func (r *Repository) Query(ctx context.Context, query string) (*rdf.TupleResult, error) {
	h := http.NewTupleHandler()
	if err := r.client().Post(ctx, r.url, nil, queryParams(query), nil, h); err != nil {
		return nil, err
	}
	return h.Result(), nil
}

// Ask evaluates a SPARQL ASK query.
func (r *Repository) Ask(ctx context.Context, query string) (bool, error) {
	h := http.NewBooleanJSONHandler()
	if err := r.client().Post(ctx, r.url, nil, queryParams(query), nil, h); err != nil {
		return false, err
	}
	return h.Result(), nil
}

// AddStatements uploads stmts as N-Quads. Statements without a graph go to the
// default graph.
func (r *Repository) AddStatements(ctx context.Context, stmts []rdf.Statement) error {
	var buf bytes.Buffer
	if err := rdf.WriteNQuads(&buf, stmts); err != nil {
		return err
	}
	entity := http.BytesEntity(buf.Bytes(), protocol.MIMENQuads)
	return r.client().Post(ctx, protocol.StatementsURL(r.url), nil, nil, entity, nil)
}

// ExportStatements streams every statement as N-Quads. The caller must Close the
// returned reader.
func (r *Repository) ExportStatements(ctx context.Context) (io.ReadCloser, error) {
	h := http.NewStreamHandler(protocol.MIMENQuads)
	if err := r.client().Get(ctx, protocol.StatementsURL(r.url), nil, nil, h); err != nil {
		return nil, err
	}
	return h.Result(), nil
}

// BlankNodes allocates amount blank node ids.
func (r *Repository) BlankNodes(ctx context.Context, amount int) ([]string, error) {
	return r.client().GetBlankNodes(ctx, r.url, amount)
}

func (r *Repository) GenerateURIs(ctx context.Context, prefix string, amount int) ([]string, error) {
	return r.client().GenerateURIs(ctx, r.url, prefix, amount)
}

// OpenSession opens a dedicated session on the repository.
func (r *Repository) OpenSession(ctx context.Context, autocommit bool) (*Session, error) {
	sessionURL, err := r.client().OpenSession(ctx, r.Spec(), autocommit)
	if err != nil {
		return nil, err
	}
	return &Session{client: r.client(), url: sessionURL, autocommit: autocommit}, nil
}
