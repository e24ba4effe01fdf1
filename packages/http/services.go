package http

import (
	"context"
	neturl "net/url"
	"strconv"

	"github.com/elentirmo/agraph-java-client/packages/protocol"
	"github.com/elentirmo/agraph-java-client/packages/rdf"
)

// Services above the repository level.

func (c *Client) PutCatalog(ctx context.Context, catalogURL string) error {
	c.logger.Debug().Str("url", catalogURL).Msg("putCatalog")
	return c.Put(ctx, catalogURL, nil, nil, nil, nil)
}

func (c *Client) DeleteCatalog(ctx context.Context, catalogURL string) error {
	return c.Delete(ctx, catalogURL, nil, nil, nil)
}

// PutRepository creates a repository; an existing one is left untouched.
func (c *Client) PutRepository(ctx context.Context, repositoryURL string) error {
	c.logger.Debug().Str("url", repositoryURL).Msg("putRepository")
	params := neturl.Values{protocol.ParamOverride: {"false"}}
	return c.Put(ctx, repositoryURL, nil, params, nil, nil)
}

func (c *Client) DeleteRepository(ctx context.Context, repositoryURL string) error {
	return c.Delete(ctx, repositoryURL, nil, nil, nil)
}

// GetTupleQueryResult fetches a tabular listing such as a catalog's repositories.
func (c *Client) GetTupleQueryResult(ctx context.Context, url string) (*rdf.TupleResult, error) {
	h := NewTupleHandler()
	if err := c.Get(ctx, url, nil, nil, h); err != nil {
		return nil, err
	}
	return h.Result(), nil
}

func (c *Client) GetString(ctx context.Context, url string) (string, error) {
	h := NewStringHandler()
	if err := c.Get(ctx, url, nil, nil, h); err != nil {
		return "", err
	}
	return h.Result(), nil
}

// GetStringArray fetches a newline separated list. An empty body is an empty list.
func (c *Client) GetStringArray(ctx context.Context, url string) ([]string, error) {
	s, err := c.GetString(ctx, url)
	if err != nil {
		return nil, err
	}
	return splitLines(s), nil
}

// GetBlankNodes asks the repository to allocate amount blank node ids.
func (c *Client) GetBlankNodes(ctx context.Context, repositoryURL string, amount int) ([]string, error) {
	params := neturl.Values{protocol.ParamAmount: {strconv.Itoa(amount)}}
	h := NewStringHandler()
	if err := c.Post(ctx, protocol.BlankNodesURL(repositoryURL), nil, params, nil, h); err != nil {
		return nil, err
	}
	return h.Lines(), nil
}

// GenerateURIs asks the repository for amount unique URIs in the encoded-id namespace
// registered under prefix.
func (c *Client) GenerateURIs(ctx context.Context, repositoryURL, prefix string, amount int) ([]string, error) {
	params := neturl.Values{
		protocol.ParamPrefix: {prefix},
		protocol.ParamAmount: {strconv.Itoa(amount)},
	}
	h := NewStringHandler()
	if err := c.Post(ctx, protocol.EncodedIDsURL(repositoryURL), nil, params, nil, h); err != nil {
		return nil, err
	}
	return h.Lines(), nil
}

// OpenSession starts a dedicated session on store (see protocol.StoreSpec) and
// returns its URL.
func (c *Client) OpenSession(ctx context.Context, store string, autocommit bool) (string, error) {
	params := neturl.Values{
		protocol.ParamStore:      {store},
		protocol.ParamAutocommit: {strconv.FormatBool(autocommit)},
		protocol.ParamLifetime:   {strconv.Itoa(protocol.DefaultSessionLifetime)},
	}
	h := NewStringHandler()
	if err := c.Post(ctx, protocol.SessionURL(c.serverURL), nil, params, nil, h); err != nil {
		return "", err
	}
	return h.Result(), nil
}

// Version returns the server version string.
func (c *Client) Version(ctx context.Context) (string, error) {
	return c.GetString(ctx, protocol.VersionURL(c.serverURL))
}
