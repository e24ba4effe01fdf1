package protocol

import (
	"net/url"
	"strings"
)

// MIME types exchanged with the server.
const (
	MIMEText         = "text/plain"
	MIMEBoolean      = "text/boolean"
	MIMESPARQLJSON   = "application/sparql-results+json"
	MIMEJSON         = "application/json"
	MIMENTriples     = "application/n-triples"
	MIMENQuads       = "text/x-nquads"
	MIMEForm         = "application/x-www-form-urlencoded"
	MIMESPARQLQuery  = "application/sparql-query"
	MIMESPARQLUpdate = "application/sparql-update"
)

const (
	HeaderMasquerade  = "x-masquerade-as-user"
	HeaderAccept      = "Accept"
	HeaderContentType = "Content-Type"
)

// Request parameter names.
const (
	ParamOverride   = "override"
	ParamAmount     = "amount"
	ParamAutocommit = "autocommit"
	ParamLifetime   = "lifetime"
	ParamStore      = "store"
	ParamPrefix     = "prefix"
	ParamType       = "type"
	ParamQuery      = "query"
	ParamQueryLn    = "queryLn"
	ParamInfer      = "infer"
	ParamContext    = "context"
)

// DefaultSessionLifetime is the lifetime in seconds requested for new sessions.
const DefaultSessionLifetime = 3600

// RootCatalogID is the id of the server's root catalog.
const RootCatalogID = "/"

// IsRootCatalog reports whether id names the root catalog.
func IsRootCatalog(id string) bool {
	return id == "" || id == RootCatalogID
}

// CatalogsURL is the list of catalogs on the server.
func CatalogsURL(serverURL string) string {
	return serverURL + "/catalogs"
}

// CatalogURL is the URL of a named catalog. The root catalog is the server itself.
func CatalogURL(serverURL, catalog string) string {
	if IsRootCatalog(catalog) {
		return serverURL
	}
	return CatalogsURL(serverURL) + "/" + url.PathEscape(catalog)
}

// RepositoriesURL lists the repositories of a catalog.
func RepositoriesURL(catalogURL string) string {
	return catalogURL + "/repositories"
}

// RepositoryURL is the URL of one repository in a catalog.
func RepositoryURL(catalogURL, repositoryID string) string {
	return RepositoriesURL(catalogURL) + "/" + url.PathEscape(repositoryID)
}

// SessionURL is where new sessions are requested.
func SessionURL(serverURL string) string {
	return serverURL + "/session"
}

// VersionURL returns the server version text.
func VersionURL(serverURL string) string {
	return serverURL + "/version"
}

func BlankNodesURL(repositoryURL string) string { return repositoryURL + "/blankNodes" }
func EncodedIDsURL(repositoryURL string) string { return repositoryURL + "/encodedIds" }
func BulkModeURL(repositoryURL string) string   { return repositoryURL + "/bulkMode" }
func SizeURL(repositoryURL string) string       { return repositoryURL + "/size" }
func StatementsURL(repositoryURL string) string { return repositoryURL + "/statements" }

func SuppressDuplicatesURL(repositoryURL string) string {
	return repositoryURL + "/suppressDuplicates"
}

func ForceCheckpointURL(repositoryURL string) string {
	return repositoryURL + "/force-checkpoint"
}

func EnsureDBIdleURL(repositoryURL string) string {
	return repositoryURL + "/ensure-db-idle"
}

// Session endpoints, relative to the URL returned when the session was opened.
func SessionPingURL(sessionURL string) string     { return sessionURL + "/session/ping" }
func SessionCloseURL(sessionURL string) string    { return sessionURL + "/session/close" }
func SessionCommitURL(sessionURL string) string   { return sessionURL + "/commit" }
func SessionRollbackURL(sessionURL string) string { return sessionURL + "/rollback" }

// StoreSpec renders the session store spec for a repository: "<repo>" in the root
// catalog, "<catalog:repo>" otherwise.
func StoreSpec(catalog, repositoryID string) string {
	if IsRootCatalog(catalog) {
		return "<" + repositoryID + ">"
	}
	return "<" + strings.Trim(catalog, "/") + ":" + repositoryID + ">"
}
