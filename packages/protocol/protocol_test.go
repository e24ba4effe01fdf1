package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalogURL(t *testing.T) {
	server := "http://localhost:10035"

	assert.Equal(t, server, CatalogURL(server, "/"))
	assert.Equal(t, server, CatalogURL(server, ""))
	assert.Equal(t, server+"/catalogs/java-catalog", CatalogURL(server, "java-catalog"))
}

func TestRepositoryURL(t *testing.T) {
	cat := CatalogURL("http://localhost:10035", "c1")

	assert.Equal(t, "http://localhost:10035/catalogs/c1/repositories", RepositoriesURL(cat))
	assert.Equal(t, "http://localhost:10035/catalogs/c1/repositories/r1", RepositoryURL(cat, "r1"))
	assert.Equal(t, "http://localhost:10035/repositories/my%20repo", RepositoryURL("http://localhost:10035", "my repo"))
}

func TestRepositorySubresources(t *testing.T) {
	repo := "http://h/repositories/r"

	assert.Equal(t, repo+"/blankNodes", BlankNodesURL(repo))
	assert.Equal(t, repo+"/encodedIds", EncodedIDsURL(repo))
	assert.Equal(t, repo+"/bulkMode", BulkModeURL(repo))
	assert.Equal(t, repo+"/suppressDuplicates", SuppressDuplicatesURL(repo))
	assert.Equal(t, repo+"/force-checkpoint", ForceCheckpointURL(repo))
	assert.Equal(t, repo+"/ensure-db-idle", EnsureDBIdleURL(repo))
	assert.Equal(t, repo+"/size", SizeURL(repo))
	assert.Equal(t, repo+"/statements", StatementsURL(repo))
}

func TestStoreSpec(t *testing.T) {
	assert.Equal(t, "<javatest>", StoreSpec("/", "javatest"))
	assert.Equal(t, "<java-catalog:javatest>", StoreSpec("java-catalog", "javatest"))
}
