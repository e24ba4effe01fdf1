package http

import (
	_ "embed"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed sparql-results.schema.json
var sparqlResultsSchemaJSON []byte

var sparqlResultsSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(sparqlResultsSchemaJSON))
})

// validateSPARQLResults checks body against the SPARQL 1.1 JSON results format.
// what names the result kind in the error message.
func validateSPARQLResults(what string, body []byte) error {
	schema, err := sparqlResultsSchema()
	if err != nil {
		return protocolErrorf("loading results schema: %v", err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return protocolErrorf("malformed %s: invalid JSON", what)
	}
	if result.Valid() {
		return nil
	}

	var problems []string
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return protocolErrorf("malformed %s: %s", what, strings.Join(problems, "; "))
}
