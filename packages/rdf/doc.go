// Package rdf holds the small RDF value model used by the AllegroGraph client:
// IRIs, blank nodes and literals as they appear in query results, tuple result rows,
// and statements serialized as N-Quads for upload.
package rdf
