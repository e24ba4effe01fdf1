// Package http is the request/response core of the AllegroGraph client.
//
// A Client owns a connection pool to one server and executes GET, POST, PUT and
// DELETE requests against it:
//   - HTTP Basic credentials scoped to the server host, sent preemptively
//   - x-masquerade-as-user impersonation
//   - gzip transfer encoding, on by default
//   - form-encoded or query-string parameters, or an explicit body entity
//   - typed errors (see Error and ErrorKind) translated from status codes and
//     server error bodies
//   - response Handlers for text, boolean, tuple and streamed results
//
// Every response is drained and its connection released exactly once, whatever the
// outcome.
package http
