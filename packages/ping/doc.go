// Package ping measures round-trip latency to an AllegroGraph server.
//
// A Pinger issues version requests at a fixed rate, optionally from several workers,
// and records latencies in an HDR histogram. The target can be swapped while a run
// is in progress, so credentials reloaded from disk take effect without a restart.
package ping
