// Package cmd implements the agraph command line interface.
//
// Commands talk to one AllegroGraph server chosen by --server, a config file or the
// AGRAPH_* environment variables, in increasing order of precedence: file, then
// environment, then flags.
package cmd
