// Package config handles configuration loading and management for the agraph client.
//
// It provides functionality for:
//   - Loading configuration from agraph.yaml or agraph.json files
//   - Default configuration values and AGRAPH_* environment overrides
//   - Reloading a configuration file when it changes
package config
