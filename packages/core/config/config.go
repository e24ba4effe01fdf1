package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/elentirmo/agraph-java-client/packages/http"
)

// Config represents the agraph client configuration
type Config struct {
	ServerURL      string            `json:"serverUrl,omitempty" yaml:"serverUrl,omitempty"`
	Host           string            `json:"host,omitempty" yaml:"host,omitempty"`
	Port           int               `json:"port,omitempty" yaml:"port,omitempty"`
	Catalog        string            `json:"catalog,omitempty" yaml:"catalog,omitempty"`
	Username       string            `json:"username,omitempty" yaml:"username,omitempty"`
	Password       string            `json:"password,omitempty" yaml:"password,omitempty"`
	MasqueradeUser string            `json:"masqueradeUser,omitempty" yaml:"masqueradeUser,omitempty"`
	Timeout        int               `json:"timeout,omitempty" yaml:"timeout,omitempty"` // milliseconds, 0 means none
	Gzip           *bool             `json:"gzip,omitempty" yaml:"gzip,omitempty"`
	Headers        map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"` // Default headers for all requests
	Verbose        *bool             `json:"verbose,omitempty" yaml:"verbose,omitempty"`
	NoColor        *bool             `json:"noColor,omitempty" yaml:"noColor,omitempty"`
}

// BoolPtr returns a pointer to b
func BoolPtr(b bool) *bool {
	return &b
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetGzip returns the gzip setting, defaulting to true
func (c *Config) GetGzip() bool {
	return getBool(c.Gzip, true)
}

// GetVerbose returns the verbose setting, defaulting to false
func (c *Config) GetVerbose() bool {
	return getBool(c.Verbose, false)
}

// GetNoColor returns the no color setting, defaulting to false
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// URL is the server URL: ServerURL when set, else http://Host:Port.
func (c *Config) URL() string {
	if c.ServerURL != "" {
		return strings.TrimSuffix(c.ServerURL, "/")
	}
	host, port := c.Host, c.Port
	if host == "" {
		host = DefaultHost
	}
	if port == 0 {
		port = DefaultPort
	}
	return fmt.Sprintf("http://%s:%d", host, port)
}

// ClientOptions converts the configuration into client options.
func (c *Config) ClientOptions() []http.ClientOption {
	opts := []http.ClientOption{http.WithGzip(c.GetGzip())}
	if c.Timeout > 0 {
		opts = append(opts, http.WithTimeout(time.Duration(c.Timeout)*time.Millisecond))
	}
	if c.Username != "" && c.Password != "" {
		opts = append(opts, http.WithCredentials(c.Username, c.Password))
	}
	if c.MasqueradeUser != "" {
		opts = append(opts, http.WithMasqueradeUser(c.MasqueradeUser))
	}
	for k, v := range c.Headers {
		opts = append(opts, http.WithDefaultHeader(k, v))
	}
	return opts
}

// ConfigFilenames contains the possible config file names
var ConfigFilenames = []string{
	"agraph.yaml",
	".agraph.yaml",
	"agraph.yml",
	"agraph.json",
}

// LoadConfig loads configuration from the specified path or searches for config files
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		return loadConfigFromFile(path)
	}

	return FindAndLoadConfig(".")
}

// FindAndLoadConfig searches for a config file in the given directory
func FindAndLoadConfig(dir string) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return loadConfigFromFile(configPath)
		}
	}

	// Return defaults if no config file found
	return DefaultConfig(), nil
}

// FindConfigFile returns the first config file present in dir, or "".
func FindConfigFile(dir string) string {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
	}
	return ""
}

// loadConfigFromFile loads configuration from a specific file
func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if isJSON(path) {
		err = json.Unmarshal(data, config)
	} else {
		err = yaml.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return config, nil
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// Environment variables read by ApplyEnv.
const (
	EnvHost     = "AGRAPH_HOST"
	EnvPort     = "AGRAPH_PORT"
	EnvURL      = "AGRAPH_URL"
	EnvUser     = "AGRAPH_USER"
	EnvPassword = "AGRAPH_PASSWORD"
	EnvCatalog  = "AGRAPH_CATALOG"
	EnvUseGzip  = "AGRAPH_USE_GZIP"
)

// ApplyEnv returns a copy of c overridden by the AGRAPH_* environment variables.
func (c *Config) ApplyEnv() (*Config, error) {
	return c.applyEnv(os.Getenv)
}

func (c *Config) applyEnv(getenv func(string) string) (*Config, error) {
	env := &Config{
		ServerURL: getenv(EnvURL),
		Host:      getenv(EnvHost),
		Catalog:   getenv(EnvCatalog),
		Username:  getenv(EnvUser),
		Password:  getenv(EnvPassword),
	}
	if v := getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvPort, v, err)
		}
		env.Port = port
	}
	if v := getenv(EnvUseGzip); v != "" {
		gzip, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvUseGzip, v, err)
		}
		env.Gzip = &gzip
	}
	// host/port from the environment win over a URL from the file
	if env.ServerURL == "" && (env.Host != "" || env.Port != 0) {
		result := c.Merge(env)
		result.ServerURL = ""
		return result, nil
	}
	return c.Merge(env), nil
}

// Merge merges another config into this one, with other taking precedence
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	result := *c // Copy

	if other.ServerURL != "" {
		result.ServerURL = other.ServerURL
	}
	if other.Host != "" {
		result.Host = other.Host
	}
	if other.Port > 0 {
		result.Port = other.Port
	}
	if other.Catalog != "" {
		result.Catalog = other.Catalog
	}
	if other.Username != "" {
		result.Username = other.Username
	}
	if other.Password != "" {
		result.Password = other.Password
	}
	if other.MasqueradeUser != "" {
		result.MasqueradeUser = other.MasqueradeUser
	}
	if other.Timeout > 0 {
		result.Timeout = other.Timeout
	}

	// Boolean flags - only override if explicitly set in other config
	if other.Gzip != nil {
		result.Gzip = other.Gzip
	}
	if other.Verbose != nil {
		result.Verbose = other.Verbose
	}
	if other.NoColor != nil {
		result.NoColor = other.NoColor
	}

	if len(other.Headers) > 0 {
		headers := make(map[string]string, len(result.Headers)+len(other.Headers))
		for k, v := range result.Headers {
			headers[k] = v
		}
		for k, v := range other.Headers {
			headers[k] = v
		}
		result.Headers = headers
	}

	return &result
}

// SaveConfig saves the configuration to a file, as JSON for .json paths and YAML otherwise
func (c *Config) SaveConfig(path string) error {
	var data []byte
	var err error
	if isJSON(path) {
		data, err = json.MarshalIndent(c, "", "  ")
	} else {
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}
