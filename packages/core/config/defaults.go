package config

// Defaults used when neither the file nor the environment name a server.
const (
	DefaultHost = "localhost"
	DefaultPort = 10035
)

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Host:    DefaultHost,
		Port:    DefaultPort,
		Catalog: "/",
		Gzip:    BoolPtr(true),
		Verbose: BoolPtr(false),
		NoColor: BoolPtr(false),
	}
}

// IsDefault returns true if the config matches defaults
func (c *Config) IsDefault() bool {
	defaults := DefaultConfig()
	return c.ServerURL == "" &&
		c.URL() == defaults.URL() &&
		c.Catalog == defaults.Catalog &&
		c.Username == "" &&
		c.Password == "" &&
		c.MasqueradeUser == "" &&
		c.Timeout == 0 &&
		len(c.Headers) == 0 &&
		c.GetGzip() == defaults.GetGzip() &&
		c.GetVerbose() == defaults.GetVerbose() &&
		c.GetNoColor() == defaults.GetNoColor()
}
