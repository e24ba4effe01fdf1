package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// DotEnvFilename is read by the CLI when present in the working directory.
const DotEnvFilename = ".env"

// EnvPrefix marks the variables this package reads from the environment.
const EnvPrefix = "AGRAPH_"

// DotEnv holds the AGRAPH_* assignments of a .env file. Other keys are ignored so
// the file can be shared with other tools.
type DotEnv map[string]string

// LoadDotEnv reads the .env file at path. See ReadDotEnv for the accepted syntax.
func LoadDotEnv(path string) (DotEnv, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open env file: %w", err)
	}
	defer f.Close()

	env, err := ReadDotEnv(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return env, nil
}

// ReadDotEnv parses KEY=value lines with an optional export prefix. Values may be
// double quoted (Go escapes apply) or single quoted (taken literally). Blank lines
// and # comments are skipped; any other line without '=' is an error.
func ReadDotEnv(r io.Reader) (DotEnv, error) {
	env := DotEnv{}
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}

		key, raw, ok := strings.Cut(strings.TrimPrefix(line, "export "), "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("line %d: expected KEY=value", n)
		}
		if !strings.HasPrefix(key, EnvPrefix) {
			continue
		}

		value, err := unquoteEnvValue(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", n, key, err)
		}
		env[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading env file: %w", err)
	}
	return env, nil
}

func unquoteEnvValue(v string) (string, error) {
	if len(v) < 2 {
		return v, nil
	}
	switch first, last := v[0], v[len(v)-1]; {
	case first == '"' && last == '"':
		return strconv.Unquote(v)
	case first == '\'' && last == '\'':
		return v[1 : len(v)-1], nil
	}
	return v, nil
}

// Getenv looks key up in the process environment first and falls back to the file.
func (d DotEnv) Getenv(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return d[key]
}

// ApplyDotEnv is ApplyEnv with the AGRAPH_* variables of a .env file filling in
// for those missing from the process environment.
func (c *Config) ApplyDotEnv(path string) (*Config, error) {
	env, err := LoadDotEnv(path)
	if err != nil {
		return nil, err
	}
	return c.applyEnv(env.Getenv)
}
