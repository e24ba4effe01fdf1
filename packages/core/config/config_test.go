package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "http://localhost:10035", cfg.URL())
	assert.True(t, cfg.GetGzip())
	assert.False(t, cfg.GetNoColor())
	assert.True(t, cfg.IsDefault())
}

func TestURL(t *testing.T) {
	assert.Equal(t, "http://graph:8080", (&Config{Host: "graph", Port: 8080}).URL())
	assert.Equal(t, "http://localhost:10035", (&Config{}).URL())
	assert.Equal(t, "https://ag.example.com", (&Config{ServerURL: "https://ag.example.com/", Host: "ignored"}).URL())
}

func TestLoadConfig_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "agraph.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
host: graph.example.com
port: 10036
catalog: sales
username: test
password: xyzzy
gzip: false
headers:
  X-Trace: abc
`), 0600))

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "http://graph.example.com:10036", cfg.URL())
	assert.Equal(t, "sales", cfg.Catalog)
	assert.Equal(t, "test", cfg.Username)
	assert.False(t, cfg.GetGzip())
	assert.Equal(t, "abc", cfg.Headers["X-Trace"])
	assert.False(t, cfg.IsDefault())
}

func TestFindAndLoadConfig(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "agraph.json"),
			[]byte(`{"serverUrl":"http://json-host:1","timeout":5000}`), 0600))

		cfg, err := FindAndLoadConfig(dir)

		require.NoError(t, err)
		assert.Equal(t, "http://json-host:1", cfg.URL())
		assert.Equal(t, 5000, cfg.Timeout)
	})

	t.Run("yaml wins over json", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "agraph.json"), []byte(`{"catalog":"json"}`), 0600))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "agraph.yaml"), []byte("catalog: yaml\n"), 0600))

		cfg, err := FindAndLoadConfig(dir)

		require.NoError(t, err)
		assert.Equal(t, "yaml", cfg.Catalog)
		assert.Equal(t, filepath.Join(dir, "agraph.yaml"), FindConfigFile(dir))
	})

	t.Run("none", func(t *testing.T) {
		cfg, err := FindAndLoadConfig(t.TempDir())

		require.NoError(t, err)
		assert.True(t, cfg.IsDefault())
	})

	t.Run("invalid", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "agraph.yaml"), []byte("port: [nope"), 0600))

		_, err := FindAndLoadConfig(dir)

		assert.Error(t, err)
	})
}

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name    string
		base    *Config
		env     map[string]string
		wantURL string
		check   func(t *testing.T, cfg *Config)
		wantErr bool
	}{
		{
			name:    "host and port",
			base:    DefaultConfig(),
			env:     map[string]string{EnvHost: "ag1", EnvPort: "10099"},
			wantURL: "http://ag1:10099",
		},
		{
			name:    "env host overrides file url",
			base:    &Config{ServerURL: "http://file:1"},
			env:     map[string]string{EnvHost: "ag2"},
			wantURL: "http://ag2:10035",
		},
		{
			name:    "url",
			base:    DefaultConfig(),
			env:     map[string]string{EnvURL: "https://ag.example.com"},
			wantURL: "https://ag.example.com",
		},
		{
			name:    "credentials and gzip",
			base:    DefaultConfig(),
			env:     map[string]string{EnvUser: "u", EnvPassword: "p", EnvUseGzip: "false", EnvCatalog: "c"},
			wantURL: "http://localhost:10035",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "u", cfg.Username)
				assert.Equal(t, "p", cfg.Password)
				assert.Equal(t, "c", cfg.Catalog)
				assert.False(t, cfg.GetGzip())
			},
		},
		{
			name:    "bad port",
			base:    DefaultConfig(),
			env:     map[string]string{EnvPort: "http"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := tt.base.applyEnv(func(k string) string { return tt.env[k] })
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, cfg.URL())
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestApplyEnv_ProcessEnvironment(t *testing.T) {
	t.Setenv(EnvHost, "from-env")

	cfg, err := DefaultConfig().ApplyEnv()

	require.NoError(t, err)
	assert.Equal(t, "http://from-env:10035", cfg.URL())
}

func TestMerge(t *testing.T) {
	base := &Config{Host: "a", Headers: map[string]string{"X-A": "1"}, Gzip: BoolPtr(true)}
	other := &Config{Port: 2, Headers: map[string]string{"X-B": "2"}, Gzip: BoolPtr(false)}

	merged := base.Merge(other)

	assert.Equal(t, "http://a:2", merged.URL())
	assert.Equal(t, map[string]string{"X-A": "1", "X-B": "2"}, merged.Headers)
	assert.False(t, merged.GetGzip())
	assert.Equal(t, map[string]string{"X-A": "1"}, base.Headers, "base is not modified")
	assert.Same(t, base, base.Merge(nil))
}

func TestClientOptions(t *testing.T) {
	assert.Len(t, DefaultConfig().ClientOptions(), 1)

	cfg := &Config{Username: "u", Password: "p", MasqueradeUser: "m", Timeout: 100, Headers: map[string]string{"X": "y"}}
	assert.Len(t, cfg.ClientOptions(), 5)

	noPassword := &Config{Username: "u"}
	assert.Len(t, noPassword.ClientOptions(), 1)
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Username = "test"

	for _, name := range []string{"agraph.yaml", "agraph.json"} {
		path := filepath.Join(dir, name)
		require.NoError(t, cfg.SaveConfig(path))

		loaded, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "test", loaded.Username, name)
	}
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "agraph.yaml")
	require.NoError(t, os.WriteFile(path, []byte("username: before\n"), 0600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var got *Config
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = Watch(ctx, path, func(cfg *Config, err error) {
			if err != nil {
				return
			}
			mu.Lock()
			got = cfg
			mu.Unlock()
		})
	}()

	// give the watcher time to register
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("username: after\n"), 0600))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return got != nil && got.Username == "after"
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	<-done
}
