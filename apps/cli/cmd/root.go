package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/elentirmo/agraph-java-client/packages/agraph"
	"github.com/elentirmo/agraph-java-client/packages/core/config"
	"github.com/elentirmo/agraph-java-client/packages/http"
	"github.com/elentirmo/agraph-java-client/packages/output"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

// Persistent flags
var (
	configFlag   string
	envFileFlag  string
	serverFlag   string
	userFlag     string
	passwordFlag string
	catalogFlag  string
	outputFlag   string
	noColorFlag  bool
	noGzipFlag   bool
	quietFlag    bool
	verboseFlag  int // 0=warn, 1=-v info, 2=-vv debug
	timeoutFlag  time.Duration
)

// resolved by the persistent pre-run
var (
	cfg       *config.Config
	cfgPath   string
	logger    zerolog.Logger
	formatter output.Formatter
)

var rootCmd = &cobra.Command{
	Use:   "agraph",
	Short: "Command line client for AllegroGraph servers",
	Long: `agraph manages catalogs, repositories and sessions on an AllegroGraph
server and runs SPARQL queries against it.

The server is taken from --server, AGRAPH_URL or AGRAPH_HOST/AGRAPH_PORT, or an
agraph.yaml file in the current directory, defaulting to http://localhost:10035.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the CLI and exits with a code derived from the error, if any.
func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		if formatter == nil {
			formatter = output.NewConsoleFormatter(output.WithWriter(os.Stderr))
		}
		formatter.FormatError(err)
		os.Exit(exitCodeFor(err))
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configFlag, "config", "c", getEnvString("AGRAPH_CONFIG", ""), "Config file (default: agraph.yaml in the current directory) (env: AGRAPH_CONFIG)")
	pf.StringVar(&envFileFlag, "env-file", "", "Read AGRAPH_* variables from this file (default: .env if present)")
	pf.StringVarP(&serverFlag, "server", "s", "", "Server URL, e.g. http://localhost:10035")
	pf.StringVarP(&userFlag, "user", "u", "", "Username")
	pf.StringVarP(&passwordFlag, "password", "p", "", "Password")
	pf.StringVar(&catalogFlag, "catalog", "", "Catalog name (default: root catalog)")
	pf.StringVarP(&outputFlag, "output", "o", getEnvString("AGRAPH_OUTPUT", "console"), "Output format: console, json (env: AGRAPH_OUTPUT)")
	pf.BoolVar(&noColorFlag, "no-color", getEnvBool("AGRAPH_NO_COLOR", false), "Disable colored output (env: AGRAPH_NO_COLOR)")
	pf.BoolVar(&noGzipFlag, "no-gzip", false, "Do not request gzip-compressed responses")
	pf.BoolVarP(&quietFlag, "quiet", "q", false, "Suppress log output")
	pf.CountVarP(&verboseFlag, "verbose", "v", "Verbose output (-v, -vv for more detail)")
	pf.DurationVar(&timeoutFlag, "timeout", 0, "Per-request timeout (e.g. 30s), 0 for none")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(repoCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(blankNodesCmd)
	rootCmd.AddCommand(pingCmd)
}

// setup resolves configuration, logging and output for every command.
func setup(cmd *cobra.Command, args []string) error {
	loaded, path, err := loadConfig()
	if err != nil {
		return &configError{err: err}
	}
	cfg, cfgPath = loaded, path

	noColor := noColorFlag || cfg.GetNoColor()
	formatter = output.New(outputFlag,
		output.WithWriter(cmd.OutOrStdout()),
		output.WithVerbose(verboseFlag > 0 || cfg.GetVerbose()),
		output.WithNoColor(noColor),
	)
	logger = newLogger(cmd.ErrOrStderr(), noColor)
	return nil
}

// loadConfig merges the config file, the environment and the command line flags.
func loadConfig() (*config.Config, string, error) {
	path := configFlag
	if path == "" {
		path = config.FindConfigFile(".")
	}

	fileCfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, "", err
	}
	resolved, err := resolveConfig(fileCfg)
	if err != nil {
		return nil, "", err
	}
	return resolved, path, nil
}

// resolveConfig applies the environment and then the command line flags on top of
// a loaded config file.
func resolveConfig(fileCfg *config.Config) (*config.Config, error) {
	var merged *config.Config
	var err error
	if envFile := dotEnvPath(); envFile != "" {
		merged, err = fileCfg.ApplyDotEnv(envFile)
	} else {
		merged, err = fileCfg.ApplyEnv()
	}
	if err != nil {
		return nil, err
	}

	flags := &config.Config{
		ServerURL: serverFlag,
		Username:  userFlag,
		Password:  passwordFlag,
		Catalog:   catalogFlag,
		Timeout:   int(timeoutFlag.Milliseconds()),
	}
	if noGzipFlag {
		flags.Gzip = config.BoolPtr(false)
	}
	return merged.Merge(flags), nil
}

func dotEnvPath() string {
	if envFileFlag != "" {
		return envFileFlag
	}
	if _, err := os.Stat(config.DotEnvFilename); err == nil {
		return config.DotEnvFilename
	}
	return ""
}

func newLogger(w io.Writer, noColor bool) zerolog.Logger {
	level := zerolog.WarnLevel
	switch {
	case quietFlag:
		level = zerolog.Disabled
	case verboseFlag >= 2:
		level = zerolog.DebugLevel
	case verboseFlag == 1:
		level = zerolog.InfoLevel
	}
	console := zerolog.ConsoleWriter{Out: w, NoColor: noColor, TimeFormat: time.TimeOnly}
	return zerolog.New(console).Level(level).With().Timestamp().Logger()
}

// newServer connects to the configured server.
func newServer() *agraph.Server {
	return serverFor(cfg)
}

// serverFor connects to the server described by c. The logger goes first so the
// remaining options already log through it.
func serverFor(c *config.Config) *agraph.Server {
	opts := append([]http.ClientOption{http.WithLogger(logger)}, c.ClientOptions()...)
	return agraph.NewServer(c.URL(), opts...)
}

// currentCatalog is the catalog named by --catalog or the config.
func currentCatalog(server *agraph.Server) *agraph.Catalog {
	return server.OpenCatalog(cfg.Catalog)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
