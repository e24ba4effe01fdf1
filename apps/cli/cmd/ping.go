package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/elentirmo/agraph-java-client/packages/agraph"
	"github.com/elentirmo/agraph-java-client/packages/core/config"
	"github.com/elentirmo/agraph-java-client/packages/ping"
)

var (
	pingCountFlag       int
	pingDurationFlag    time.Duration
	pingRateFlag        float64
	pingConcurrencyFlag int
	pingWatchFlag       bool
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Measure request latency to the server",
	Long: `Repeatedly request the server version and report latency percentiles.

With --watch the config file is reloaded whenever it changes, so a long run picks
up new credentials without restarting.

Examples:
  agraph ping
  agraph ping -n 1000 --rate 50 --concurrency 4
  agraph ping --duration 10m --watch -o json`,
	Args: cobra.NoArgs,
	RunE: pingCommand,
}

func init() {
	pingCmd.Flags().IntVarP(&pingCountFlag, "count", "n", getEnvInt("AGRAPH_PING_COUNT", 10), "Number of pings, 0 to run for --duration (env: AGRAPH_PING_COUNT)")
	pingCmd.Flags().DurationVarP(&pingDurationFlag, "duration", "d", 0, "Stop after this long")
	pingCmd.Flags().Float64VarP(&pingRateFlag, "rate", "r", 10, "Pings per second, 0 for no limit")
	pingCmd.Flags().IntVar(&pingConcurrencyFlag, "concurrency", 1, "Concurrent pings")
	pingCmd.Flags().BoolVarP(&pingWatchFlag, "watch", "w", false, "Reload the config file when it changes")
}

func pingCommand(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	server := newServer()
	servers := []*agraph.Server{server}
	var mu sync.Mutex
	defer func() {
		mu.Lock()
		defer mu.Unlock()
		for _, s := range servers {
			_ = s.Close()
		}
	}()

	pinger, err := ping.New(server.Client(), ping.Config{
		Count:       pingCountFlag,
		Duration:    pingDurationFlag,
		Rate:        pingRateFlag,
		Concurrency: pingConcurrencyFlag,
	}, ping.WithLogger(logger), ping.WithResultCallback(formatter.FormatPing))
	if err != nil {
		return err
	}

	if pingWatchFlag {
		if cfgPath == "" {
			return &configError{err: fmt.Errorf("--watch needs a config file")}
		}
		watchCtx, stopWatch := context.WithCancel(ctx)
		defer stopWatch()
		go func() {
			err := config.Watch(watchCtx, cfgPath, func(fileCfg *config.Config, err error) {
				if err != nil {
					logger.Warn().Err(err).Str("file", cfgPath).Msg("config reload failed")
					return
				}
				resolved, err := resolveConfig(fileCfg)
				if err != nil {
					logger.Warn().Err(err).Msg("config reload failed")
					return
				}
				next := serverFor(resolved)
				mu.Lock()
				servers = append(servers, next)
				mu.Unlock()
				pinger.SetTarget(next.Client())
				logger.Info().Str("server", next.URL()).Msg("config reloaded")
			})
			if err != nil {
				logger.Warn().Err(err).Msg("config watch stopped")
			}
		}()
	}

	logger.Info().Str("server", server.URL()).Msg("ping")
	summary, err := pinger.Run(ctx)
	if err != nil {
		return err
	}
	formatter.FormatPingSummary(summary)

	if summary.Success == 0 && summary.Total > 0 {
		return fmt.Errorf("all %d pings failed", summary.Total)
	}
	return nil
}
