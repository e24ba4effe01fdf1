package ping

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Target is what gets pinged; *http.Client satisfies it.
type Target interface {
	Version(ctx context.Context) (string, error)
}

// Config controls a run. The run ends when Count pings were sent or Duration
// elapsed, whichever comes first; zero disables that bound.
type Config struct {
	Count       int
	Duration    time.Duration
	Rate        float64 // pings per second, 0 for as fast as possible
	Concurrency int
	Timeout     time.Duration // per ping, 0 for none
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if c.Count < 0 {
		return fmt.Errorf("count must be non-negative")
	}
	if c.Count == 0 && c.Duration <= 0 {
		return fmt.Errorf("either count or duration must be set")
	}
	if c.Rate < 0 {
		return fmt.Errorf("rate must be non-negative")
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must be non-negative")
	}
	return nil
}

// Result is reported after each ping.
type Result struct {
	Seq     int64
	Latency time.Duration
	Version string
	Err     error
}

// Pinger runs ping loops against a swappable target.
type Pinger struct {
	config  Config
	target  atomic.Pointer[targetBox]
	limiter *rate.Limiter
	metrics *Metrics
	logger  zerolog.Logger

	onResult func(Result)
}

type targetBox struct{ t Target }

type Option func(*Pinger)

func WithLogger(logger zerolog.Logger) Option {
	return func(p *Pinger) {
		p.logger = logger
	}
}

// WithResultCallback is called after every ping, from the worker that sent it.
func WithResultCallback(fn func(Result)) Option {
	return func(p *Pinger) {
		p.onResult = fn
	}
}

func New(target Target, config Config, opts ...Option) (*Pinger, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Concurrency < 1 {
		config.Concurrency = 1
	}

	p := &Pinger{
		config:  config,
		metrics: NewMetrics(),
		logger:  zerolog.Nop(),
	}
	if config.Rate > 0 {
		p.limiter = rate.NewLimiter(rate.Limit(config.Rate), 1)
	}
	p.SetTarget(target)

	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// SetTarget replaces the target; pings already in flight finish on the old one.
func (p *Pinger) SetTarget(t Target) {
	p.target.Store(&targetBox{t: t})
}

func (p *Pinger) Metrics() *Metrics {
	return p.metrics
}

// Run pings until the configured bound is reached or ctx is done.
func (p *Pinger) Run(ctx context.Context) (*Summary, error) {
	if p.config.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.config.Duration)
		defer cancel()
	}

	p.metrics.Start()
	defer p.metrics.Stop()

	var seq atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < p.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.worker(ctx, &seq)
		}()
	}
	wg.Wait()

	return p.metrics.GetSummary(), nil
}

func (p *Pinger) worker(ctx context.Context, seq *atomic.Int64) {
	for {
		if p.limiter != nil {
			if err := p.limiter.Wait(ctx); err != nil {
				return
			}
		} else if ctx.Err() != nil {
			return
		}

		n := seq.Add(1)
		if p.config.Count > 0 && n > int64(p.config.Count) {
			return
		}

		res := p.pingOnce(ctx, n)
		if res.Err != nil && ctx.Err() != nil {
			// run was stopped mid-ping
			return
		}
		p.metrics.Record(res.Latency, res.Err)
		if res.Err != nil {
			p.logger.Debug().Err(res.Err).Int64("seq", n).Msg("ping failed")
		}
		if p.onResult != nil {
			p.onResult(res)
		}
	}
}

func (p *Pinger) pingOnce(ctx context.Context, n int64) Result {
	if p.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.config.Timeout)
		defer cancel()
	}

	target := p.target.Load().t
	start := time.Now()
	version, err := target.Version(ctx)
	return Result{Seq: n, Latency: time.Since(start), Version: version, Err: err}
}
