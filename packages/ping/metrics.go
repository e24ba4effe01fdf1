package ping

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"

	"github.com/elentirmo/agraph-java-client/packages/http"
)

// Histogram range in microseconds: 1us to 60s, 3 significant digits.
const (
	minLatencyUs = 1
	maxLatencyUs = 60_000_000
)

// Metrics collects ping results. It is safe for concurrent use.
type Metrics struct {
	mu sync.Mutex

	total   atomic.Int64
	success atomic.Int64
	errors  atomic.Int64

	histogram *hdrhistogram.Histogram
	errKinds  map[string]int64

	startTime time.Time
	endTime   time.Time
}

func NewMetrics() *Metrics {
	return &Metrics{
		histogram: hdrhistogram.New(minLatencyUs, maxLatencyUs, 3),
		errKinds:  make(map[string]int64),
	}
}

// Start marks the beginning of the run
func (m *Metrics) Start() {
	m.mu.Lock()
	m.startTime = time.Now()
	m.mu.Unlock()
}

// Stop marks the end of the run
func (m *Metrics) Stop() {
	m.mu.Lock()
	m.endTime = time.Now()
	m.mu.Unlock()
}

// Record records one ping. Failed pings count towards errors and are grouped by
// error kind; only successful pings enter the latency histogram.
func (m *Metrics) Record(duration time.Duration, err error) {
	m.total.Add(1)

	if err != nil {
		m.errors.Add(1)
		kind := "other"
		if k, ok := http.KindOf(err); ok {
			kind = k.String()
		}
		m.mu.Lock()
		m.errKinds[kind]++
		m.mu.Unlock()
		return
	}
	m.success.Add(1)

	latencyUs := duration.Microseconds()
	if latencyUs < minLatencyUs {
		latencyUs = minLatencyUs
	}
	if latencyUs > maxLatencyUs {
		latencyUs = maxLatencyUs
	}

	m.mu.Lock()
	_ = m.histogram.RecordValue(latencyUs)
	m.mu.Unlock()
}

// Summary is the result of a run.
type Summary struct {
	Duration time.Duration
	Total    int64
	Success  int64
	Errors   int64

	// Errors grouped by error kind
	ErrorKinds map[string]int64

	RPS       float64
	ErrorRate float64

	P50  time.Duration
	P95  time.Duration
	P99  time.Duration
	Min  time.Duration
	Max  time.Duration
	Mean time.Duration
}

// GetSummary returns the metrics summary
func (m *Metrics) GetSummary() *Summary {
	m.mu.Lock()
	defer m.mu.Unlock()

	duration := m.endTime.Sub(m.startTime)
	if m.endTime.IsZero() {
		duration = time.Since(m.startTime)
	}

	total := m.total.Load()
	errors := m.errors.Load()

	rps := float64(0)
	if duration.Seconds() > 0 {
		rps = float64(total) / duration.Seconds()
	}
	errorRate := float64(0)
	if total > 0 {
		errorRate = float64(errors) / float64(total)
	}

	kinds := make(map[string]int64, len(m.errKinds))
	for k, v := range m.errKinds {
		kinds[k] = v
	}

	return &Summary{
		Duration:   duration,
		Total:      total,
		Success:    m.success.Load(),
		Errors:     errors,
		ErrorKinds: kinds,
		RPS:        rps,
		ErrorRate:  errorRate,
		P50:        usToDuration(m.histogram.ValueAtQuantile(50)),
		P95:        usToDuration(m.histogram.ValueAtQuantile(95)),
		P99:        usToDuration(m.histogram.ValueAtQuantile(99)),
		Min:        usToDuration(m.histogram.Min()),
		Max:        usToDuration(m.histogram.Max()),
		Mean:       time.Duration(m.histogram.Mean() * float64(time.Microsecond)),
	}
}

func usToDuration(us int64) time.Duration {
	return time.Duration(us) * time.Microsecond
}
