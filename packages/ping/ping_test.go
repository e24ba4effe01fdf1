package ping

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	aghttp "github.com/elentirmo/agraph-java-client/packages/http"
)

type fakeTarget struct {
	calls atomic.Int64
	err   error
	delay time.Duration
}

func (f *fakeTarget) Version(ctx context.Context) (string, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.err != nil {
		return "", f.err
	}
	return "7.3.0", nil
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"count", Config{Count: 3}, false},
		{"duration", Config{Duration: time.Second}, false},
		{"unbounded", Config{}, true},
		{"negative count", Config{Count: -1, Duration: time.Second}, true},
		{"negative rate", Config{Count: 1, Rate: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPinger_Count(t *testing.T) {
	target := &fakeTarget{}
	var mu sync.Mutex
	var seqs []int64

	p, err := New(target, Config{Count: 10, Concurrency: 3}, WithResultCallback(func(r Result) {
		mu.Lock()
		seqs = append(seqs, r.Seq)
		mu.Unlock()
	}))
	require.NoError(t, err)

	summary, err := p.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(10), target.calls.Load())
	assert.Equal(t, int64(10), summary.Total)
	assert.Equal(t, int64(10), summary.Success)
	assert.Len(t, seqs, 10)
}

func TestPinger_Rate(t *testing.T) {
	target := &fakeTarget{}
	p, err := New(target, Config{Count: 5, Rate: 50})
	require.NoError(t, err)

	start := time.Now()
	_, err = p.Run(context.Background())
	require.NoError(t, err)

	// burst of one, then 20ms apart
	assert.GreaterOrEqual(t, time.Since(start), 70*time.Millisecond)
}

func TestPinger_Duration(t *testing.T) {
	target := &fakeTarget{delay: time.Millisecond}
	p, err := New(target, Config{Duration: 50 * time.Millisecond})
	require.NoError(t, err)

	summary, err := p.Run(context.Background())

	require.NoError(t, err)
	assert.Greater(t, summary.Total, int64(0))
	assert.Equal(t, int64(0), summary.Errors)
}

func TestPinger_Errors(t *testing.T) {
	target := &fakeTarget{err: &aghttp.Error{Kind: aghttp.KindUnauthorized, StatusCode: 401}}
	p, err := New(target, Config{Count: 4}, WithLogger(zerolog.Nop()))
	require.NoError(t, err)

	summary, err := p.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(4), summary.Errors)
	assert.Equal(t, 1.0, summary.ErrorRate)
	assert.Equal(t, map[string]int64{"unauthorized": 4}, summary.ErrorKinds)
}

func TestPinger_SetTarget(t *testing.T) {
	failing := &fakeTarget{err: errors.New("down")}
	healthy := &fakeTarget{}

	var p *Pinger
	var err error
	p, err = New(failing, Config{Count: 4}, WithResultCallback(func(r Result) {
		if r.Seq == 2 {
			p.SetTarget(healthy)
		}
	}))
	require.NoError(t, err)

	summary, err := p.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(2), failing.calls.Load())
	assert.Equal(t, int64(2), healthy.calls.Load())
	assert.Equal(t, map[string]int64{"other": 2}, summary.ErrorKinds)
}

func TestPinger_AgainstServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("7.3.0"))
	}))
	defer server.Close()

	client := aghttp.NewClient(server.URL, aghttp.WithLogger(zerolog.Nop()))
	defer client.Close()

	p, err := New(client, Config{Count: 20, Concurrency: 4})
	require.NoError(t, err)

	summary, err := p.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(20), summary.Success)
	assert.Greater(t, summary.P99, time.Duration(0))
	assert.LessOrEqual(t, summary.P50, summary.P99)
	assert.Equal(t, int64(0), client.InUse())
}

func TestMetrics_ClampsLatency(t *testing.T) {
	m := NewMetrics()
	m.Start()
	m.Record(0, nil)
	m.Record(2*time.Minute, nil)
	m.Stop()

	summary := m.GetSummary()

	assert.Equal(t, time.Microsecond, summary.Min)
	assert.InDelta(t, float64(60*time.Second), float64(summary.Max), float64(100*time.Millisecond))
}
