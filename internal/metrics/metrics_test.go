package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_CountsOutcomes(t *testing.T) {
	r := New()

	r.ObserveSearch("ok", 120*time.Millisecond, 20)
	r.ObserveSearch("ok", 80*time.Millisecond, 3)
	r.ObserveSearch("status", 10*time.Millisecond, 0)
	r.StaleDiscarded()
	r.EmptyRejected()
	r.EmptyRejected()

	assert.Equal(t, 2.0, testutil.ToFloat64(r.searches.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.searches.WithLabelValues("status")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.stale))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.rejected))
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.ObserveSearch("ok", time.Second, 1)
		r.StaleDiscarded()
		r.EmptyRejected()
	})
}

func TestRecorder_HandlerExposesMetrics(t *testing.T) {
	r := New()
	r.ObserveSearch("decode", time.Millisecond, 0)

	server := httptest.NewServer(r.Handler())
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `booksearch_searches_total{outcome="decode"} 1`), string(body))
}
