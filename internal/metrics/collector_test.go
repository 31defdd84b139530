package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_word_frequency/internal/core/domain"
)

func TestObserveFiles(t *testing.T) {
	c := NewCollector("test")
	c.ObserveFiles(
		domain.FileResult{Name: "a.txt", Tokens: 10, Bytes: 60},
		domain.FileResult{Name: "b.txt", Tokens: 5, Bytes: 30},
		domain.FileResult{Name: "c.txt", Err: errors.New("boom")},
	)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.filesTotal.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.filesTotal.WithLabelValues("error")))
	assert.Equal(t, 15.0, testutil.ToFloat64(c.tokensTotal))
	assert.Equal(t, 90.0, testutil.ToFloat64(c.bytesTotal))
}

func TestObserveTokens(t *testing.T) {
	c := NewCollector("test")
	c.ObserveTokens(7, 42)
	c.ObserveTokens(3, 8)

	assert.Equal(t, 10.0, testutil.ToFloat64(c.tokensTotal))
	assert.Equal(t, 50.0, testutil.ToFloat64(c.bytesTotal))
}

func TestObserveRequest(t *testing.T) {
	c := NewCollector("test")
	c.ObserveRequest("POST", "/count", 200, 5*time.Millisecond)
	c.ObserveRequest("POST", "/count", 200, 7*time.Millisecond)
	c.ObserveRequest("GET", "/missing", 404, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.requestsTotal.WithLabelValues("POST", "/count", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.requestsTotal.WithLabelValues("GET", "/missing", "404")))
	assert.Equal(t, 2, testutil.CollectAndCount(c.requestDuration))
}

func TestCollectorsAreIndependent(t *testing.T) {
	a := NewCollector("test")
	b := NewCollector("test")
	a.ObserveTokens(1, 1)

	assert.Equal(t, 1.0, testutil.ToFloat64(a.tokensTotal))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.tokensTotal))
}

func TestHandlerExposesMetrics(t *testing.T) {
	c := NewCollector("wordcount")
	c.ObserveTokens(3, 12)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "wordcount_tokens_read_total 3")
	assert.Contains(t, string(body), "go_goroutines")
}
