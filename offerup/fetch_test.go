package offerup

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestFetcher(t *testing.T, cfg *Config) (*Fetcher, *[]time.Duration) {
	t.Helper()
	f, err := NewFetcher(cfg, testLogger())
	require.NoError(t, err)
	waits := &[]time.Duration{}
	f.sleep = func(d time.Duration) {
		*waits = append(*waits, d)
	}
	return f, waits
}

func TestFetchSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	f, _ := newTestFetcher(t, DefaultConfig())
	body, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "<html>ok</html>", body)
}

func TestFetchStatusClassification(t *testing.T) {
	cases := []struct {
		name     string
		code     int
		wantKind Kind
	}{
		{name: "not found", code: http.StatusNotFound, wantKind: KindNotFound},
		{name: "forbidden", code: http.StatusForbidden, wantKind: KindForbidden},
		{name: "internal", code: http.StatusInternalServerError, wantKind: KindServerError},
		{name: "bad gateway", code: http.StatusBadGateway, wantKind: KindServerError},
		{name: "teapot", code: http.StatusTeapot, wantKind: KindHTTPError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var attempts atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				attempts.Add(1)
				w.WriteHeader(tc.code)
			}))
			defer srv.Close()

			f, waits := newTestFetcher(t, DefaultConfig())
			_, err := f.Fetch(context.Background(), srv.URL)
			require.Error(t, err)
			assert.Equal(t, tc.wantKind, ErrorKind(err))

			// status errors are never retried
			assert.Equal(t, int32(1), attempts.Load())
			assert.Empty(t, *waits)

			var se *Error
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tc.code, se.StatusCode)
		})
	}
}

func TestFetchRetriesOnTimeout(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.RequestTimeout = 50 * time.Millisecond
	f, waits := newTestFetcher(t, cfg)

	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, KindTimeout, ErrorKind(err))
	assert.Equal(t, int32(3), attempts.Load())
	assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, *waits)
}

func TestFetchConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	f, waits := newTestFetcher(t, DefaultConfig())
	_, err := f.Fetch(context.Background(), url)
	require.Error(t, err)
	assert.Equal(t, KindConnection, ErrorKind(err))
	assert.Empty(t, *waits)
}

func TestFetchInterrupted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f, _ := newTestFetcher(t, DefaultConfig())
	_, err := f.Fetch(ctx, srv.URL)
	require.Error(t, err)
	assert.Equal(t, KindInterrupted, ErrorKind(err))
}
