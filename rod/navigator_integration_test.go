//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/pagekeep"
	"github.com/fwojciec/pagekeep/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNavigator(t *testing.T, opts ...rod.NavigatorOption) *rod.Navigator {
	t.Helper()
	browser, err := rod.NewBrowser()
	require.NoError(t, err)
	nav := rod.NewNavigator(browser, opts...)
	t.Cleanup(func() { _ = nav.Close() })
	return nav
}

func TestNavigator_Open_ReturnsLoadedPage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Test Page</title></head>
<body>
<main id="content">Loading...</main>
<script>
document.getElementById('content').textContent = 'JavaScript Rendered';
</script>
</body>
</html>`))
	}))
	defer srv.Close()

	nav := newNavigator(t)
	ctx := context.Background()

	page, release, err := nav.Open(ctx, srv.URL)
	require.NoError(t, err)
	defer release()

	state, err := page.ReadyState(ctx)
	require.NoError(t, err)
	assert.Equal(t, pagekeep.ReadyStateComplete, state)

	loc, err := page.Location(ctx)
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/", loc)

	snap, err := page.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Test Page", snap.Title)
	assert.Contains(t, snap.HTML, "JavaScript Rendered")
	assert.NotContains(t, snap.HTML, "Loading...")
}

func TestNavigator_Open_ContextCancellation(t *testing.T) {
	t.Parallel()

	nav := newNavigator(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	_, _, err := nav.Open(ctx, "http://127.0.0.1:1/")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNavigator_Open_TimeoutTriggersOnSlowPage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		_, _ = w.Write([]byte("<html><body>slow</body></html>"))
	}))
	defer srv.Close()

	nav := newNavigator(t, rod.WithLoadTimeout(100*time.Millisecond))

	_, _, err := nav.Open(context.Background(), srv.URL)

	require.Error(t, err)
}

func TestNavigator_Fetch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body><p>static</p></body></html>"))
	}))
	defer srv.Close()

	nav := newNavigator(t)

	snap, err := nav.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Contains(t, snap.HTML, "<p>static</p>")
}
