package core

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-rod/rod/lib/launcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sessionTestPage = `<!doctype html>
<html><body>
<div id="box" data-state="off" style="width:100px;height:40px">box</div>
<div id="ghost" style="display:none">ghost</div>
<script>
  setTimeout(function () {
    document.getElementById('box').setAttribute('data-state', 'on');
  }, 200);
</script>
</body></html>`

func newTestBrowser(t *testing.T) *Browser {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}
	if _, has := launcher.LookPath(); !has {
		t.Skip("no browser found")
	}

	browser, err := NewBrowser(BrowserOpts{IsHeadless: true, Timeout: 10 * time.Second})
	require.NoError(t, err)
	require.True(t, browser.IsInitialized())
	t.Cleanup(func() { _ = browser.Close() })
	return browser
}

func TestSessionWaiters(t *testing.T) {
	browser := newTestBrowser(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(sessionTestPage))
	}))
	defer server.Close()

	session, err := browser.NewSession(DesktopProfile(1280), CheckOptions{})
	require.NoError(t, err)
	defer session.Close()

	require.NoError(t, session.Navigate(server.URL))

	// The attribute flips asynchronously; the poller must catch it.
	require.NoError(t, session.WaitForAttribute("#box", "data-state", "on"))
	require.NoError(t, session.WaitForVisible("#box", true))
	require.NoError(t, session.WaitForVisible("#ghost", false))
	require.NoError(t, session.WaitForVisible("#missing", false))
}

func TestSessionWaiterTimeoutMessage(t *testing.T) {
	browser := newTestBrowser(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(sessionTestPage))
	}))
	defer server.Close()

	session, err := browser.NewSession(DesktopProfile(1280), CheckOptions{ConditionTimeoutMs: 300})
	require.NoError(t, err)
	defer session.Close()

	require.NoError(t, session.Navigate(server.URL))

	err = session.WaitForAttribute("#box", "data-state", "never")
	require.ErrorIs(t, err, ErrAssertionFailed)
	assert.Contains(t, err.Error(), "#box")
	assert.Contains(t, err.Error(), "data-state=never")
}

func TestErrorLogAttach(t *testing.T) {
	browser := newTestBrowser(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body>quiet page</body></html>"))
	}))
	defer server.Close()

	session, err := browser.NewSession(MobileProfile(390), CheckOptions{})
	require.NoError(t, err)
	defer session.Close()

	log := NewErrorLog()
	log.Attach(session.Page)

	require.NoError(t, session.Navigate(server.URL))

	_, err = session.Page.Eval(`() => console.error("harness", "boom")`)
	require.NoError(t, err)
	_, err = session.Page.Eval(`() => setTimeout(() => { throw new Error("kaput") }, 0)`)
	require.NoError(t, err)

	require.NoError(t, PollUntil(func() (bool, error) {
		return len(log.Records()) >= 2, nil
	}, 50*time.Millisecond, 5*time.Second))

	messages := log.Messages()
	assert.Contains(t, messages[0], "console error: harness boom")
	assert.Contains(t, messages[1], "page error:")
	assert.Contains(t, messages[1], "kaput")
}
