package fixture

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Query hooks the interaction scripts consume; the fixture must expose all
// of them.
var requiredHooks = []string{
	"[data-testid='shell-root'][data-fullscreen][data-mobile-sidebar-open]",
	"[data-testid='desktop-sidebar']",
	"[data-testid='mobile-menu-button']",
	"[data-testid='mobile-drawer']",
	"[data-testid='mobile-backdrop']",
	"[data-testid='mobile-drawer'] [data-testid='sidebar-nav'] a",
	"[data-testid='fullscreen-toggle-header']",
	"[data-testid='fullscreen-toggle-overlay']",
	"[data-testid='fullscreen-controls'][data-visible]",
	"[data-testid='fullscreen-reveal-strip']",
	"[data-testid='desktop-sidebar'] a[href='/ws/ui/src/components/shell.tsx/']",
	"[data-testid='desktop-sidebar'] button[aria-expanded][aria-controls]",
}

func TestShellMarkupExposesAllHooks(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(ShellPage))
	require.NoError(t, err)

	for _, hook := range requiredHooks {
		assert.Positivef(t, doc.Find(hook).Length(), "missing hook: %s", hook)
	}

	root := doc.Find("[data-testid='shell-root']")
	fullscreen, _ := root.Attr("data-fullscreen")
	assert.Equal(t, "false", fullscreen)
	drawerOpen, _ := root.Attr("data-mobile-sidebar-open")
	assert.Equal(t, "false", drawerOpen)
}

func TestShellServedOnEveryWorkspaceRoute(t *testing.T) {
	server := NewServer("127.0.0.1", 0)

	for _, path := range []string{"/ws/", "/ws/ui/", "/ws/ui/src/components/"} {
		resp, err := server.App().Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		assert.Equalf(t, http.StatusOK, resp.StatusCode, "path %s", path)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "data-testid=\"shell-root\"")
	}
}

func TestRootRedirectsToWorkspace(t *testing.T) {
	server := NewServer("127.0.0.1", 0)

	resp, err := server.App().Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/ws/", resp.Header.Get("Location"))
}
