package desktop_test

import (
	"net"
	"path/filepath"
	"testing"

	"github.com/go-rod/rod/lib/launcher"
	"github.com/stretchr/testify/require"

	"github.com/wisdomhq/shellprobe/core"
	"github.com/wisdomhq/shellprobe/desktop"
	"github.com/wisdomhq/shellprobe/fixture"
)

func startFixture(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	server := fixture.NewServer("127.0.0.1", 0)
	go func() { _ = server.Serve(ln) }()
	t.Cleanup(func() { _ = server.Shutdown() })

	return "http://" + ln.Addr().String()
}

func newBrowser(t *testing.T) *core.Browser {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}
	if _, has := launcher.LookPath(); !has {
		t.Skip("no browser found")
	}

	browser, err := core.NewBrowser(core.BrowserOpts{IsHeadless: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = browser.Close() })
	return browser
}

func TestRunAtSnapshotWidth(t *testing.T) {
	baseURL := startFixture(t)
	browser := newBrowser(t)

	diagnostics := core.NewErrorLog()
	snapshotDir := t.TempDir()
	checks := desktop.New(browser, core.CheckOptions{}, baseURL, snapshotDir, diagnostics)

	require.NoError(t, checks.Run(core.DesktopSnapshotWidth))
	require.Truef(t, diagnostics.Empty(), "diagnostics: %v", diagnostics.Messages())

	for _, name := range []string{"default-desktop", "fullscreen-hidden-controls", "fullscreen-revealed-controls"} {
		require.FileExists(t, filepath.Join(snapshotDir, name+".png"))
	}
}

func TestRunExercisesSidebarCollapse(t *testing.T) {
	baseURL := startFixture(t)
	browser := newBrowser(t)

	diagnostics := core.NewErrorLog()
	snapshotDir := t.TempDir()
	checks := desktop.New(browser, core.CheckOptions{}, baseURL, snapshotDir, diagnostics)

	// 1024 runs the collapsible-group sequence and captures nothing.
	require.NoError(t, checks.Run(1024))
	require.Truef(t, diagnostics.Empty(), "diagnostics: %v", diagnostics.Messages())
	require.NoFileExists(t, filepath.Join(snapshotDir, "default-desktop.png"))
}
