package mobile_test

import (
	"net"
	"path/filepath"
	"testing"

	"github.com/go-rod/rod/lib/launcher"
	"github.com/stretchr/testify/require"

	"github.com/wisdomhq/shellprobe/core"
	"github.com/wisdomhq/shellprobe/fixture"
	"github.com/wisdomhq/shellprobe/mobile"
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
	checks := mobile.New(browser, core.CheckOptions{}, baseURL, snapshotDir, diagnostics)

	require.NoError(t, checks.Run(core.MobileSnapshotWidth))
	require.Truef(t, diagnostics.Empty(), "diagnostics: %v", diagnostics.Messages())

	for _, name := range []string{"default-mobile", "mobile-drawer-open"} {
		require.FileExists(t, filepath.Join(snapshotDir, name+".png"))
	}
}

func TestRunAtNarrowWidth(t *testing.T) {
	baseURL := startFixture(t)
	browser := newBrowser(t)

	diagnostics := core.NewErrorLog()
	snapshotDir := t.TempDir()
	checks := mobile.New(browser, core.CheckOptions{}, baseURL, snapshotDir, diagnostics)

	require.NoError(t, checks.Run(375))
	require.Truef(t, diagnostics.Empty(), "diagnostics: %v", diagnostics.Messages())
	require.NoFileExists(t, filepath.Join(snapshotDir, "default-mobile.png"))
}
