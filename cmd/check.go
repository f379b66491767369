package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wisdomhq/shellprobe/core"
	"github.com/wisdomhq/shellprobe/desktop"
	"github.com/wisdomhq/shellprobe/mobile"
)

var checkCMD = &cobra.Command{
	Use:     "check",
	Aliases: []string{"run"},
	Short:   "Run the shell checks across all configured breakpoints",
	Args:    cobra.MatchAll(cobra.NoArgs),
	RunE:    check,
}

// Snapshots compared at the end of a run, in a fixed order.
var snapshotNames = []string{
	"default-desktop",
	"default-mobile",
	"fullscreen-hidden-controls",
	"fullscreen-revealed-controls",
	"mobile-drawer-open",
}

func check(cmd *cobra.Command, args []string) error {
	config.Checks.Init()

	root, err := filepath.Abs(config.App.WorkspaceRoot)
	if err != nil {
		return err
	}

	baseURL := fmt.Sprintf("http://127.0.0.1:%d", config.App.Port)
	baselineDir, currentDir, diffDir, err := prepareSnapshotDirs(root)
	if err != nil {
		return err
	}

	process, err := core.StartApp(core.ProcessOpts{
		Command:       strings.Fields(config.App.AppCmd),
		Dir:           filepath.Join(root, "server"),
		Port:          config.App.Port,
		WorkspaceRoot: root,
	})
	if err != nil {
		return err
	}
	defer process.Stop()

	if err := core.AwaitReady(baseURL, config.Checks.GetReadyTimeout()); err != nil {
		return err
	}

	opts := core.BrowserOpts{
		IsHeadless:    !config.App.IsBrowserHead, // Disable headless if browser head mode is set
		IsLeakless:    config.App.IsLeakless,
		Timeout:       time.Second * time.Duration(config.App.Timeout),
		LeavePageOpen: config.App.IsLeaveHead,
	}
	if config.App.IsDebug {
		opts.IsHeadless = false
	}

	browser, err := core.NewBrowser(opts)
	if err != nil {
		return err
	}
	defer browser.Close()

	// One diagnostic log spans every session of the run.
	diagnostics := core.NewErrorLog()

	desk := desktop.New(browser, config.Checks, baseURL, currentDir, diagnostics)
	for _, width := range core.DesktopWidths {
		if err := desk.Run(width); err != nil {
			return err
		}
	}

	mob := mobile.New(browser, config.Checks, baseURL, currentDir, diagnostics)
	for _, width := range core.MobileWidths {
		if err := mob.Run(width); err != nil {
			return err
		}
	}

	if !diagnostics.Empty() {
		return fmt.Errorf("%w:\n%s", core.ErrDiagnostics, strings.Join(diagnostics.Messages(), "\n"))
	}

	for _, name := range snapshotNames {
		err := core.CompareSnapshot(name, baselineDir, currentDir, diffDir,
			config.App.UpdateSnapshots, config.App.SnapshotThreshold)
		if err != nil {
			return err
		}
	}

	fmt.Println("Shell checks passed.")
	return nil
}

// prepareSnapshotDirs wipes current and diff, keeps baseline, and returns
// the three directories.
func prepareSnapshotDirs(root string) (baselineDir, currentDir, diffDir string, err error) {
	base := config.App.SnapshotDir
	if base == "" {
		base = filepath.Join(root, "ui", "tests", "playwright_snapshots")
	}

	baselineDir = filepath.Join(base, "baseline")
	currentDir = filepath.Join(base, "current")
	diffDir = filepath.Join(base, "diff")

	logrus.Debug("Snapshot root: ", base)
	if err = os.RemoveAll(currentDir); err != nil {
		return
	}
	if err = os.RemoveAll(diffDir); err != nil {
		return
	}
	err = os.MkdirAll(currentDir, 0o755)
	return
}

func init() {
	RootCmd.AddCommand(checkCMD)
}
