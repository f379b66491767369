// Package mobile drives the navigation shell through the mobile-class
// interaction script: drawer open/close paths and fullscreen on touch
// viewports.
package mobile

import (
	"fmt"
	"path/filepath"

	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"
	"github.com/sirupsen/logrus"

	"github.com/wisdomhq/shellprobe/core"
)

type Checks struct {
	*core.Browser
	core.CheckOptions
	BaseURL     string
	SnapshotDir string
	Diagnostics *core.ErrorLog
}

func New(browser *core.Browser, opts core.CheckOptions, baseURL, snapshotDir string, diagnostics *core.ErrorLog) *Checks {
	opts.Init()
	return &Checks{
		Browser:      browser,
		CheckOptions: opts,
		BaseURL:      baseURL,
		SnapshotDir:  snapshotDir,
		Diagnostics:  diagnostics,
	}
}

func (m *Checks) Name() string {
	return "mobile"
}

// Run executes the mobile script in a fresh touch-capable viewport session.
func (m *Checks) Run(width int) error {
	logrus.Infof("Mobile checks at width %d", width)

	session, err := m.NewSession(core.MobileProfile(width), m.CheckOptions)
	if err != nil {
		return err
	}
	defer session.Close()
	m.Diagnostics.Attach(session.Page)

	if err := m.run(session, width); err != nil {
		return fmt.Errorf("mobile width %d: %w", width, err)
	}
	return nil
}

func (m *Checks) run(s *core.Session, width int) error {
	if err := s.Navigate(m.BaseURL + core.HealthPath); err != nil {
		return err
	}
	if err := s.WaitForAttribute(core.SelShellRoot, core.AttrMobileSidebarOpen, "false"); err != nil {
		return err
	}
	if err := s.WaitForVisible(core.SelMobileMenuButton, true); err != nil {
		return err
	}

	if width == core.MobileSnapshotWidth {
		if err := m.capture(s, "default-mobile"); err != nil {
			return err
		}
	}

	// Pointer-free activation and keyboard dismissal.
	if err := s.Focus(core.SelMobileMenuButton); err != nil {
		return err
	}
	if err := s.Press(input.Enter); err != nil {
		return err
	}
	if err := s.WaitForAttribute(core.SelShellRoot, core.AttrMobileSidebarOpen, "true"); err != nil {
		return err
	}
	if err := s.Press(input.Escape); err != nil {
		return err
	}
	if err := s.WaitForAttribute(core.SelShellRoot, core.AttrMobileSidebarOpen, "false"); err != nil {
		return err
	}

	// Backdrop dismissal. The click is dispatched on the backdrop itself so
	// the drawer cannot swallow it.
	if err := s.Click(core.SelMobileMenuButton); err != nil {
		return err
	}
	if err := s.WaitForAttribute(core.SelShellRoot, core.AttrMobileSidebarOpen, "true"); err != nil {
		return err
	}
	if width == core.MobileSnapshotWidth {
		if err := m.capture(s, "mobile-drawer-open"); err != nil {
			return err
		}
	}
	if err := s.ForceClick(core.SelMobileBackdrop); err != nil {
		return err
	}
	if err := s.WaitForAttribute(core.SelShellRoot, core.AttrMobileSidebarOpen, "false"); err != nil {
		return err
	}

	// A route change auto-dismisses the drawer.
	if err := s.Click(core.SelMobileMenuButton); err != nil {
		return err
	}
	if err := s.WaitForAttribute(core.SelShellRoot, core.AttrMobileSidebarOpen, "true"); err != nil {
		return err
	}
	if err := s.WaitForVisible(core.SelMobileDrawer, true); err != nil {
		return err
	}

	has, link, err := s.Page.Has(core.SelDrawerNavLinks)
	if err != nil {
		return err
	}
	if !has {
		return fmt.Errorf("%w: missing sidebar links for route change drawer test", core.ErrAssertionFailed)
	}
	if err := link.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return err
	}
	if err := s.WaitForAttribute(core.SelShellRoot, core.AttrMobileSidebarOpen, "false"); err != nil {
		return err
	}

	// Fullscreen on touch: the reveal strip responds to taps near its edge.
	if err := s.EnterFullscreen(); err != nil {
		return err
	}
	if err := s.ClickAt(core.SelFullscreenRevealStrip, 6, 1); err != nil {
		return err
	}
	if err := s.WaitForAttribute(core.SelFullscreenControls, core.AttrControlsVisible, "true"); err != nil {
		return err
	}
	return s.ExitFullscreen()
}

func (m *Checks) capture(s *core.Session, name string) error {
	return core.CaptureSnapshot(s.Page, filepath.Join(m.SnapshotDir, name+".png"))
}
