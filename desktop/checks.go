// Package desktop drives the navigation shell through the desktop-class
// interaction script: sidebar state, collapsible groups and fullscreen mode.
package desktop

import (
	"fmt"
	"path/filepath"

	"github.com/go-rod/rod/lib/proto"
	"github.com/sirupsen/logrus"

	"github.com/wisdomhq/shellprobe/core"
)

const (
	// Sidebar collapse is only exercised at the narrowest desktop width.
	collapseCheckWidth = 1024

	nestedRoute     = "/ws/ui/src/components/"
	nestedLinkSel   = "[data-testid='desktop-sidebar'] a[href='/ws/ui/src/components/shell.tsx/']"
	groupToggleSel  = "[data-testid='desktop-sidebar'] button"
	groupToggleText = "components"
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

func (d *Checks) Name() string {
	return "desktop"
}

// Run executes the desktop script in a fresh viewport session at the given
// width. Snapshots are captured only at the representative width.
func (d *Checks) Run(width int) error {
	logrus.Infof("Desktop checks at width %d", width)

	session, err := d.NewSession(core.DesktopProfile(width), d.CheckOptions)
	if err != nil {
		return err
	}
	defer session.Close()
	d.Diagnostics.Attach(session.Page)

	if err := d.run(session, width); err != nil {
		return fmt.Errorf("desktop width %d: %w", width, err)
	}
	return nil
}

func (d *Checks) run(s *core.Session, width int) error {
	if err := s.Navigate(d.BaseURL + core.HealthPath); err != nil {
		return err
	}
	if err := s.WaitForAttribute(core.SelShellRoot, core.AttrFullscreen, "false"); err != nil {
		return err
	}
	if err := s.WaitForVisible(core.SelDesktopSidebar, true); err != nil {
		return err
	}
	if err := s.WaitForVisible(core.SelMobileMenuButton, false); err != nil {
		return err
	}

	if width == collapseCheckWidth {
		if err := d.checkSidebarCollapse(s); err != nil {
			return err
		}
	}

	if width == core.DesktopSnapshotWidth {
		if err := d.capture(s, "default-desktop"); err != nil {
			return err
		}
	}

	if err := s.EnterFullscreen(); err != nil {
		return err
	}
	if err := s.WaitForVisible(core.SelFullscreenOverlayBtn, false); err != nil {
		return err
	}
	if width == core.DesktopSnapshotWidth {
		if err := d.capture(s, "fullscreen-hidden-controls"); err != nil {
			return err
		}
	}

	// Pointer activity at the top of the viewport reveals the controls.
	if err := s.MoveMouse(float64(width)/2, 0); err != nil {
		return err
	}
	if err := s.WaitForAttribute(core.SelFullscreenControls, core.AttrControlsVisible, "true"); err != nil {
		return err
	}
	if err := s.WaitForVisible(core.SelFullscreenOverlayBtn, true); err != nil {
		return err
	}
	if width == core.DesktopSnapshotWidth {
		if err := d.capture(s, "fullscreen-revealed-controls"); err != nil {
			return err
		}
	}

	// Focus inside the controls suppresses the auto-hide timer.
	if err := s.Focus(core.SelFullscreenOverlayBtn); err != nil {
		return err
	}
	s.IdleWait()
	if err := s.WaitForAttribute(core.SelFullscreenControls, core.AttrControlsVisible, "true"); err != nil {
		return err
	}

	// The reveal strip does not.
	if err := s.Focus(core.SelFullscreenRevealStrip); err != nil {
		return err
	}
	s.IdleWait()
	if err := s.WaitForAttribute(core.SelFullscreenControls, core.AttrControlsVisible, "false"); err != nil {
		return err
	}

	return s.ExitFullscreen()
}

// checkSidebarCollapse navigates to a nested route and verifies the
// collapsible group toggle: expanded it references its target through
// aria-controls, collapsed the attribute is removed and the child link hides.
func (d *Checks) checkSidebarCollapse(s *core.Session) error {
	if err := s.Navigate(d.BaseURL + nestedRoute); err != nil {
		return err
	}
	if err := s.WaitForVisible(nestedLinkSel, true); err != nil {
		return err
	}

	toggle, err := s.ElementWithText(groupToggleSel, groupToggleText)
	if err != nil {
		return err
	}
	if err := s.WaitForElementAttribute(toggle, "aria-expanded", "true"); err != nil {
		return err
	}

	controls, err := toggle.Attribute("aria-controls")
	if err != nil {
		return err
	}
	if controls == nil {
		return fmt.Errorf("%w: expected aria-controls on expanded group toggle", core.ErrAssertionFailed)
	}

	if err := toggle.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return err
	}
	if err := s.WaitForElementAttribute(toggle, "aria-expanded", "false"); err != nil {
		return err
	}

	collapsed, err := toggle.Attribute("aria-controls")
	if err != nil {
		return err
	}
	if collapsed != nil {
		return fmt.Errorf("%w: expected aria-controls to be removed when collapsed", core.ErrAssertionFailed)
	}

	if err := s.WaitForVisible(nestedLinkSel, false); err != nil {
		return err
	}
	return s.Navigate(d.BaseURL + core.HealthPath)
}

func (d *Checks) capture(s *core.Session, name string) error {
	return core.CaptureSnapshot(s.Page, filepath.Join(d.SnapshotDir, name+".png"))
}
