package core

import (
	"time"

	"github.com/go-rod/rod/lib/input"
)

// Query hooks the application-under-test must expose. See the DOM contract
// in the wisdom UI shell.
const (
	SelShellRoot             = "[data-testid='shell-root']"
	SelDesktopSidebar        = "[data-testid='desktop-sidebar']"
	SelMobileMenuButton      = "[data-testid='mobile-menu-button']"
	SelMobileDrawer          = "[data-testid='mobile-drawer']"
	SelMobileBackdrop        = "[data-testid='mobile-backdrop']"
	SelDrawerNavLinks        = "[data-testid='mobile-drawer'] [data-testid='sidebar-nav'] a"
	SelFullscreenHeaderBtn   = "[data-testid='fullscreen-toggle-header']"
	SelFullscreenOverlayBtn  = "[data-testid='fullscreen-toggle-overlay']"
	SelFullscreenControls    = "[data-testid='fullscreen-controls']"
	SelFullscreenRevealStrip = "[data-testid='fullscreen-reveal-strip']"

	AttrFullscreen        = "data-fullscreen"
	AttrMobileSidebarOpen = "data-mobile-sidebar-open"
	AttrControlsVisible   = "data-visible"
)

// EnterFullscreen clicks the header toggle and verifies the shell entered
// fullscreen with its controls hidden.
func (s *Session) EnterFullscreen() error {
	if err := s.Click(SelFullscreenHeaderBtn); err != nil {
		return err
	}
	if err := s.WaitForAttribute(SelShellRoot, AttrFullscreen, "true"); err != nil {
		return err
	}
	return s.WaitForAttribute(SelFullscreenControls, AttrControlsVisible, "false")
}

// ExitFullscreen presses the cancel key and verifies the shell returned to
// its normal state.
func (s *Session) ExitFullscreen() error {
	if err := s.Press(input.Escape); err != nil {
		return err
	}
	return s.WaitForAttribute(SelShellRoot, AttrFullscreen, "false")
}

// IdleWait suspends long enough for the fullscreen controls' auto-hide
// timer to fire, plus margin.
func (s *Session) IdleWait() {
	time.Sleep(s.GetIdleWait())
}
