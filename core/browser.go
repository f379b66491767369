package core

import (
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/sirupsen/logrus"
)

type BrowserOpts struct {
	IsHeadless    bool          // Use browser without interface
	IsLeakless    bool          // Force to kill browser
	Timeout       time.Duration // Timeout for element lookups
	LeavePageOpen bool          // Leave pages and browser open after a run
}

// Initialize browser parameters with default values if they are not set
func (o *BrowserOpts) Check() {
	if o.Timeout == 0 {
		o.Timeout = time.Second * 30
	}
}

// Browser owns the single rendering-engine instance of a run. Viewport
// sessions are created from it sequentially, one per breakpoint.
type Browser struct {
	BrowserOpts
	browserAddr string
	browser     *rod.Browser
}

func NewBrowser(opts BrowserOpts) (*Browser, error) {
	opts.Check()
	logrus.Debugf("Browser options: %+v", opts)

	path, has := launcher.LookPath()
	logrus.Debug("Browser found: ", has)

	l := launcher.New().Bin(path).Leakless(opts.IsLeakless).Headless(opts.IsHeadless)

	b := Browser{BrowserOpts: opts}

	var err error
	b.browserAddr, err = l.Launch()
	if err != nil {
		return nil, fmt.Errorf("cannot launch browser: %v", err)
	}

	b.browser = rod.New().ControlURL(b.browserAddr)
	if err := b.browser.Connect(); err != nil {
		return nil, fmt.Errorf("cannot connect to browser: %v", err)
	}

	return &b, nil
}

// Check whether browser instance is already created
func (b *Browser) IsInitialized() bool {
	return b.browserAddr != ""
}

// NewSession creates an isolated viewport context for one breakpoint profile.
// Mobile profiles get device metrics and touch emulation.
func (b *Browser) NewSession(profile ViewportProfile, opts CheckOptions) (*Session, error) {
	logrus.Debugf("New %s session at %dx%d", profile.Class, profile.Width, profile.Height)
	opts.Init()

	incognito, err := b.browser.Incognito()
	if err != nil {
		return nil, fmt.Errorf("cannot create incognito context: %v", err)
	}

	page, err := incognito.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("cannot open page: %v", err)
	}

	err = page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             profile.Width,
		Height:            profile.Height,
		DeviceScaleFactor: 1,
		Mobile:            profile.Class == DeviceMobile,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot set viewport: %v", err)
	}

	if profile.Class == DeviceMobile {
		maxTouchPoints := 5
		err = proto.EmulationSetTouchEmulationEnabled{Enabled: true, MaxTouchPoints: &maxTouchPoints}.Call(page)
		if err != nil {
			return nil, fmt.Errorf("cannot enable touch emulation: %v", err)
		}
	}

	return &Session{
		Page:         page,
		Profile:      profile,
		CheckOptions: opts,
		timeout:      b.Timeout,
		leaveOpen:    b.LeavePageOpen,
	}, nil
}

func (b *Browser) Close() error {
	if b.LeavePageOpen {
		return nil
	}
	return b.browser.Close()
}

// Session is one viewport context: a page scoped to a single breakpoint,
// destroyed at the end of its interaction script.
type Session struct {
	Page    *rod.Page
	Profile ViewportProfile
	CheckOptions

	timeout   time.Duration
	leaveOpen bool
}

func (s *Session) Close() {
	if s.leaveOpen {
		return
	}
	if err := s.Page.Close(); err != nil {
		logrus.Warnf("Cannot close page: %v", err)
	}
}

// Open URL and wait for the network to go idle
func (s *Session) Navigate(URL string) error {
	logrus.Debug("Navigate to: ", URL)

	if err := s.Page.Navigate(URL); err != nil {
		return err
	}

	wait := s.Page.MustWaitRequestIdle()
	wait()
	return nil
}

func (s *Session) element(selector string) (*rod.Element, error) {
	el, err := s.Page.Timeout(s.timeout).Element(selector)
	if err != nil {
		return nil, fmt.Errorf("%w: no element matches %s", ErrAssertionFailed, selector)
	}
	return el, nil
}

// ElementWithText returns the first element matching selector whose text
// matches the given regular expression.
func (s *Session) ElementWithText(selector, pattern string) (*rod.Element, error) {
	el, err := s.Page.Timeout(s.timeout).ElementR(selector, pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: no element matches %s with text %q", ErrAssertionFailed, selector, pattern)
	}
	return el, nil
}

// Attribute reads the current attribute value, nil if the attribute or the
// element itself is absent. Never waits.
func (s *Session) Attribute(selector, name string) (*string, error) {
	has, el, err := s.Page.Has(selector)
	if err != nil || !has {
		return nil, err
	}
	return el.Attribute(name)
}

// Visible reports the current visibility, false if the element is absent.
// Never waits.
func (s *Session) Visible(selector string) (bool, error) {
	has, el, err := s.Page.Has(selector)
	if err != nil || !has {
		return false, err
	}
	return el.Visible()
}

func (s *Session) Click(selector string) error {
	el, err := s.element(selector)
	if err != nil {
		return err
	}
	return el.Click(proto.InputMouseButtonLeft, 1)
}

// ForceClick dispatches a click on the element itself, bypassing whatever
// overlaps it at its pointer position.
func (s *Session) ForceClick(selector string) error {
	el, err := s.element(selector)
	if err != nil {
		return err
	}
	_, err = el.Eval("() => this.click()")
	return err
}

// ClickAt clicks at an offset from the element's top-left corner.
func (s *Session) ClickAt(selector string, offsetX, offsetY float64) error {
	el, err := s.element(selector)
	if err != nil {
		return err
	}

	shape, err := el.Shape()
	if err != nil {
		return err
	}
	box := shape.Box()

	err = s.Page.Mouse.MoveTo(proto.Point{X: box.X + offsetX, Y: box.Y + offsetY})
	if err != nil {
		return err
	}
	return s.Page.Mouse.Click(proto.InputMouseButtonLeft, 1)
}

func (s *Session) Focus(selector string) error {
	el, err := s.element(selector)
	if err != nil {
		return err
	}
	return el.Focus()
}

func (s *Session) Press(key input.Key) error {
	return s.Page.Keyboard.Press(key)
}

func (s *Session) MoveMouse(x, y float64) error {
	return s.Page.Mouse.MoveTo(proto.Point{X: x, Y: y})
}
