package core

import "time"

type DeviceClass string

const (
	DeviceDesktop DeviceClass = "desktop"
	DeviceMobile  DeviceClass = "mobile-touch"
)

// ViewportProfile describes one breakpoint the shell is tested against.
// One profile drives one isolated browser session.
type ViewportProfile struct {
	Width  int
	Height int
	Class  DeviceClass
}

// Breakpoint widths the shell is checked at. Snapshots are captured only at
// one representative width per device class.
var (
	DesktopWidths = []int{1024, 1280, 1440}
	MobileWidths  = []int{375, 390, 430}
)

const (
	DesktopHeight = 900
	MobileHeight  = 844

	DesktopSnapshotWidth = 1280
	MobileSnapshotWidth  = 390
)

func DesktopProfile(width int) ViewportProfile {
	return ViewportProfile{Width: width, Height: DesktopHeight, Class: DeviceDesktop}
}

func MobileProfile(width int) ViewportProfile {
	return ViewportProfile{Width: width, Height: MobileHeight, Class: DeviceMobile}
}

type CheckOptions struct {
	PollIntervalMs     int64 `mapstructure:"poll_interval_ms"`     // DOM condition poll period
	ConditionTimeoutMs int64 `mapstructure:"condition_timeout_ms"` // per-assertion timeout
	IdleTimeoutMs      int64 `mapstructure:"idle_timeout_ms"`      // fullscreen controls auto-hide
	IdleMarginMs       int64 `mapstructure:"idle_margin_ms"`       // extra wait past the idle timeout
	ReadyTimeoutSec    int64 `mapstructure:"ready_timeout_sec"`    // server readiness deadline
}

// Initialize check parameters with default values if they are not set
func (o *CheckOptions) Init() {
	if o.PollIntervalMs == 0 {
		o.PollIntervalMs = 50
	}
	if o.ConditionTimeoutMs == 0 {
		o.ConditionTimeoutMs = 4000
	}
	if o.IdleTimeoutMs == 0 {
		o.IdleTimeoutMs = 1800
	}
	if o.IdleMarginMs == 0 {
		o.IdleMarginMs = 350
	}
	if o.ReadyTimeoutSec == 0 {
		o.ReadyTimeoutSec = 120
	}
}

func (o *CheckOptions) GetPollInterval() time.Duration {
	return time.Duration(o.PollIntervalMs) * time.Millisecond
}

func (o *CheckOptions) GetConditionTimeout() time.Duration {
	return time.Duration(o.ConditionTimeoutMs) * time.Millisecond
}

// GetIdleWait returns how long a script must stay idle to observe the
// auto-hide behavior of the fullscreen controls.
func (o *CheckOptions) GetIdleWait() time.Duration {
	return time.Duration(o.IdleTimeoutMs+o.IdleMarginMs) * time.Millisecond
}

func (o *CheckOptions) GetReadyTimeout() time.Duration {
	return time.Duration(o.ReadyTimeoutSec) * time.Second
}
