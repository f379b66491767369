package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"golang.org/x/time/rate"
)

// PollUntil re-evaluates predicate at a fixed interval until it returns true
// or the timeout elapses. The interval is fixed, not exponential, so the
// latency of short-lived UI transitions stays bounded and predictable.
// A predicate error aborts polling immediately.
func PollUntil(predicate func() (bool, error), interval, timeout time.Duration) error {
	limiter := rate.NewLimiter(rate.Every(interval), 1)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	for {
		ok, err := predicate()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		if err := limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w (%s)", ErrPollTimeout, timeout)
		}
	}
}

// WaitForAttribute polls the live DOM until the attribute reaches the
// expected value. On timeout the failure names the selector, the expectation
// and the last observed value.
func (s *Session) WaitForAttribute(selector, name, expected string) error {
	var last *string

	err := PollUntil(func() (bool, error) {
		value, err := s.Attribute(selector, name)
		if err != nil {
			// Reads race navigations; a failed read is just "not yet".
			return false, nil
		}
		last = value
		return value != nil && *value == expected, nil
	}, s.GetPollInterval(), s.GetConditionTimeout())

	if errors.Is(err, ErrPollTimeout) {
		return fmt.Errorf("%w: expected %s [%s=%s], got %s",
			ErrAssertionFailed, selector, name, expected, attrString(last))
	}
	return err
}

// WaitForVisible polls until the element's visibility matches expected.
func (s *Session) WaitForVisible(selector string, expected bool) error {
	var last bool

	err := PollUntil(func() (bool, error) {
		visible, err := s.Visible(selector)
		if err != nil {
			return false, nil
		}
		last = visible
		return visible == expected, nil
	}, s.GetPollInterval(), s.GetConditionTimeout())

	if errors.Is(err, ErrPollTimeout) {
		return fmt.Errorf("%w: expected visibility %v for %s, got %v",
			ErrAssertionFailed, expected, selector, last)
	}
	return err
}

// WaitForElementAttribute is the handle-based variant for elements that
// cannot be addressed by a CSS selector alone.
func (s *Session) WaitForElementAttribute(el *rod.Element, name, expected string) error {
	var last *string

	err := PollUntil(func() (bool, error) {
		value, err := el.Attribute(name)
		if err != nil {
			return false, nil
		}
		last = value
		return value != nil && *value == expected, nil
	}, s.GetPollInterval(), s.GetConditionTimeout())

	if errors.Is(err, ErrPollTimeout) {
		return fmt.Errorf("%w: expected [%s=%s] on element, got %s",
			ErrAssertionFailed, name, expected, attrString(last))
	}
	return err
}

func attrString(value *string) string {
	if value == nil {
		return "<absent>"
	}
	return fmt.Sprintf("%q", *value)
}
