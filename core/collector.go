package core

import (
	"strings"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

type DiagnosticKind string

const (
	DiagConsoleError DiagnosticKind = "console-error"
	DiagPageError    DiagnosticKind = "page-error"
)

// Diagnostic is one console or page error observed during a run.
type Diagnostic struct {
	Kind    DiagnosticKind
	Message string
}

func (d Diagnostic) String() string {
	switch d.Kind {
	case DiagPageError:
		return "page error: " + d.Message
	default:
		return "console error: " + d.Message
	}
}

// ErrorLog accumulates diagnostics from every session of a run, in order of
// appearance, append-only. One log is shared by all sessions so the final
// check fails the run if any session produced errors at any point.
type ErrorLog struct {
	mu      sync.Mutex
	records []Diagnostic
}

func NewErrorLog() *ErrorLog {
	return &ErrorLog{}
}

func (l *ErrorLog) Append(kind DiagnosticKind, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, Diagnostic{Kind: kind, Message: message})
}

func (l *ErrorLog) Records() []Diagnostic {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Diagnostic, len(l.records))
	copy(out, l.records)
	return out
}

func (l *ErrorLog) Messages() []string {
	records := l.Records()
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.String()
	}
	return out
}

func (l *ErrorLog) Empty() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records) == 0
}

// Attach subscribes the log to the page's console "error" messages and
// uncaught script errors. The subscription lives as long as the page.
func (l *ErrorLog) Attach(page *rod.Page) {
	go page.EachEvent(
		func(e *proto.RuntimeConsoleAPICalled) {
			if e.Type != proto.RuntimeConsoleAPICalledTypeError {
				return
			}
			l.Append(DiagConsoleError, formatConsoleArgs(e.Args))
		},
		func(e *proto.RuntimeExceptionThrown) {
			l.Append(DiagPageError, formatException(e.ExceptionDetails))
		},
	)()
}

func formatConsoleArgs(args []*proto.RuntimeRemoteObject) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, formatRemoteObject(arg))
	}
	return strings.Join(parts, " ")
}

func formatRemoteObject(obj *proto.RuntimeRemoteObject) string {
	if obj == nil {
		return ""
	}
	if obj.Type == proto.RuntimeRemoteObjectTypeString {
		return obj.Value.Str()
	}
	if obj.Description != "" {
		return obj.Description
	}
	return obj.Value.String()
}

func formatException(details *proto.RuntimeExceptionDetails) string {
	if details == nil {
		return "unknown page error"
	}
	if details.Exception != nil && details.Exception.Description != "" {
		return details.Exception.Description
	}
	return details.Text
}
