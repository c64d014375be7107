// Package notify defines the fire-and-forget channel used to show transient
// feedback to the user.
package notify

import (
	"context"
	"log/slog"
	"sync"

	"github.com/csheth/dataquery/internal/logger"
	"github.com/csheth/dataquery/internal/metrics"
)

// Severity classifies a notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notifier accepts a message and returns nothing; delivery is best effort.
type Notifier interface {
	Notify(message string, severity Severity)
}

// Func adapts a plain function to Notifier.
type Func func(message string, severity Severity)

func (f Func) Notify(message string, severity Severity) {
	f(message, severity)
}

// Notification is one recorded call.
type Notification struct {
	Message  string
	Severity Severity
}

// Recorder keeps every notification it receives.
type Recorder struct {
	mu            sync.Mutex
	notifications []Notification
}

func (r *Recorder) Notify(message string, severity Severity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, Notification{Message: message, Severity: severity})
}

// All returns a copy of the recorded notifications in arrival order.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.notifications...)
}

// Last returns the most recent notification.
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notifications) == 0 {
		return Notification{}, false
	}
	return r.notifications[len(r.notifications)-1], true
}

// Count reports how many notifications carried the given severity.
func (r *Recorder) Count(severity Severity) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, n := range r.notifications {
		if n.Severity == severity {
			count++
		}
	}
	return count
}

// Multi fans a notification out to every non-nil notifier.
func Multi(notifiers ...Notifier) Notifier {
	targets := make([]Notifier, 0, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			targets = append(targets, n)
		}
	}
	return Func(func(message string, severity Severity) {
		for _, n := range targets {
			n.Notify(message, severity)
		}
	})
}

// WithLogging records each notification in the diagnostic log and metrics
// before passing it on.
func WithLogging(next Notifier, log *logger.Logger) Notifier {
	if log == nil {
		log = logger.Nop()
	}
	return Func(func(message string, severity Severity) {
		level := slog.LevelInfo
		switch severity {
		case SeverityWarning:
			level = slog.LevelWarn
		case SeverityError:
			level = slog.LevelError
		}
		log.Log(context.Background(), level, "notification", "severity", string(severity), "message", message)
		metrics.NotificationsTotal.WithLabelValues(string(severity)).Inc()
		if next != nil {
			next.Notify(message, severity)
		}
	})
}
