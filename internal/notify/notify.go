// Package notify delivers user-facing toasts for completed actions.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// Variant selects the notification styling.
type Variant string

const (
	Default     Variant = "default"
	Destructive Variant = "destructive"
)

// Notification is a single toast.
type Notification struct {
	Title       string
	Description string
	Variant     Variant
}

// Notifier surfaces notifications to the user.
type Notifier interface {
	Notify(Notification)
}

// Func adapts a function to Notifier.
type Func func(Notification)

// Notify calls f(n).
func (f Func) Notify(n Notification) { f(n) }

// Discard drops every notification.
var Discard Notifier = Func(func(Notification) {})

// Multi fans a notification out to every notifier in order.
type Multi []Notifier

// Notify forwards n to each notifier.
func (m Multi) Notify(n Notification) {
	for _, nt := range m {
		if nt != nil {
			nt.Notify(n)
		}
	}
}

// Recorder keeps every notification it receives. Safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

// Notify records n.
func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

// All returns a copy of the recorded notifications.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.items))
	copy(out, r.items)
	return out
}

// Last returns the most recent notification.
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) == 0 {
		return Notification{}, false
	}
	return r.items[len(r.items)-1], true
}

// Printer writes notifications as styled lines.
type Printer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

var (
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#879A39")).Bold(true)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#D14D41")).Bold(true)
	descrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#878580"))
)

// Notify prints n.
func (p *Printer) Notify(n Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()

	title := okStyle.Render("✓ " + n.Title)
	if n.Variant == Destructive {
		title = errStyle.Render("✗ " + n.Title)
	}
	if n.Description == "" {
		_, _ = fmt.Fprintf(p.w, "  %s\n", title)
		return
	}
	_, _ = fmt.Fprintf(p.w, "  %s  %s\n", title, descrStyle.Render(n.Description))
}

// Logged writes notifications to a zap logger.
type Logged struct {
	logger *zap.Logger
}

// NewLogged returns a Notifier logging through logger.
func NewLogged(logger *zap.Logger) *Logged {
	return &Logged{logger: logger}
}

// Notify logs n at info, or warn for destructive notifications.
func (l *Logged) Notify(n Notification) {
	fields := []zap.Field{
		zap.String("title", n.Title),
		zap.String("description", n.Description),
		zap.String("variant", string(n.Variant)),
	}
	if n.Variant == Destructive {
		l.logger.Warn("notification", fields...)
		return
	}
	l.logger.Info("notification", fields...)
}
