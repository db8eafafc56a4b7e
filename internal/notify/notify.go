// Package notify tells the desktop when a composite was saved or copied.
package notify

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/example/smilecam/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventExport fires after the composite is written to disk.
	EventExport Event = "export"
	// EventCopy fires after the composite is placed on the clipboard.
	EventCopy Event = "copy"
)

// Preferences holds the title and body templates per event.
type Preferences struct {
	Title     string
	Templates map[Event]string
}

// DefaultPreferences returns the built-in wording.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: "SmileCam",
		Templates: map[Event]string{
			EventExport: "Saved %s",
			EventCopy:   "Copied %s to clipboard",
		},
	}
}

// FromEnv overrides prefs with SMILECAM_NOTIFY_* variables.
func FromEnv(prefs Preferences) Preferences {
	out := Preferences{Title: prefs.Title, Templates: make(map[Event]string, len(prefs.Templates))}
	for k, v := range prefs.Templates {
		out.Templates[k] = v
	}
	if v := strings.TrimSpace(os.Getenv("SMILECAM_NOTIFY_TITLE")); v != "" {
		out.Title = v
	}
	if v := strings.TrimSpace(os.Getenv("SMILECAM_NOTIFY_EXPORT_TEXT")); v != "" {
		out.Templates[EventExport] = v
	}
	if v := strings.TrimSpace(os.Getenv("SMILECAM_NOTIFY_COPY_TEXT")); v != "" {
		out.Templates[EventCopy] = v
	}
	return out
}

// Notifier sends notifications for the events that were enabled.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
	logger  *log.Logger
	send    func(platform.Notification) error
}

// New creates a notifier with every event disabled.
func New(prefs Preferences, logger *log.Logger) *Notifier {
	if logger == nil {
		logger = log.Default()
	}
	return &Notifier{prefs: prefs, enabled: map[Event]bool{}, logger: logger, send: platform.Notify}
}

// Enable toggles notifications for event.
func (n *Notifier) Enable(event Event, on bool) {
	if n == nil {
		return
	}
	n.enabled[event] = on
}

// Exported reports a file written to path, using it as the icon.
func (n *Notifier) Exported(path string) {
	if !n.enabledFor(EventExport) {
		return
	}
	detail := path
	icon := ""
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if _, err := os.Stat(abs); err == nil {
			icon = abs
		}
	}
	n.dispatch(EventExport, detail, icon)
}

// Copied reports a clipboard copy.
func (n *Notifier) Copied(detail string) {
	if !n.enabledFor(EventCopy) {
		return
	}
	if strings.TrimSpace(detail) == "" {
		detail = "image"
	}
	n.dispatch(EventCopy, detail, "")
}

func (n *Notifier) enabledFor(event Event) bool {
	return n != nil && n.enabled[event]
}

func (n *Notifier) dispatch(event Event, detail, icon string) {
	tmpl := strings.TrimSpace(n.prefs.Templates[event])
	if tmpl == "" {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(tmpl, strings.TrimSpace(detail)))
	msg := platform.Notification{App: n.prefs.Title, Title: n.prefs.Title, Body: body, IconPath: icon}
	if err := n.send(msg); err != nil {
		n.logger.Warn("notification failed", "event", event, "err", err)
	}
}
