// Package platform delivers desktop notifications through whatever the host
// operating system offers.
package platform

import "time"

// Notification is a single message for the desktop notification center.
type Notification struct {
	App   string
	Title string
	Body  string
	// IconPath, when set, points at an image shown next to the message on
	// platforms that support it.
	IconPath string
	Expire   time.Duration
}

func (n Notification) appName() string {
	if n.App == "" {
		return "SmileCam"
	}
	return n.App
}

func (n Notification) expireMillis() int32 {
	if n.Expire <= 0 {
		return 5000
	}
	return int32(n.Expire / time.Millisecond)
}
