//go:build linux

package platform

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	notifyDest = "org.freedesktop.Notifications"
	notifyPath = dbus.ObjectPath("/org/freedesktop/Notifications")
)

// Notify sends n over the session bus using the freedesktop notification API.
func Notify(n Notification) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("session bus: %w", err)
	}
	defer conn.Close()

	hints := map[string]dbus.Variant{}
	if n.IconPath != "" {
		hints["image-path"] = dbus.MakeVariant(n.IconPath)
	}
	call := conn.Object(notifyDest, notifyPath).Call(notifyDest+".Notify", 0,
		n.appName(), uint32(0), n.IconPath, n.Title, n.Body, []string{}, hints, n.expireMillis())
	return call.Err
}
