//go:build darwin

package platform

import (
	"fmt"
	"os/exec"
)

// Notify shows n in Notification Center through osascript.
func Notify(n Notification) error {
	script := fmt.Sprintf("display notification %q with title %q subtitle %q", n.Body, n.Title, n.appName())
	return exec.Command("osascript", "-e", script).Run()
}
