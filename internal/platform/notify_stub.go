//go:build !linux && !darwin && !windows

package platform

// Notify does nothing where no notification center is known.
func Notify(n Notification) error {
	_ = n
	return nil
}
