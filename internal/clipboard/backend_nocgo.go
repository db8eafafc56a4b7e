//go:build !cgo && !windows

package clipboard

func initBackend() error { return ErrUnsupported }

func writeImage([]byte) error { return ErrUnsupported }

func readImage() ([]byte, error) { return nil, ErrUnsupported }
