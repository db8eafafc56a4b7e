//go:build cgo || windows

package clipboard

import "golang.design/x/clipboard"

func initBackend() error {
	return clipboard.Init()
}

func writeImage(data []byte) error {
	clipboard.Write(clipboard.FmtImage, data)
	return nil
}

func readImage() ([]byte, error) {
	return clipboard.Read(clipboard.FmtImage), nil
}
