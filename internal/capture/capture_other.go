//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package capture

import (
	"context"
	"image"
)

type otherBackend struct{}

func newBackend() backend { return otherBackend{} }

func (otherBackend) Screen(context.Context) (*image.RGBA, error) { return nil, ErrUnsupported }

func (otherBackend) Monitors() ([]Monitor, error) { return nil, ErrUnsupported }
