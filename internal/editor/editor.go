// Package editor holds the placement of the user's photo inside the fixed
// output canvas and the pointer drag that moves it.
package editor

import (
	"errors"
	"image"

	"github.com/google/uuid"
)

// CanvasSize is the edge length of the square output canvas in pixels.
const CanvasSize = 1000

// RotationStep is the angle added by a single rotate action.
const RotationStep = 90

// ErrNoImage is returned by accessors that need a loaded photo.
var ErrNoImage = errors.New("no image loaded")

// Transform places the photo on the canvas. All values are in output canvas
// units so the same transform renders identically on screen and on export.
type Transform struct {
	OffsetX  float64
	OffsetY  float64
	Scale    float64
	Rotation float64 // degrees, unbounded
}

// Identity returns the transform of an image drawn at the origin.
func Identity() Transform {
	return Transform{Scale: 1}
}

// drag is the anchor recorded on pointer down. It only exists while the
// pointer is held.
type drag struct {
	active           bool
	anchorX, anchorY float64
}

// Session owns the editing state for one user: the photo, its transform, the
// in-progress drag and the nickname used to label the export.
type Session struct {
	ID       string
	Photo    image.Image
	Nickname string

	canvas    float64
	transform Transform
	drag      drag
}

// Option modifies a Session during creation.
type Option func(*Session)

// WithCanvasSize overrides the square canvas edge length.
func WithCanvasSize(size int) Option {
	return func(s *Session) {
		if size > 0 {
			s.canvas = float64(size)
		}
	}
}

// WithID sets the session identifier instead of generating one.
func WithID(id string) Option { return func(s *Session) { s.ID = id } }

// New creates an empty session with no photo loaded.
func New(opts ...Option) *Session {
	s := &Session{canvas: CanvasSize, transform: Identity()}
	for _, o := range opts {
		o(s)
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return s
}

// CanvasSize reports the canvas edge length used for centering.
func (s *Session) CanvasSize() int { return int(s.canvas) }

// Loaded reports whether a photo is present.
func (s *Session) Loaded() bool { return s.Photo != nil }

// Transform returns a copy of the current transform.
func (s *Session) Transform() Transform { return s.transform }

// Dragging reports whether a drag is in progress.
func (s *Session) Dragging() bool { return s.drag.active }

// Load replaces the photo wholesale and recenters it.
func (s *Session) Load(img image.Image) {
	if img == nil {
		s.Clear()
		return
	}
	s.Photo = img
	b := img.Bounds()
	s.Reset(b.Dx(), b.Dy())
}

// Clear drops the photo and returns the transform to its defaults.
func (s *Session) Clear() {
	s.Photo = nil
	s.transform = Identity()
	s.drag = drag{}
}

// Reset centers an image of the given size on the canvas with scale 1 and no
// rotation.
func (s *Session) Reset(width, height int) {
	s.transform = Transform{
		OffsetX: s.canvas/2 - float64(width)/2,
		OffsetY: s.canvas/2 - float64(height)/2,
		Scale:   1,
	}
	s.drag = drag{}
}

// BeginDrag records the anchor between the pointer and the current offset.
// A second press while a drag is active keeps the original anchor.
func (s *Session) BeginDrag(px, py float64) {
	if !s.Loaded() || s.drag.active {
		return
	}
	s.drag = drag{
		active:  true,
		anchorX: px - s.transform.OffsetX,
		anchorY: py - s.transform.OffsetY,
	}
}

// UpdateDrag moves the photo so the anchor stays under the pointer. The
// offset is recomputed from the anchor on every call and is never clamped.
func (s *Session) UpdateDrag(px, py float64) bool {
	if !s.Loaded() || !s.drag.active {
		return false
	}
	s.transform.OffsetX = px - s.drag.anchorX
	s.transform.OffsetY = py - s.drag.anchorY
	return true
}

// EndDrag finishes any drag. Every pointer-loss event routes here.
func (s *Session) EndDrag() {
	s.drag.active = false
}

// SetScale assigns the uniform scale as given.
func (s *Session) SetScale(v float64) bool {
	if !s.Loaded() {
		return false
	}
	s.transform.Scale = v
	return true
}

// RotateStep turns the photo a quarter turn clockwise.
func (s *Session) RotateStep() bool {
	if !s.Loaded() {
		return false
	}
	s.transform.Rotation += RotationStep
	return true
}

// Nudge shifts the photo by a fixed amount, used for arrow keys.
func (s *Session) Nudge(dx, dy float64) bool {
	if !s.Loaded() {
		return false
	}
	s.transform.OffsetX += dx
	s.transform.OffsetY += dy
	return true
}

// Snapshot returns the photo and transform together for rendering.
func (s *Session) Snapshot() (image.Image, Transform, error) {
	if !s.Loaded() {
		return nil, Transform{}, ErrNoImage
	}
	return s.Photo, s.transform, nil
}
