package ui

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/example/smilecam/internal/asset"
	"github.com/example/smilecam/internal/capture"
	"github.com/example/smilecam/internal/clipboard"
	"github.com/example/smilecam/internal/editor"
	"github.com/example/smilecam/internal/export"
	"github.com/example/smilecam/internal/flow"
	"github.com/example/smilecam/internal/identity"
	"github.com/example/smilecam/internal/render"
)

const (
	messageDuration = 3 * time.Second
	nicknameMax     = 32
	zoomKeyStep     = 0.1
)

// photoEvent carries a decoded photo, or the reason it could not be
// decoded, back into the event loop.
type photoEvent struct {
	img    image.Image
	err    error
	source string
}

// exportEvent delivers the detached export render.
type exportEvent struct {
	img *image.RGBA
}

// controller owns all session state. It is only touched from the event loop
// goroutine; background work reports back through post.
type controller struct {
	ctx       context.Context
	base      *log.Logger
	logger    *log.Logger
	session   *editor.Session
	machine   flow.Machine
	comp      *render.Compositor
	overlay   image.Image
	exporter  *export.Exporter
	submitter *identity.Submitter
	assetOpts asset.Options
	delay     time.Duration
	post      func(any)
	now       func() time.Time

	readClipboard func() ([]byte, error)
	grabScreen    func(context.Context) (*image.RGBA, error)

	pathInput TextInput
	nickInput TextInput
	zoom      Slider

	loading      bool
	exported     *image.RGBA
	savedPath    string
	message      string
	messageErr   bool
	messageUntil time.Time

	confetti      *render.Confetti
	confettiStart time.Time
}

func newController(ctx context.Context, a *App, post func(any)) *controller {
	c := &controller{
		ctx:           ctx,
		base:          a.Logger,
		comp:          a.Compositor,
		overlay:       a.Overlay,
		exporter:      a.Exporter,
		submitter:     a.Submitter,
		assetOpts:     a.AssetOptions,
		delay:         a.Delay,
		post:          post,
		now:           time.Now,
		readClipboard: clipboard.ReadImage,
		grabScreen:    func(ctx context.Context) (*image.RGBA, error) { return capture.Screen(ctx, "") },
		pathInput:     TextInput{Placeholder: "Path to a photo, or paste with Ctrl+V"},
		nickInput:     TextInput{Placeholder: "Your nickname", Max: nicknameMax},
		zoom:          newZoomSlider(),
	}
	c.newSession()
	return c
}

func (c *controller) newSession() {
	c.session = editor.New()
	c.logger = c.base.With("session", c.session.ID)
}

func (c *controller) screen() flow.Screen { return c.machine.Current() }

func (c *controller) fire(e flow.Event) bool {
	from := c.machine.Current()
	if !c.machine.Fire(e) {
		c.logger.Debug("ignored event", "screen", from, "event", e)
		return false
	}
	c.logger.Debug("screen", "from", from, "event", e, "to", c.machine.Current())
	return true
}

func (c *controller) say(msg string) {
	c.message, c.messageErr, c.messageUntil = msg, false, c.now().Add(messageDuration)
}

func (c *controller) fail(msg string) {
	c.message, c.messageErr, c.messageUntil = msg, true, c.now().Add(messageDuration)
}

func (c *controller) clearMessage() { c.messageUntil = time.Time{} }

func (c *controller) messageVisible() bool {
	return c.message != "" && c.now().Before(c.messageUntil)
}

// loadAsync runs fn off the event loop and posts its result as a photoEvent.
func (c *controller) loadAsync(source string, fn func() (image.Image, error)) {
	if c.screen() != flow.Upload || c.loading {
		return
	}
	c.loading = true
	c.clearMessage()
	go func() {
		img, err := fn()
		c.post(photoEvent{img: img, err: err, source: source})
	}()
}

func (c *controller) openPath() {
	path := strings.TrimSpace(c.pathInput.Value)
	if path == "" {
		c.fail("Type the path of a photo first")
		return
	}
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, rest)
		}
	}
	opts := c.assetOpts
	c.loadAsync(filepath.Base(path), func() (image.Image, error) {
		return asset.LoadPhoto(path, opts)
	})
}

func (c *controller) pasteClipboard() {
	opts, read := c.assetOpts, c.readClipboard
	c.loadAsync("clipboard", func() (image.Image, error) {
		data, err := read()
		if err != nil {
			return nil, err
		}
		return asset.DecodePhoto(bytes.NewReader(data), opts)
	})
}

func (c *controller) grabDesktop() {
	opts, grab, ctx := c.assetOpts, c.grabScreen, c.ctx
	c.loadAsync("screen", func() (image.Image, error) {
		shot, err := grab(ctx)
		if err != nil {
			return nil, err
		}
		return asset.Prepare(shot, opts)
	})
}

// handlePhoto applies a finished decode. The transform is reset only once
// the new photo is actually available.
func (c *controller) handlePhoto(ev photoEvent) {
	c.loading = false
	if c.screen() != flow.Upload {
		return
	}
	if ev.err != nil {
		c.logger.Warn("photo rejected", "source", ev.source, "err", ev.err)
		c.fail(fmt.Sprintf("Could not open %s as a photo", ev.source))
		c.fire(flow.DecodeFailed)
		return
	}
	c.session.Load(ev.img)
	c.zoom.Value = c.session.Transform().Scale
	b := ev.img.Bounds()
	c.logger.Info("photo loaded", "source", ev.source, "width", b.Dx(), "height", b.Dy())
	c.fire(flow.PhotoLoaded)
}

func (c *controller) submitNickname() {
	if c.screen() != flow.Nickname {
		return
	}
	nick, err := identity.Normalize(c.nickInput.Value)
	if err != nil {
		c.fail("Please enter a nickname")
		return
	}
	c.session.Nickname = nick
	c.nickInput.Value = nick
	c.submitter.Submit(c.ctx, nick)
	c.fire(flow.NicknameSubmitted)
}

// endDrag is the single exit for every way a drag can stop: release, focus
// loss or the pointer leaving the canvas.
func (c *controller) endDrag() {
	c.session.EndDrag()
}

// pointerLost handles the window losing focus while a button may be held:
// both the photo drag and a slider drag end.
func (c *controller) pointerLost() {
	c.endDrag()
	c.zoom.dragging = false
}

func (c *controller) pointerDown(x, y float64, inside bool) bool {
	if c.screen() != flow.Editor || !inside {
		c.endDrag()
		return false
	}
	c.session.BeginDrag(x, y)
	return c.session.Dragging()
}

func (c *controller) pointerMove(x, y float64, inside bool) bool {
	if !c.session.Dragging() {
		return false
	}
	if !inside {
		c.endDrag()
		return false
	}
	return c.session.UpdateDrag(x, y)
}

func (c *controller) setScale(v float64) bool {
	if c.screen() != flow.Editor {
		return false
	}
	if !c.session.SetScale(v) {
		return false
	}
	c.zoom.Value = v
	return true
}

func (c *controller) zoomBy(delta float64) bool {
	return c.setScale(c.zoom.snap(c.zoom.Value + delta))
}

func (c *controller) rotate() bool {
	return c.screen() == flow.Editor && c.session.RotateStep()
}

func (c *controller) nudge(dx, dy float64) bool {
	return c.screen() == flow.Editor && c.session.Nudge(dx, dy)
}

// proceed moves to the processing screen and renders the export on a
// goroutine after the configured delay.
func (c *controller) proceed() {
	if c.screen() != flow.Editor {
		return
	}
	c.endDrag()
	photo, t, err := c.session.Snapshot()
	if err != nil {
		c.fail("Load a photo first")
		return
	}
	if !c.fire(flow.Proceed) {
		return
	}
	ctx, delay, comp, overlay := c.ctx, c.delay, c.comp, c.overlay
	size := c.session.CanvasSize()
	go func() {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
		c.post(exportEvent{img: comp.RenderToExport(photo, t, overlay, size)})
	}()
}

func (c *controller) handleExport(ev exportEvent) {
	if c.screen() != flow.Processing {
		return
	}
	c.exported = ev.img
	c.fire(flow.ExportDone)
}

func (c *controller) download() {
	if c.screen() != flow.Preview || c.exported == nil {
		return
	}
	path, err := c.exporter.Save(c.session.Nickname, c.exported)
	if err != nil {
		c.logger.Error("export failed", "err", err)
		c.fail("Could not save the picture")
		return
	}
	c.savedPath = path
	c.logger.Info("exported", "path", path)
	c.confetti = render.NewConfetti(uint64(c.now().UnixNano()))
	c.confettiStart = c.now()
	c.fire(flow.Downloaded)
}

func (c *controller) copyExport() {
	if c.screen() != flow.Preview || c.exported == nil {
		return
	}
	if err := c.exporter.Copy(c.session.Nickname, c.exported); err != nil {
		c.logger.Warn("copy failed", "err", err)
		c.fail("Could not copy to the clipboard")
		return
	}
	c.say("Copied to clipboard")
}

func (c *controller) back() {
	switch c.screen() {
	case flow.Nickname, flow.Editor:
		c.endDrag()
		c.session.Clear()
	case flow.Preview:
		c.exported = nil
	}
	c.fire(flow.Back)
}

// startOver drops everything from the current session and begins a new one.
func (c *controller) startOver() {
	c.endDrag()
	c.newSession()
	c.nickInput.Reset()
	c.pathInput.Reset()
	c.zoom.Value = 1
	c.exported = nil
	c.savedPath = ""
	c.confetti = nil
	c.loading = false
	c.clearMessage()
	c.fire(flow.StartOver)
}

// animating reports whether the thank-you confetti still needs frames.
func (c *controller) animating() bool {
	return c.screen() == flow.ThankYou && c.confetti != nil && !c.confetti.Done(c.now().Sub(c.confettiStart))
}

// controls returns the toolbar for the current screen.
func (c *controller) controls() []control {
	btn := func(label string, primary bool, fn func()) control {
		return control{label: label, kind: kindButton, primary: primary, width: buttonWidth(label), action: fn}
	}
	switch c.screen() {
	case flow.Upload:
		return []control{
			btn("Open", true, c.openPath),
			btn("Paste", false, c.pasteClipboard),
			btn("Grab screen", false, c.grabDesktop),
		}
	case flow.Nickname:
		return []control{
			btn("Back", false, c.back),
			btn("Continue", true, c.submitNickname),
		}
	case flow.Editor:
		return []control{
			{label: "zoom", kind: kindSlider, width: 260},
			btn("Rotate", false, func() { c.rotate() }),
			btn("Back", false, c.back),
			btn("Done", true, c.proceed),
		}
	case flow.Preview:
		return []control{
			btn("Edit", false, c.back),
			btn("Copy", false, c.copyExport),
			btn("Download", true, c.download),
		}
	case flow.ThankYou:
		return []control{btn("Start over", true, c.startOver)}
	}
	return nil
}
