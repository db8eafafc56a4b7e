// Package ui runs the SmileCam editor window.
package ui

import (
	"context"
	"image"
	"sync"
	"sync/atomic"
	"time"
	"unicode"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/smilecam/internal/asset"
	"github.com/example/smilecam/internal/editor"
	"github.com/example/smilecam/internal/export"
	"github.com/example/smilecam/internal/flow"
	"github.com/example/smilecam/internal/identity"
	"github.com/example/smilecam/internal/render"
	"github.com/example/smilecam/internal/theme"
)

const (
	defaultWidth  = 760
	defaultHeight = 840
	frameInterval = 33 * time.Millisecond
)

// App holds what the editor window needs from the command line and config.
type App struct {
	Title        string
	Photo        image.Image
	Nickname     string
	Overlay      image.Image
	Compositor   *render.Compositor
	Theme        *theme.Theme
	Exporter     *export.Exporter
	Submitter    *identity.Submitter
	AssetOptions asset.Options
	Delay        time.Duration
	Logger       *log.Logger

	onClose func()
}

// Option modifies an App during creation.
type Option func(*App)

// WithPhoto preloads a photo so the window opens on the nickname screen.
func WithPhoto(img image.Image) Option { return func(a *App) { a.Photo = img } }

// WithNickname prefills the nickname field.
func WithNickname(nick string) Option { return func(a *App) { a.Nickname = nick } }

// WithOverlay sets the frame drawn over the photo.
func WithOverlay(img image.Image) Option { return func(a *App) { a.Overlay = img } }

// WithCompositor sets the compositor shared by the canvas and the export.
func WithCompositor(c *render.Compositor) Option { return func(a *App) { a.Compositor = c } }

// WithTheme sets the chrome colours.
func WithTheme(t *theme.Theme) Option { return func(a *App) { a.Theme = t } }

// WithExporter sets where downloads go.
func WithExporter(e *export.Exporter) Option { return func(a *App) { a.Exporter = e } }

// WithSubmitter sets the nickname form submitter.
func WithSubmitter(s *identity.Submitter) Option { return func(a *App) { a.Submitter = s } }

// WithAssetOptions sets the upload ingestion settings.
func WithAssetOptions(o asset.Options) Option { return func(a *App) { a.AssetOptions = o } }

// WithProcessingDelay sets how long the processing screen is shown.
func WithProcessingDelay(d time.Duration) Option { return func(a *App) { a.Delay = d } }

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option { return func(a *App) { a.Logger = l } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *App) { a.onClose = fn } }

// New creates an App with the provided options.
func New(opts ...Option) *App {
	a := &App{
		Title:        "SmileCam",
		AssetOptions: asset.DefaultOptions(),
		Delay:        800 * time.Millisecond,
	}
	for _, o := range opts {
		o(a)
	}
	if a.Compositor == nil {
		a.Compositor = render.Default()
	}
	if a.Theme == nil {
		a.Theme = theme.Default()
	}
	if a.Exporter == nil {
		a.Exporter = &export.Exporter{Dir: "."}
	}
	if a.Logger == nil {
		a.Logger = log.Default()
	}
	return a
}

// Run opens the window and blocks until it is closed or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	var err error
	driver.Main(func(s screen.Screen) { err = a.Main(ctx, s) })
	return err
}

// Main drives one window on s.
func (a *App) Main(ctx context.Context, s screen.Screen) error {
	if a.onClose != nil {
		defer a.onClose()
	}

	w, err := s.NewWindow(&screen.NewWindowOptions{Width: defaultWidth, Height: defaultHeight, Title: a.Title})
	if err != nil {
		return err
	}
	defer w.Release()

	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-parent.Done():
			w.Send(lifecycle.Event{To: lifecycle.StageDead})
		case <-ctx.Done():
		}
	}()

	c := newController(ctx, a, func(e any) { w.Send(e) })
	layout := computeLayout(defaultWidth, defaultHeight, editor.CanvasSize)

	var animating atomic.Bool
	go func() {
		t := time.NewTicker(frameInterval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if animating.Load() {
					w.Send(paint.Event{})
				}
			}
		}
	}()

	p := &painter{logger: a.Logger}
	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	defer close(paintCh)
	go func() {
		for st := range paintCh {
			pctx, pcancel := context.WithCancel(ctx)
			paintMu.Lock()
			paintCancel = pcancel
			paintMu.Unlock()
			p.drawFrame(pctx, s, w, st)
			paintMu.Lock()
			paintCancel = nil
			if pctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			pcancel()
		}
	}()

	controls := c.controls()
	var hover, pressed = -1, -1
	shownScreen := c.screen()
	var messageTimer *time.Timer
	defer func() {
		if messageTimer != nil {
			messageTimer.Stop()
		}
	}()

	relayout := func() {
		if c.screen() != shownScreen {
			shownScreen = c.screen()
			controls = c.controls()
			hover, pressed = -1, -1
		}
		widths := make([]int, len(controls))
		for i, ctl := range controls {
			widths[i] = ctl.width
		}
		for i, r := range layout.toolbarRects(widths) {
			controls[i].rect = r
			if controls[i].kind == kindSlider {
				c.zoom.rect = r
			}
		}
	}
	repaint := func() { w.Send(paint.Event{}) }
	// messages fade on their own, so schedule one more frame after they expire
	armMessage := func() {
		if !c.messageVisible() {
			return
		}
		if messageTimer == nil {
			messageTimer = time.AfterFunc(messageDuration, repaint)
		} else {
			messageTimer.Reset(messageDuration)
		}
	}

	if a.Photo != nil {
		c.handlePhoto(photoEvent{img: a.Photo, source: "command line"})
	}
	if a.Nickname != "" {
		c.nickInput.Value = a.Nickname
		c.submitNickname()
	}
	relayout()

	for {
		switch e := w.NextEvent().(type) {
		case photoEvent:
			c.handlePhoto(e)
			armMessage()
			relayout()
			repaint()
		case exportEvent:
			c.handleExport(e)
			relayout()
			repaint()
		case lifecycle.Event:
			if e.Crosses(lifecycle.StageFocused) == lifecycle.CrossOff {
				c.pointerLost()
			}
			if e.To == lifecycle.StageDead {
				paintMu.Lock()
				if paintCancel != nil {
					paintCancel()
				}
				paintMu.Unlock()
				return nil
			}
		case size.Event:
			layout = computeLayout(e.WidthPx, e.HeightPx, c.session.CanvasSize())
			relayout()
			repaint()
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			animating.Store(c.animating())
			st := c.paintState(layout, a, controls, hover, pressed)
			select {
			case paintCh <- st:
			default:
				select {
				case <-paintCh:
				default:
				}
				paintCh <- st
			}
		case mouse.Event:
			if c.handleMouse(e, layout, controls, &hover, &pressed) {
				armMessage()
				relayout()
				repaint()
			}
		case key.Event:
			if e.Direction == key.DirRelease {
				continue
			}
			if c.handleKey(e) {
				armMessage()
				relayout()
				repaint()
			}
		case error:
			a.Logger.Warn("window", "err", e)
		}
	}
}

func (c *controller) paintState(l Layout, a *App, controls []control, hover, pressed int) paintState {
	photo, t, _ := c.session.Snapshot()
	st := paintState{
		layout:    l,
		screen:    c.screen(),
		theme:     a.Theme,
		comp:      c.comp,
		photo:     photo,
		transform: t,
		overlay:   c.overlay,
		exported:  c.exported,
		nickname:  c.session.Nickname,
		savedPath: c.savedPath,
		loading:   c.loading,
		pathInput: c.pathInput,
		nickInput: c.nickInput,
		zoom:      c.zoom,
		controls:  append([]control(nil), controls...),
		hover:     hover,
		pressed:   pressed,
	}
	if c.messageVisible() {
		st.message, st.messageErr = c.message, c.messageErr
	}
	if c.screen() == flow.ThankYou && c.confetti != nil {
		st.confetti = c.confetti
		st.elapsed = c.now().Sub(c.confettiStart)
	}
	return st
}

// handleMouse routes pointer input to the toolbar or the canvas and reports
// whether a repaint is needed.
func (c *controller) handleMouse(e mouse.Event, l Layout, controls []control, hover, pressed *int) bool {
	pt := image.Pt(int(e.X), int(e.Y))
	cx, cy, inside := l.ToCanvas(float64(e.X), float64(e.Y))

	if e.Button == mouse.ButtonWheelUp || e.Button == mouse.ButtonWheelDown {
		if e.Direction != mouse.DirStep && e.Direction != mouse.DirPress {
			return false
		}
		delta := zoomKeyStep
		if e.Button == mouse.ButtonWheelDown {
			delta = -delta
		}
		return c.zoomBy(delta)
	}

	if c.zoom.dragging {
		switch e.Direction {
		case mouse.DirRelease:
			c.zoom.dragging = false
			return true
		default:
			return c.setScale(c.zoom.valueAt(pt.X))
		}
	}

	switch e.Direction {
	case mouse.DirPress:
		if e.Button != mouse.ButtonLeft {
			return false
		}
		c.clearMessage()
		for i := range controls {
			if !pt.In(controls[i].rect) {
				continue
			}
			c.endDrag()
			if controls[i].kind == kindSlider {
				c.zoom.dragging = c.screen() == flow.Editor
				c.setScale(c.zoom.valueAt(pt.X))
				return true
			}
			*pressed = i
			return true
		}
		c.pointerDown(cx, cy, inside)
		return true
	case mouse.DirRelease:
		if *pressed >= 0 {
			i := *pressed
			*pressed = -1
			if i < len(controls) && pt.In(controls[i].rect) {
				controls[i].Activate()
			}
			return true
		}
		wasDragging := c.session.Dragging()
		c.endDrag()
		return wasDragging
	default:
		next := -1
		for i := range controls {
			if controls[i].kind == kindButton && pt.In(controls[i].rect) {
				next = i
				break
			}
		}
		changed := next != *hover
		*hover = next
		if c.pointerMove(cx, cy, inside) {
			return true
		}
		return changed
	}
}

// handleKey applies keyboard input for the current screen and reports
// whether a repaint is needed.
func (c *controller) handleKey(e key.Event) bool {
	ctrl := e.Modifiers&key.ModControl != 0
	switch c.screen() {
	case flow.Upload:
		switch {
		case ctrl && unicode.ToLower(e.Rune) == 'v':
			c.pasteClipboard()
		case e.Code == key.CodeReturnEnter:
			c.openPath()
		case e.Code == key.CodeDeleteBackspace:
			return c.pathInput.Backspace()
		case !ctrl && e.Rune > 0:
			return c.pathInput.Insert(e.Rune)
		default:
			return false
		}
		return true
	case flow.Nickname:
		switch {
		case e.Code == key.CodeReturnEnter:
			c.submitNickname()
		case e.Code == key.CodeEscape:
			c.back()
		case e.Code == key.CodeDeleteBackspace:
			return c.nickInput.Backspace()
		case !ctrl && e.Rune > 0:
			return c.nickInput.Insert(e.Rune)
		default:
			return false
		}
		return true
	case flow.Editor:
		step := 1.0
		if e.Modifiers&key.ModShift != 0 {
			step = 10
		}
		switch {
		case e.Code == key.CodeLeftArrow:
			return c.nudge(-step, 0)
		case e.Code == key.CodeRightArrow:
			return c.nudge(step, 0)
		case e.Code == key.CodeUpArrow:
			return c.nudge(0, -step)
		case e.Code == key.CodeDownArrow:
			return c.nudge(0, step)
		case e.Code == key.CodeReturnEnter:
			c.proceed()
			return true
		case e.Code == key.CodeEscape:
			c.back()
			return true
		}
		switch unicode.ToLower(e.Rune) {
		case 'r':
			return c.rotate()
		case '+', '=':
			return c.zoomBy(zoomKeyStep)
		case '-', '_':
			return c.zoomBy(-zoomKeyStep)
		}
	case flow.Preview:
		switch {
		case ctrl && unicode.ToLower(e.Rune) == 'c':
			c.copyExport()
		case ctrl && unicode.ToLower(e.Rune) == 's', e.Code == key.CodeReturnEnter:
			c.download()
		case e.Code == key.CodeEscape:
			c.back()
		default:
			return false
		}
		return true
	case flow.ThankYou:
		if e.Code == key.CodeReturnEnter {
			c.startOver()
			return true
		}
	}
	return false
}
