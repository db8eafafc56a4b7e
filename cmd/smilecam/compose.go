package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/smilecam/internal/asset"
	"github.com/example/smilecam/internal/capture"
	"github.com/example/smilecam/internal/clipboard"
	"github.com/example/smilecam/internal/editor"
	"github.com/example/smilecam/internal/export"
	"github.com/example/smilecam/internal/logging"
)

const (
	minScale = 0.1
	maxScale = 5
)

var (
	captureScreenFn = capture.Screen
	readClipboardFn = clipboard.ReadImage
)

type composeOpts struct {
	photo         string
	fromClipboard bool
	grab          string
	offset        string
	scale         float64
	rotate        int
	drags         []string
	nickname      string
	output        string
	copy          bool
}

func newComposeCmd(r *root) *cobra.Command {
	opts := composeOpts{scale: 1}
	cmd := &cobra.Command{
		Use:   "compose [photo]",
		Short: "Frame a photo without opening a window",
		Long: `Compose places a photo on the 1000x1000 canvas, applies the requested
offset, rotation, zoom and drags, draws the frame on top and writes a PNG.
The output is pixel-identical to a download from the editor.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if opts.photo != "" {
					return errors.New("give the photo either as an argument or with --photo")
				}
				opts.photo = args[0]
			}
			return r.compose(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.photo, "photo", "p", "", "photo to frame")
	f.BoolVar(&opts.fromClipboard, "from-clipboard", false, "read the photo from the clipboard")
	f.StringVar(&opts.grab, "grab", "", "use a screen grab as the photo (\"all\", \"primary\", an index or a monitor name)")
	f.StringVar(&opts.offset, "offset", "", "top-left corner of the photo as x,y (default: centered)")
	f.Float64Var(&opts.scale, "scale", opts.scale, "zoom factor between 0.1 and 5")
	f.IntVar(&opts.rotate, "rotate", 0, "number of 90 degree clockwise turns")
	f.StringArrayVar(&opts.drags, "drag", nil, "drag gesture x0,y0:x1,y1 in canvas pixels (repeatable)")
	f.StringVarP(&opts.nickname, "nickname", "n", "", "nickname used for the file name")
	f.StringVarP(&opts.output, "output", "o", "", "output file, - for stdout (default: <output-dir>/SmileCam_<nickname>.png)")
	f.BoolVar(&opts.copy, "copy", false, "also copy the picture to the clipboard")
	return cmd
}

func (r *root) compose(ctx context.Context, opts composeOpts, stdout io.Writer) error {
	logger := logging.FromContext(ctx)
	p := logging.Start(logger)

	if opts.scale < minScale || opts.scale > maxScale {
		return fmt.Errorf("scale %v out of range %v..%v", opts.scale, minScale, maxScale)
	}
	photo, err := r.loadPhoto(ctx, opts)
	if err != nil {
		return err
	}

	s := editor.New()
	s.Load(photo)
	if opts.offset != "" {
		x, y, err := parsePoint(opts.offset)
		if err != nil {
			return fmt.Errorf("--offset: %w", err)
		}
		t := s.Transform()
		s.Nudge(x-t.OffsetX, y-t.OffsetY)
	}
	for i := 0; i < ((opts.rotate%4)+4)%4; i++ {
		s.RotateStep()
	}
	s.SetScale(opts.scale)
	for _, d := range opts.drags {
		if err := applyDrag(s, d); err != nil {
			return fmt.Errorf("--drag %q: %w", d, err)
		}
	}

	comp, err := r.compositor()
	if err != nil {
		return err
	}
	img, t, err := s.Snapshot()
	if err != nil {
		return err
	}
	out := comp.RenderToExport(img, t, r.overlay(), s.CanvasSize())
	logger.Debug("rendered", "transform", fmt.Sprintf("%+v", t), "interpolation", comp.Name())

	nick := strings.TrimSpace(opts.nickname)
	var done <-chan struct{}
	if nick != "" {
		done = r.submitter().Submit(ctx, nick)
	}

	switch opts.output {
	case "-":
		if err := export.EncodePNG(stdout, out); err != nil {
			return fmt.Errorf("failed to write png: %w", err)
		}
	default:
		ex := r.exporter()
		var path string
		if opts.output == "" {
			path, err = ex.Save(nick, out)
		} else {
			path, err = export.WriteFile(opts.output, out)
			if err == nil {
				ex.Notifier.Exported(path)
			}
		}
		if err != nil {
			return fmt.Errorf("failed to save picture: %w", err)
		}
		p.Done("saved", "path", path)
	}
	if opts.copy {
		if err := r.exporter().Copy(nick, out); err != nil {
			return fmt.Errorf("failed to copy picture: %w", err)
		}
	}
	if done != nil {
		<-done
	}
	return nil
}

func (r *root) loadPhoto(ctx context.Context, opts composeOpts) (image.Image, error) {
	sources := 0
	for _, set := range []bool{opts.photo != "", opts.fromClipboard, opts.grab != ""} {
		if set {
			sources++
		}
	}
	switch {
	case sources == 0:
		return nil, errors.New("a photo is required: pass a file, --from-clipboard or --grab")
	case sources > 1:
		return nil, errors.New("use only one of a photo file, --from-clipboard and --grab")
	}

	switch {
	case opts.fromClipboard:
		data, err := readClipboardFn()
		if err != nil {
			return nil, fmt.Errorf("failed to read clipboard: %w", err)
		}
		return asset.DecodePhoto(bytes.NewReader(data), r.assetOptions())
	case opts.grab != "":
		selector := opts.grab
		if selector == "all" {
			selector = ""
		}
		shot, err := captureScreenFn(ctx, selector)
		if err != nil {
			return nil, fmt.Errorf("failed to capture screen: %w", err)
		}
		return asset.Prepare(shot, r.assetOptions())
	}
	return asset.LoadPhoto(opts.photo, r.assetOptions())
}

// applyDrag replays a press at the first point, a move to the second and a
// release.
func applyDrag(s *editor.Session, spec string) error {
	from, to, ok := strings.Cut(spec, ":")
	if !ok {
		return errors.New("want x0,y0:x1,y1")
	}
	x0, y0, err := parsePoint(from)
	if err != nil {
		return err
	}
	x1, y1, err := parsePoint(to)
	if err != nil {
		return err
	}
	s.BeginDrag(x0, y0)
	s.UpdateDrag(x1, y1)
	s.EndDrag()
	return nil
}

func parsePoint(s string) (float64, float64, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("point %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("point %q: %w", s, err)
	}
	return x, y, nil
}
