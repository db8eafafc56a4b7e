package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/example/smilecam/internal/asset"
	"github.com/example/smilecam/internal/config"
	"github.com/example/smilecam/internal/editor"
	"github.com/example/smilecam/internal/export"
	"github.com/example/smilecam/internal/identity"
	"github.com/example/smilecam/internal/logging"
	"github.com/example/smilecam/internal/notify"
	"github.com/example/smilecam/internal/render"
	"github.com/example/smilecam/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

// root carries the resolved settings shared by every subcommand.
type root struct {
	program    string
	stderr     io.Writer
	verbose    bool
	configPath string
	config     *config.Config
	logger     *log.Logger

	themeName     string
	frame         string
	outputDir     string
	interpolation string
	endpoint      string
	notifyExport  bool
	notifyCopy    bool
}

func newRootCmd() *cobra.Command {
	r := &root{program: "smilecam", stderr: os.Stderr, configPath: configPathOverride}
	cmd := &cobra.Command{
		Use:           r.program,
		Short:         "SmileCam frames a photo and exports a 1000x1000 picture",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			r.stderr = cmd.ErrOrStderr()
			r.logger = logging.New(r.stderr, logging.Level(r.verbose))
			cmd.SetContext(logging.WithLogger(cmd.Context(), r.logger))
			return r.resolve(cmd)
		},
	}
	cmd.SetVersionTemplate(fmt.Sprintf("%s version %s\ncommit: %s\nbuilt: %s\n", r.program, version, commit, date))

	pf := cmd.PersistentFlags()
	pf.BoolVarP(&r.verbose, "verbose", "v", false, "enable verbose logging")
	pf.StringVar(&r.configPath, "config", r.configPath, "config file to read instead of the default search path")
	pf.StringVar(&r.themeName, "theme", "", "color theme name or theme file (default, dark)")
	pf.StringVar(&r.frame, "frame", "", "frame overlay image (default: built-in frame)")
	pf.StringVar(&r.outputDir, "output-dir", "", "directory downloads are written to")
	pf.StringVar(&r.interpolation, "interpolation", "", "resampling kernel (nearest, approxbilinear, bilinear, catmullrom)")
	pf.StringVar(&r.endpoint, "form-endpoint", "", "URL the nickname is posted to")
	pf.BoolVar(&r.notifyExport, "notify-export", false, "show a desktop notification after saving")
	pf.BoolVar(&r.notifyCopy, "notify-copy", false, "show a desktop notification after copying")

	cmd.AddCommand(newEditCmd(r))
	cmd.AddCommand(newComposeCmd(r))
	cmd.AddCommand(newMonitorsCmd(r))
	cmd.AddCommand(newConfigCmd(r))
	cmd.AddCommand(newVersionCmd(r))
	return cmd
}

// resolve layers settings: CLI flag > SMILECAM_* env > config file > default.
func (r *root) resolve(cmd *cobra.Command) error {
	cfg, err := config.NewLoader(version, r.configPath).Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return fmt.Errorf("config environment: %w", err)
	}

	flags := cmd.Flags()
	str := map[string]struct {
		src string
		dst *string
	}{
		"theme":         {r.themeName, &cfg.Theme},
		"frame":         {r.frame, &cfg.Frame},
		"output-dir":    {r.outputDir, &cfg.OutputDir},
		"interpolation": {r.interpolation, &cfg.Interpolation},
		"form-endpoint": {r.endpoint, &cfg.FormEndpoint},
	}
	for name, f := range str {
		if flags.Changed(name) {
			*f.dst = f.src
		}
	}
	if flags.Changed("notify-export") {
		cfg.Notify.Export = r.notifyExport
	}
	if flags.Changed("notify-copy") {
		cfg.Notify.Copy = r.notifyCopy
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	r.config = cfg
	return nil
}

func (r *root) compositor() (*render.Compositor, error) {
	return render.New(r.config.Interpolation)
}

// overlay loads the configured frame. A frame that cannot be read is logged
// and the picture is rendered without one.
func (r *root) overlay() image.Image {
	img, err := asset.LoadOverlay(r.config.Frame, editor.CanvasSize)
	if err != nil {
		r.logger.Warn("frame unavailable, rendering without overlay", "frame", r.config.Frame, "err", err)
		return nil
	}
	return img
}

func (r *root) assetOptions() asset.Options {
	return asset.Options{MaxDimension: r.config.MaxUpload, JPEGQuality: r.config.JPEGQuality}
}

func (r *root) theme() *theme.Theme {
	custom, err := r.config.ThemeSet()
	if err != nil {
		r.logger.Warn("config themes", "err", err)
	}
	loader := theme.NewLoader()
	loader.Custom = custom
	t, err := loader.Load(r.config.Theme)
	if err != nil {
		r.logger.Warn("theme unavailable, using default", "theme", r.config.Theme, "err", err)
		return theme.Default()
	}
	return t
}

func (r *root) notifier() *notify.Notifier {
	n := notify.New(notify.FromEnv(notify.DefaultPreferences()), r.logger)
	n.Enable(notify.EventExport, r.config.Notify.Export)
	n.Enable(notify.EventCopy, r.config.Notify.Copy)
	return n
}

func (r *root) exporter() *export.Exporter {
	return &export.Exporter{Dir: r.config.OutputDir, Notifier: r.notifier()}
}

func (r *root) submitter() *identity.Submitter {
	return identity.NewSubmitter(r.config.FormEndpoint)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
