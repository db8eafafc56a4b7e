package main

import (
	"fmt"
	"image"

	"github.com/spf13/cobra"

	"github.com/example/smilecam/internal/asset"
	"github.com/example/smilecam/internal/ui"
)

func newEditCmd(r *root) *cobra.Command {
	var nickname string
	cmd := &cobra.Command{
		Use:   "edit [photo]",
		Short: "Open the editor window, optionally with a photo already loaded",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var photo image.Image
			if len(args) == 1 {
				img, err := asset.LoadPhoto(args[0], r.assetOptions())
				if err != nil {
					return fmt.Errorf("failed to open photo: %w", err)
				}
				photo = img
			}
			comp, err := r.compositor()
			if err != nil {
				return err
			}
			app := ui.New(
				ui.WithPhoto(photo),
				ui.WithNickname(nickname),
				ui.WithOverlay(r.overlay()),
				ui.WithCompositor(comp),
				ui.WithTheme(r.theme()),
				ui.WithExporter(r.exporter()),
				ui.WithSubmitter(r.submitter()),
				ui.WithAssetOptions(r.assetOptions()),
				ui.WithProcessingDelay(r.config.Delay()),
				ui.WithLogger(r.logger),
				ui.WithOnClose(func() { r.logger.Debug("editor closed") }),
			)
			if err := app.Run(ctx); err != nil {
				return err
			}
			return ctx.Err()
		},
	}
	cmd.Flags().StringVar(&nickname, "nickname", "", "skip the nickname prompt (requires a photo)")
	return cmd
}
