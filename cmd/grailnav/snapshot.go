package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wesen/grailnav/internal/hostgraph"
	"github.com/wesen/grailnav/pkg/navigator"
)

func snapshotCmd() *cobra.Command {
	var (
		sizes panelFlags
		out   string
	)
	cmd := &cobra.Command{
		Use:   "snapshot [graph.json]",
		Short: "Write the minimap thumbnail as PNG",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, _, err := loadGraph(args)
			if err != nil {
				return err
			}
			engine := hostgraph.NewEngine(g, hostgraph.WithSize(sizes.view()))
			bb := navigator.ComputeBoundingBox(engine)
			scale := navigator.RasterScale(bb, sizes.panel())
			payload := engine.Snapshot(navigator.SnapshotOptions{
				Full:      true,
				Scale:     scale,
				MaxWidth:  sizes.panelW,
				MaxHeight: sizes.panelH,
			})
			if !navigator.IsRaster(payload) {
				return errors.New("nothing to render")
			}
			if err := os.WriteFile(out, payload, 0o644); err != nil {
				return fmt.Errorf("write snapshot: %w", err)
			}
			fmt.Printf("  %s %s (%d bytes, scale %.4f)\n", brand.Sprint("wrote"), out, len(payload), scale)
			return nil
		},
	}
	sizes.register(cmd)
	cmd.Flags().StringVarP(&out, "output", "o", "thumbnail.png", "output file")
	return cmd
}
