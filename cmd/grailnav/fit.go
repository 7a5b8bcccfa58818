package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wesen/grailnav/internal/hostgraph"
	"github.com/wesen/grailnav/pkg/navigator"
)

// panelFlags are the minimap and main view sizes, in pixels.
type panelFlags struct {
	panelW, panelH float64
	viewW, viewH   float64
}

func (f *panelFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.panelW, "width", 200, "minimap width in pixels")
	cmd.Flags().Float64Var(&f.panelH, "height", 150, "minimap height in pixels")
	cmd.Flags().Float64Var(&f.viewW, "view-width", 800, "main view width in pixels")
	cmd.Flags().Float64Var(&f.viewH, "view-height", 600, "main view height in pixels")
}

func (f *panelFlags) panel() navigator.Size { return navigator.Size{W: f.panelW, H: f.panelH} }
func (f *panelFlags) view() navigator.Size  { return navigator.Size{W: f.viewW, H: f.viewH} }

func fitCmd() *cobra.Command {
	var (
		sizes  panelFlags
		fitAll bool
	)
	cmd := &cobra.Command{
		Use:   "fit [graph.json]",
		Short: "Print the minimap geometry for a graph",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			g, _, err := loadGraph(args)
			if err != nil {
				return err
			}
			engine := hostgraph.NewEngine(g, hostgraph.WithLimits(cfg.Limits()), hostgraph.WithSize(sizes.view()))
			if fitAll {
				engine.Fit(0)
			}

			bb := navigator.ComputeBoundingBox(engine)
			t := navigator.ComputeTransform(bb, sizes.panel())
			b := cfg.Navigator.Border
			view := navigator.ViewRectFor(engine.Size(), engine.Zoom(), engine.Pan(), t,
				navigator.Insets{Top: b.Top, Right: b.Right, Bottom: b.Bottom, Left: b.Left})
			off := navigator.ImageOffset(bb, sizes.panel())

			row := func(name, value string) {
				fmt.Fprintf(os.Stdout, "  %s  %s\n", brand.Sprintf("%-14s", name), value)
			}
			if bb.Unbounded() {
				row("bounds", subtle.Sprint("(empty)"))
			} else {
				row("bounds", fmt.Sprintf("(%g,%g)-(%g,%g)  %gx%g", bb.X1, bb.Y1, bb.X2, bb.Y2, bb.W, bb.H))
			}
			row("transform", fmt.Sprintf("zoom %.4f  pan (%.2f,%.2f)", t.Zoom, t.Pan.X, t.Pan.Y))
			row("raster scale", fmt.Sprintf("%.4f", navigator.RasterScale(bb, sizes.panel())))
			row("image offset", fmt.Sprintf("(%.2f,%.2f)", off.X, off.Y))
			row("host", fmt.Sprintf("zoom %.4f  pan (%.2f,%.2f)", engine.Zoom(), engine.Pan().X, engine.Pan().Y))
			row("view rect", fmt.Sprintf("(%.2f,%.2f) %.2fx%.2f", view.X, view.Y, view.W, view.H))
			return nil
		},
	}
	sizes.register(cmd)
	cmd.Flags().BoolVar(&fitAll, "fit", false, "fit the whole graph into the main view first")
	return cmd
}
