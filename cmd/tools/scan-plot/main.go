// Command scan-plot renders a top-down X/Y scatter of an rxp point stream to
// a PNG image. Useful for a quick sanity check of a scan without loading it
// into a full point cloud viewer.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/rxpstream/internal/engine"
	"github.com/banshee-data/rxpstream/internal/rxp"
)

var (
	output    = flag.String("o", "scan.png", "Output PNG file")
	syncToPPS = flag.Bool("sync-to-pps", true, "Force point timestamps to be synced to a PPS signal")
	network   = flag.Bool("network", false, "Treat the source argument as an rdtp network address instead of a file path")
	stride    = flag.Int("stride", 1, "Plot every Nth point (thin dense scans)")
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: scan-plot [flags] <source>")
		flag.PrintDefaults()
		os.Exit(2)
	}
	if *stride < 1 {
		log.Fatalf("invalid stride %d: must be at least 1", *stride)
	}

	eng, err := engine.Default()
	if err != nil {
		log.Fatalf("engine unavailable: %v", err)
	}

	reader := rxp.FromPath(flag.Arg(0))
	if *network {
		reader = rxp.FromNetwork(flag.Arg(0))
	}
	stream, err := reader.SyncToPPS(*syncToPPS).WithEngine(eng).Points()
	if err != nil {
		log.Fatalf("failed to open point stream: %v", err)
	}
	points, err := stream.ReadAll()
	if err != nil {
		log.Fatalf("read failed: %v", err)
	}
	if len(points) == 0 {
		log.Fatal("stream contains no points")
	}

	xys := make(plotter.XYs, 0, len(points)/ *stride+1)
	for i := 0; i < len(points); i += *stride {
		xys = append(xys, plotter.XY{X: float64(points[i].X), Y: float64(points[i].Y)})
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s (%d points)", flag.Arg(0), len(points))
	p.X.Label.Text = "X (m)"
	p.Y.Label.Text = "Y (m)"

	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		log.Fatalf("failed to build scatter: %v", err)
	}
	scatter.Radius = vg.Points(0.5)
	p.Add(scatter)

	if err := p.Save(10*vg.Inch, 10*vg.Inch, *output); err != nil {
		log.Fatalf("failed to save plot: %v", err)
	}
	log.Printf("plotted %d of %d points to %s", len(xys), len(points), *output)
}
