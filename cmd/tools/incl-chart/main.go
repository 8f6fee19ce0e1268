// Command incl-chart renders the inclination sensor time series of an rxp
// stream as an HTML chart and prints summary statistics for roll and pitch.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/rxpstream/internal/engine"
	"github.com/banshee-data/rxpstream/internal/rxp"
)

var (
	output    = flag.String("o", "inclinations.html", "Output HTML file")
	syncToPPS = flag.Bool("sync-to-pps", true, "Force timestamps to be synced to a PPS signal")
	network   = flag.Bool("network", false, "Treat the source argument as an rdtp network address instead of a file path")
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: incl-chart [flags] <source>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	eng, err := engine.Default()
	if err != nil {
		log.Fatalf("engine unavailable: %v", err)
	}

	reader := rxp.FromPath(flag.Arg(0))
	if *network {
		reader = rxp.FromNetwork(flag.Arg(0))
	}
	stream, err := reader.SyncToPPS(*syncToPPS).WithEngine(eng).Inclinations()
	if err != nil {
		log.Fatalf("failed to open inclination stream: %v", err)
	}
	inclinations, err := stream.ReadAll()
	if err != nil {
		log.Fatalf("read failed: %v", err)
	}
	if len(inclinations) == 0 {
		log.Fatal("stream contains no inclination samples")
	}

	times := make([]string, len(inclinations))
	roll := make([]float64, len(inclinations))
	pitch := make([]float64, len(inclinations))
	rollData := make([]opts.LineData, len(inclinations))
	pitchData := make([]opts.LineData, len(inclinations))
	for i, inc := range inclinations {
		times[i] = fmt.Sprintf("%.3f", inc.Time)
		roll[i] = inc.Roll
		pitch[i] = inc.Pitch
		rollData[i] = opts.LineData{Value: inc.Roll}
		pitchData[i] = opts.LineData{Value: inc.Pitch}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Inclination", Width: "1200px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Scanner inclination",
			Subtitle: fmt.Sprintf("source=%s samples=%d", flag.Arg(0), len(inclinations)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "time (s)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "degrees"}),
	)
	line.SetXAxis(times).
		AddSeries("roll", rollData).
		AddSeries("pitch", pitchData)

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("failed to create %s: %v", *output, err)
	}
	defer f.Close()
	if err := line.Render(f); err != nil {
		log.Fatalf("failed to render chart: %v", err)
	}

	rollMean, rollStd := stat.MeanStdDev(roll, nil)
	pitchMean, pitchStd := stat.MeanStdDev(pitch, nil)
	fmt.Printf("samples: %d over %.3f s\n", len(inclinations),
		inclinations[len(inclinations)-1].Time-inclinations[0].Time)
	fmt.Printf("roll:  mean %.3f° stddev %.3f°\n", rollMean, rollStd)
	fmt.Printf("pitch: mean %.3f° stddev %.3f°\n", pitchMean, pitchStd)
	fmt.Printf("wrote %s\n", *output)
}
