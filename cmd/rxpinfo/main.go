// Command rxpinfo reports basic information about an rxp data stream: the
// number of point returns it contains and, on request, the vendor engine
// version.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/banshee-data/rxpstream/internal/engine"
	"github.com/banshee-data/rxpstream/internal/rxp"
)

var (
	syncToPPS    = flag.Bool("sync-to-pps", true, "Force point timestamps to be synced to a PPS signal")
	batchSize    = flag.Int("batch-size", rxp.DefaultBatchSize, "Number of records requested per engine read")
	logPath      = flag.String("log", "", "Optional engine side-channel log file")
	network      = flag.Bool("network", false, "Treat the source argument as an rdtp network address instead of a file path")
	inclinations = flag.Bool("inclinations", false, "Count inclination samples instead of point returns")
	showVersion  = flag.Bool("version", false, "Print engine library version information and exit")
)

func main() {
	flag.Parse()

	eng, err := engine.Default()
	if err != nil {
		log.Fatalf("engine unavailable: %v", err)
	}

	if *showVersion {
		printVersion(eng)
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: rxpinfo [flags] <source>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	reader := sourceReader(flag.Arg(0)).
		SyncToPPS(*syncToPPS).
		BatchSize(*batchSize).
		LogPath(*logPath).
		WithEngine(eng)

	if *inclinations {
		stream, err := reader.Inclinations()
		if err != nil {
			log.Fatalf("failed to open inclination stream: %v", err)
		}
		count, err := countInclinations(stream)
		if err != nil {
			log.Fatalf("read failed: %v", err)
		}
		fmt.Printf("number of inclinations: %d\n", count)
		return
	}

	stream, err := reader.Points()
	if err != nil {
		log.Fatalf("failed to open point stream: %v", err)
	}
	count, err := countPoints(stream)
	if err != nil {
		log.Fatalf("read failed: %v", err)
	}
	fmt.Printf("number of points: %d\n", count)
}

func sourceReader(source string) rxp.Reader {
	if *network {
		return rxp.FromNetwork(source)
	}
	return rxp.FromPath(source)
}

func countPoints(stream *rxp.PointStream) (int64, error) {
	defer stream.Close()
	var count int64
	for {
		_, err := stream.Next()
		if err == io.EOF {
			return count, nil
		}
		if err != nil {
			return count, err
		}
		count++
	}
}

func countInclinations(stream *rxp.InclinationStream) (int64, error) {
	defer stream.Close()
	var count int64
	for {
		_, err := stream.Next()
		if err == io.EOF {
			return count, nil
		}
		if err != nil {
			return count, err
		}
		count++
	}
}

func printVersion(eng engine.Engine) {
	vr, ok := eng.(engine.VersionReporter)
	if !ok {
		fmt.Println("engine does not report version information")
		return
	}
	major, minor, build, err := vr.LibraryVersion()
	if err != nil {
		log.Fatalf("failed to query library version: %v", err)
	}
	fmt.Printf("engine library version: %d.%d.%d\n", major, minor, build)
	version, tag, err := vr.BuildInfo()
	if err != nil {
		log.Fatalf("failed to query build info: %v", err)
	}
	fmt.Printf("engine build version: %s\n", version)
	fmt.Printf("engine build tag: %s\n", tag)
}
