// Command rxp-export consumes an rxp stream into a SQLite database for
// offline analysis. Points and inclinations are written in batches under a
// fresh session id.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/banshee-data/rxpstream/internal/engine"
	"github.com/banshee-data/rxpstream/internal/rxp"
	"github.com/banshee-data/rxpstream/internal/rxpdb"
)

var (
	dbFile       = flag.String("db", "rxp_data.db", "Path to the SQLite database file")
	syncToPPS    = flag.Bool("sync-to-pps", true, "Force point timestamps to be synced to a PPS signal")
	batchSize    = flag.Int("batch-size", rxp.DefaultBatchSize, "Number of records requested per engine read")
	network      = flag.Bool("network", false, "Treat the source argument as an rdtp network address instead of a file path")
	inclinations = flag.Bool("inclinations", false, "Export inclination samples instead of point returns")
	insertBatch  = flag.Int("insert-batch", 512, "Number of records per database transaction")
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: rxp-export [flags] <source>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	eng, err := engine.Default()
	if err != nil {
		log.Fatalf("engine unavailable: %v", err)
	}

	reader := sourceReader(flag.Arg(0)).
		SyncToPPS(*syncToPPS).
		BatchSize(*batchSize).
		WithEngine(eng)

	db, err := rxpdb.Open(*dbFile)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	session, err := db.BeginSession(flag.Arg(0), *syncToPPS)
	if err != nil {
		log.Fatalf("failed to begin session: %v", err)
	}

	var total int64
	if *inclinations {
		total, err = exportInclinations(reader, db, session)
	} else {
		total, err = exportPoints(reader, db, session)
	}
	if err != nil {
		log.Fatalf("export failed after %d records: %v", total, err)
	}
	log.Printf("exported %d records to %s (session %s)", total, *dbFile, session)
}

func sourceReader(source string) rxp.Reader {
	if *network {
		return rxp.FromNetwork(source)
	}
	return rxp.FromPath(source)
}

func exportPoints(reader rxp.Reader, db *rxpdb.DB, session string) (int64, error) {
	stream, err := reader.Points()
	if err != nil {
		return 0, err
	}
	defer stream.Close()

	var total int64
	pending := make([]rxp.Point, 0, *insertBatch)
	for {
		p, err := stream.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return total, err
		}
		pending = append(pending, p)
		if len(pending) == *insertBatch {
			if err := db.InsertPoints(session, pending); err != nil {
				return total, err
			}
			total += int64(len(pending))
			pending = pending[:0]
		}
	}
	if err := db.InsertPoints(session, pending); err != nil {
		return total, err
	}
	return total + int64(len(pending)), nil
}

func exportInclinations(reader rxp.Reader, db *rxpdb.DB, session string) (int64, error) {
	stream, err := reader.Inclinations()
	if err != nil {
		return 0, err
	}
	defer stream.Close()

	var total int64
	pending := make([]rxp.Inclination, 0, *insertBatch)
	for {
		inc, err := stream.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return total, err
		}
		pending = append(pending, inc)
		if len(pending) == *insertBatch {
			if err := db.InsertInclinations(session, pending); err != nil {
				return total, err
			}
			total += int64(len(pending))
			pending = pending[:0]
		}
	}
	if err := db.InsertInclinations(session, pending); err != nil {
		return total, err
	}
	return total + int64(len(pending)), nil
}
