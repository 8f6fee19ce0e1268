// Package rxp provides a typed, lazy, pull-based reader over rxp scan
// streams. The proprietary frame format is decoded by the vendor engine
// (internal/engine); this package owns the buffering, record decoding and
// resource lifetime around it.
//
// A Reader is an immutable configuration value built fluently and opened
// explicitly:
//
//	stream, err := rxp.FromPath("scan.rxp").SyncToPPS(true).Points()
//	if err != nil { ... }
//	defer stream.Close()
//	for {
//		p, err := stream.Next()
//		if err == io.EOF {
//			break
//		}
//		...
//	}
package rxp

import (
	"errors"

	"github.com/banshee-data/rxpstream/internal/engine"
)

// DefaultBatchSize is the number of records requested per engine read when
// the Reader is not configured otherwise.
const DefaultBatchSize = 1024

// ErrInvalidBatchSize is returned when a stream is opened with a batch size
// below 1.
var ErrInvalidBatchSize = errors.New("batch size must be at least 1")

// Reader is a declarative stream configuration. The zero value is not
// usable; construct with FromPath or FromNetwork. Setters return an updated
// copy and never perform I/O; only Points and Inclinations touch the engine.
type Reader struct {
	locator   Locator
	syncToPPS bool
	batchSize int
	logPath   string
	eng       engine.Engine
}

// FromPath returns a Reader for a local rxp file, with PPS synchronization
// enabled and the default batch size.
func FromPath(path string) Reader {
	return newReader(FilePath(path))
}

// FromNetwork returns a Reader for a scanner at the given rdtp network
// address, with PPS synchronization enabled and the default batch size.
func FromNetwork(addr string) Reader {
	return newReader(NetworkAddress(addr))
}

func newReader(l Locator) Reader {
	return Reader{locator: l, syncToPPS: true, batchSize: DefaultBatchSize}
}

// SyncToPPS sets whether point timestamps are forced onto the external
// pulse-per-second clock.
func (r Reader) SyncToPPS(sync bool) Reader {
	r.syncToPPS = sync
	return r
}

// BatchSize sets how many records are requested per engine read.
func (r Reader) BatchSize(n int) Reader {
	r.batchSize = n
	return r
}

// LogPath names a side-channel log file for the engine to write. Empty
// disables engine logging.
func (r Reader) LogPath(path string) Reader {
	r.logPath = path
	return r
}

// WithEngine substitutes the decoding engine, primarily for tests. Without
// it the registered native engine is used.
func (r Reader) WithEngine(eng engine.Engine) Reader {
	r.eng = eng
	return r
}

// Points opens the source and returns a stream of decoded point returns.
// Exactly one engine open call is made; on failure no handle escapes.
func (r Reader) Points() (*PointStream, error) {
	eng, err := r.prepare()
	if err != nil {
		return nil, err
	}
	h, status := eng.Open(r.locator.URI(), r.syncToPPS, r.logPath)
	if status != 0 {
		return nil, engine.StatusError(eng, status)
	}
	return newPointStream(eng, h, r.batchSize), nil
}

// Inclinations opens the source in inclination mode and returns a stream of
// decoded inclination samples.
func (r Reader) Inclinations() (*InclinationStream, error) {
	eng, err := r.prepare()
	if err != nil {
		return nil, err
	}
	h, status := eng.OpenInclinations(r.locator.URI(), r.syncToPPS)
	if status != 0 {
		return nil, engine.StatusError(eng, status)
	}
	return newInclinationStream(eng, h, r.batchSize), nil
}

// prepare validates the configuration and resolves the engine. Configuration
// failures are detected before any engine call.
func (r Reader) prepare() (engine.Engine, error) {
	if err := r.locator.validate(); err != nil {
		return nil, err
	}
	if r.batchSize < 1 {
		return nil, ErrInvalidBatchSize
	}
	if r.eng != nil {
		return r.eng, nil
	}
	return engine.Default()
}
