// Package engine defines the interface to the vendor scan decoding engine.
// The engine owns the proprietary rxp frame format; this package only models
// its call surface (open, bounded batch read, close, last-error query) so the
// streaming layer can be exercised against a scripted implementation without
// the vendor library.
//
// The interface deliberately mirrors the vendor ABI: operations report a
// numeric status code and the error text is fetched through a separate
// last-error query. Translating status codes into Go errors is the caller's
// job, via StatusError.
package engine

import "fmt"

// Handle identifies one open engine stream. The zero value is never a valid
// handle. A handle is owned by exactly one stream and must be passed to Close
// exactly once.
type Handle uint64

// RawPoint is the fixed-shape record the engine produces per decoded point
// return. Time is in integer nanosecond ticks; Flags is the packed attribute
// word (echo type, waveform/PPS flags, facet number).
type RawPoint struct {
	X, Y, Z     float32
	Amplitude   float32
	Reflectance float32
	Deviation   uint16
	Flags       uint16
	Time        uint64
}

// RawInclination is the fixed-shape record the engine produces per
// inclination sample. Time is already in seconds; Roll and Pitch are in
// degrees.
type RawInclination struct {
	Time  float64
	Roll  float32
	Pitch float32
}

// Engine is the vendor decoding engine. Implementations must return status 0
// on success and a nonzero code on failure; after a nonzero status the error
// text is retrievable through LastError until the next engine call.
//
// Read calls fill up to len(buf) records and report how many were produced
// plus whether the read crossed a frame boundary. A read that produces zero
// records and no end-of-frame signal means the stream is exhausted; zero
// records with the end-of-frame signal set is an empty frame and more data
// may follow.
type Engine interface {
	// Open opens a point stream for the given source URI. logPath, when
	// non-empty, names a side-channel log file for the engine to write.
	Open(uri string, syncToPPS bool, logPath string) (Handle, int32)

	// ReadPoints reads up to len(buf) point records from the stream.
	ReadPoints(h Handle, buf []RawPoint) (got int, endOfFrame bool, status int32)

	// OpenInclinations opens an inclination-mode stream for the given
	// source URI.
	OpenInclinations(uri string, syncToPPS bool) (Handle, int32)

	// ReadInclinations reads up to len(buf) inclination samples.
	ReadInclinations(h Handle, buf []RawInclination) (got int, endOfFrame bool, status int32)

	// Close releases the handle. Each handle must be closed exactly once.
	Close(h Handle) int32

	// LastError returns the engine's message for the most recent failure.
	// The query itself can fail.
	LastError() (string, error)
}

// VersionReporter is an optional interface engines may implement to expose
// vendor library version metadata.
type VersionReporter interface {
	// LibraryVersion returns the engine library version number.
	LibraryVersion() (major, minor, build uint16, err error)

	// BuildInfo returns extended version information for traceability of
	// the vendor's SCM system.
	BuildInfo() (version, tag string, err error)
}

// Error is a failure reported by the engine through a nonzero status code,
// with the message recovered via the last-error query.
type Error struct {
	Code    int32
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("engine error code %d: %s", e.Code, e.Message)
}

// StatusError builds the Error for a nonzero status code, fetching the
// message through the engine's last-error query. If that query itself fails,
// the message reports the secondary failure rather than fabricating engine
// error text; the primary status code is always preserved.
func StatusError(eng Engine, status int32) *Error {
	msg, err := eng.LastError()
	if err != nil {
		msg = fmt.Sprintf("(last error unavailable: %v)", err)
	}
	return &Error{Code: status, Message: msg}
}
