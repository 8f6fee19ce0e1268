package rxp

import (
	"io"
	"runtime"
	"sync"

	"github.com/banshee-data/rxpstream/internal/engine"
)

// stream is the buffered pull machinery shared by point and inclination
// streams. It holds at most one batch of decoded records: the buffer is
// drained before the next engine read is issued, so memory is bounded by the
// configured batch size and record order is exactly the engine's delivery
// order.
type stream[T any] struct {
	eng    engine.Engine
	handle engine.Handle
	want   int

	// fill issues one bounded engine read and decodes the result. It
	// reports exhausted=true only on the genuine end-of-stream condition
	// (zero records and no end-of-frame signal).
	fill func(want int) (recs []T, exhausted bool, err error)

	buf  []T
	head int
	done bool

	closeOnce sync.Once
	cleanup   runtime.Cleanup
}

// handleReleaser releases an engine handle from a GC cleanup. It must not
// reference the stream itself.
type handleReleaser struct {
	eng    engine.Engine
	handle engine.Handle
}

func releaseLeakedHandle(r handleReleaser) {
	r.eng.Close(r.handle)
}

// Next returns the next record in scan order. It returns io.EOF once the
// stream is exhausted or closed, permanently. Any other error is a failed
// engine read: the stream stays open and a subsequent Next call retries the
// read.
func (s *stream[T]) Next() (T, error) {
	var zero T
	for {
		if s.head < len(s.buf) {
			rec := s.buf[s.head]
			s.head++
			return rec, nil
		}
		if s.done {
			return zero, io.EOF
		}
		recs, exhausted, err := s.fill(s.want)
		if err != nil {
			return zero, err
		}
		if exhausted {
			s.done = true
			s.release()
			return zero, io.EOF
		}
		// A zero-record refill is an empty end-of-frame heartbeat;
		// issue another read.
		s.buf, s.head = recs, 0
	}
}

// ReadAll consumes the remainder of the stream and releases the handle. On a
// read error it returns the records decoded so far alongside the error.
func (s *stream[T]) ReadAll() ([]T, error) {
	defer s.Close()
	var recs []T
	for {
		rec, err := s.Next()
		if err == io.EOF {
			return recs, nil
		}
		if err != nil {
			return recs, err
		}
		recs = append(recs, rec)
	}
}

// Close releases the engine handle and discards any unread buffered tail.
// Close is idempotent; across Close, exhaustion and GC cleanup the engine's
// close primitive runs exactly once.
func (s *stream[T]) Close() error {
	s.done = true
	s.buf, s.head = nil, 0
	return s.release()
}

func (s *stream[T]) release() error {
	var err error
	s.closeOnce.Do(func() {
		s.cleanup.Stop()
		if status := s.eng.Close(s.handle); status != 0 {
			err = engine.StatusError(s.eng, status)
		}
	})
	return err
}

// PointStream is a single-pass stream of decoded point returns. It owns one
// engine handle; it is not safe for concurrent use.
type PointStream struct {
	stream[Point]
}

// InclinationStream is a single-pass stream of decoded inclination samples.
// It owns one engine handle; it is not safe for concurrent use.
type InclinationStream struct {
	stream[Inclination]
}

func newPointStream(eng engine.Engine, h engine.Handle, want int) *PointStream {
	s := &PointStream{stream[Point]{eng: eng, handle: h, want: want}}
	s.fill = func(want int) ([]Point, bool, error) {
		return readPointBatch(eng, h, want)
	}
	s.cleanup = runtime.AddCleanup(s, releaseLeakedHandle, handleReleaser{eng, h})
	return s
}

func newInclinationStream(eng engine.Engine, h engine.Handle, want int) *InclinationStream {
	s := &InclinationStream{stream[Inclination]{eng: eng, handle: h, want: want}}
	s.fill = func(want int) ([]Inclination, bool, error) {
		return readInclinationBatch(eng, h, want)
	}
	s.cleanup = runtime.AddCleanup(s, releaseLeakedHandle, handleReleaser{eng, h})
	return s
}

// readPointBatch issues one bounded engine read and decodes the records it
// produced. Exactly want slots are allocated; unfilled trailing slots are
// never surfaced. A read yielding zero records with no end-of-frame signal is
// the end of the stream; zero records with the signal set is an empty frame
// and more data may follow.
func readPointBatch(eng engine.Engine, h engine.Handle, want int) ([]Point, bool, error) {
	raw := make([]engine.RawPoint, want)
	got, endOfFrame, status := eng.ReadPoints(h, raw)
	if status != 0 {
		return nil, false, engine.StatusError(eng, status)
	}
	if got == 0 && !endOfFrame {
		return nil, true, nil
	}
	recs := make([]Point, got)
	for i, r := range raw[:got] {
		recs[i] = decodePoint(r)
	}
	return recs, false, nil
}

func readInclinationBatch(eng engine.Engine, h engine.Handle, want int) ([]Inclination, bool, error) {
	raw := make([]engine.RawInclination, want)
	got, endOfFrame, status := eng.ReadInclinations(h, raw)
	if status != 0 {
		return nil, false, engine.StatusError(eng, status)
	}
	if got == 0 && !endOfFrame {
		return nil, true, nil
	}
	recs := make([]Inclination, got)
	for i, r := range raw[:got] {
		recs[i] = decodeInclination(r)
	}
	return recs, false, nil
}
