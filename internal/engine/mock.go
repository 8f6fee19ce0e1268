package engine

import (
	"sync"
)

// PointFrame is one scripted frame of point records. A frame with no points
// plays back as a zero-record read with the end-of-frame signal set, which is
// the engine's empty-frame heartbeat.
type PointFrame struct {
	Points []RawPoint
}

// InclinationFrame is one scripted frame of inclination samples.
type InclinationFrame struct {
	Inclinations []RawInclination
}

// MockEngine implements Engine with scripted responses for testing.
// It provides fine-grained control over open/read/close failures and records
// call counts so tests can assert on resource discipline.
//
// Each successful Open gets an independent copy of the scripted frames, so
// two streams opened from the same mock play back identically. Reads drain
// the current frame up to the caller's buffer size; the end-of-frame signal
// is raised on the read that consumes the last record of a frame. Once all
// frames are drained, reads report zero records and no end-of-frame signal,
// which the streaming layer treats as end of stream.
type MockEngine struct {
	mu sync.Mutex

	// PointFrames is the playback script for point streams.
	PointFrames []PointFrame

	// InclinationFrames is the playback script for inclination streams.
	InclinationFrames []InclinationFrame

	// OpenStatus, when nonzero, fails the next Open or OpenInclinations
	// call with that status. Cleared after use.
	OpenStatus int32

	// ReadStatus, when nonzero, fails the next read call with that status.
	// Cleared after use so a retry can succeed.
	ReadStatus int32

	// CloseStatus, when nonzero, is returned by the next Close call.
	// Cleared after use.
	CloseStatus int32

	// LastErrorText is returned by LastError.
	LastErrorText string

	// LastErrorErr, when set, makes the LastError query itself fail.
	LastErrorErr error

	// OpenCalls counts Open and OpenInclinations calls, including failed
	// ones.
	OpenCalls int

	// ReadPointCalls counts ReadPoints calls.
	ReadPointCalls int

	// ReadInclinationCalls counts ReadInclinations calls.
	ReadInclinationCalls int

	// CloseCalls counts Close calls.
	CloseCalls int

	// LastErrorCalls counts LastError calls.
	LastErrorCalls int

	// OpenURIs records the URI passed to each successful or failed open.
	OpenURIs []string

	// OpenSync records the syncToPPS flag passed to each open.
	OpenSync []bool

	// OpenLogPaths records the logPath passed to each point-stream open.
	OpenLogPaths []string

	nextHandle Handle
	streams    map[Handle]*mockStream
}

type mockStream struct {
	pointFrames []PointFrame
	inclFrames  []InclinationFrame
	offset      int // records consumed from the head frame
}

// NewMockEngine returns a MockEngine with an empty script.
func NewMockEngine() *MockEngine {
	return &MockEngine{streams: make(map[Handle]*mockStream)}
}

func (m *MockEngine) open(uri string, syncToPPS bool) (Handle, int32, bool) {
	m.OpenCalls++
	m.OpenURIs = append(m.OpenURIs, uri)
	m.OpenSync = append(m.OpenSync, syncToPPS)
	if m.OpenStatus != 0 {
		status := m.OpenStatus
		m.OpenStatus = 0
		return 0, status, false
	}
	m.nextHandle++
	return m.nextHandle, 0, true
}

// Open opens a scripted point stream.
func (m *MockEngine) Open(uri string, syncToPPS bool, logPath string) (Handle, int32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.OpenLogPaths = append(m.OpenLogPaths, logPath)
	h, status, ok := m.open(uri, syncToPPS)
	if !ok {
		return 0, status
	}
	frames := make([]PointFrame, len(m.PointFrames))
	copy(frames, m.PointFrames)
	m.streams[h] = &mockStream{pointFrames: frames}
	return h, 0
}

// OpenInclinations opens a scripted inclination stream.
func (m *MockEngine) OpenInclinations(uri string, syncToPPS bool) (Handle, int32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	h, status, ok := m.open(uri, syncToPPS)
	if !ok {
		return 0, status
	}
	frames := make([]InclinationFrame, len(m.InclinationFrames))
	copy(frames, m.InclinationFrames)
	m.streams[h] = &mockStream{inclFrames: frames}
	return h, 0
}

// ReadPoints plays back the scripted point frames.
func (m *MockEngine) ReadPoints(h Handle, buf []RawPoint) (int, bool, int32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ReadPointCalls++
	s, ok := m.streams[h]
	if !ok {
		panic("engine: read on a handle that is not open")
	}
	if m.ReadStatus != 0 {
		status := m.ReadStatus
		m.ReadStatus = 0
		return 0, false, status
	}
	if len(s.pointFrames) == 0 {
		return 0, false, 0
	}
	frame := s.pointFrames[0]
	n := copy(buf, frame.Points[s.offset:])
	s.offset += n
	endOfFrame := s.offset == len(frame.Points)
	if endOfFrame {
		s.pointFrames = s.pointFrames[1:]
		s.offset = 0
	}
	return n, endOfFrame, 0
}

// ReadInclinations plays back the scripted inclination frames.
func (m *MockEngine) ReadInclinations(h Handle, buf []RawInclination) (int, bool, int32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ReadInclinationCalls++
	s, ok := m.streams[h]
	if !ok {
		panic("engine: read on a handle that is not open")
	}
	if m.ReadStatus != 0 {
		status := m.ReadStatus
		m.ReadStatus = 0
		return 0, false, status
	}
	if len(s.inclFrames) == 0 {
		return 0, false, 0
	}
	frame := s.inclFrames[0]
	n := copy(buf, frame.Inclinations[s.offset:])
	s.offset += n
	endOfFrame := s.offset == len(frame.Inclinations)
	if endOfFrame {
		s.inclFrames = s.inclFrames[1:]
		s.offset = 0
	}
	return n, endOfFrame, 0
}

// Close releases a scripted stream. Closing a handle twice, or closing a
// handle that was never opened, panics: the streaming layer is required to
// make that unreachable.
func (m *MockEngine) Close(h Handle) int32 {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CloseCalls++
	if _, ok := m.streams[h]; !ok {
		panic("engine: close on a handle that is not open")
	}
	delete(m.streams, h)
	if m.CloseStatus != 0 {
		status := m.CloseStatus
		m.CloseStatus = 0
		return status
	}
	return 0
}

// LastError returns the scripted error text, or fails with LastErrorErr.
func (m *MockEngine) LastError() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastErrorCalls++
	if m.LastErrorErr != nil {
		return "", m.LastErrorErr
	}
	return m.LastErrorText, nil
}

// OpenStreams reports how many handles are currently open. Tests use this to
// verify that every open handle was released.
func (m *MockEngine) OpenStreams() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.streams)
}
