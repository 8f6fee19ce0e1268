package engine

import (
	"errors"
	"testing"
)

func TestMockEngineFramePlayback(t *testing.T) {
	m := NewMockEngine()
	m.PointFrames = []PointFrame{
		{Points: []RawPoint{{X: 1}, {X: 2}, {X: 3}}},
		{Points: []RawPoint{{X: 4}}},
	}

	h, status := m.Open("file:data/scan.rxp", true, "")
	if status != 0 {
		t.Fatalf("Open status = %d", status)
	}

	buf := make([]RawPoint, 2)
	got, eof, status := m.ReadPoints(h, buf)
	if status != 0 || got != 2 || eof {
		t.Fatalf("first read = (%d, %v, %d), want (2, false, 0)", got, eof, status)
	}
	got, eof, status = m.ReadPoints(h, buf)
	if status != 0 || got != 1 || !eof {
		t.Fatalf("second read = (%d, %v, %d), want (1, true, 0)", got, eof, status)
	}
	if buf[0].X != 3 {
		t.Errorf("second read record = %v, want X=3", buf[0])
	}
	got, eof, status = m.ReadPoints(h, buf)
	if status != 0 || got != 1 || !eof {
		t.Fatalf("third read = (%d, %v, %d), want (1, true, 0)", got, eof, status)
	}
	got, eof, status = m.ReadPoints(h, buf)
	if status != 0 || got != 0 || eof {
		t.Fatalf("exhausted read = (%d, %v, %d), want (0, false, 0)", got, eof, status)
	}
	if m.ReadPointCalls != 4 {
		t.Errorf("ReadPointCalls = %d, want 4", m.ReadPointCalls)
	}
}

func TestMockEngineIndependentHandles(t *testing.T) {
	m := NewMockEngine()
	m.PointFrames = []PointFrame{{Points: []RawPoint{{X: 1}, {X: 2}}}}

	h1, _ := m.Open("file:a.rxp", true, "")
	h2, _ := m.Open("file:a.rxp", true, "")

	buf := make([]RawPoint, 2)
	if got, _, _ := m.ReadPoints(h1, buf); got != 2 {
		t.Fatalf("h1 read got = %d, want 2", got)
	}
	// h2 playback is unaffected by h1's consumption.
	if got, _, _ := m.ReadPoints(h2, buf); got != 2 {
		t.Fatalf("h2 read got = %d, want 2", got)
	}
	m.Close(h1)
	m.Close(h2)
	if m.OpenStreams() != 0 {
		t.Errorf("OpenStreams = %d after closing both", m.OpenStreams())
	}
}

func TestMockEngineDoubleClosePanics(t *testing.T) {
	m := NewMockEngine()
	h, _ := m.Open("file:a.rxp", true, "")
	m.Close(h)

	defer func() {
		if recover() == nil {
			t.Error("closing a handle twice should panic")
		}
	}()
	m.Close(h)
}

func TestMockEngineReadAfterClosePanics(t *testing.T) {
	m := NewMockEngine()
	h, _ := m.Open("file:a.rxp", true, "")
	m.Close(h)

	defer func() {
		if recover() == nil {
			t.Error("reading a closed handle should panic")
		}
	}()
	m.ReadPoints(h, make([]RawPoint, 1))
}

func TestStatusError(t *testing.T) {
	m := NewMockEngine()
	m.LastErrorText = "device busy"
	err := StatusError(m, 12)
	if err.Code != 12 || err.Message != "device busy" {
		t.Errorf("StatusError = %+v", err)
	}
	if err.Error() != "engine error code 12: device busy" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestStatusErrorLastErrorFails(t *testing.T) {
	m := NewMockEngine()
	m.LastErrorErr = errors.New("message buffer truncated")
	err := StatusError(m, 12)
	if err.Code != 12 {
		t.Errorf("Code = %d, want 12", err.Code)
	}
	if err.Message == "" {
		t.Error("Message should describe the failed last-error query")
	}
}

func TestDefaultWithoutNativeEngine(t *testing.T) {
	if _, err := Default(); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Default() error = %v, want ErrUnavailable", err)
	}
}
