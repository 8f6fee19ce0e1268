package rxp

import (
	"fmt"

	"github.com/banshee-data/rxpstream/internal/engine"
)

// EchoType classifies which return of a laser pulse produced a point.
type EchoType uint8

const (
	// EchoSingle is the only echo from its pulse.
	EchoSingle EchoType = iota
	// EchoFirst is the first of multiple echos from a pulse.
	EchoFirst
	// EchoInterior is the second through n-1 echo from a pulse.
	EchoInterior
	// EchoLast is the last of multiple echos from a pulse.
	EchoLast
)

func (e EchoType) String() string {
	switch e {
	case EchoSingle:
		return "single"
	case EchoFirst:
		return "first"
	case EchoInterior:
		return "interior"
	case EchoLast:
		return "last"
	}
	return fmt.Sprintf("EchoType(%d)", uint8(e))
}

// Attribute word bit layout. Bits 2 and 10-15 are reserved by the engine.
const (
	echoTypeMask           = 0x0003
	flagWaveformAvailable  = 1 << 3
	flagPseudoEcho         = 1 << 4
	flagSWCalculatedTarget = 1 << 5
	flagPPSFresh           = 1 << 6
	flagTimeInPPSFrame     = 1 << 7
	facetShift             = 8
	facetMask              = 0x3
)

// pointTickSeconds converts the engine's integer timestamp ticks to seconds.
// The engine stamps points in nanoseconds.
const pointTickSeconds = 1e-9

// Point is one decoded point return.
type Point struct {
	// X, Y and Z are the point coordinates in meters.
	X, Y, Z float32

	// Amplitude is the relative amplitude in dB.
	Amplitude float32

	// Reflectance is the relative reflectance in dB.
	Reflectance float32

	// Deviation is a measure of pulse shape distortion.
	Deviation uint16

	// EchoType classifies the return that produced this point.
	EchoType EchoType

	// WaveformAvailable reports whether a waveform was recorded for this
	// point.
	WaveformAvailable bool

	// PseudoEcho reports a pseudo echo with a fixed 0.1 m range.
	PseudoEcho bool

	// SWCalculatedTarget reports a software-calculated target.
	SWCalculatedTarget bool

	// PPSFresh reports that the PPS signal was less than 1.5 s old.
	PPSFresh bool

	// TimeInPPSFrame reports that Time lies within the PPS timeframe.
	TimeInPPSFrame bool

	// Facet is the scanner facet (rotation sector) number, 0-3.
	Facet uint8

	// Time is the acquisition time in seconds.
	Time float64
}

// Inclination is one decoded inclination sensor sample.
type Inclination struct {
	// Time is the acquisition time in seconds.
	Time float64

	// Roll is the rotation around the x-axis in degrees.
	Roll float64

	// Pitch is the rotation around the y-axis in degrees.
	Pitch float64
}

// decodePoint unpacks one raw engine record into a Point. Decoding is total:
// every flag word maps to a valid Point.
func decodePoint(r engine.RawPoint) Point {
	return Point{
		X:                  r.X,
		Y:                  r.Y,
		Z:                  r.Z,
		Amplitude:          r.Amplitude,
		Reflectance:        r.Reflectance,
		Deviation:          r.Deviation,
		EchoType:           EchoType(r.Flags & echoTypeMask),
		WaveformAvailable:  r.Flags&flagWaveformAvailable != 0,
		PseudoEcho:         r.Flags&flagPseudoEcho != 0,
		SWCalculatedTarget: r.Flags&flagSWCalculatedTarget != 0,
		PPSFresh:           r.Flags&flagPPSFresh != 0,
		TimeInPPSFrame:     r.Flags&flagTimeInPPSFrame != 0,
		Facet:              uint8(r.Flags>>facetShift) & facetMask,
		Time:               float64(r.Time) * pointTickSeconds,
	}
}

// decodeInclination converts one raw inclination sample. The engine already
// reports inclination time in seconds.
func decodeInclination(r engine.RawInclination) Inclination {
	return Inclination{
		Time:  r.Time,
		Roll:  float64(r.Roll),
		Pitch: float64(r.Pitch),
	}
}
