package rxp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/rxpstream/internal/engine"
)

func TestReaderDefaults(t *testing.T) {
	eng := engine.NewMockEngine()
	stream, err := FromPath("data/scan.rxp").WithEngine(eng).Points()
	require.NoError(t, err)
	defer stream.Close()

	require.Len(t, eng.OpenURIs, 1)
	assert.Equal(t, "file:data/scan.rxp", eng.OpenURIs[0])
	assert.True(t, eng.OpenSync[0], "sync-to-PPS should default to true")
	assert.Equal(t, "", eng.OpenLogPaths[0])
}

func TestReaderFluentSettersDoNotMutate(t *testing.T) {
	base := FromPath("data/scan.rxp")
	derived := base.SyncToPPS(false).BatchSize(16).LogPath("engine.log")

	eng := engine.NewMockEngine()
	stream, err := base.WithEngine(eng).Points()
	require.NoError(t, err)
	defer stream.Close()
	assert.True(t, eng.OpenSync[0], "deriving a reader must not mutate the base")
	assert.Equal(t, "", eng.OpenLogPaths[0])

	eng2 := engine.NewMockEngine()
	stream2, err := derived.WithEngine(eng2).Points()
	require.NoError(t, err)
	defer stream2.Close()
	assert.False(t, eng2.OpenSync[0])
	assert.Equal(t, "engine.log", eng2.OpenLogPaths[0])
}

func TestReaderNetworkOpen(t *testing.T) {
	eng := engine.NewMockEngine()
	stream, err := FromNetwork("192.168.0.125").WithEngine(eng).Points()
	require.NoError(t, err)
	defer stream.Close()
	assert.Equal(t, "rdtp://192.168.0.125", eng.OpenURIs[0])
}

func TestReaderInvalidLocator(t *testing.T) {
	eng := engine.NewMockEngine()
	_, err := FromPath("data/scan\x00.rxp").WithEngine(eng).Points()
	require.ErrorIs(t, err, ErrInvalidLocator)
	assert.Zero(t, eng.OpenCalls, "configuration failures must precede any engine call")
}

func TestReaderInvalidBatchSize(t *testing.T) {
	eng := engine.NewMockEngine()
	for _, n := range []int{0, -1} {
		_, err := FromPath("data/scan.rxp").BatchSize(n).WithEngine(eng).Points()
		require.ErrorIs(t, err, ErrInvalidBatchSize)
	}
	assert.Zero(t, eng.OpenCalls)
}

func TestReaderOpenFailure(t *testing.T) {
	eng := engine.NewMockEngine()
	eng.OpenStatus = 5
	eng.LastErrorText = "cannot open file"

	_, err := FromPath("data/nonexistent.rxp").WithEngine(eng).Points()
	require.Error(t, err)

	var engErr *engine.Error
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, int32(5), engErr.Code)
	assert.Equal(t, "cannot open file", engErr.Message)
	assert.Equal(t, 1, eng.LastErrorCalls)
	assert.Zero(t, eng.CloseCalls, "a failed open must not leak a handle to close")
	assert.Zero(t, eng.OpenStreams())
}

func TestReaderOpenFailureLastErrorUnavailable(t *testing.T) {
	eng := engine.NewMockEngine()
	eng.OpenStatus = 5
	eng.LastErrorErr = errors.New("buffer too small")

	_, err := FromPath("data/nonexistent.rxp").WithEngine(eng).Points()
	var engErr *engine.Error
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, int32(5), engErr.Code)
	assert.Contains(t, engErr.Message, "last error unavailable")
	assert.Contains(t, engErr.Message, "buffer too small")
}

func TestReaderWithoutEngine(t *testing.T) {
	_, err := FromPath("data/scan.rxp").Points()
	require.ErrorIs(t, err, engine.ErrUnavailable)
}

func TestReaderInclinationsOpen(t *testing.T) {
	eng := engine.NewMockEngine()
	stream, err := FromPath("data/scan.rxp").SyncToPPS(false).WithEngine(eng).Inclinations()
	require.NoError(t, err)
	defer stream.Close()

	require.Len(t, eng.OpenURIs, 1)
	assert.Equal(t, "file:data/scan.rxp", eng.OpenURIs[0])
	assert.False(t, eng.OpenSync[0])
}
