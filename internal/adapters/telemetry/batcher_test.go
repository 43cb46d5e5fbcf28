package telemetry_test

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/qworld/internal/adapters/telemetry"
)

type flushRecorder struct {
	mu     sync.Mutex
	chunks []string
}

func (r *flushRecorder) onFlush(data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chunks = append(r.chunks, string(data))
}

func (r *flushRecorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.chunks...)
}

func TestBatchProcessor_FlushesAfterTimeLimit(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &flushRecorder{}
		bp := telemetry.NewBatchProcessor(0, 0, rec.onFlush)

		_, err := bp.Write([]byte("This is LuaHBTeX\n"))
		require.NoError(t, err)
		_, err = bp.Write([]byte("Output written on a.pdf\n"))
		require.NoError(t, err)

		synctest.Wait()
		assert.Empty(t, rec.snapshot())

		time.Sleep(telemetry.DefaultTimeLimit)
		synctest.Wait()
		assert.Equal(t, []string{"This is LuaHBTeX\nOutput written on a.pdf\n"}, rec.snapshot())

		require.NoError(t, bp.Close())
	})
}

func TestBatchProcessor_FlushesAtSizeLimit(t *testing.T) {
	rec := &flushRecorder{}
	bp := telemetry.NewBatchProcessor(8, time.Hour, rec.onFlush)

	_, err := bp.Write([]byte("1234"))
	require.NoError(t, err)
	assert.Empty(t, rec.snapshot())

	_, err = bp.Write([]byte("56789"))
	require.NoError(t, err)
	assert.Equal(t, []string{"123456789"}, rec.snapshot())

	require.NoError(t, bp.Close())
}

func TestBatchProcessor_CloseFlushesAndRejectsWrites(t *testing.T) {
	rec := &flushRecorder{}
	bp := telemetry.NewBatchProcessor(0, time.Hour, rec.onFlush)

	_, err := bp.Write([]byte("tail"))
	require.NoError(t, err)

	require.NoError(t, bp.Close())
	assert.Equal(t, []string{"tail"}, rec.snapshot())

	_, err = bp.Write([]byte("late"))
	require.ErrorIs(t, err, telemetry.ErrBatcherClosed)

	require.NoError(t, bp.Close(), "second close is a no-op")
	bp.Flush()
	assert.Len(t, rec.snapshot(), 1)
}

func TestBatchProcessor_IdleHasNoTimer(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &flushRecorder{}
		bp := telemetry.NewBatchProcessor(0, 0, rec.onFlush)

		time.Sleep(time.Second)
		synctest.Wait()
		assert.Empty(t, rec.snapshot())

		_, err := bp.Write([]byte("a"))
		require.NoError(t, err)
		bp.Flush()
		_, err = bp.Write([]byte("b"))
		require.NoError(t, err)

		time.Sleep(telemetry.DefaultTimeLimit)
		synctest.Wait()
		assert.Equal(t, []string{"a", "b"}, rec.snapshot())
		require.NoError(t, bp.Close())
	})
}
