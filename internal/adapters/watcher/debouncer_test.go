package watcher_test

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/qworld/internal/adapters/watcher"
)

// batches records every batch handed to the debouncer callback.
type batches struct {
	mu  sync.Mutex
	got [][]string
}

func (b *batches) record(paths []string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.got = append(b.got, paths)
}

func (b *batches) snapshot() [][]string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([][]string(nil), b.got...)
}

func TestDebouncer_SinglePath(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var b batches
		d := watcher.NewDebouncer(watcher.DefaultDebounceWindow, b.record)

		d.Add("/site/docs/intro.md")

		time.Sleep(watcher.DefaultDebounceWindow + time.Millisecond)
		synctest.Wait()

		assert.Equal(t, [][]string{{"/site/docs/intro.md"}}, b.snapshot())
	})
}

func TestDebouncer_CoalescesSortedAndDeduplicated(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var b batches
		d := watcher.NewDebouncer(100*time.Millisecond, b.record)

		d.Add("/site/docs/c.md")
		d.Add("/site/docs/a.md")
		d.Add("/site/docs/c.md")
		d.Add("/site/docs/b.md")

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		assert.Equal(t, [][]string{{"/site/docs/a.md", "/site/docs/b.md", "/site/docs/c.md"}}, b.snapshot())
	})
}

func TestDebouncer_AddRestartsWindow(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var b batches
		d := watcher.NewDebouncer(100*time.Millisecond, b.record)

		d.Add("/site/docs/a.md")
		time.Sleep(60 * time.Millisecond)
		d.Add("/site/docs/b.md")
		time.Sleep(60 * time.Millisecond)
		synctest.Wait()

		assert.Empty(t, b.snapshot(), "window restarted by the second add")

		time.Sleep(50 * time.Millisecond)
		synctest.Wait()

		assert.Equal(t, [][]string{{"/site/docs/a.md", "/site/docs/b.md"}}, b.snapshot())
	})
}

func TestDebouncer_SeparateBursts(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var b batches
		d := watcher.NewDebouncer(50*time.Millisecond, b.record)

		d.Add("/site/docs/a.md")
		time.Sleep(80 * time.Millisecond)
		d.Add("/site/docs/b.md")
		time.Sleep(80 * time.Millisecond)
		synctest.Wait()

		assert.Equal(t, [][]string{{"/site/docs/a.md"}, {"/site/docs/b.md"}}, b.snapshot())
	})
}

func TestDebouncer_Flush(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var b batches
		d := watcher.NewDebouncer(100*time.Millisecond, b.record)

		d.Add("/site/docs/b.md")
		d.Add("/site/docs/a.md")
		d.Flush()

		require.Equal(t, [][]string{{"/site/docs/a.md", "/site/docs/b.md"}}, b.snapshot())

		// The stopped timer must not deliver the batch a second time.
		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		assert.Len(t, b.snapshot(), 1)
	})
}

func TestDebouncer_FlushEmpty(t *testing.T) {
	var b batches
	d := watcher.NewDebouncer(100*time.Millisecond, b.record)

	d.Flush()

	assert.Empty(t, b.snapshot())
}

func TestDebouncer_FlushAfterFire(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var b batches
		d := watcher.NewDebouncer(50*time.Millisecond, b.record)

		d.Add("/site/docs/a.md")
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()
		require.Len(t, b.snapshot(), 1)

		d.Flush()

		assert.Len(t, b.snapshot(), 1)
	})
}

func TestDebouncer_Stop(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var b batches
		d := watcher.NewDebouncer(50*time.Millisecond, b.record)

		d.Add("/site/docs/a.md")
		d.Stop()

		time.Sleep(100 * time.Millisecond)
		synctest.Wait()
		d.Flush()

		assert.Empty(t, b.snapshot())
	})
}

func TestDebouncer_NilCallback(t *testing.T) {
	synctest.Test(t, func(_ *testing.T) {
		d := watcher.NewDebouncer(50*time.Millisecond, nil)

		d.Add("/site/docs/a.md")
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()

		d.Add("/site/docs/b.md")
		d.Flush()
	})
}
