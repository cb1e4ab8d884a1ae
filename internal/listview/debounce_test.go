package listview

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	values []string
}

func (r *recorder) record(v string) func() {
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.values = append(r.values, v)
	}
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.values...)
}

func TestDebouncer_CoalescesBurst(t *testing.T) {
	d := NewDebouncer(40 * time.Millisecond)
	rec := &recorder{}

	for _, v := range []string{"w", "wi", "wid", "widg", "widge", "widget"} {
		d.Trigger(rec.record(v))
		time.Sleep(5 * time.Millisecond)
	}
	assert.True(t, d.Pending())

	require.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(80 * time.Millisecond)

	assert.Equal(t, []string{"widget"}, rec.snapshot())
	assert.False(t, d.Pending())
}

func TestDebouncer_SpacedTriggersEachFire(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	rec := &recorder{}

	d.Trigger(rec.record("a"))
	require.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, time.Second, 2*time.Millisecond)

	d.Trigger(rec.record("b"))
	require.Eventually(t, func() bool { return len(rec.snapshot()) == 2 }, time.Second, 2*time.Millisecond)

	assert.Equal(t, []string{"a", "b"}, rec.snapshot())
}

func TestDebouncer_Stop(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	rec := &recorder{}

	d.Trigger(rec.record("never"))
	d.Stop()
	assert.False(t, d.Pending())

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, rec.snapshot())
}

func TestDebouncer_ConcurrentTriggers(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	rec := &recorder{}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Trigger(rec.record("x"))
		}()
	}
	wg.Wait()

	require.Eventually(t, func() bool { return len(rec.snapshot()) >= 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Len(t, rec.snapshot(), 1)
}
