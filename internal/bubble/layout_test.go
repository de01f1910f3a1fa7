package bubble

import (
	"math/rand"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func TestInitializeLayout(t *testing.T) {
	t.Run("Empty Labels", func(t *testing.T) {
		out := InitializeLayout(nil, Size{Width: 300, Height: 400}, ToneMargins, newRand(1))
		assert.Empty(t, out)
	})

	t.Run("Within Bounds", func(t *testing.T) {
		canvas := Size{Width: 390, Height: 500}
		labels := []string{"다정한", "유쾌한", "차분한", "단호한"}
		out := InitializeLayout(labels, canvas, ToneMargins, newRand(2))
		require.Len(t, out, len(labels))

		xb := AxisBounds(canvas.Width, ToneMargins.Horizontal)
		yb := AxisBounds(canvas.Height, ToneMargins.Vertical)
		for i, s := range out {
			assert.Equal(t, labels[i], s.Label)
			assert.NotEmpty(t, s.ID)
			assert.True(t, xb.Contains(s.Position.X), "x=%v", s.Position.X)
			assert.True(t, yb.Contains(s.Position.Y), "y=%v", s.Position.Y)
			assert.GreaterOrEqual(t, s.Duration, MinDuration)
			assert.LessOrEqual(t, s.Duration, MaxDuration)
		}
	})

	t.Run("Small Canvas", func(t *testing.T) {
		canvas := Size{Width: 50, Height: 20}
		out := InitializeLayout([]string{"a", "b", "c"}, canvas, PersonaMargins, newRand(3))
		require.Len(t, out, 3)
		for _, s := range out {
			assert.GreaterOrEqual(t, s.Position.X, PersonaMargins.Horizontal)
			assert.LessOrEqual(t, s.Position.X, PersonaMargins.Horizontal+MinExtent)
			assert.GreaterOrEqual(t, s.Position.Y, PersonaMargins.Vertical)
			assert.LessOrEqual(t, s.Position.Y, PersonaMargins.Vertical+MinExtent)
		}
	})

	t.Run("Duplicate Labels", func(t *testing.T) {
		out := InitializeLayout([]string{"a", "a", "b"}, Size{Width: 300, Height: 300}, ToneMargins, newRand(4))
		assert.Len(t, out, 2)
	})

	t.Run("Deterministic With Seed", func(t *testing.T) {
		canvas := Size{Width: 300, Height: 300}
		a := InitializeLayout([]string{"x", "y"}, canvas, ToneMargins, newRand(42))
		b := InitializeLayout([]string{"x", "y"}, canvas, ToneMargins, newRand(42))
		assert.Equal(t, a, b)
	})
}

func TestAxisBounds(t *testing.T) {
	assert.Equal(t, Bounds{Lo: 60, Hi: 330}, AxisBounds(390, 60))
	assert.Equal(t, Bounds{Lo: 40, Hi: 50}, AxisBounds(0, 40))
	assert.Equal(t, Bounds{Lo: 40, Hi: 50}, AxisBounds(85, 40))
}

func TestReshuffle(t *testing.T) {
	canvas := Size{Width: 390, Height: 600}
	rng := newRand(7)
	initial := InitializeLayout([]string{"a", "b", "c", "d"}, canvas, ToneMargins, rng)
	out := Reshuffle(initial, canvas, ToneMargins, rng)

	require.Len(t, out, len(initial))
	moved := 0
	for i := range out {
		assert.Equal(t, initial[i].ID, out[i].ID)
		assert.Equal(t, initial[i].Label, out[i].Label)
		assert.Equal(t, initial[i].Duration, out[i].Duration)
		if out[i].Position != initial[i].Position {
			moved++
		}
	}
	assert.Positive(t, moved)
	assert.Empty(t, Reshuffle(nil, canvas, ToneMargins, rng))
}

func TestSynchronizer(t *testing.T) {
	t.Run("Waits For Canvas", func(t *testing.T) {
		s := NewSynchronizer("tone", ToneMargins, newRand(1), WithDelay(time.Hour))
		defer s.Close()

		s.SetLabels([]string{"a", "b"})
		assert.Empty(t, s.Layout())

		s.SetCanvas(Size{Width: 300, Height: 300})
		assert.Len(t, s.Layout(), 2)
	})

	t.Run("Deferred Reshuffle", func(t *testing.T) {
		var reshuffles int32
		s := NewSynchronizer("tone", ToneMargins, newRand(2),
			WithDelay(10*time.Millisecond),
			WithObserver(func(_, kind string) {
				if kind == KindReshuffle {
					atomic.AddInt32(&reshuffles, 1)
				}
			}))
		defer s.Close()

		s.SetCanvas(Size{Width: 300, Height: 300})
		s.SetLabels([]string{"a", "b", "c"})
		initial := s.Layout()

		require.Eventually(t, func() bool {
			return atomic.LoadInt32(&reshuffles) == 1
		}, time.Second, 5*time.Millisecond)

		after := s.Layout()
		require.Len(t, after, len(initial))
		for i := range after {
			assert.Equal(t, initial[i].ID, after[i].ID)
			assert.Equal(t, initial[i].Duration, after[i].Duration)
		}
	})

	t.Run("Label Change Replaces Entries", func(t *testing.T) {
		s := NewSynchronizer("persona", PersonaMargins, newRand(3), WithDelay(time.Hour))
		defer s.Close()

		s.SetCanvas(Size{Width: 300, Height: 300})
		s.SetLabels([]string{"a", "b"})
		first := s.Layout()

		s.SetLabels([]string{"b", "a"})
		assert.Equal(t, first, s.Layout())

		s.SetLabels([]string{"a", "b", "c"})
		second := s.Layout()
		require.Len(t, second, 3)
		for _, old := range first {
			for _, cur := range second {
				assert.NotEqual(t, old.ID, cur.ID)
			}
		}
	})

	t.Run("Canvas Change After First Pass", func(t *testing.T) {
		s := NewSynchronizer("tone", ToneMargins, newRand(4), WithDelay(time.Hour))
		defer s.Close()

		s.SetLabels([]string{"a"})
		s.SetCanvas(Size{Width: 300, Height: 300})
		first := s.Layout()
		s.SetCanvas(Size{Width: 500, Height: 500})
		assert.Equal(t, first, s.Layout())
		assert.Equal(t, Size{Width: 500, Height: 500}, s.Canvas())
	})

	t.Run("Superseded Reshuffle Discarded", func(t *testing.T) {
		var reshuffles int32
		s := NewSynchronizer("tone", ToneMargins, newRand(5),
			WithDelay(20*time.Millisecond),
			WithObserver(func(_, kind string) {
				if kind == KindReshuffle {
					atomic.AddInt32(&reshuffles, 1)
				}
			}))

		s.SetCanvas(Size{Width: 300, Height: 300})
		s.SetLabels([]string{"a"})
		s.Close()
		layout := s.Layout()

		time.Sleep(60 * time.Millisecond)
		assert.Equal(t, int32(0), atomic.LoadInt32(&reshuffles))
		assert.Equal(t, layout, s.Layout())
	})
}
