package appstate

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"space/internal/appliance"
	"space/internal/bubble"
	"space/internal/events"
)

type memoryApplianceStore struct {
	mu      sync.Mutex
	items   map[string]appliance.Item
	order   map[string]int
	failing bool
}

func newMemoryApplianceStore() *memoryApplianceStore {
	return &memoryApplianceStore{items: map[string]appliance.Item{}, order: map[string]int{}}
}

func (s *memoryApplianceStore) List() ([]appliance.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]appliance.Item, len(s.items))
	for id, it := range s.items {
		out[s.order[id]] = it.Clone()
	}
	return out, nil
}

func (s *memoryApplianceStore) Save(it appliance.Item, position int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return errors.New("disk full")
	}
	s.items[it.ID] = it.Clone()
	s.order[it.ID] = position
	return nil
}

func (s *memoryApplianceStore) SaveAll(items []appliance.Item) error {
	for i, it := range items {
		if err := s.Save(it, i); err != nil {
			return err
		}
	}
	return nil
}

type memoryPreferenceStore struct {
	mu     sync.Mutex
	values map[string]string
}

func (s *memoryPreferenceStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *memoryPreferenceStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func loadedBoard(t *testing.T) (*Board, *memoryApplianceStore) {
	t.Helper()
	store := newMemoryApplianceStore()
	b := NewBoard(store, events.NewEventBus())
	require.NoError(t, b.Load())
	return b, store
}

func TestBoardLoadSeeds(t *testing.T) {
	b, store := loadedBoard(t)
	items := b.List()
	require.Len(t, items, 6)
	assert.Len(t, store.items, 6)
	for i, v := range appliance.Variants() {
		assert.Equal(t, v, items[i].Variant)
	}

	// 第二次加载不再写入默认列表
	again := NewBoard(store, nil)
	require.NoError(t, again.Load())
	assert.Equal(t, items, again.List())
}

func TestBoardTogglePowerRoundTrip(t *testing.T) {
	b, store := loadedBoard(t)
	ac := b.List()[0]
	require.Equal(t, appliance.VariantAirConditioner, ac.Variant)

	off, err := b.TogglePower(ac.ID)
	require.NoError(t, err)
	assert.Equal(t, appliance.PowerOffSummary, b.Cards()[0].Summary)
	assert.False(t, store.items[ac.ID].IsOn)
	assert.False(t, off.IsOn)

	_, err = b.TogglePower(ac.ID)
	require.NoError(t, err)
	card := b.Cards()[0]
	assert.Equal(t, "냉방 · 23°C", card.Summary)
	assert.Equal(t, "냉방", card.Mode)
}

func TestBoardControls(t *testing.T) {
	b, _ := loadedBoard(t)
	light := b.List()[1]

	mode := "휴식"
	updated, err := b.ApplyControls(light.ID, Controls{
		Mode:           &mode,
		PrimaryValue:   appliance.Float(40.6),
		SecondaryValue: appliance.Float(2700),
	})
	require.NoError(t, err)
	assert.Equal(t, "휴식 · 밝기 40%", updated.Summary())
	assert.Equal(t, "색온도 2700K", updated.Status)

	purifier := b.List()[2]
	before := purifier.Status
	_, err = b.ApplyControls(purifier.ID, Controls{PrimaryValue: appliance.Float(4)})
	require.NoError(t, err)
	got, err := b.Get(purifier.ID)
	require.NoError(t, err)
	assert.Equal(t, before, got.Status)

	// 顺序不变
	ids := []string{}
	for _, it := range b.List() {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, light.ID, ids[1])
	assert.Equal(t, purifier.ID, ids[2])
}

func TestBoardCopiesAreIndependent(t *testing.T) {
	b, _ := loadedBoard(t)
	it := b.List()[0]
	*it.SecondaryValue = 99
	it.IsOn = false

	fresh, err := b.Get(it.ID)
	require.NoError(t, err)
	assert.True(t, fresh.IsOn)
	assert.Equal(t, 2.0, *fresh.SecondaryValue)
}

func TestBoardErrors(t *testing.T) {
	b, store := loadedBoard(t)

	_, err := b.TogglePower("missing")
	assert.ErrorIs(t, err, ErrApplianceNotFound)
	_, err = b.Get("missing")
	assert.ErrorIs(t, err, ErrApplianceNotFound)

	store.failing = true
	tv := b.List()[5]
	_, err = b.TogglePower(tv.ID)
	assert.Error(t, err)

	// 内存中的修改保留
	got, err := b.Get(tv.ID)
	require.NoError(t, err)
	assert.Equal(t, !tv.IsOn, got.IsOn)
}

func TestBoardPublishesEvents(t *testing.T) {
	bus := events.NewEventBus()
	received := make(chan events.ApplianceEventData, 1)
	bus.Subscribe(events.EventPowerToggled, func(e events.Event) {
		received <- e.Data.(events.ApplianceEventData)
	})

	b := NewBoard(newMemoryApplianceStore(), bus)
	require.NoError(t, b.Load())
	ac := b.List()[0]
	_, err := b.TogglePower(ac.ID)
	require.NoError(t, err)

	data := <-received
	assert.Equal(t, ac.ID, data.ApplianceID)
	assert.False(t, data.IsOn)
	assert.Equal(t, appliance.PowerOffSummary, data.Summary)
}

func TestPreferences(t *testing.T) {
	store := &memoryPreferenceStore{values: map[string]string{}}

	t.Run("Defaults", func(t *testing.T) {
		p := NewPreferences(store, nil)
		require.NoError(t, p.Load())
		assert.Empty(t, p.Tones())
		assert.Equal(t, FontMedium, p.FontSize())
	})

	t.Run("Tones", func(t *testing.T) {
		p := NewPreferences(store, nil)
		require.NoError(t, p.Load())

		tones, err := p.SetTones([]string{"다정한", " 유쾌한 ", "다정한", ""})
		require.NoError(t, err)
		assert.Equal(t, []string{"다정한", "유쾌한"}, tones)

		tones, err = p.ToggleTone("차분한")
		require.NoError(t, err)
		assert.Equal(t, []string{"다정한", "유쾌한", "차분한"}, tones)

		tones, err = p.ToggleTone("다정한")
		require.NoError(t, err)
		assert.Equal(t, []string{"유쾌한", "차분한"}, tones)

		_, err = p.ToggleTone("  ")
		assert.ErrorIs(t, err, ErrEmptyTone)

		reloaded := NewPreferences(store, nil)
		require.NoError(t, reloaded.Load())
		assert.Equal(t, []string{"유쾌한", "차분한"}, reloaded.Tones())
	})

	t.Run("Font Size", func(t *testing.T) {
		p := NewPreferences(store, nil)
		require.NoError(t, p.Load())

		require.NoError(t, p.SetFontSize(FontLarge))
		assert.ErrorIs(t, p.SetFontSize("huge"), ErrInvalidFontSize)
		assert.Equal(t, FontLarge, p.FontSize())

		reloaded := NewPreferences(store, nil)
		require.NoError(t, reloaded.Load())
		assert.Equal(t, FontLarge, reloaded.FontSize())
	})

	t.Run("Malformed Stored Values", func(t *testing.T) {
		bad := &memoryPreferenceStore{values: map[string]string{
			keySelectedTones: "not json",
			keyFontSize:      "tiny",
		}}
		p := NewPreferences(bad, nil)
		require.NoError(t, p.Load())
		assert.Empty(t, p.Tones())
		assert.Equal(t, FontMedium, p.FontSize())
	})
}

func layoutLabels(s *bubble.Synchronizer) []string {
	labels := []string{}
	for _, b := range s.Layout() {
		labels = append(labels, b.Label)
	}
	return labels
}

func TestTonesListenerKeepsLayoutInOrder(t *testing.T) {
	bus := events.NewEventBus()
	store := &memoryPreferenceStore{values: map[string]string{}}
	p := NewPreferences(store, bus)

	tonesLayout := bubble.NewSynchronizer("tone", bubble.ToneMargins, bubble.NewLockedSource(1), bubble.WithDelay(time.Hour))
	defer tonesLayout.Close()
	tonesLayout.SetCanvas(bubble.Size{Width: 390, Height: 500})
	p.OnTonesChanged(tonesLayout.SetLabels)
	require.NoError(t, p.Load())

	for round := 0; round < 50; round++ {
		for _, tone := range []string{"a", "b", "c", "d", "e"} {
			_, err := p.ToggleTone(tone)
			require.NoError(t, err)
		}
		bus.Wait()
		assert.ElementsMatch(t, p.Tones(), layoutLabels(tonesLayout), "round %d", round)
	}

	_, err := p.SetTones([]string{"x", "y"})
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, layoutLabels(tonesLayout))
}

func TestTonesListenerOnLoad(t *testing.T) {
	store := &memoryPreferenceStore{values: map[string]string{keySelectedTones: `["다정한","유쾌한"]`}}
	p := NewPreferences(store, nil)

	var got []string
	p.OnTonesChanged(func(tones []string) { got = tones })
	require.NoError(t, p.Load())
	assert.Equal(t, []string{"다정한", "유쾌한"}, got)
}
