package monitor

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"space/internal/appliance"
)

type staticSource struct {
	mu    sync.Mutex
	items []appliance.Item
}

func (s *staticSource) List() []appliance.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]appliance.Item(nil), s.items...)
}

func (s *staticSource) set(items []appliance.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
}

func TestSample(t *testing.T) {
	src := &staticSource{items: appliance.DefaultSeed()}
	m := NewMonitor(src, time.Hour)

	snap := m.Sample()
	assert.Equal(t, 6, snap.Total)
	assert.Equal(t, 4, snap.PoweredOn)
	assert.Equal(t, 1, snap.ByVariant[appliance.VariantTV])
	assert.Equal(t, 1.0, testutil.ToFloat64(m.poweredOn.WithLabelValues("air-conditioner")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.poweredOn.WithLabelValues("tv")))
	assert.Equal(t, snap, m.Latest())
}

func TestPeriodicSampling(t *testing.T) {
	src := &staticSource{items: appliance.DefaultSeed()}
	m := NewMonitor(src, 10*time.Millisecond)
	m.Start()
	defer m.Stop()

	items := appliance.DefaultSeed()
	for i := range items {
		items[i].IsOn = false
	}
	src.set(items)

	require.Eventually(t, func() bool {
		return m.Latest().PoweredOn == 0
	}, time.Second, 5*time.Millisecond)

	m.Stop()
	m.Stop()
}

func TestStopWithoutStart(t *testing.T) {
	m := NewMonitor(&staticSource{}, time.Hour)
	m.Stop()
}
