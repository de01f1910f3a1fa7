// internal/metrics/metrics.go

package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"space/internal/events"
)

// Metrics 服务指标，使用独立的 registry
type Metrics struct {
	registry *prometheus.Registry

	PowerToggles      *prometheus.CounterVec
	ControlChanges    *prometheus.CounterVec
	PreferenceChanges *prometheus.CounterVec
	BubbleLayouts     *prometheus.CounterVec

	subs []events.Subscription
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		PowerToggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "space_appliance_power_toggles_total",
			Help: "Number of appliance power toggles.",
		}, []string{"variant", "state"}),
		ControlChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "space_appliance_control_changes_total",
			Help: "Number of appliance control changes.",
		}, []string{"variant"}),
		PreferenceChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "space_preference_changes_total",
			Help: "Number of user preference changes.",
		}, []string{"key"}),
		BubbleLayouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "space_bubble_layouts_total",
			Help: "Number of bubble layouts generated.",
		}, []string{"screen", "kind"}),
	}
	m.registry.MustRegister(
		m.PowerToggles,
		m.ControlChanges,
		m.PreferenceChanges,
		m.BubbleLayouts,
		collectors.NewGoCollector(),
	)
	return m
}

// Attach 订阅事件总线
func (m *Metrics) Attach(bus *events.EventBus) {
	m.subs = append(m.subs,
		bus.Subscribe(events.EventPowerToggled, func(e events.Event) {
			if d, ok := e.Data.(events.ApplianceEventData); ok {
				m.PowerToggles.WithLabelValues(d.Variant, powerState(d.IsOn)).Inc()
			}
		}),
		bus.Subscribe(events.EventControlChanged, func(e events.Event) {
			if d, ok := e.Data.(events.ApplianceEventData); ok {
				m.ControlChanges.WithLabelValues(d.Variant).Inc()
			}
		}),
		bus.Subscribe(events.EventTonesChanged, func(e events.Event) {
			m.PreferenceChanges.WithLabelValues("tones").Inc()
		}),
		bus.Subscribe(events.EventFontSizeChanged, func(e events.Event) {
			m.PreferenceChanges.WithLabelValues("font_size").Inc()
		}),
		bus.Subscribe(events.EventLayoutChanged, func(e events.Event) {
			if d, ok := e.Data.(events.LayoutEventData); ok {
				m.BubbleLayouts.WithLabelValues(d.Screen, d.Kind).Inc()
			}
		}),
	)
}

// Detach 取消订阅
func (m *Metrics) Detach(bus *events.EventBus) {
	for _, sub := range m.subs {
		bus.Unsubscribe(sub)
	}
	m.subs = nil
}

// Register 注册额外的 collector
func (m *Metrics) Register(c prometheus.Collector) error {
	return m.registry.Register(c)
}

// Handler prometheus 输出
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func powerState(on bool) string {
	return strconv.FormatBool(on)
}
