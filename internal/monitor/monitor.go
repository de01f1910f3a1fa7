// internal/monitor/monitor.go

package monitor

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"space/internal/appliance"
	"space/internal/logger"
)

// Snapshot 某一时刻的家电统计
type Snapshot struct {
	Timestamp time.Time                 `json:"timestamp"`
	Total     int                       `json:"total"`
	PoweredOn int                       `json:"powered_on"`
	ByVariant map[appliance.Variant]int `json:"by_variant"`
}

// Source 提供家电列表
type Source interface {
	List() []appliance.Item
}

type Monitor struct {
	mu        sync.RWMutex
	source    Source
	interval  time.Duration
	snapshot  Snapshot
	poweredOn *prometheus.GaugeVec
	stopChan  chan struct{}
	stopOnce  sync.Once
	started   bool
	done      chan struct{}
}

func NewMonitor(source Source, interval time.Duration) *Monitor {
	if interval == 0 {
		interval = 5 * time.Second // 默认5秒更新一次
	}
	return &Monitor{
		source:   source,
		interval: interval,
		poweredOn: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "space_appliances_powered_on",
			Help: "Number of powered-on appliances per variant.",
		}, []string{"variant"}),
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Collector 供注册到 prometheus
func (m *Monitor) Collector() prometheus.Collector {
	return m.poweredOn
}

func (m *Monitor) Start() {
	m.mu.Lock()
	m.started = true
	m.mu.Unlock()

	m.Sample()
	go m.run()
	logger.Info("Monitor started with interval: %v", m.interval)
}

func (m *Monitor) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopChan)
		m.mu.RLock()
		started := m.started
		m.mu.RUnlock()
		if started {
			<-m.done
		}
		logger.Info("Monitor stopped")
	})
}

func (m *Monitor) run() {
	defer close(m.done)
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Sample()
		case <-m.stopChan:
			return
		}
	}
}

// Sample 立即采样一次
func (m *Monitor) Sample() Snapshot {
	snap := Snapshot{
		Timestamp: time.Now(),
		ByVariant: make(map[appliance.Variant]int),
	}
	on := make(map[appliance.Variant]int)
	for _, it := range m.source.List() {
		snap.Total++
		snap.ByVariant[it.Variant]++
		if it.IsOn {
			snap.PoweredOn++
			on[it.Variant]++
		}
	}
	for _, v := range appliance.Variants() {
		m.poweredOn.WithLabelValues(string(v)).Set(float64(on[v]))
	}

	m.mu.Lock()
	m.snapshot = snap
	m.mu.Unlock()
	logger.Debug("Monitor sample: %d/%d appliances on", snap.PoweredOn, snap.Total)
	return snap
}

// Latest 最近一次采样
func (m *Monitor) Latest() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}
