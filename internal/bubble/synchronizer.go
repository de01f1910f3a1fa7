// internal/bubble/synchronizer.go

package bubble

import (
	"sync"
	"time"
)

// DefaultReshuffleDelay 初始布局到第一次重排的间隔
const DefaultReshuffleDelay = 100 * time.Millisecond

const (
	KindInitialize = "initialize"
	KindReshuffle  = "reshuffle"
)

// Option 配置 Synchronizer
type Option func(*Synchronizer)

// WithDelay 设置重排延迟
func WithDelay(d time.Duration) Option {
	return func(s *Synchronizer) {
		s.delay = d
	}
}

// WithObserver 每次布局变化后回调，参数为 KindInitialize 或 KindReshuffle
func WithObserver(fn func(screen, kind string)) Option {
	return func(s *Synchronizer) {
		s.observer = fn
	}
}

// Synchronizer 持有一个页面的气泡布局
type Synchronizer struct {
	mu sync.Mutex

	screen   string
	margins  Margins
	rng      Source
	delay    time.Duration
	observer func(screen, kind string)

	canvas     Size
	labels     []string
	layout     []State
	generation uint64
	timer      *time.Timer
	closed     bool
}

func NewSynchronizer(screen string, margins Margins, rng Source, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		screen:  screen,
		margins: margins,
		rng:     rng,
		delay:   DefaultReshuffleDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetCanvas 画布第一次可知时重新生成布局，之后只更新尺寸
func (s *Synchronizer) SetCanvas(size Size) {
	s.mu.Lock()
	defer s.mu.Unlock()

	first := !s.canvas.Known() && size.Known()
	s.canvas = size
	if first {
		s.regenerateLocked()
	}
}

// SetLabels 标签集合变化时重新生成布局
func (s *Synchronizer) SetLabels(labels []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sameSet(s.labels, labels) {
		return
	}
	s.labels = append([]string(nil), labels...)
	if s.canvas.Known() {
		s.regenerateLocked()
	}
}

// Layout 返回当前布局的副本
func (s *Synchronizer) Layout() []State {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]State, len(s.layout))
	copy(out, s.layout)
	return out
}

// Canvas 当前画布尺寸
func (s *Synchronizer) Canvas() Size {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas
}

// Close 停止未触发的重排
func (s *Synchronizer) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Synchronizer) regenerateLocked() {
	if s.closed {
		return
	}
	s.layout = InitializeLayout(s.labels, s.canvas, s.margins, s.rng)
	s.generation++
	gen := s.generation
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() {
		s.reshuffle(gen)
	})
	s.notify(KindInitialize)
}

// reshuffle 被新的布局取代或已关闭时丢弃
func (s *Synchronizer) reshuffle(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.generation {
		return
	}
	s.layout = Reshuffle(s.layout, s.canvas, s.margins, s.rng)
	s.timer = nil
	s.notify(KindReshuffle)
}

func (s *Synchronizer) notify(kind string) {
	if s.observer != nil {
		s.observer(s.screen, kind)
	}
}

func sameSet(a, b []string) bool {
	as := make(map[string]bool, len(a))
	for _, v := range a {
		as[v] = true
	}
	bs := make(map[string]bool, len(b))
	for _, v := range b {
		bs[v] = true
	}
	if len(as) != len(bs) {
		return false
	}
	for v := range bs {
		if !as[v] {
			return false
		}
	}
	return true
}
