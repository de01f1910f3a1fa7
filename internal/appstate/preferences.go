// internal/appstate/preferences.go

package appstate

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"space/internal/events"
	"space/internal/logger"
)

const (
	keySelectedTones = "selectedTones"
	keyFontSize      = "fontSize"
)

// FontSize 字号
type FontSize string

const (
	FontSmall  FontSize = "small"
	FontMedium FontSize = "medium"
	FontLarge  FontSize = "large"
	FontXLarge FontSize = "xlarge"
)

// Valid 是否是支持的字号
func (f FontSize) Valid() bool {
	switch f {
	case FontSmall, FontMedium, FontLarge, FontXLarge:
		return true
	}
	return false
}

// PreferenceStore 键值存储接口
type PreferenceStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Preferences 用户偏好：已选语气和字号
type Preferences struct {
	mu       sync.RWMutex
	store    PreferenceStore
	bus      *events.EventBus
	tones    []string
	fontSize FontSize

	// 在持有锁时按修改顺序调用
	tonesListeners []func([]string)
}

func NewPreferences(store PreferenceStore, bus *events.EventBus) *Preferences {
	return &Preferences{store: store, bus: bus, fontSize: FontMedium}
}

// OnTonesChanged 注册语气变化回调，回调在修改时同步执行，不能再调用 Preferences
func (p *Preferences) OnTonesChanged(fn func(tones []string)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tonesListeners = append(p.tonesListeners, fn)
}

func (p *Preferences) notifyTonesLocked() {
	for _, fn := range p.tonesListeners {
		fn(append([]string{}, p.tones...))
	}
}

// Load 从存储读取，无记录时使用默认值
func (p *Preferences) Load() error {
	var tones []string
	raw, ok, err := p.store.Get(keySelectedTones)
	if err != nil {
		return fmt.Errorf("load tones: %w", err)
	}
	if ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &tones); err != nil {
			logger.Warn("Discarding malformed tones %q: %v", raw, err)
			tones = nil
		}
	}

	size := FontMedium
	raw, ok, err = p.store.Get(keyFontSize)
	if err != nil {
		return fmt.Errorf("load font size: %w", err)
	}
	if ok {
		if f := FontSize(raw); f.Valid() {
			size = f
		} else {
			logger.Warn("Unknown font size %q, using %s", raw, FontMedium)
		}
	}

	p.mu.Lock()
	p.tones = normalizeTones(tones)
	p.fontSize = size
	p.notifyTonesLocked()
	p.mu.Unlock()
	return nil
}

// Tones 已选语气（选择顺序）
func (p *Preferences) Tones() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]string{}, p.tones...)
}

// SetTones 替换已选语气，去掉空白和重复项
func (p *Preferences) SetTones(tones []string) ([]string, error) {
	p.mu.Lock()
	p.tones = normalizeTones(tones)
	out := append([]string{}, p.tones...)
	p.notifyTonesLocked()
	err := p.saveTonesLocked()
	p.mu.Unlock()

	if err != nil {
		return out, err
	}
	p.publish(events.EventTonesChanged, events.TonesEventData{Tones: out})
	return out, nil
}

// ToggleTone 已选则取消，未选则追加
func (p *Preferences) ToggleTone(tone string) ([]string, error) {
	tone = strings.TrimSpace(tone)
	if tone == "" {
		return p.Tones(), ErrEmptyTone
	}

	p.mu.Lock()
	idx := -1
	for i, t := range p.tones {
		if t == tone {
			idx = i
			break
		}
	}
	if idx >= 0 {
		p.tones = append(p.tones[:idx:idx], p.tones[idx+1:]...)
	} else {
		p.tones = append(p.tones, tone)
	}
	out := append([]string{}, p.tones...)
	p.notifyTonesLocked()
	err := p.saveTonesLocked()
	p.mu.Unlock()

	if err != nil {
		return out, err
	}
	p.publish(events.EventTonesChanged, events.TonesEventData{Tones: out})
	return out, nil
}

// FontSize 当前字号
func (p *Preferences) FontSize() FontSize {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.fontSize
}

// SetFontSize 修改字号
func (p *Preferences) SetFontSize(size FontSize) error {
	if !size.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidFontSize, size)
	}

	p.mu.Lock()
	p.fontSize = size
	err := p.store.Set(keyFontSize, string(size))
	p.mu.Unlock()

	if err != nil {
		logger.Error("Failed to save font size: %v", err)
		return fmt.Errorf("save font size: %w", err)
	}
	p.publish(events.EventFontSizeChanged, events.FontSizeEventData{FontSize: string(size)})
	return nil
}

func (p *Preferences) saveTonesLocked() error {
	data, err := json.Marshal(p.tones)
	if err != nil {
		return err
	}
	if err := p.store.Set(keySelectedTones, string(data)); err != nil {
		logger.Error("Failed to save tones: %v", err)
		return fmt.Errorf("save tones: %w", err)
	}
	return nil
}

func (p *Preferences) publish(t events.EventType, data interface{}) {
	if p.bus != nil {
		p.bus.Publish(events.New(t, data))
	}
}

func normalizeTones(tones []string) []string {
	seen := make(map[string]bool, len(tones))
	out := make([]string, 0, len(tones))
	for _, t := range tones {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
