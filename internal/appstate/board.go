// internal/appstate/board.go

package appstate

import (
	"fmt"
	"sync"

	"space/internal/appliance"
	"space/internal/events"
	"space/internal/logger"
)

// ApplianceStore 家电持久化接口
type ApplianceStore interface {
	List() ([]appliance.Item, error)
	Save(item appliance.Item, position int) error
	SaveAll(items []appliance.Item) error
}

// Controls 一次控制操作，nil 字段不修改
type Controls struct {
	Mode           *string  `json:"mode,omitempty"`
	PrimaryValue   *float64 `json:"primaryValue,omitempty"`
	SecondaryValue *float64 `json:"secondaryValue,omitempty"`
	Location       *string  `json:"location,omitempty"`
}

// Empty 没有任何修改
func (c Controls) Empty() bool {
	return c.Mode == nil && c.PrimaryValue == nil && c.SecondaryValue == nil && c.Location == nil
}

// Board 家电列表页的状态，内存中的列表是权威副本
type Board struct {
	mu    sync.RWMutex
	items []appliance.Item
	store ApplianceStore
	bus   *events.EventBus
}

func NewBoard(store ApplianceStore, bus *events.EventBus) *Board {
	return &Board{store: store, bus: bus}
}

// Load 从存储加载，存储为空时写入默认列表
func (b *Board) Load() error {
	items, err := b.store.List()
	if err != nil {
		return fmt.Errorf("load appliances: %w", err)
	}
	if len(items) == 0 {
		items = appliance.DefaultSeed()
		if err := b.store.SaveAll(items); err != nil {
			return fmt.Errorf("seed appliances: %w", err)
		}
		logger.Info("Seeded %d appliances", len(items))
	}

	b.mu.Lock()
	b.items = items
	b.mu.Unlock()
	return nil
}

// List 按显示顺序返回副本
func (b *Board) List() []appliance.Item {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]appliance.Item, len(b.items))
	for i, it := range b.items {
		out[i] = it.Clone()
	}
	return out
}

// Cards 按显示顺序返回卡片
func (b *Board) Cards() []appliance.Card {
	items := b.List()
	cards := make([]appliance.Card, len(items))
	for i, it := range items {
		cards[i] = it.ToCard()
	}
	return cards
}

// Get 通过 ID 获取家电副本
func (b *Board) Get(id string) (appliance.Item, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	i := b.indexLocked(id)
	if i < 0 {
		return appliance.Item{}, ErrApplianceNotFound
	}
	return b.items[i].Clone(), nil
}

// TogglePower 切换电源
func (b *Board) TogglePower(id string) (appliance.Item, error) {
	return b.mutate(id, events.EventPowerToggled, func(it *appliance.Item) {
		it.TogglePower()
	})
}

// ApplyControls 修改控制值
func (b *Board) ApplyControls(id string, c Controls) (appliance.Item, error) {
	return b.mutate(id, events.EventControlChanged, func(it *appliance.Item) {
		if c.Location != nil {
			it.SetLocation(*c.Location)
		}
		if c.Mode != nil {
			it.SetMode(*c.Mode)
		}
		if c.PrimaryValue != nil {
			it.SetPrimary(*c.PrimaryValue)
		}
		if c.SecondaryValue != nil {
			it.SetSecondary(*c.SecondaryValue)
		}
	})
}

// mutate 修改内存副本后保存；保存失败时内存修改保留并返回错误
func (b *Board) mutate(id string, eventType events.EventType, fn func(*appliance.Item)) (appliance.Item, error) {
	b.mu.Lock()
	i := b.indexLocked(id)
	if i < 0 {
		b.mu.Unlock()
		return appliance.Item{}, ErrApplianceNotFound
	}
	fn(&b.items[i])
	updated := b.items[i].Clone()
	err := b.store.Save(updated, i)
	b.mu.Unlock()

	if err != nil {
		logger.Error("Failed to save appliance %s: %v", id, err)
		return updated, fmt.Errorf("save appliance: %w", err)
	}

	logger.Debug("Appliance %s (%s) -> %s", id, updated.Variant, updated.Summary())
	if b.bus != nil {
		b.bus.Publish(events.New(eventType, events.ApplianceEventData{
			ApplianceID: updated.ID,
			Variant:     string(updated.Variant),
			IsOn:        updated.IsOn,
			Summary:     updated.Summary(),
		}))
	}
	return updated, nil
}

func (b *Board) indexLocked(id string) int {
	for i := range b.items {
		if b.items[i].ID == id {
			return i
		}
	}
	return -1
}
