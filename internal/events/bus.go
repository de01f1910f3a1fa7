// internal/events/bus.go

package events

import (
	"sync"
)

// EventBus 是事件总线的实现
type EventBus struct {
	mu       sync.RWMutex
	nextID   uint64
	handlers map[EventType]map[uint64]Handler
	closed   bool
	wg       sync.WaitGroup
}

// NewEventBus 创建新的事件总线
func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType]map[uint64]Handler),
	}
}

// Publish 发布事件，处理器异步执行；Close 之后的事件被丢弃
func (eb *EventBus) Publish(event Event) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	if eb.closed {
		return
	}
	for _, handler := range eb.handlers[event.Type] {
		eb.wg.Add(1)
		go func(h Handler) {
			defer eb.wg.Done()
			h(event)
		}(handler)
	}
}

// Subscribe 订阅事件
func (eb *EventBus) Subscribe(eventType EventType, handler Handler) Subscription {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.nextID++
	if eb.handlers[eventType] == nil {
		eb.handlers[eventType] = make(map[uint64]Handler)
	}
	eb.handlers[eventType][eb.nextID] = handler
	return Subscription{
		EventType: eventType,
		id:        eb.nextID,
	}
}

// Unsubscribe 取消订阅
func (eb *EventBus) Unsubscribe(sub Subscription) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if handlers, exists := eb.handlers[sub.EventType]; exists {
		delete(handlers, sub.id)
	}
}

// Close 停止接收新事件，之后可以安全地 Wait
func (eb *EventBus) Close() {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.closed = true
}

// Wait 等待已发布事件的处理器执行完
func (eb *EventBus) Wait() {
	eb.wg.Wait()
}
