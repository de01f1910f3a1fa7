// internal/events/types.go

package events

import "time"

// EventType 事件类型定义
type EventType int

const (
	// 系统事件
	EventSystemStartup EventType = iota
	EventSystemShutdown

	// 家电控制事件
	EventPowerToggled
	EventControlChanged

	// 偏好设置事件
	EventTonesChanged
	EventFontSizeChanged

	// 气泡布局事件
	EventLayoutChanged
)

var eventNames = map[EventType]string{
	EventSystemStartup:   "system_startup",
	EventSystemShutdown:  "system_shutdown",
	EventPowerToggled:    "power_toggled",
	EventControlChanged:  "control_changed",
	EventTonesChanged:    "tones_changed",
	EventFontSizeChanged: "font_size_changed",
	EventLayoutChanged:   "layout_changed",
}

func (t EventType) String() string {
	if name, ok := eventNames[t]; ok {
		return name
	}
	return "unknown"
}

// Event 事件结构
type Event struct {
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// New 创建带当前时间的事件
func New(t EventType, data interface{}) Event {
	return Event{Type: t, Timestamp: time.Now(), Data: data}
}

// Handler 事件处理函数类型
type Handler func(Event)

// Subscription 事件订阅信息
type Subscription struct {
	EventType EventType
	id        uint64
}

// ApplianceEventData 家电事件数据
type ApplianceEventData struct {
	ApplianceID string `json:"appliance_id"`
	Variant     string `json:"variant"`
	IsOn        bool   `json:"is_on"`
	Summary     string `json:"summary"`
}

// TonesEventData 已选语气
type TonesEventData struct {
	Tones []string `json:"tones"`
}

// FontSizeEventData 字号
type FontSizeEventData struct {
	FontSize string `json:"font_size"`
}

// LayoutEventData 气泡布局
type LayoutEventData struct {
	Screen string `json:"screen"`
	Kind   string `json:"kind"`
}
