// internal/appliance/item.go

package appliance

import (
	"math"
	"strconv"

	"github.com/google/uuid"
)

const (
	// PowerOffSummary 关机时的卡片摘要
	PowerOffSummary = "전원 꺼짐"
	// DefaultAirQualityStatus 空气净化器 status 为空时的默认值
	DefaultAirQualityStatus = "공기질 보통"
	// DefaultColorTemperature 照明没有色温时的默认值 (K)
	DefaultColorTemperature = 4000
)

// Item 一台家电
type Item struct {
	ID             string   `json:"id"`
	Variant        Variant  `json:"variant"`
	Location       string   `json:"location"`
	Status         string   `json:"status"`
	Mode           string   `json:"mode"`
	IsOn           bool     `json:"isOn"`
	PrimaryValue   float64  `json:"primaryValue"`
	SecondaryValue *float64 `json:"secondaryValue,omitempty"`
}

// New 创建家电并分配新的 ID
func New(variant Variant, location, mode string, isOn bool, primary float64, secondary *float64) Item {
	it := Item{
		ID:           uuid.NewString(),
		Variant:      variant,
		Location:     location,
		Mode:         mode,
		IsOn:         isOn,
		PrimaryValue: primary,
	}
	if secondary != nil {
		v := *secondary
		it.SecondaryValue = &v
	}
	return it
}

// Float 返回 v 的指针，方便构造 SecondaryValue
func Float(v float64) *float64 {
	return &v
}

// Clone 返回不共享 SecondaryValue 的副本
func (it Item) Clone() Item {
	if it.SecondaryValue != nil {
		v := *it.SecondaryValue
		it.SecondaryValue = &v
	}
	return it
}

// Equal 两台家电 ID 相同即相等
func (it Item) Equal(other Item) bool {
	return it.ID == other.ID
}

// FormatPrimary 主要值显示，截断为整数后加单位
func (it Item) FormatPrimary() string {
	return itoa(truncate(it.PrimaryValue)) + it.Variant.Meta().PrimaryUnit
}

// FormatSecondary 次要值显示，第二个返回值为 false 表示没有可显示的内容
func (it Item) FormatSecondary() (string, bool) {
	if it.SecondaryValue == nil {
		return "", false
	}
	rule, ok := rules[it.Variant]
	if !ok {
		return "", false
	}
	return rule.secondary(it, truncate(*it.SecondaryValue))
}

// Summary 卡片摘要
func (it Item) Summary() string {
	if !it.IsOn {
		return PowerOffSummary
	}
	rule, ok := rules[it.Variant]
	if !ok {
		return it.Mode
	}
	return it.Mode + " · " + rule.summary(it, truncate(it.PrimaryValue))
}

// SyncStatus 根据当前控制值重算 status
func (it *Item) SyncStatus() {
	rule, ok := rules[it.Variant]
	if !ok {
		return
	}
	it.Status = rule.status(*it)
}

// TogglePower 切换电源并同步 status
func (it *Item) TogglePower() {
	it.IsOn = !it.IsOn
	it.SyncStatus()
}

// SetMode 修改模式
func (it *Item) SetMode(mode string) {
	it.Mode = mode
	it.SyncStatus()
}

// SetPrimary 修改主要值，不做范围校验
func (it *Item) SetPrimary(v float64) {
	it.PrimaryValue = v
	it.SyncStatus()
}

// SetSecondary 修改次要值
func (it *Item) SetSecondary(v float64) {
	it.SecondaryValue = &v
	it.SyncStatus()
}

// ClearSecondary 清除次要值
func (it *Item) ClearSecondary() {
	it.SecondaryValue = nil
	it.SyncStatus()
}

// SetLocation 修改位置，不影响 status
func (it *Item) SetLocation(location string) {
	it.Location = location
}

func (it Item) secondaryOr(def float64) float64 {
	if it.SecondaryValue == nil {
		return def
	}
	return *it.SecondaryValue
}

// truncate 向零截断
func truncate(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(math.Trunc(v))
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
