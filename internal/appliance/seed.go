// internal/appliance/seed.go

package appliance

// DefaultSeed 首次启动时的家电列表，每种类型一台
func DefaultSeed() []Item {
	items := []Item{
		New(VariantAirConditioner, "거실", "냉방", true, 23, Float(2)),
		New(VariantLighting, "침실", "집중", true, 80, Float(5000)),
		New(VariantAirPurifier, "거실", "자동", true, 2, Float(35)),
		New(VariantDehumidifier, "드레스룸", "자동", false, 50, Float(2)),
		New(VariantHumidifier, "아이방", "수면", true, 45, Float(1)),
		New(VariantTV, "거실", "일반", false, 12, Float(70)),
	}
	for i := range items {
		items[i].SyncStatus()
	}
	// 空气净化器的 status 来自传感器
	items[2].Status = "공기질 좋음"
	return items
}

// Card 展示用的卡片
type Card struct {
	ID        string  `json:"id"`
	Variant   Variant `json:"variant"`
	Name      string  `json:"name"`
	Icon      string  `json:"icon"`
	Color     string  `json:"color"`
	Location  string  `json:"location"`
	IsOn      bool    `json:"isOn"`
	Mode      string  `json:"mode"`
	Status    string  `json:"status"`
	Summary   string  `json:"summary"`
	Primary   string  `json:"primary"`
	Secondary *string `json:"secondary,omitempty"`
}

// ToCard 生成卡片
func (it Item) ToCard() Card {
	meta := it.Variant.Meta()
	c := Card{
		ID:       it.ID,
		Variant:  it.Variant,
		Name:     meta.DisplayName,
		Icon:     meta.Icon,
		Color:    meta.AccentColor,
		Location: it.Location,
		IsOn:     it.IsOn,
		Mode:     it.Mode,
		Status:   it.Status,
		Summary:  it.Summary(),
		Primary:  it.FormatPrimary(),
	}
	if !meta.HasSecondary() {
		return c
	}
	if s, ok := it.FormatSecondary(); ok {
		c.Secondary = &s
	}
	return c
}
