// internal/appliance/variant.go

package appliance

// Variant 家电类型
type Variant string

const (
	VariantAirConditioner Variant = "air-conditioner"
	VariantLighting       Variant = "lighting"
	VariantAirPurifier    Variant = "air-purifier"
	VariantDehumidifier   Variant = "dehumidifier"
	VariantHumidifier     Variant = "humidifier"
	VariantTV             Variant = "tv"
)

// Metadata 每种家电的静态配置
type Metadata struct {
	DisplayName    string
	Icon           string
	AccentColor    string
	PrimaryLabel   string
	SecondaryLabel string // 空字符串表示没有次要控制
	PrimaryUnit    string
}

// HasSecondary 是否定义了次要控制
func (m Metadata) HasSecondary() bool {
	return m.SecondaryLabel != ""
}

// variantRule 类型分派表的一项
type variantRule struct {
	meta Metadata
	// 次要值显示
	secondary func(it Item, n int) (string, bool)
	// 卡片摘要中 mode 后面的部分
	summary func(it Item, n int) string
	// 控制值变化后重算 status
	status func(it Item) string
}

var variantOrder = []Variant{
	VariantAirConditioner,
	VariantLighting,
	VariantAirPurifier,
	VariantDehumidifier,
	VariantHumidifier,
	VariantTV,
}

var rules = map[Variant]variantRule{
	VariantAirConditioner: {
		meta: Metadata{
			DisplayName:    "에어컨",
			Icon:           "air.conditioner.horizontal",
			AccentColor:    "#4A90E2",
			PrimaryLabel:   "온도",
			SecondaryLabel: "풍량",
			PrimaryUnit:    "°C",
		},
		secondary: func(_ Item, n int) (string, bool) {
			return "풍량 " + itoa(n) + "단", true
		},
		summary: func(_ Item, n int) string {
			return itoa(n) + "°C"
		},
		status: func(it Item) string {
			return it.Mode + " · 풍량 " + itoa(truncate(it.secondaryOr(1))) + "단"
		},
	},
	VariantLighting: {
		meta: Metadata{
			DisplayName:    "조명",
			Icon:           "lightbulb",
			AccentColor:    "#F5A623",
			PrimaryLabel:   "밝기",
			SecondaryLabel: "색온도",
			PrimaryUnit:    "%",
		},
		secondary: func(_ Item, n int) (string, bool) {
			return itoa(n) + "K", true
		},
		summary: func(_ Item, n int) string {
			return "밝기 " + itoa(n) + "%"
		},
		status: func(it Item) string {
			return "색온도 " + itoa(truncate(it.secondaryOr(DefaultColorTemperature))) + "K"
		},
	},
	VariantAirPurifier: {
		meta: Metadata{
			DisplayName:    "공기청정기",
			Icon:           "aqi.medium",
			AccentColor:    "#50E3C2",
			PrimaryLabel:   "풍량",
			SecondaryLabel: "공기질",
			PrimaryUnit:    "단",
		},
		// 次要值显示传感器给出的 status 文本
		secondary: func(it Item, _ int) (string, bool) {
			if it.Status == "" {
				return "", false
			}
			return it.Status, true
		},
		summary: func(_ Item, n int) string {
			return "풍량 " + itoa(n) + "단"
		},
		// 非空时保持不变
		status: func(it Item) string {
			if it.Status == "" {
				return DefaultAirQualityStatus
			}
			return it.Status
		},
	},
	VariantDehumidifier: {
		meta: Metadata{
			DisplayName:    "제습기",
			Icon:           "dehumidifier",
			AccentColor:    "#7ED321",
			PrimaryLabel:   "목표 습도",
			SecondaryLabel: "풍량",
			PrimaryUnit:    "%",
		},
		secondary: levelSecondary,
		summary: func(_ Item, n int) string {
			return "습도 " + itoa(n) + "%"
		},
		status: func(it Item) string {
			return "목표 습도 " + itoa(truncate(it.PrimaryValue)) + "%"
		},
	},
	VariantHumidifier: {
		meta: Metadata{
			DisplayName:    "가습기",
			Icon:           "humidifier",
			AccentColor:    "#9013FE",
			PrimaryLabel:   "목표 습도",
			SecondaryLabel: "분무량",
			PrimaryUnit:    "%",
		},
		secondary: levelSecondary,
		summary: func(_ Item, n int) string {
			return "습도 " + itoa(n) + "%"
		},
		status: func(it Item) string {
			return "목표 습도 " + itoa(truncate(it.PrimaryValue)) + "%"
		},
	},
	VariantTV: {
		meta: Metadata{
			DisplayName:    "TV",
			Icon:           "tv",
			AccentColor:    "#D0021B",
			PrimaryLabel:   "볼륨",
			SecondaryLabel: "화면 밝기",
			PrimaryUnit:    "",
		},
		secondary: func(_ Item, n int) (string, bool) {
			return itoa(n) + "%", true
		},
		summary: func(_ Item, n int) string {
			return "볼륨 " + itoa(n)
		},
		status: func(it Item) string {
			return it.Mode + " · 볼륨 " + itoa(truncate(it.PrimaryValue))
		},
	},
}

func levelSecondary(_ Item, n int) (string, bool) {
	return itoa(n) + "단", true
}

// Variants 按显示顺序返回所有类型
func Variants() []Variant {
	out := make([]Variant, len(variantOrder))
	copy(out, variantOrder)
	return out
}

// Valid 是否是已知类型
func (v Variant) Valid() bool {
	_, ok := rules[v]
	return ok
}

// Meta 返回类型的静态配置，未知类型返回零值
func (v Variant) Meta() Metadata {
	return rules[v].meta
}

// ParseVariant 解析类型字符串
func ParseVariant(s string) (Variant, bool) {
	v := Variant(s)
	return v, v.Valid()
}
