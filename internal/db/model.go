package db

import "time"

// 家电表
type ApplianceRecord struct {
	ID             string `gorm:"primaryKey;type:varchar(64)"`
	Position       int    `gorm:"index"` // 显示顺序
	Variant        string `gorm:"type:varchar(32)"`
	Location       string `gorm:"type:varchar(255)"`
	Status         string `gorm:"type:varchar(255)"`
	Mode           string `gorm:"type:varchar(64)"`
	IsOn           bool
	PrimaryValue   float64
	SecondaryValue *float64
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (ApplianceRecord) TableName() string {
	return "appliances"
}

// 偏好设置表 (键值)
type Preference struct {
	Key       string    `gorm:"column:pref_key;primaryKey;type:varchar(64)"`
	Value     string    `gorm:"type:text"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
