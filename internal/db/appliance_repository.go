// internal/db/appliance_repository.go

package db

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"space/internal/appliance"
)

type ApplianceRepository struct {
	db *gorm.DB
}

func NewApplianceRepository(db *gorm.DB) *ApplianceRepository {
	return &ApplianceRepository{db: db}
}

// List 按显示顺序返回所有家电
func (r *ApplianceRepository) List() ([]appliance.Item, error) {
	var records []ApplianceRecord
	if err := r.db.Order("position asc").Find(&records).Error; err != nil {
		return nil, err
	}
	items := make([]appliance.Item, 0, len(records))
	for _, rec := range records {
		items = append(items, rec.toItem())
	}
	return items, nil
}

// Save 插入或更新家电，position 为显示顺序
func (r *ApplianceRepository) Save(item appliance.Item, position int) error {
	rec := fromItem(item, position)
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("save appliance %s: %w", item.ID, err)
	}
	return nil
}

// SaveAll 在一个事务中保存整个列表
func (r *ApplianceRepository) SaveAll(items []appliance.Item) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		repo := &ApplianceRepository{db: tx}
		for i, it := range items {
			if err := repo.Save(it, i); err != nil {
				return err
			}
		}
		return nil
	})
}

func (rec ApplianceRecord) toItem() appliance.Item {
	it := appliance.Item{
		ID:           rec.ID,
		Variant:      appliance.Variant(rec.Variant),
		Location:     rec.Location,
		Status:       rec.Status,
		Mode:         rec.Mode,
		IsOn:         rec.IsOn,
		PrimaryValue: rec.PrimaryValue,
	}
	if rec.SecondaryValue != nil {
		it.SecondaryValue = appliance.Float(*rec.SecondaryValue)
	}
	return it
}

func fromItem(it appliance.Item, position int) ApplianceRecord {
	rec := ApplianceRecord{
		ID:           it.ID,
		Position:     position,
		Variant:      string(it.Variant),
		Location:     it.Location,
		Status:       it.Status,
		Mode:         it.Mode,
		IsOn:         it.IsOn,
		PrimaryValue: it.PrimaryValue,
	}
	if it.SecondaryValue != nil {
		v := *it.SecondaryValue
		rec.SecondaryValue = &v
	}
	return rec
}
