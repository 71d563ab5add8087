package models

import (
	"context"
	"time"

	"bitbucket.org/indofreight/freight_backend/config"
	"bitbucket.org/indofreight/freight_backend/utils"
	"github.com/shopspring/decimal"
)

// TemperaturePreset is a named reefer setting, e.g. "Frozen -18".
type TemperaturePreset struct {
	ID         int             `gorm:"primary_key" json:"id"`
	Name       string          `gorm:"uniqueIndex;size:100;not null" json:"name" binding:"required"`
	MinCelsius decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"min_celsius"`
	MaxCelsius decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"max_celsius"`
	IsActive   *bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewTemperaturePreset struct {
	Name       string          `json:"name" binding:"required"`
	MinCelsius decimal.Decimal `json:"min_celsius"`
	MaxCelsius decimal.Decimal `json:"max_celsius"`
}

func (input *NewTemperaturePreset) validate(ctx context.Context, id int) error {
	if input.MaxCelsius.LessThan(input.MinCelsius) {
		return ErrInvalidEnum("temperature range")
	}
	return utils.ValidateUnique[TemperaturePreset](ctx, "name", input.Name, id)
}

func CreateTemperaturePreset(ctx context.Context, input *NewTemperaturePreset) (*TemperaturePreset, error) {
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	preset := TemperaturePreset{
		Name:       input.Name,
		MinCelsius: input.MinCelsius,
		MaxCelsius: input.MaxCelsius,
		IsActive:   utils.NewTrue(),
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&preset).Error; err != nil {
		return nil, err
	}
	utils.RemoveRedisList[TemperaturePreset]()
	return &preset, nil
}

func UpdateTemperaturePreset(ctx context.Context, id int, input *NewTemperaturePreset) (*TemperaturePreset, error) {
	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}
	preset, err := utils.FetchModel[TemperaturePreset](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(preset).Updates(map[string]interface{}{
		"Name":       input.Name,
		"MinCelsius": input.MinCelsius,
		"MaxCelsius": input.MaxCelsius,
	}).Error
	if err != nil {
		return nil, err
	}
	utils.RemoveRedisList[TemperaturePreset]()
	return preset, nil
}

func DeleteTemperaturePreset(ctx context.Context, id int) (*TemperaturePreset, error) {
	preset, err := utils.FetchModel[TemperaturePreset](ctx, id)
	if err != nil {
		return nil, err
	}

	count, err := utils.ResourceCountWhere[Shipment](ctx, "temperature_preset_id = ?", id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrInUse("temperature preset", "shipments")
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(preset).Error; err != nil {
		return nil, err
	}
	utils.RemoveRedisList[TemperaturePreset]()
	return preset, nil
}

func GetTemperaturePreset(ctx context.Context, id int) (*TemperaturePreset, error) {
	return utils.FetchModel[TemperaturePreset](ctx, id)
}

func GetTemperaturePresets(ctx context.Context) ([]*TemperaturePreset, error) {
	if cached, err := utils.RetrieveRedisList[TemperaturePreset](); err == nil && len(cached) > 0 {
		return cached, nil
	}

	db := config.GetDB()
	var results []*TemperaturePreset
	if err := db.WithContext(ctx).Order("name").Find(&results).Error; err != nil {
		return nil, err
	}
	utils.StoreRedisList[TemperaturePreset](results)
	return results, nil
}
