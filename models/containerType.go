package models

import (
	"context"
	"strings"
	"time"

	"bitbucket.org/indofreight/freight_backend/config"
	"bitbucket.org/indofreight/freight_backend/utils"
	"github.com/shopspring/decimal"
)

type ContainerType struct {
	ID          int             `gorm:"primary_key" json:"id"`
	Code        string          `gorm:"uniqueIndex;size:10;not null" json:"code" binding:"required"`
	Description string          `gorm:"size:255;not null" json:"description" binding:"required"`
	IsReefer    *bool           `gorm:"not null;default:false" json:"is_reefer"`
	MaxWeightKg decimal.Decimal `gorm:"type:decimal(10,2)" json:"max_weight_kg"`
	IsActive    *bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewContainerType struct {
	Code        string          `json:"code" binding:"required"`
	Description string          `json:"description" binding:"required"`
	IsReefer    *bool           `json:"is_reefer"`
	MaxWeightKg decimal.Decimal `json:"max_weight_kg"`
}

func (input *NewContainerType) validate(ctx context.Context, id int) error {
	input.Code = strings.ToUpper(input.Code)
	return utils.ValidateUnique[ContainerType](ctx, "code", input.Code, id)
}

func CreateContainerType(ctx context.Context, input *NewContainerType) (*ContainerType, error) {
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	containerType := ContainerType{
		Code:        input.Code,
		Description: input.Description,
		IsReefer:    input.IsReefer,
		MaxWeightKg: input.MaxWeightKg,
		IsActive:    utils.NewTrue(),
	}
	if containerType.IsReefer == nil {
		containerType.IsReefer = utils.NewFalse()
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&containerType).Error; err != nil {
		return nil, err
	}
	utils.RemoveRedisList[ContainerType]()
	return &containerType, nil
}

func UpdateContainerType(ctx context.Context, id int, input *NewContainerType) (*ContainerType, error) {
	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}
	containerType, err := utils.FetchModel[ContainerType](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(containerType).Updates(map[string]interface{}{
		"Code":        input.Code,
		"Description": input.Description,
		"IsReefer":    utils.DereferencePtr(input.IsReefer, *containerType.IsReefer),
		"MaxWeightKg": input.MaxWeightKg,
	}).Error
	if err != nil {
		return nil, err
	}
	utils.RemoveRedisList[ContainerType]()
	return containerType, nil
}

func DeleteContainerType(ctx context.Context, id int) (*ContainerType, error) {
	containerType, err := utils.FetchModel[ContainerType](ctx, id)
	if err != nil {
		return nil, err
	}

	count, err := utils.ResourceCountWhere[ShipmentCargoItem](ctx, "container_type_id = ?", id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrInUse("container type", "shipment cargo")
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(containerType).Error; err != nil {
		return nil, err
	}
	utils.RemoveRedisList[ContainerType]()
	return containerType, nil
}

func GetContainerType(ctx context.Context, id int) (*ContainerType, error) {
	return utils.FetchModel[ContainerType](ctx, id)
}

func GetContainerTypes(ctx context.Context) ([]*ContainerType, error) {
	if cached, err := utils.RetrieveRedisList[ContainerType](); err == nil && len(cached) > 0 {
		return cached, nil
	}

	db := config.GetDB()
	var results []*ContainerType
	if err := db.WithContext(ctx).Order("code").Find(&results).Error; err != nil {
		return nil, err
	}
	utils.StoreRedisList[ContainerType](results)
	return results, nil
}
