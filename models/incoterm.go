package models

import (
	"context"
	"strings"
	"time"

	"bitbucket.org/indofreight/freight_backend/config"
	"bitbucket.org/indofreight/freight_backend/utils"
)

type Incoterm struct {
	ID          int       `gorm:"primary_key" json:"id"`
	Code        string    `gorm:"uniqueIndex;size:3;not null" json:"code" binding:"required,len=3"`
	Description string    `gorm:"size:255;not null" json:"description" binding:"required"`
	IsActive    *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewIncoterm struct {
	Code        string `json:"code" binding:"required,len=3"`
	Description string `json:"description" binding:"required"`
}

func (input *NewIncoterm) validate(ctx context.Context, id int) error {
	input.Code = strings.ToUpper(input.Code)
	return utils.ValidateUnique[Incoterm](ctx, "code", input.Code, id)
}

func CreateIncoterm(ctx context.Context, input *NewIncoterm) (*Incoterm, error) {
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	incoterm := Incoterm{
		Code:        input.Code,
		Description: input.Description,
		IsActive:    utils.NewTrue(),
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&incoterm).Error; err != nil {
		return nil, err
	}
	utils.RemoveRedisList[Incoterm]()
	return &incoterm, nil
}

func UpdateIncoterm(ctx context.Context, id int, input *NewIncoterm) (*Incoterm, error) {
	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}
	incoterm, err := utils.FetchModel[Incoterm](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(incoterm).Updates(map[string]interface{}{
		"Code":        input.Code,
		"Description": input.Description,
	}).Error
	if err != nil {
		return nil, err
	}
	utils.RemoveRedisList[Incoterm]()
	return incoterm, nil
}

func DeleteIncoterm(ctx context.Context, id int) (*Incoterm, error) {
	incoterm, err := utils.FetchModel[Incoterm](ctx, id)
	if err != nil {
		return nil, err
	}

	count, err := utils.ResourceCountWhere[Shipment](ctx, "incoterm_id = ?", id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrInUse("incoterm", "shipments")
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(incoterm).Error; err != nil {
		return nil, err
	}
	utils.RemoveRedisList[Incoterm]()
	return incoterm, nil
}

func GetIncoterm(ctx context.Context, id int) (*Incoterm, error) {
	return utils.FetchModel[Incoterm](ctx, id)
}

func GetIncoterms(ctx context.Context) ([]*Incoterm, error) {
	if cached, err := utils.RetrieveRedisList[Incoterm](); err == nil && len(cached) > 0 {
		return cached, nil
	}

	db := config.GetDB()
	var results []*Incoterm
	if err := db.WithContext(ctx).Order("code").Find(&results).Error; err != nil {
		return nil, err
	}
	utils.StoreRedisList[Incoterm](results)
	return results, nil
}
