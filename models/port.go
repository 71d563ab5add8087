package models

import (
	"context"
	"strings"
	"time"

	"bitbucket.org/indofreight/freight_backend/config"
	"bitbucket.org/indofreight/freight_backend/utils"
)

// Port is a UN/LOCODE-keyed location used as origin or destination on
// shipments and quotes.
type Port struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Code      string    `gorm:"uniqueIndex;size:5;not null" json:"code" binding:"required"`
	Name      string    `gorm:"index;size:100;not null" json:"name" binding:"required"`
	Country   string    `gorm:"size:60;not null" json:"country" binding:"required"`
	Mode      TransportMode `gorm:"size:10;not null" json:"mode" binding:"required"`
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewPort struct {
	Code    string        `json:"code" binding:"required"`
	Name    string        `json:"name" binding:"required"`
	Country string        `json:"country" binding:"required"`
	Mode    TransportMode `json:"mode" binding:"required"`
}

func (input *NewPort) validate(ctx context.Context, id int) error {
	input.Code = strings.ToUpper(input.Code)
	if !input.Mode.IsValid() {
		return ErrInvalidEnum("mode")
	}
	return utils.ValidateUnique[Port](ctx, "code", input.Code, id)
}

func CreatePort(ctx context.Context, input *NewPort) (*Port, error) {
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	port := Port{
		Code:     input.Code,
		Name:     input.Name,
		Country:  input.Country,
		Mode:     input.Mode,
		IsActive: utils.NewTrue(),
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&port).Error; err != nil {
		return nil, err
	}
	utils.RemoveRedisList[Port]()
	return &port, nil
}

func UpdatePort(ctx context.Context, id int, input *NewPort) (*Port, error) {
	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}
	port, err := utils.FetchModel[Port](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(port).Updates(map[string]interface{}{
		"Code":    input.Code,
		"Name":    input.Name,
		"Country": input.Country,
		"Mode":    input.Mode,
	}).Error
	if err != nil {
		return nil, err
	}
	utils.RemoveRedisList[Port]()
	return port, nil
}

func DeletePort(ctx context.Context, id int) (*Port, error) {
	port, err := utils.FetchModel[Port](ctx, id)
	if err != nil {
		return nil, err
	}

	count, err := utils.ResourceCountWhere[Shipment](ctx,
		"origin_port_id = ? OR destination_port_id = ?", id, id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrInUse("port", "shipments")
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(port).Error; err != nil {
		return nil, err
	}
	utils.RemoveRedisList[Port]()
	return port, nil
}

func GetPort(ctx context.Context, id int) (*Port, error) {
	return utils.FetchModel[Port](ctx, id)
}

func GetPorts(ctx context.Context, name *string) ([]*Port, error) {
	// filtered lookups skip the cache, the full list is the hot path
	if name == nil || *name == "" {
		if cached, err := utils.RetrieveRedisList[Port](); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	db := config.GetDB()
	var results []*Port
	dbCtx := db.WithContext(ctx)
	if name != nil && *name != "" {
		dbCtx = dbCtx.Where("name LIKE ?", "%"+*name+"%")
	}
	if err := dbCtx.Order("name").Find(&results).Error; err != nil {
		return nil, err
	}
	if name == nil || *name == "" {
		utils.StoreRedisList[Port](results)
	}
	return results, nil
}
