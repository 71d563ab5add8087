package models

import (
	"context"
	"time"

	"bitbucket.org/indofreight/freight_backend/config"
	"bitbucket.org/indofreight/freight_backend/utils"
)

type Driver struct {
	ID            int        `gorm:"primary_key" json:"id"`
	Name          string     `gorm:"index;size:100;not null" json:"name" binding:"required"`
	LicenceNumber string     `gorm:"uniqueIndex;size:20;not null" json:"licence_number" binding:"required"`
	LicenceExpiry *time.Time `json:"licence_expiry"`
	Phone         string     `gorm:"size:20" json:"phone"`
	IsActive      *bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewDriver struct {
	Name          string     `json:"name" binding:"required"`
	LicenceNumber string     `json:"licence_number" binding:"required"`
	LicenceExpiry *time.Time `json:"licence_expiry"`
	Phone         string     `json:"phone"`
}

func (input *NewDriver) validate(ctx context.Context, id int) error {
	if err := utils.ValidateUnique[Driver](ctx, "licence_number", input.LicenceNumber, id); err != nil {
		return err
	}
	if input.Phone != "" {
		return utils.ValidatePhoneNumber(input.Phone, utils.CountryCode)
	}
	return nil
}

func CreateDriver(ctx context.Context, input *NewDriver) (*Driver, error) {
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	driver := Driver{
		Name:          input.Name,
		LicenceNumber: input.LicenceNumber,
		LicenceExpiry: input.LicenceExpiry,
		Phone:         input.Phone,
		IsActive:      utils.NewTrue(),
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&driver).Error; err != nil {
		return nil, err
	}

	RecordAudit(ctx, "create", "driver", driver.ID, driver)
	return &driver, nil
}

func UpdateDriver(ctx context.Context, id int, input *NewDriver) (*Driver, error) {
	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}
	driver, err := utils.FetchModel[Driver](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(driver).Updates(map[string]interface{}{
		"Name":          input.Name,
		"LicenceNumber": input.LicenceNumber,
		"LicenceExpiry": input.LicenceExpiry,
		"Phone":         input.Phone,
	}).Error
	if err != nil {
		return nil, err
	}

	RecordAudit(ctx, "update", "driver", driver.ID, input)
	return driver, nil
}

func DeleteDriver(ctx context.Context, id int) (*Driver, error) {
	driver, err := utils.FetchModel[Driver](ctx, id)
	if err != nil {
		return nil, err
	}

	count, err := utils.ResourceCountWhere[Shipment](ctx, "driver_id = ?", id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrInUse("driver", "shipments")
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(driver).Error; err != nil {
		return nil, err
	}

	RecordAudit(ctx, "delete", "driver", driver.ID, driver)
	return driver, nil
}

func GetDriver(ctx context.Context, id int) (*Driver, error) {
	return utils.FetchModel[Driver](ctx, id)
}

func GetDrivers(ctx context.Context, name *string) ([]*Driver, error) {
	db := config.GetDB()
	var results []*Driver

	dbCtx := db.WithContext(ctx)
	if name != nil && *name != "" {
		dbCtx = dbCtx.Where("name LIKE ?", "%"+*name+"%")
	}
	if err := dbCtx.Order("name").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
