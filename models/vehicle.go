package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"bitbucket.org/indofreight/freight_backend/config"
	"bitbucket.org/indofreight/freight_backend/utils"
	"github.com/shopspring/decimal"
)

type Vehicle struct {
	ID             int             `gorm:"primary_key" json:"id"`
	Registration   string          `gorm:"uniqueIndex;size:15;not null" json:"registration" binding:"required"`
	VehicleType    string          `gorm:"size:40;not null" json:"vehicle_type" binding:"required"`
	CapacityKg     decimal.Decimal `gorm:"type:decimal(10,2)" json:"capacity_kg"`
	IsReefer       *bool           `gorm:"not null;default:false" json:"is_reefer"`
	PermitExpiry   *time.Time      `json:"permit_expiry"`
	FitnessExpiry  *time.Time      `json:"fitness_expiry"`
	InsuranceExpiry *time.Time     `json:"insurance_expiry"`
	IsActive       *bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewVehicle struct {
	Registration    string          `json:"registration" binding:"required"`
	VehicleType     string          `json:"vehicle_type" binding:"required"`
	CapacityKg      decimal.Decimal `json:"capacity_kg"`
	IsReefer        *bool           `json:"is_reefer"`
	PermitExpiry    *time.Time      `json:"permit_expiry"`
	FitnessExpiry   *time.Time      `json:"fitness_expiry"`
	InsuranceExpiry *time.Time      `json:"insurance_expiry"`
}

func (input *NewVehicle) validate(ctx context.Context, id int) error {
	input.Registration = strings.ToUpper(strings.ReplaceAll(input.Registration, " ", ""))
	if input.CapacityKg.IsNegative() {
		return errors.New("capacity must not be negative")
	}
	return utils.ValidateUnique[Vehicle](ctx, "registration", input.Registration, id)
}

func CreateVehicle(ctx context.Context, input *NewVehicle) (*Vehicle, error) {
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	vehicle := Vehicle{
		Registration:    input.Registration,
		VehicleType:     input.VehicleType,
		CapacityKg:      input.CapacityKg,
		IsReefer:        input.IsReefer,
		PermitExpiry:    input.PermitExpiry,
		FitnessExpiry:   input.FitnessExpiry,
		InsuranceExpiry: input.InsuranceExpiry,
		IsActive:        utils.NewTrue(),
	}
	if vehicle.IsReefer == nil {
		vehicle.IsReefer = utils.NewFalse()
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&vehicle).Error; err != nil {
		return nil, err
	}

	RecordAudit(ctx, "create", "vehicle", vehicle.ID, vehicle)
	return &vehicle, nil
}

func UpdateVehicle(ctx context.Context, id int, input *NewVehicle) (*Vehicle, error) {
	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}
	vehicle, err := utils.FetchModel[Vehicle](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(vehicle).Updates(map[string]interface{}{
		"Registration":    input.Registration,
		"VehicleType":     input.VehicleType,
		"CapacityKg":      input.CapacityKg,
		"IsReefer":        utils.DereferencePtr(input.IsReefer, *vehicle.IsReefer),
		"PermitExpiry":    input.PermitExpiry,
		"FitnessExpiry":   input.FitnessExpiry,
		"InsuranceExpiry": input.InsuranceExpiry,
	}).Error
	if err != nil {
		return nil, err
	}

	RecordAudit(ctx, "update", "vehicle", vehicle.ID, input)
	return vehicle, nil
}

func DeleteVehicle(ctx context.Context, id int) (*Vehicle, error) {
	vehicle, err := utils.FetchModel[Vehicle](ctx, id)
	if err != nil {
		return nil, err
	}

	count, err := utils.ResourceCountWhere[Shipment](ctx, "vehicle_id = ?", id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrInUse("vehicle", "shipments")
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(vehicle).Error; err != nil {
		return nil, err
	}

	RecordAudit(ctx, "delete", "vehicle", vehicle.ID, vehicle)
	return vehicle, nil
}

func GetVehicle(ctx context.Context, id int) (*Vehicle, error) {
	return utils.FetchModel[Vehicle](ctx, id)
}

func GetVehicles(ctx context.Context, registration *string) ([]*Vehicle, error) {
	db := config.GetDB()
	var results []*Vehicle

	dbCtx := db.WithContext(ctx)
	if registration != nil && *registration != "" {
		dbCtx = dbCtx.Where("registration LIKE ?", "%"+strings.ToUpper(*registration)+"%")
	}
	if err := dbCtx.Order("registration").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
