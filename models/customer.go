package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"bitbucket.org/indofreight/freight_backend/config"
	"bitbucket.org/indofreight/freight_backend/utils"
)

type Customer struct {
	ID             int       `gorm:"primary_key" json:"id"`
	Name           string    `gorm:"index;size:100;not null" json:"name" binding:"required"`
	Gstin          string    `gorm:"index;size:15" json:"gstin"`
	ContactPerson  string    `gorm:"size:100" json:"contact_person"`
	Phone          string    `gorm:"size:20" json:"phone"`
	Email          string    `gorm:"size:100" json:"email"`
	BillingAddress string    `gorm:"size:255" json:"billing_address"`
	City           string    `gorm:"size:60" json:"city"`
	CreditDays     int       `gorm:"not null;default:0" json:"credit_days"`
	IsActive       *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewCustomer struct {
	Name           string `json:"name" binding:"required"`
	Gstin          string `json:"gstin"`
	ContactPerson  string `json:"contact_person"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	BillingAddress string `json:"billing_address"`
	City           string `json:"city"`
	CreditDays     int    `json:"credit_days"`
}

// GSTIN is 15 chars: 2-digit state code + 10-char PAN + entity, Z, checksum.
// Only shape is checked here, the checksum digit is not verified.
func validGstin(gstin string) bool {
	if len(gstin) != 15 {
		return false
	}
	for _, r := range gstin {
		if (r < '0' || r > '9') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

func (input *NewCustomer) validate(ctx context.Context, id int) error {
	if err := utils.ValidateUnique[Customer](ctx, "name", input.Name, id); err != nil {
		return err
	}
	if input.Gstin != "" {
		input.Gstin = strings.ToUpper(input.Gstin)
		if !validGstin(input.Gstin) {
			return errors.New("invalid gstin")
		}
	}
	if input.Phone != "" {
		if err := utils.ValidatePhoneNumber(input.Phone, utils.CountryCode); err != nil {
			return err
		}
	}
	if input.Email != "" && !utils.IsValidEmail(input.Email) {
		return errors.New("invalid email")
	}
	if input.CreditDays < 0 {
		return errors.New("credit days must not be negative")
	}
	return nil
}

func CreateCustomer(ctx context.Context, input *NewCustomer) (*Customer, error) {
	if err := input.validate(ctx, 0); err != nil {
		return nil, err
	}

	customer := Customer{
		Name:           input.Name,
		Gstin:          input.Gstin,
		ContactPerson:  input.ContactPerson,
		Phone:          input.Phone,
		Email:          input.Email,
		BillingAddress: input.BillingAddress,
		City:           input.City,
		CreditDays:     input.CreditDays,
		IsActive:       utils.NewTrue(),
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&customer).Error; err != nil {
		return nil, err
	}

	RecordAudit(ctx, "create", "customer", customer.ID, customer)
	return &customer, nil
}

func UpdateCustomer(ctx context.Context, id int, input *NewCustomer) (*Customer, error) {
	if err := input.validate(ctx, id); err != nil {
		return nil, err
	}
	customer, err := utils.FetchModel[Customer](ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(customer).Updates(map[string]interface{}{
		"Name":           input.Name,
		"Gstin":          input.Gstin,
		"ContactPerson":  input.ContactPerson,
		"Phone":          input.Phone,
		"Email":          input.Email,
		"BillingAddress": input.BillingAddress,
		"City":           input.City,
		"CreditDays":     input.CreditDays,
	}).Error
	if err != nil {
		return nil, err
	}

	RecordAudit(ctx, "update", "customer", customer.ID, input)
	return customer, nil
}

func DeleteCustomer(ctx context.Context, id int) (*Customer, error) {
	customer, err := utils.FetchModel[Customer](ctx, id)
	if err != nil {
		return nil, err
	}

	count, err := utils.ResourceCountWhere[Shipment](ctx, "customer_id = ?", id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrInUse("customer", "shipments")
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(customer).Error; err != nil {
		return nil, err
	}

	RecordAudit(ctx, "delete", "customer", customer.ID, customer)
	return customer, nil
}

func GetCustomer(ctx context.Context, id int) (*Customer, error) {
	return utils.FetchModel[Customer](ctx, id)
}

func GetCustomers(ctx context.Context, name *string) ([]*Customer, error) {
	db := config.GetDB()
	var results []*Customer

	dbCtx := db.WithContext(ctx)
	if name != nil && *name != "" {
		dbCtx = dbCtx.Where("name LIKE ?", "%"+*name+"%")
	}
	if err := dbCtx.Order("name").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func ToggleActiveCustomer(ctx context.Context, id int, isActive bool) (*Customer, error) {
	customer, err := utils.FetchModel[Customer](ctx, id)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Model(customer).Update("is_active", isActive).Error; err != nil {
		return nil, err
	}
	return customer, nil
}
