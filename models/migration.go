package models

import (
	"bitbucket.org/indofreight/freight_backend/config"
)

// Migrate runs gorm auto-migration for every table in dependency order.
// Master data first, then parties, then operational documents.
func Migrate() error {
	db := config.GetDB()
	return db.AutoMigrate(
		&User{},
		&Currency{},
		&Port{},
		&Incoterm{},
		&TemperaturePreset{},
		&ContainerType{},
		&ProductCategory{},
		&Product{},
		&Customer{},
		&Vehicle{},
		&Driver{},
		&Shipment{},
		&ShipmentCargoItem{},
		&ShipmentTimelineEvent{},
		&Invoice{},
		&InvoiceLineItem{},
		&Quote{},
		&QuoteCharge{},
		&Document{},
		&AuditLog{},
	)
}
