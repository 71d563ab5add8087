package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bitbucket.org/indofreight/freight_backend/config"
	"bitbucket.org/indofreight/freight_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Shipment is the central operational document. It carries two allocated
// identifiers: the shipment number (SHP-<year>-NNN, unique per calendar
// year) and the human-facing reference built from direction and commodity
// (e.g. IMP-FZ-012). Both are issued by the same max+1 scheme and are
// immutable after creation.
type Shipment struct {
	ID                  int                     `gorm:"primary_key" json:"id"`
	ShipmentNumber      string                  `gorm:"uniqueIndex;size:20;not null" json:"shipment_number"`
	Reference           string                  `gorm:"uniqueIndex;size:20;not null" json:"reference"`
	Direction           ShipmentDirection       `gorm:"size:3;not null" json:"direction"`
	Mode                TransportMode           `gorm:"size:10;not null" json:"mode"`
	CommodityType       CommodityType           `gorm:"size:2;not null" json:"commodity_type"`
	Status              ShipmentStatus          `gorm:"size:15;not null;default:CREATED" json:"status"`
	CustomerId          int                     `gorm:"index;not null" json:"customer_id"`
	Customer            *Customer               `gorm:"foreignKey:CustomerId" json:"customer,omitempty"`
	OriginPortId        int                     `gorm:"index;not null" json:"origin_port_id"`
	OriginPort          *Port                   `gorm:"foreignKey:OriginPortId" json:"origin_port,omitempty"`
	DestinationPortId   int                     `gorm:"index;not null" json:"destination_port_id"`
	DestinationPort     *Port                   `gorm:"foreignKey:DestinationPortId" json:"destination_port,omitempty"`
	IncotermId          int                     `gorm:"index;not null" json:"incoterm_id"`
	Incoterm            *Incoterm               `gorm:"foreignKey:IncotermId" json:"incoterm,omitempty"`
	TemperaturePresetId *int                    `gorm:"index" json:"temperature_preset_id"`
	TemperaturePreset   *TemperaturePreset      `gorm:"foreignKey:TemperaturePresetId" json:"temperature_preset,omitempty"`
	VehicleId           *int                    `gorm:"index" json:"vehicle_id"`
	DriverId            *int                    `gorm:"index" json:"driver_id"`
	Etd                 *time.Time              `json:"etd"`
	Eta                 *time.Time              `json:"eta"`
	Notes               string                  `gorm:"size:500" json:"notes"`
	CargoItems          []ShipmentCargoItem     `gorm:"foreignKey:ShipmentId" json:"cargo_items"`
	TimelineEvents      []ShipmentTimelineEvent `gorm:"foreignKey:ShipmentId" json:"timeline_events,omitempty"`
	CreatedAt           time.Time               `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time               `gorm:"autoUpdateTime" json:"updated_at"`
}

type ShipmentCargoItem struct {
	ID              int             `gorm:"primary_key" json:"id"`
	ShipmentId      int             `gorm:"index;not null" json:"shipment_id"`
	ProductId       int             `gorm:"index;not null" json:"product_id"`
	Product         *Product        `gorm:"foreignKey:ProductId" json:"product,omitempty"`
	ContainerTypeId *int            `gorm:"index" json:"container_type_id"`
	Description     string          `gorm:"size:255" json:"description"`
	Quantity        decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"quantity"`
	WeightKg        decimal.Decimal `gorm:"type:decimal(20,4)" json:"weight_kg"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

type ShipmentTimelineEvent struct {
	ID         int            `gorm:"primary_key" json:"id"`
	ShipmentId int            `gorm:"index;not null" json:"shipment_id"`
	Status     ShipmentStatus `gorm:"size:15;not null" json:"status"`
	Remark     string         `gorm:"size:255" json:"remark"`
	OccurredAt time.Time      `gorm:"not null" json:"occurred_at"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

type NewShipmentCargoItem struct {
	ProductId       int             `json:"product_id" binding:"required"`
	ContainerTypeId *int            `json:"container_type_id"`
	Description     string          `json:"description"`
	Quantity        decimal.Decimal `json:"quantity"`
	WeightKg        decimal.Decimal `json:"weight_kg"`
}

type NewShipment struct {
	Direction           ShipmentDirection      `json:"direction" binding:"required"`
	Mode                TransportMode          `json:"mode" binding:"required"`
	CommodityType       CommodityType          `json:"commodity_type" binding:"required"`
	CustomerId          int                    `json:"customer_id" binding:"required"`
	OriginPortId        int                    `json:"origin_port_id" binding:"required"`
	DestinationPortId   int                    `json:"destination_port_id" binding:"required"`
	IncotermId          int                    `json:"incoterm_id" binding:"required"`
	TemperaturePresetId *int                   `json:"temperature_preset_id"`
	VehicleId           *int                   `json:"vehicle_id"`
	DriverId            *int                   `json:"driver_id"`
	Etd                 *time.Time             `json:"etd"`
	Eta                 *time.Time             `json:"eta"`
	Notes               string                 `json:"notes"`
	CargoItems          []NewShipmentCargoItem `json:"cargo_items" binding:"required,min=1"`
}

func (input *NewShipment) validate(ctx context.Context) error {
	if !input.Direction.IsValid() {
		return ErrInvalidEnum("direction")
	}
	if !input.Mode.IsValid() {
		return ErrInvalidEnum("mode")
	}
	if !input.CommodityType.IsValid() {
		return ErrInvalidEnum("commodity_type")
	}
	if err := utils.ValidateResourceId[Customer](ctx, input.CustomerId); err != nil {
		return errors.New("customer not found")
	}
	if err := utils.ValidateResourceId[Port](ctx, input.OriginPortId); err != nil {
		return errors.New("origin port not found")
	}
	if err := utils.ValidateResourceId[Port](ctx, input.DestinationPortId); err != nil {
		return errors.New("destination port not found")
	}
	if err := utils.ValidateResourceId[Incoterm](ctx, input.IncotermId); err != nil {
		return errors.New("incoterm not found")
	}
	if input.TemperaturePresetId != nil {
		if err := utils.ValidateResourceId[TemperaturePreset](ctx, *input.TemperaturePresetId); err != nil {
			return errors.New("temperature preset not found")
		}
	}
	if input.VehicleId != nil {
		if err := utils.ValidateResourceId[Vehicle](ctx, *input.VehicleId); err != nil {
			return errors.New("vehicle not found")
		}
	}
	if input.DriverId != nil {
		if err := utils.ValidateResourceId[Driver](ctx, *input.DriverId); err != nil {
			return errors.New("driver not found")
		}
	}
	productIds := make([]int, 0, len(input.CargoItems))
	for _, item := range input.CargoItems {
		productIds = append(productIds, item.ProductId)
	}
	if len(productIds) > 0 {
		if err := utils.ValidateResourcesId[Product](ctx, productIds); err != nil {
			return errors.New("product not found")
		}
	}
	for _, item := range input.CargoItems {
		if item.ContainerTypeId != nil {
			if err := utils.ValidateResourceId[ContainerType](ctx, *item.ContainerTypeId); err != nil {
				return errors.New("container type not found")
			}
		}
		if item.Quantity.LessThanOrEqual(decimal.Zero) {
			return errors.New("cargo quantity must be positive")
		}
	}
	return nil
}

// CreateShipment allocates both identifiers and writes the shipment, its
// cargo items, and the initial timeline event in one transaction. The whole
// allocation is re-run on a duplicate-key conflict, up to the shared bound.
func CreateShipment(ctx context.Context, input *NewShipment, today time.Time) (*Shipment, error) {
	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	db := config.GetDB()
	numberPrefix := ShipmentNumberPrefix(today)
	referencePrefix := ShipmentReferencePrefix(input.Direction, input.CommodityType)

	lock, err := utils.AllocationLock(ctx, numberPrefix, "shipment", "CreateShipment")
	if err == nil && lock != nil {
		defer lock.Release(context.Background())
	}

	var shipment *Shipment
	var lastErr error
	for attempt := 1; attempt <= allocationMaxAttempts; attempt++ {
		number, err := nextIdentifier(ctx, db, &Shipment{}, "shipment_number", numberPrefix)
		if err != nil {
			return nil, err
		}
		reference, err := nextIdentifier(ctx, db, &Shipment{}, "reference", referencePrefix)
		if err != nil {
			return nil, err
		}

		candidate := Shipment{
			ShipmentNumber:      number,
			Reference:           reference,
			Direction:           input.Direction,
			Mode:                input.Mode,
			CommodityType:       input.CommodityType,
			Status:              ShipmentStatusCreated,
			CustomerId:          input.CustomerId,
			OriginPortId:        input.OriginPortId,
			DestinationPortId:   input.DestinationPortId,
			IncotermId:          input.IncotermId,
			TemperaturePresetId: input.TemperaturePresetId,
			VehicleId:           input.VehicleId,
			DriverId:            input.DriverId,
			Etd:                 input.Etd,
			Eta:                 input.Eta,
			Notes:               input.Notes,
		}
		for _, item := range input.CargoItems {
			candidate.CargoItems = append(candidate.CargoItems, ShipmentCargoItem{
				ProductId:       item.ProductId,
				ContainerTypeId: item.ContainerTypeId,
				Description:     item.Description,
				Quantity:        item.Quantity,
				WeightKg:        item.WeightKg,
			})
		}
		candidate.TimelineEvents = []ShipmentTimelineEvent{{
			Status:     ShipmentStatusCreated,
			Remark:     "shipment created",
			OccurredAt: today,
		}}

		err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return tx.Create(&candidate).Error
		})
		if err == nil {
			shipment = &candidate
			break
		}
		if !isDuplicateEntry(err) {
			return nil, err
		}
		lastErr = err
	}
	if shipment == nil {
		return nil, fmt.Errorf("%w after %d attempts: %v", ErrAllocationFailed, allocationMaxAttempts, lastErr)
	}

	RecordAudit(ctx, "create", "shipment", shipment.ID, shipment)
	return shipment, nil
}

// UpdateShipment edits the mutable fields. Identifiers, direction, and
// commodity are fixed at creation because the reference encodes them.
func UpdateShipment(ctx context.Context, id int, input *NewShipment) (*Shipment, error) {
	shipment, err := utils.FetchModel[Shipment](ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Direction != shipment.Direction || input.CommodityType != shipment.CommodityType {
		return nil, errors.New("direction and commodity cannot change after creation")
	}
	if err := input.validate(ctx); err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(shipment).Updates(map[string]interface{}{
			"Mode":                input.Mode,
			"CustomerId":          input.CustomerId,
			"OriginPortId":        input.OriginPortId,
			"DestinationPortId":   input.DestinationPortId,
			"IncotermId":          input.IncotermId,
			"TemperaturePresetId": input.TemperaturePresetId,
			"VehicleId":           input.VehicleId,
			"DriverId":            input.DriverId,
			"Etd":                 input.Etd,
			"Eta":                 input.Eta,
			"Notes":               input.Notes,
		}).Error; err != nil {
			return err
		}

		// cargo is replaced wholesale on edit
		if err := tx.Where("shipment_id = ?", id).Delete(&ShipmentCargoItem{}).Error; err != nil {
			return err
		}
		for _, item := range input.CargoItems {
			cargo := ShipmentCargoItem{
				ShipmentId:      id,
				ProductId:       item.ProductId,
				ContainerTypeId: item.ContainerTypeId,
				Description:     item.Description,
				Quantity:        item.Quantity,
				WeightKg:        item.WeightKg,
			}
			if err := tx.Create(&cargo).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	RecordAudit(ctx, "update", "shipment", shipment.ID, input)
	return GetShipment(ctx, id)
}

type NewTimelineEvent struct {
	Status     ShipmentStatus `json:"status" binding:"required"`
	Remark     string         `json:"remark"`
	OccurredAt *time.Time     `json:"occurred_at"`
}

// UpdateShipmentStatus moves the shipment to a new status and appends the
// matching timeline event atomically.
func UpdateShipmentStatus(ctx context.Context, id int, input *NewTimelineEvent) (*Shipment, error) {
	if !input.Status.IsValid() {
		return nil, ErrInvalidEnum("status")
	}
	shipment, err := utils.FetchModel[Shipment](ctx, id)
	if err != nil {
		return nil, err
	}

	occurredAt := utils.Today()
	if input.OccurredAt != nil {
		occurredAt = *input.OccurredAt
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(shipment).Update("status", input.Status).Error; err != nil {
			return err
		}
		event := ShipmentTimelineEvent{
			ShipmentId: id,
			Status:     input.Status,
			Remark:     input.Remark,
			OccurredAt: occurredAt,
		}
		return tx.Create(&event).Error
	})
	if err != nil {
		return nil, err
	}

	RecordAudit(ctx, "status", "shipment", shipment.ID, input)
	return GetShipment(ctx, id)
}

// DeleteShipment removes the shipment with its cargo and timeline. A
// dependent invoice row is removed best-effort: its absence is success.
func DeleteShipment(ctx context.Context, id int) (*Shipment, error) {
	shipment, err := GetShipment(ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var invoiceIds []int
		if err := tx.Model(&Invoice{}).Where("shipment_id = ?", id).
			Select("id").Scan(&invoiceIds).Error; err != nil {
			return err
		}
		if len(invoiceIds) > 0 {
			if err := tx.Where("invoice_id IN ?", invoiceIds).Delete(&InvoiceLineItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", invoiceIds).Delete(&Invoice{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("shipment_id = ?", id).Delete(&ShipmentCargoItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("shipment_id = ?", id).Delete(&ShipmentTimelineEvent{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Shipment{}, id).Error
	})
	if err != nil {
		return nil, err
	}

	RecordAudit(ctx, "delete", "shipment", shipment.ID, shipment)
	return shipment, nil
}

func GetShipment(ctx context.Context, id int) (*Shipment, error) {
	return utils.FetchModel[Shipment](ctx, id,
		"Customer", "OriginPort", "DestinationPort", "Incoterm", "TemperaturePreset",
		"CargoItems", "CargoItems.Product", "TimelineEvents")
}

type ShipmentFilter struct {
	Status     *ShipmentStatus
	Direction  *ShipmentDirection
	CustomerId *int
	Search     *string
}

func GetShipments(ctx context.Context, filter ShipmentFilter) ([]*Shipment, error) {
	db := config.GetDB()
	var results []*Shipment

	dbCtx := db.WithContext(ctx).
		Preload("Customer").
		Preload("OriginPort").
		Preload("DestinationPort").
		Preload("CargoItems")
	if filter.Status != nil {
		dbCtx = dbCtx.Where("status = ?", *filter.Status)
	}
	if filter.Direction != nil {
		dbCtx = dbCtx.Where("direction = ?", *filter.Direction)
	}
	if filter.CustomerId != nil {
		dbCtx = dbCtx.Where("customer_id = ?", *filter.CustomerId)
	}
	if filter.Search != nil && *filter.Search != "" {
		like := "%" + *filter.Search + "%"
		dbCtx = dbCtx.Where("shipment_number LIKE ? OR reference LIKE ?", like, like)
	}
	if err := dbCtx.Order("id DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
