package models

// InvoiceStatus is the stored lifecycle state of an invoice. OVERDUE is
// never written to the database; it is derived at read time from the due
// date (see Invoice.DisplayStatus).
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "DRAFT"
	InvoiceStatusSent    InvoiceStatus = "SENT"
	InvoiceStatusPaid    InvoiceStatus = "PAID"
	InvoiceStatusOverdue InvoiceStatus = "OVERDUE"
)

var storedInvoiceStatuses = []InvoiceStatus{
	InvoiceStatusDraft,
	InvoiceStatusSent,
	InvoiceStatusPaid,
}

func (s InvoiceStatus) IsValidStored() bool {
	for _, v := range storedInvoiceStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "DRAFT"
	QuoteStatusSent     QuoteStatus = "SENT"
	QuoteStatusAccepted QuoteStatus = "ACCEPTED"
	QuoteStatusRejected QuoteStatus = "REJECTED"
	QuoteStatusExpired  QuoteStatus = "EXPIRED"
)

func (s QuoteStatus) IsValid() bool {
	switch s {
	case QuoteStatusDraft, QuoteStatusSent, QuoteStatusAccepted,
		QuoteStatusRejected, QuoteStatusExpired:
		return true
	}
	return false
}

// ShipmentDirection is the two-letter code used in shipment references.
type ShipmentDirection string

const (
	DirectionImport ShipmentDirection = "IMP"
	DirectionExport ShipmentDirection = "EXP"
)

func (d ShipmentDirection) IsValid() bool {
	return d == DirectionImport || d == DirectionExport
}

type TransportMode string

const (
	ModeSea  TransportMode = "SEA"
	ModeAir  TransportMode = "AIR"
	ModeRoad TransportMode = "ROAD"
)

func (m TransportMode) IsValid() bool {
	return m == ModeSea || m == ModeAir || m == ModeRoad
}

// CommodityType is the cargo class code embedded in shipment references.
type CommodityType string

const (
	CommodityFrozen CommodityType = "FZ"
	CommoditySpices CommodityType = "SP"
	CommodityMixed  CommodityType = "MX"
	CommodityOther  CommodityType = "OT"
)

func (c CommodityType) IsValid() bool {
	switch c {
	case CommodityFrozen, CommoditySpices, CommodityMixed, CommodityOther:
		return true
	}
	return false
}

type ShipmentStatus string

const (
	ShipmentStatusCreated   ShipmentStatus = "CREATED"
	ShipmentStatusInTransit ShipmentStatus = "IN_TRANSIT"
	ShipmentStatusAtPort    ShipmentStatus = "AT_PORT"
	ShipmentStatusCleared   ShipmentStatus = "CLEARED"
	ShipmentStatusDelivered ShipmentStatus = "DELIVERED"
	ShipmentStatusCancelled ShipmentStatus = "CANCELLED"
)

func (s ShipmentStatus) IsValid() bool {
	switch s {
	case ShipmentStatusCreated, ShipmentStatusInTransit, ShipmentStatusAtPort,
		ShipmentStatusCleared, ShipmentStatusDelivered, ShipmentStatusCancelled:
		return true
	}
	return false
}

type UserRole string

const (
	RoleAdmin    UserRole = "ADMIN"
	RoleOps      UserRole = "OPS"
	RoleAccounts UserRole = "ACCOUNTS"
)

func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleOps || r == RoleAccounts
}
