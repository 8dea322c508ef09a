package models

import (
	"time"

	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shared/valueobject"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shipment"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShipmentModel is the persistence model for the Shipment aggregate root.
// Derived totals are stored denormalized so list views never re-aggregate.
type ShipmentModel struct {
	AggregateModel
	Code               string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name               string          `gorm:"type:varchar(200);not null"`
	Status             shipment.Status `gorm:"type:varchar(30);not null;default:'NEW';index"`
	PurchaseDate       time.Time       `gorm:"not null;index"`
	PurchaseRmbToEgp   decimal.Decimal `gorm:"type:decimal(18,6);not null"`
	PartialDiscountRmb decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	DiscountNotes      string          `gorm:"type:text"`
	ShippingCompanyID  *uuid.UUID      `gorm:"type:uuid;index"`

	TotalPurchaseCostRmb      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PurchaseCostEgp           decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	DiscountEgp               decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	DiscountedPurchaseCostEgp decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CommissionRmb             decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CommissionEgp             decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ShippingCostUsd           decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ShippingCostRmb           decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ShippingCostEgp           decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalCustomsEgp           decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalTakhreegEgp          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalMissingCostEgp       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	FinalTotalCostEgp         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`

	TotalPaidEgp decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	BalanceEgp   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (ShipmentModel) TableName() string {
	return "shipments"
}

// ToDomain converts the persistence model to a domain Shipment.
func (m *ShipmentModel) ToDomain() *shipment.Shipment {
	return &shipment.Shipment{
		BaseAggregateRoot:  m.toAggregateRoot(),
		Code:               m.Code,
		Name:               m.Name,
		Status:             m.Status,
		PurchaseDate:       m.PurchaseDate,
		PurchaseRmbToEgp:   m.PurchaseRmbToEgp,
		PartialDiscountRmb: m.PartialDiscountRmb,
		DiscountNotes:      m.DiscountNotes,
		ShippingCompanyID:  m.ShippingCompanyID,
		Totals: shipment.CostTotals{
			TotalPurchaseCostRmb:      m.TotalPurchaseCostRmb,
			PurchaseCostEgp:           m.PurchaseCostEgp,
			DiscountEgp:               m.DiscountEgp,
			DiscountedPurchaseCostEgp: m.DiscountedPurchaseCostEgp,
			CommissionRmb:             m.CommissionRmb,
			CommissionEgp:             m.CommissionEgp,
			ShippingCostUsd:           m.ShippingCostUsd,
			ShippingCostRmb:           m.ShippingCostRmb,
			ShippingCostEgp:           m.ShippingCostEgp,
			TotalCustomsEgp:           m.TotalCustomsEgp,
			TotalTakhreegEgp:          m.TotalTakhreegEgp,
			TotalMissingCostEgp:       m.TotalMissingCostEgp,
			FinalTotalCostEgp:         m.FinalTotalCostEgp,
		},
		TotalPaidEgp: m.TotalPaidEgp,
		BalanceEgp:   m.BalanceEgp,
	}
}

// FromDomain populates the persistence model from a domain Shipment.
func (m *ShipmentModel) FromDomain(s *shipment.Shipment) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.Code = s.Code
	m.Name = s.Name
	m.Status = s.Status
	m.PurchaseDate = s.PurchaseDate
	m.PurchaseRmbToEgp = s.PurchaseRmbToEgp
	m.PartialDiscountRmb = s.PartialDiscountRmb
	m.DiscountNotes = s.DiscountNotes
	m.ShippingCompanyID = s.ShippingCompanyID
	m.TotalPurchaseCostRmb = s.Totals.TotalPurchaseCostRmb
	m.PurchaseCostEgp = s.Totals.PurchaseCostEgp
	m.DiscountEgp = s.Totals.DiscountEgp
	m.DiscountedPurchaseCostEgp = s.Totals.DiscountedPurchaseCostEgp
	m.CommissionRmb = s.Totals.CommissionRmb
	m.CommissionEgp = s.Totals.CommissionEgp
	m.ShippingCostUsd = s.Totals.ShippingCostUsd
	m.ShippingCostRmb = s.Totals.ShippingCostRmb
	m.ShippingCostEgp = s.Totals.ShippingCostEgp
	m.TotalCustomsEgp = s.Totals.TotalCustomsEgp
	m.TotalTakhreegEgp = s.Totals.TotalTakhreegEgp
	m.TotalMissingCostEgp = s.Totals.TotalMissingCostEgp
	m.FinalTotalCostEgp = s.Totals.FinalTotalCostEgp
	m.TotalPaidEgp = s.TotalPaidEgp
	m.BalanceEgp = s.BalanceEgp
}

// ShipmentModelFromDomain creates a new persistence model from a domain Shipment.
func ShipmentModelFromDomain(s *shipment.Shipment) *ShipmentModel {
	m := &ShipmentModel{}
	m.FromDomain(s)
	return m
}

// ShipmentItemModel is the persistence model for shipment line items.
type ShipmentItemModel struct {
	BaseModel
	ShipmentID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName          string          `gorm:"type:varchar(200);not null"`
	SupplierID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductTypeID        *uuid.UUID      `gorm:"type:uuid"`
	OriginCountry        string          `gorm:"type:varchar(100)"`
	Cartons              int64           `gorm:"not null"`
	PiecesPerCarton      int64           `gorm:"not null"`
	TotalPieces          int64           `gorm:"not null"`
	PricePerPieceRmb     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalPurchaseCostRmb decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CustomsPerPieceEgp   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TakhreegPerCartonEgp decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	MissingPieces        int64           `gorm:"not null;default:0"`
	MissingCostEgp       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (ShipmentItemModel) TableName() string {
	return "shipment_items"
}

// ToDomain converts the persistence model to a domain Item.
func (m *ShipmentItemModel) ToDomain() *shipment.Item {
	return &shipment.Item{
		BaseEntity:           m.BaseModel.ToDomain(),
		ShipmentID:           m.ShipmentID,
		ProductName:          m.ProductName,
		SupplierID:           m.SupplierID,
		ProductTypeID:        m.ProductTypeID,
		OriginCountry:        m.OriginCountry,
		Cartons:              m.Cartons,
		PiecesPerCarton:      m.PiecesPerCarton,
		TotalPieces:          m.TotalPieces,
		PricePerPieceRmb:     m.PricePerPieceRmb,
		TotalPurchaseCostRmb: m.TotalPurchaseCostRmb,
		CustomsPerPieceEgp:   m.CustomsPerPieceEgp,
		TakhreegPerCartonEgp: m.TakhreegPerCartonEgp,
		MissingPieces:        m.MissingPieces,
		MissingCostEgp:       m.MissingCostEgp,
	}
}

// FromDomain populates the persistence model from a domain Item.
func (m *ShipmentItemModel) FromDomain(it *shipment.Item) {
	m.FromDomainBaseEntity(it.BaseEntity)
	m.ShipmentID = it.ShipmentID
	m.ProductName = it.ProductName
	m.SupplierID = it.SupplierID
	m.ProductTypeID = it.ProductTypeID
	m.OriginCountry = it.OriginCountry
	m.Cartons = it.Cartons
	m.PiecesPerCarton = it.PiecesPerCarton
	m.TotalPieces = it.TotalPieces
	m.PricePerPieceRmb = it.PricePerPieceRmb
	m.TotalPurchaseCostRmb = it.TotalPurchaseCostRmb
	m.CustomsPerPieceEgp = it.CustomsPerPieceEgp
	m.TakhreegPerCartonEgp = it.TakhreegPerCartonEgp
	m.MissingPieces = it.MissingPieces
	m.MissingCostEgp = it.MissingCostEgp
}

// ShipmentItemModelFromDomain creates a new persistence model from a domain Item.
func ShipmentItemModelFromDomain(it *shipment.Item) *ShipmentItemModel {
	m := &ShipmentItemModel{}
	m.FromDomain(it)
	return m
}

// ShippingDetailsModel is the persistence model for the one-to-one shipping
// details of a shipment.
type ShippingDetailsModel struct {
	BaseModel
	ShipmentID            uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	CommissionRatePercent decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0"`
	ShippingAreaSqm       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CostPerSqmUsd         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UsdToRmbRate          decimal.Decimal `gorm:"type:decimal(18,6);not null"`
	RmbToEgpRate          decimal.Decimal `gorm:"type:decimal(18,6);not null"`
	RatesUpdatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ShippingDetailsModel) TableName() string {
	return "shipping_details"
}

// ToDomain converts the persistence model to domain ShippingDetails.
func (m *ShippingDetailsModel) ToDomain() *shipment.ShippingDetails {
	return &shipment.ShippingDetails{
		BaseEntity:            m.BaseModel.ToDomain(),
		ShipmentID:            m.ShipmentID,
		CommissionRatePercent: m.CommissionRatePercent,
		ShippingAreaSqm:       m.ShippingAreaSqm,
		CostPerSqmUsd:         m.CostPerSqmUsd,
		UsdToRmbRate:          m.UsdToRmbRate,
		RmbToEgpRate:          m.RmbToEgpRate,
		RatesUpdatedAt:        m.RatesUpdatedAt,
	}
}

// FromDomain populates the persistence model from domain ShippingDetails.
func (m *ShippingDetailsModel) FromDomain(d *shipment.ShippingDetails) {
	m.FromDomainBaseEntity(d.BaseEntity)
	m.ShipmentID = d.ShipmentID
	m.CommissionRatePercent = d.CommissionRatePercent
	m.ShippingAreaSqm = d.ShippingAreaSqm
	m.CostPerSqmUsd = d.CostPerSqmUsd
	m.UsdToRmbRate = d.UsdToRmbRate
	m.RmbToEgpRate = d.RmbToEgpRate
	m.RatesUpdatedAt = d.RatesUpdatedAt
}

// ShippingDetailsModelFromDomain creates a new persistence model from domain ShippingDetails.
func ShippingDetailsModelFromDomain(d *shipment.ShippingDetails) *ShippingDetailsModel {
	m := &ShippingDetailsModel{}
	m.FromDomain(d)
	return m
}

// ShipmentPaymentModel is the persistence model for shipment payments.
// The optional attachment is flattened into nullable columns.
type ShipmentPaymentModel struct {
	AggregateModel
	ShipmentID        uuid.UUID              `gorm:"type:uuid;not null;index"`
	PartyType         shipment.PartyType     `gorm:"type:varchar(30);not null;index"`
	PartyID           uuid.UUID              `gorm:"type:uuid;not null;index"`
	Currency          valueobject.Currency   `gorm:"type:varchar(10);not null"`
	AmountOriginal    decimal.Decimal        `gorm:"type:decimal(18,4);not null"`
	ExchangeRateToEgp decimal.Decimal        `gorm:"type:decimal(18,6);not null;default:0"`
	AmountEgp         decimal.Decimal        `gorm:"type:decimal(18,4);not null"`
	CostComponent     shipment.CostComponent `gorm:"type:varchar(30);not null;index"`
	Method            shipment.PaymentMethod `gorm:"type:varchar(30);not null;index"`
	PaidAt            time.Time              `gorm:"not null;index"`
	Notes             string                 `gorm:"type:text"`

	AttachmentURL          *string `gorm:"type:varchar(1000)"`
	AttachmentOriginalName *string `gorm:"type:varchar(300)"`
	AttachmentMimeType     *string `gorm:"type:varchar(100)"`
	AttachmentSize         *int64
}

// TableName returns the table name for GORM
func (ShipmentPaymentModel) TableName() string {
	return "shipment_payments"
}

// ToDomain converts the persistence model to a domain Payment.
func (m *ShipmentPaymentModel) ToDomain() *shipment.Payment {
	amount, err := valueobject.NewMoney(m.AmountOriginal, m.Currency)
	if err != nil {
		// Rows without a currency read back in the default currency.
		amount = valueobject.NewMoneyEGP(m.AmountOriginal)
	}
	p := &shipment.Payment{
		BaseAggregateRoot: m.toAggregateRoot(),
		ShipmentID:        m.ShipmentID,
		PartyType:         m.PartyType,
		PartyID:           m.PartyID,
		Amount:            amount,
		ExchangeRateToEgp: m.ExchangeRateToEgp,
		AmountEgp:         m.AmountEgp,
		CostComponent:     m.CostComponent,
		Method:            m.Method,
		PaidAt:            m.PaidAt,
		Notes:             m.Notes,
	}
	if m.AttachmentURL != nil {
		a := &shipment.Attachment{URL: *m.AttachmentURL}
		if m.AttachmentOriginalName != nil {
			a.OriginalName = *m.AttachmentOriginalName
		}
		if m.AttachmentMimeType != nil {
			a.MimeType = *m.AttachmentMimeType
		}
		if m.AttachmentSize != nil {
			a.Size = *m.AttachmentSize
		}
		p.Attachment = a
	}
	return p
}

// FromDomain populates the persistence model from a domain Payment.
func (m *ShipmentPaymentModel) FromDomain(p *shipment.Payment) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.ShipmentID = p.ShipmentID
	m.PartyType = p.PartyType
	m.PartyID = p.PartyID
	m.Currency = p.Amount.Currency()
	m.AmountOriginal = p.Amount.Amount()
	m.ExchangeRateToEgp = p.ExchangeRateToEgp
	m.AmountEgp = p.AmountEgp
	m.CostComponent = p.CostComponent
	m.Method = p.Method
	m.PaidAt = p.PaidAt
	m.Notes = p.Notes
	if p.Attachment != nil {
		m.AttachmentURL = &p.Attachment.URL
		m.AttachmentOriginalName = &p.Attachment.OriginalName
		m.AttachmentMimeType = &p.Attachment.MimeType
		m.AttachmentSize = &p.Attachment.Size
	} else {
		m.AttachmentURL = nil
		m.AttachmentOriginalName = nil
		m.AttachmentMimeType = nil
		m.AttachmentSize = nil
	}
}

// ShipmentPaymentModelFromDomain creates a new persistence model from a domain Payment.
func ShipmentPaymentModelFromDomain(p *shipment.Payment) *ShipmentPaymentModel {
	m := &ShipmentPaymentModel{}
	m.FromDomain(p)
	return m
}

// PaymentAllocationModel is the persistence model for append-only payment
// allocation rows.
type PaymentAllocationModel struct {
	BaseModel
	PaymentID       uuid.UUID              `gorm:"type:uuid;not null;index"`
	ShipmentID      uuid.UUID              `gorm:"type:uuid;not null;index"`
	SupplierID      uuid.UUID              `gorm:"type:uuid;not null;index"`
	CostComponent   shipment.CostComponent `gorm:"type:varchar(30);not null"`
	Currency        valueobject.Currency   `gorm:"type:varchar(10);not null"`
	AllocatedAmount decimal.Decimal        `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (PaymentAllocationModel) TableName() string {
	return "payment_allocations"
}

// ToDomain converts the persistence model to a domain PaymentAllocation.
func (m *PaymentAllocationModel) ToDomain() shipment.PaymentAllocation {
	return shipment.PaymentAllocation{
		BaseEntity:      m.BaseModel.ToDomain(),
		PaymentID:       m.PaymentID,
		ShipmentID:      m.ShipmentID,
		SupplierID:      m.SupplierID,
		CostComponent:   m.CostComponent,
		Currency:        m.Currency,
		AllocatedAmount: m.AllocatedAmount,
	}
}

// FromDomain populates the persistence model from a domain PaymentAllocation.
func (m *PaymentAllocationModel) FromDomain(a shipment.PaymentAllocation) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.PaymentID = a.PaymentID
	m.ShipmentID = a.ShipmentID
	m.SupplierID = a.SupplierID
	m.CostComponent = a.CostComponent
	m.Currency = a.Currency
	m.AllocatedAmount = a.AllocatedAmount
}

// PaymentAllocationModelFromDomain creates a new persistence model from a domain PaymentAllocation.
func PaymentAllocationModelFromDomain(a shipment.PaymentAllocation) *PaymentAllocationModel {
	m := &PaymentAllocationModel{}
	m.FromDomain(a)
	return m
}
