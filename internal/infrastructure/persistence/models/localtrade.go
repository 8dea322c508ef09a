package models

import (
	"time"

	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/localtrade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PartyModel is the persistence model for local-trade parties. The running
// balance is never stored; it is recomputed by the ledger on read.
type PartyModel struct {
	AggregateModel
	Name               string                       `gorm:"type:varchar(200);not null;uniqueIndex"`
	Type               localtrade.PartyType         `gorm:"type:varchar(20);not null;index"`
	Phone              string                       `gorm:"type:varchar(50)"`
	Address            string                       `gorm:"type:varchar(500)"`
	PaymentTerms       localtrade.PaymentTerms      `gorm:"type:varchar(20);not null"`
	CreditLimitMode    localtrade.CreditLimitMode   `gorm:"type:varchar(20);not null"`
	CreditLimitEgp     decimal.Decimal              `gorm:"type:decimal(18,4);not null;default:0"`
	OpeningBalanceEgp  decimal.Decimal              `gorm:"type:decimal(18,4);not null;default:0"`
	OpeningBalanceType localtrade.OpeningBalanceType `gorm:"type:varchar(10);not null;default:'DEBIT'"`
	Notes              string                       `gorm:"type:text"`
	Active             bool                         `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (PartyModel) TableName() string {
	return "local_parties"
}

// ToDomain converts the persistence model to a domain Party.
func (m *PartyModel) ToDomain() *localtrade.Party {
	return &localtrade.Party{
		BaseAggregateRoot:  m.toAggregateRoot(),
		Name:               m.Name,
		Type:               m.Type,
		Phone:              m.Phone,
		Address:            m.Address,
		PaymentTerms:       m.PaymentTerms,
		CreditLimitMode:    m.CreditLimitMode,
		CreditLimitEgp:     m.CreditLimitEgp,
		OpeningBalanceEgp:  m.OpeningBalanceEgp,
		OpeningBalanceType: m.OpeningBalanceType,
		Notes:              m.Notes,
		Active:             m.Active,
	}
}

// FromDomain populates the persistence model from a domain Party.
func (m *PartyModel) FromDomain(p *localtrade.Party) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Name = p.Name
	m.Type = p.Type
	m.Phone = p.Phone
	m.Address = p.Address
	m.PaymentTerms = p.PaymentTerms
	m.CreditLimitMode = p.CreditLimitMode
	m.CreditLimitEgp = p.CreditLimitEgp
	m.OpeningBalanceEgp = p.OpeningBalanceEgp
	m.OpeningBalanceType = p.OpeningBalanceType
	m.Notes = p.Notes
	m.Active = p.Active
}

// PartyModelFromDomain creates a new persistence model from a domain Party.
func PartyModelFromDomain(p *localtrade.Party) *PartyModel {
	m := &PartyModel{}
	m.FromDomain(p)
	return m
}

// InvoiceModel is the persistence model for local-trade invoices.
type InvoiceModel struct {
	AggregateModel
	PartyID   uuid.UUID                `gorm:"type:uuid;not null;index"`
	Number    string                   `gorm:"type:varchar(50);not null;index"`
	TotalEgp  decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	Status    localtrade.InvoiceStatus `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	IssueDate time.Time                `gorm:"not null;index"`
	Notes     string                   `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "local_invoices"
}

// ToDomain converts the persistence model to a domain Invoice.
func (m *InvoiceModel) ToDomain() *localtrade.Invoice {
	return &localtrade.Invoice{
		BaseAggregateRoot: m.toAggregateRoot(),
		PartyID:           m.PartyID,
		Number:            m.Number,
		TotalEgp:          m.TotalEgp,
		Status:            m.Status,
		IssueDate:         m.IssueDate,
		Notes:             m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Invoice.
func (m *InvoiceModel) FromDomain(i *localtrade.Invoice) {
	m.FromDomainAggregateRoot(i.BaseAggregateRoot)
	m.PartyID = i.PartyID
	m.Number = i.Number
	m.TotalEgp = i.TotalEgp
	m.Status = i.Status
	m.IssueDate = i.IssueDate
	m.Notes = i.Notes
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice.
func InvoiceModelFromDomain(i *localtrade.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(i)
	return m
}

// PartyPaymentModel is the persistence model for local-trade party payments.
type PartyPaymentModel struct {
	AggregateModel
	PartyID   uuid.UUID                     `gorm:"type:uuid;not null;index"`
	AmountEgp decimal.Decimal               `gorm:"type:decimal(18,4);not null"`
	Method    localtrade.PartyPaymentMethod `gorm:"type:varchar(30);not null"`
	PaidAt    time.Time                     `gorm:"not null;index"`
	Notes     string                        `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PartyPaymentModel) TableName() string {
	return "party_payments"
}

// ToDomain converts the persistence model to a domain PartyPayment.
func (m *PartyPaymentModel) ToDomain() *localtrade.PartyPayment {
	return &localtrade.PartyPayment{
		BaseAggregateRoot: m.toAggregateRoot(),
		PartyID:           m.PartyID,
		AmountEgp:         m.AmountEgp,
		Method:            m.Method,
		PaidAt:            m.PaidAt,
		Notes:             m.Notes,
	}
}

// FromDomain populates the persistence model from a domain PartyPayment.
func (m *PartyPaymentModel) FromDomain(p *localtrade.PartyPayment) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.PartyID = p.PartyID
	m.AmountEgp = p.AmountEgp
	m.Method = p.Method
	m.PaidAt = p.PaidAt
	m.Notes = p.Notes
}

// PartyPaymentModelFromDomain creates a new persistence model from a domain PartyPayment.
func PartyPaymentModelFromDomain(p *localtrade.PartyPayment) *PartyPaymentModel {
	m := &PartyPaymentModel{}
	m.FromDomain(p)
	return m
}

// ReturnCaseModel is the persistence model for return cases.
type ReturnCaseModel struct {
	AggregateModel
	PartyID        uuid.UUID                   `gorm:"type:uuid;not null;index"`
	InvoiceID      uuid.UUID                   `gorm:"type:uuid;not null;index"`
	Description    string                      `gorm:"type:text;not null"`
	Status         localtrade.ReturnCaseStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	MarginEgp      decimal.Decimal             `gorm:"type:decimal(18,4);not null;default:0"`
	ResolutionNote string                      `gorm:"type:text"`
	ResolvedAt     *time.Time
}

// TableName returns the table name for GORM
func (ReturnCaseModel) TableName() string {
	return "return_cases"
}

// ToDomain converts the persistence model to a domain ReturnCase.
func (m *ReturnCaseModel) ToDomain() *localtrade.ReturnCase {
	return &localtrade.ReturnCase{
		BaseAggregateRoot: m.toAggregateRoot(),
		PartyID:           m.PartyID,
		InvoiceID:         m.InvoiceID,
		Description:       m.Description,
		Status:            m.Status,
		MarginEgp:         m.MarginEgp,
		ResolutionNote:    m.ResolutionNote,
		ResolvedAt:        m.ResolvedAt,
	}
}

// FromDomain populates the persistence model from a domain ReturnCase.
func (m *ReturnCaseModel) FromDomain(r *localtrade.ReturnCase) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.PartyID = r.PartyID
	m.InvoiceID = r.InvoiceID
	m.Description = r.Description
	m.Status = r.Status
	m.MarginEgp = r.MarginEgp
	m.ResolutionNote = r.ResolutionNote
	m.ResolvedAt = r.ResolvedAt
}

// ReturnCaseModelFromDomain creates a new persistence model from a domain ReturnCase.
func ReturnCaseModelFromDomain(r *localtrade.ReturnCase) *ReturnCaseModel {
	m := &ReturnCaseModel{}
	m.FromDomain(r)
	return m
}
