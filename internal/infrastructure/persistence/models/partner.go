package models

import (
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// SupplierModel is the persistence model for the Supplier aggregate root.
type SupplierModel struct {
	AggregateModel
	Name        string `gorm:"type:varchar(200);not null;uniqueIndex"`
	ContactName string `gorm:"type:varchar(100)"`
	Phone       string `gorm:"type:varchar(50)"`
	Email       string `gorm:"type:varchar(200)"`
	Address     string `gorm:"type:varchar(500)"`
	Country     string `gorm:"type:varchar(100)"`
	Notes       string `gorm:"type:text"`
	Active      bool   `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (SupplierModel) TableName() string {
	return "suppliers"
}

// ToDomain converts the persistence model to a domain Supplier.
func (m *SupplierModel) ToDomain() *partner.Supplier {
	return &partner.Supplier{
		BaseAggregateRoot: m.toAggregateRoot(),
		Name:              m.Name,
		ContactName:       m.ContactName,
		Phone:             m.Phone,
		Email:             m.Email,
		Address:           m.Address,
		Country:           m.Country,
		Notes:             m.Notes,
		Active:            m.Active,
	}
}

// FromDomain populates the persistence model from a domain Supplier.
func (m *SupplierModel) FromDomain(s *partner.Supplier) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.Name = s.Name
	m.ContactName = s.ContactName
	m.Phone = s.Phone
	m.Email = s.Email
	m.Address = s.Address
	m.Country = s.Country
	m.Notes = s.Notes
	m.Active = s.Active
}

// SupplierModelFromDomain creates a new persistence model from a domain Supplier.
func SupplierModelFromDomain(s *partner.Supplier) *SupplierModel {
	m := &SupplierModel{}
	m.FromDomain(s)
	return m
}

// ShippingCompanyModel is the persistence model for the ShippingCompany
// aggregate root.
type ShippingCompanyModel struct {
	AggregateModel
	Name                  string          `gorm:"type:varchar(200);not null;uniqueIndex"`
	ContactName           string          `gorm:"type:varchar(100)"`
	Phone                 string          `gorm:"type:varchar(50)"`
	Email                 string          `gorm:"type:varchar(200)"`
	Address               string          `gorm:"type:varchar(500)"`
	Country               string          `gorm:"type:varchar(100)"`
	DefaultCommissionRate decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0"`
	Notes                 string          `gorm:"type:text"`
	Active                bool            `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (ShippingCompanyModel) TableName() string {
	return "shipping_companies"
}

// ToDomain converts the persistence model to a domain ShippingCompany.
func (m *ShippingCompanyModel) ToDomain() *partner.ShippingCompany {
	return &partner.ShippingCompany{
		BaseAggregateRoot:     m.toAggregateRoot(),
		Name:                  m.Name,
		ContactName:           m.ContactName,
		Phone:                 m.Phone,
		Email:                 m.Email,
		Address:               m.Address,
		Country:               m.Country,
		DefaultCommissionRate: m.DefaultCommissionRate,
		Notes:                 m.Notes,
		Active:                m.Active,
	}
}

// FromDomain populates the persistence model from a domain ShippingCompany.
func (m *ShippingCompanyModel) FromDomain(c *partner.ShippingCompany) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
	m.ContactName = c.ContactName
	m.Phone = c.Phone
	m.Email = c.Email
	m.Address = c.Address
	m.Country = c.Country
	m.DefaultCommissionRate = c.DefaultCommissionRate
	m.Notes = c.Notes
	m.Active = c.Active
}

// ShippingCompanyModelFromDomain creates a new persistence model from a domain ShippingCompany.
func ShippingCompanyModelFromDomain(c *partner.ShippingCompany) *ShippingCompanyModel {
	m := &ShippingCompanyModel{}
	m.FromDomain(c)
	return m
}
