package partner

import (
	"strings"
	"time"

	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ShippingCompany represents a freight forwarder handling shipments. Names
// are unique among shipping companies, independently of supplier names.
type ShippingCompany struct {
	shared.BaseAggregateRoot
	Name                  string          `json:"name"`
	ContactName           string          `json:"contact_name"`
	Phone                 string          `json:"phone"`
	Email                 string          `json:"email"`
	Address               string          `json:"address"`
	Country               string          `json:"country"`
	DefaultCommissionRate decimal.Decimal `json:"default_commission_rate"`
	Notes                 string          `json:"notes"`
	Active                bool            `json:"active"`
}

// NewShippingCompany creates a new active shipping company
func NewShippingCompany(name string) (*ShippingCompany, error) {
	if err := validatePartnerName(name); err != nil {
		return nil, err
	}

	c := &ShippingCompany{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Active:            true,
	}
	c.AddDomainEvent(NewShippingCompanyCreatedEvent(c))
	return c, nil
}

// Rename changes the shipping company's display name
func (c *ShippingCompany) Rename(name string) error {
	if err := validatePartnerName(name); err != nil {
		return err
	}

	c.Name = strings.TrimSpace(name)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// SetContact sets the shipping company's contact information
func (c *ShippingCompany) SetContact(contactName, phone, email, address, country string) error {
	if err := validateContact(contactName, phone, email, address); err != nil {
		return err
	}

	c.ContactName = contactName
	c.Phone = phone
	c.Email = email
	c.Address = address
	c.Country = country
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// SetDefaultCommissionRate sets the commission percentage offered to new
// shipments as a prefill; each shipment snapshots its own rate.
func (c *ShippingCompany) SetDefaultCommissionRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewValidationError("Invalid commission rate", map[string]string{
			"default_commission_rate": "commission rate must be between 0 and 100",
		})
	}

	c.DefaultCommissionRate = rate
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// SetNotes sets free-form notes
func (c *ShippingCompany) SetNotes(notes string) {
	c.Notes = notes
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Deactivate soft-deletes the shipping company
func (c *ShippingCompany) Deactivate() error {
	if !c.Active {
		return shared.NewDomainError("INVALID_STATE", "Shipping company is already inactive")
	}

	c.Active = false
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// Activate re-activates the shipping company
func (c *ShippingCompany) Activate() error {
	if c.Active {
		return shared.NewDomainError("INVALID_STATE", "Shipping company is already active")
	}

	c.Active = true
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}
