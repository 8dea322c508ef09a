package partner

import (
	"strings"
	"time"

	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shared"
)

// Supplier represents a goods supplier in the partner context. Suppliers are
// referenced by shipment line items and by payments; names are unique among
// suppliers (enforced at the repository level).
type Supplier struct {
	shared.BaseAggregateRoot
	Name        string `json:"name"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	Country     string `json:"country"`
	Notes       string `json:"notes"`
	Active      bool   `json:"active"`
}

// NewSupplier creates a new active supplier
func NewSupplier(name string) (*Supplier, error) {
	if err := validatePartnerName(name); err != nil {
		return nil, err
	}

	s := &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Active:            true,
	}
	s.AddDomainEvent(NewSupplierCreatedEvent(s))
	return s, nil
}

// Rename changes the supplier's display name
func (s *Supplier) Rename(name string) error {
	if err := validatePartnerName(name); err != nil {
		return err
	}

	s.Name = strings.TrimSpace(name)
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// SetContact sets the supplier's contact information
func (s *Supplier) SetContact(contactName, phone, email, address, country string) error {
	if err := validateContact(contactName, phone, email, address); err != nil {
		return err
	}

	s.ContactName = contactName
	s.Phone = phone
	s.Email = email
	s.Address = address
	s.Country = country
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// SetNotes sets free-form notes
func (s *Supplier) SetNotes(notes string) {
	s.Notes = notes
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// Deactivate soft-deletes the supplier. Referenced suppliers are never
// hard-deleted; they stay resolvable from historical shipments.
func (s *Supplier) Deactivate() error {
	if !s.Active {
		return shared.NewDomainError("INVALID_STATE", "Supplier is already inactive")
	}

	s.Active = false
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// Activate re-activates the supplier
func (s *Supplier) Activate() error {
	if s.Active {
		return shared.NewDomainError("INVALID_STATE", "Supplier is already active")
	}

	s.Active = true
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

func validatePartnerName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("Invalid name", map[string]string{"name": "name is required"})
	}
	if len(name) > 200 {
		return shared.NewValidationError("Invalid name", map[string]string{"name": "name cannot exceed 200 characters"})
	}
	return nil
}

func validateContact(contactName, phone, email, address string) error {
	fields := map[string]string{}
	if len(contactName) > 100 {
		fields["contact_name"] = "contact name cannot exceed 100 characters"
	}
	if len(phone) > 50 {
		fields["phone"] = "phone cannot exceed 50 characters"
	}
	if email != "" && !strings.Contains(email, "@") {
		fields["email"] = "invalid email address"
	}
	if len(address) > 500 {
		fields["address"] = "address cannot exceed 500 characters"
	}
	if len(fields) > 0 {
		return shared.NewValidationError("Invalid contact data", fields)
	}
	return nil
}
