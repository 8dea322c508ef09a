package localtrade

import (
	"strings"
	"time"

	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PartyType classifies a local-trade counterparty
type PartyType string

const (
	PartyTypeMerchant PartyType = "MERCHANT"
	PartyTypeCustomer PartyType = "CUSTOMER"
	PartyTypeBoth     PartyType = "BOTH"
)

// IsValid checks if the party type is valid
func (p PartyType) IsValid() bool {
	return p == PartyTypeMerchant || p == PartyTypeCustomer || p == PartyTypeBoth
}

// PaymentTerms is how the party settles invoices
type PaymentTerms string

const (
	PaymentTermsCash   PaymentTerms = "CASH"
	PaymentTermsCredit PaymentTerms = "CREDIT"
)

// IsValid checks if the payment terms value is valid
func (p PaymentTerms) IsValid() bool {
	return p == PaymentTermsCash || p == PaymentTermsCredit
}

// CreditLimitMode controls whether a credit party has a cap
type CreditLimitMode string

const (
	CreditLimitUnlimited CreditLimitMode = "UNLIMITED"
	CreditLimitLimited   CreditLimitMode = "LIMITED"
)

// IsValid checks if the credit limit mode is valid
func (m CreditLimitMode) IsValid() bool {
	return m == CreditLimitUnlimited || m == CreditLimitLimited
}

// OpeningBalanceType is the direction of a party's opening balance.
// Debit means the party owes the business; credit means the business owes
// the party. The ledger signs opening balances accordingly: debit positive,
// credit negative.
type OpeningBalanceType string

const (
	OpeningBalanceDebit  OpeningBalanceType = "DEBIT"  // عليه
	OpeningBalanceCredit OpeningBalanceType = "CREDIT" // له
)

// IsValid checks if the opening balance type is valid
func (t OpeningBalanceType) IsValid() bool {
	return t == OpeningBalanceDebit || t == OpeningBalanceCredit
}

// Party represents a local-trade counterparty: a merchant the business buys
// from, a customer it sells to, or both. The party's current balance is never
// stored; it is recomputed from the full event history by the ledger.
type Party struct {
	shared.BaseAggregateRoot
	Name               string             `json:"name"`
	Type               PartyType          `json:"type"`
	Phone              string             `json:"phone"`
	Address            string             `json:"address"`
	PaymentTerms       PaymentTerms       `json:"payment_terms"`
	CreditLimitMode    CreditLimitMode    `json:"credit_limit_mode"`
	CreditLimitEgp     decimal.Decimal    `json:"credit_limit_egp"`
	OpeningBalanceEgp  decimal.Decimal    `json:"opening_balance_egp"`
	OpeningBalanceType OpeningBalanceType `json:"opening_balance_type"`
	Notes              string             `json:"notes"`
	Active             bool               `json:"active"`
}

// NewParty creates a new active local-trade party
func NewParty(
	name string,
	partyType PartyType,
	terms PaymentTerms,
	limitMode CreditLimitMode,
	creditLimitEgp decimal.Decimal,
	openingBalanceEgp decimal.Decimal,
	openingBalanceType OpeningBalanceType,
) (*Party, error) {
	fields := map[string]string{}
	name = strings.TrimSpace(name)
	if name == "" {
		fields["name"] = "name is required"
	}
	if len(name) > 200 {
		fields["name"] = "name cannot exceed 200 characters"
	}
	if !partyType.IsValid() {
		fields["type"] = "type must be MERCHANT, CUSTOMER or BOTH"
	}
	if !terms.IsValid() {
		fields["payment_terms"] = "payment terms must be CASH or CREDIT"
	}
	if !limitMode.IsValid() {
		fields["credit_limit_mode"] = "credit limit mode must be UNLIMITED or LIMITED"
	}
	if limitMode == CreditLimitLimited && creditLimitEgp.LessThanOrEqual(decimal.Zero) {
		fields["credit_limit_egp"] = "limited credit requires a positive limit"
	}
	if openingBalanceEgp.IsNegative() {
		fields["opening_balance_egp"] = "opening balance is an unsigned amount; the type carries the direction"
	}
	if !openingBalanceType.IsValid() {
		fields["opening_balance_type"] = "opening balance type must be DEBIT or CREDIT"
	}
	if len(fields) > 0 {
		return nil, shared.NewValidationError("Invalid party data", fields)
	}

	if limitMode == CreditLimitUnlimited {
		creditLimitEgp = decimal.Zero
	}

	p := &Party{
		BaseAggregateRoot:  shared.NewBaseAggregateRoot(),
		Name:               name,
		Type:               partyType,
		PaymentTerms:       terms,
		CreditLimitMode:    limitMode,
		CreditLimitEgp:     creditLimitEgp,
		OpeningBalanceEgp:  openingBalanceEgp,
		OpeningBalanceType: openingBalanceType,
		Active:             true,
	}
	return p, nil
}

// SignedOpeningBalance returns the opening balance with the ledger sign
// applied: debit positive, credit negative.
func (p *Party) SignedOpeningBalance() decimal.Decimal {
	if p.OpeningBalanceType == OpeningBalanceCredit {
		return p.OpeningBalanceEgp.Neg()
	}
	return p.OpeningBalanceEgp
}

// UpdateProfile updates the party's descriptive fields
func (p *Party) UpdateProfile(name, phone, address, notes string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("Invalid party data", map[string]string{"name": "name is required"})
	}

	p.Name = name
	p.Phone = phone
	p.Address = address
	p.Notes = notes
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// SetCreditTerms updates payment terms and the credit limit
func (p *Party) SetCreditTerms(terms PaymentTerms, limitMode CreditLimitMode, creditLimitEgp decimal.Decimal) error {
	if !terms.IsValid() || !limitMode.IsValid() {
		return shared.NewValidationError("Invalid credit terms", map[string]string{"payment_terms": "unknown terms or limit mode"})
	}
	if limitMode == CreditLimitLimited && creditLimitEgp.LessThanOrEqual(decimal.Zero) {
		return shared.NewValidationError("Invalid credit terms", map[string]string{"credit_limit_egp": "limited credit requires a positive limit"})
	}

	p.PaymentTerms = terms
	p.CreditLimitMode = limitMode
	if limitMode == CreditLimitUnlimited {
		p.CreditLimitEgp = decimal.Zero
	} else {
		p.CreditLimitEgp = creditLimitEgp
	}
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// Deactivate soft-deletes the party
func (p *Party) Deactivate() error {
	if !p.Active {
		return shared.NewDomainError("INVALID_STATE", "Party is already inactive")
	}

	p.Active = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// Activate re-activates the party
func (p *Party) Activate() error {
	if p.Active {
		return shared.NewDomainError("INVALID_STATE", "Party is already active")
	}

	p.Active = true
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}
