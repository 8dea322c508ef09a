package localtrade

import (
	"time"

	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/localtrade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreatePartyRequest registers a local-trade counterparty
type CreatePartyRequest struct {
	Name               string          `json:"name" binding:"required,min=1,max=200"`
	Type               string          `json:"type" binding:"required,oneof=MERCHANT CUSTOMER BOTH"`
	Phone              string          `json:"phone" binding:"max=50"`
	Address            string          `json:"address" binding:"max=500"`
	PaymentTerms       string          `json:"payment_terms" binding:"required,oneof=CASH CREDIT"`
	CreditLimitMode    string          `json:"credit_limit_mode" binding:"required,oneof=UNLIMITED LIMITED"`
	CreditLimitEgp     decimal.Decimal `json:"credit_limit_egp"`
	OpeningBalanceEgp  decimal.Decimal `json:"opening_balance_egp"`
	OpeningBalanceType string          `json:"opening_balance_type" binding:"required,oneof=DEBIT CREDIT"`
	Notes              string          `json:"notes"`
}

// UpdatePartyRequest updates a party. Nil fields keep their current value.
type UpdatePartyRequest struct {
	Name            *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Phone           *string          `json:"phone" binding:"omitempty,max=50"`
	Address         *string          `json:"address" binding:"omitempty,max=500"`
	Notes           *string          `json:"notes"`
	PaymentTerms    *string          `json:"payment_terms" binding:"omitempty,oneof=CASH CREDIT"`
	CreditLimitMode *string          `json:"credit_limit_mode" binding:"omitempty,oneof=UNLIMITED LIMITED"`
	CreditLimitEgp  *decimal.Decimal `json:"credit_limit_egp"`
	Active          *bool            `json:"active"`
}

// PartyListFilter represents filter options for party lists
type PartyListFilter struct {
	Type       string `form:"type" binding:"omitempty,oneof=MERCHANT CUSTOMER BOTH"`
	Search     string `form:"search"`
	ActiveOnly bool   `form:"active_only"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size" binding:"omitempty,max=100"`
}

func (f PartyListFilter) toDomain() localtrade.PartyFilter {
	domainFilter := localtrade.PartyFilter{
		Search:     f.Search,
		ActiveOnly: f.ActiveOnly,
		Page:       f.Page,
		PageSize:   f.PageSize,
	}
	if domainFilter.Page <= 0 {
		domainFilter.Page = 1
	}
	if domainFilter.PageSize <= 0 {
		domainFilter.PageSize = 20
	}
	if f.Type != "" {
		partyType := localtrade.PartyType(f.Type)
		domainFilter.Type = &partyType
	}
	return domainFilter
}

// PartyResponse represents a party in API responses
type PartyResponse struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Type               string    `json:"type"`
	Phone              string    `json:"phone"`
	Address            string    `json:"address"`
	PaymentTerms       string    `json:"payment_terms"`
	CreditLimitMode    string    `json:"credit_limit_mode"`
	CreditLimitEgp     string    `json:"credit_limit_egp"`
	OpeningBalanceEgp  string    `json:"opening_balance_egp"`
	OpeningBalanceType string    `json:"opening_balance_type"`
	Notes              string    `json:"notes"`
	Active             bool      `json:"active"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ToPartyResponse converts a domain party to its response form
func ToPartyResponse(p *localtrade.Party) PartyResponse {
	return PartyResponse{
		ID:                 p.ID,
		Name:               p.Name,
		Type:               string(p.Type),
		Phone:              p.Phone,
		Address:            p.Address,
		PaymentTerms:       string(p.PaymentTerms),
		CreditLimitMode:    string(p.CreditLimitMode),
		CreditLimitEgp:     p.CreditLimitEgp.StringFixed(2),
		OpeningBalanceEgp:  p.OpeningBalanceEgp.StringFixed(2),
		OpeningBalanceType: string(p.OpeningBalanceType),
		Notes:              p.Notes,
		Active:             p.Active,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

// PartySummaryResponse is the party's computed position: the signed opening
// balance and the current balance recomputed from the full event history.
type PartySummaryResponse struct {
	Party             PartyResponse `json:"party"`
	OpeningBalanceEgp string        `json:"opening_balance_egp"`
	CurrentBalanceEgp string        `json:"current_balance_egp"`
	InvoiceCount      int           `json:"invoice_count"`
	PaymentCount      int           `json:"payment_count"`
	OpenReturnCases   int           `json:"open_return_cases"`
}

// LedgerEntryResponse is one row of a party's chronological timeline
type LedgerEntryResponse struct {
	Kind        string    `json:"kind"`
	ReferenceID uuid.UUID `json:"reference_id"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	DeltaEgp    string    `json:"delta_egp"`
	BalanceEgp  string    `json:"balance_egp"`
}

// TimelineResponse is the party's full ledger with running balances
type TimelineResponse struct {
	PartyID           uuid.UUID             `json:"party_id"`
	OpeningBalanceEgp string                `json:"opening_balance_egp"`
	Entries           []LedgerEntryResponse `json:"entries"`
	CurrentBalanceEgp string                `json:"current_balance_egp"`
}

func toTimelineResponse(l *localtrade.Ledger) TimelineResponse {
	resp := TimelineResponse{
		PartyID:           l.PartyID,
		OpeningBalanceEgp: l.OpeningBalanceEgp.StringFixed(2),
		Entries:           make([]LedgerEntryResponse, 0, len(l.Entries)),
		CurrentBalanceEgp: l.CurrentBalanceEgp.StringFixed(2),
	}
	for _, e := range l.Entries {
		resp.Entries = append(resp.Entries, LedgerEntryResponse{
			Kind:        string(e.Kind),
			ReferenceID: e.ReferenceID,
			Date:        e.Date,
			Description: e.Description,
			DeltaEgp:    e.DeltaEgp.StringFixed(2),
			BalanceEgp:  e.BalanceEgp.StringFixed(2),
		})
	}
	return resp
}

// CreateInvoiceRequest creates a draft invoice against a party
type CreateInvoiceRequest struct {
	PartyID   uuid.UUID       `json:"party_id" binding:"required"`
	Number    string          `json:"number" binding:"required,min=1,max=50"`
	TotalEgp  decimal.Decimal `json:"total_egp" binding:"required"`
	IssueDate time.Time       `json:"issue_date"`
	Notes     string          `json:"notes"`
}

// InvoiceListFilter represents filter options for invoice lists
type InvoiceListFilter struct {
	PartyID  *uuid.UUID `form:"party_id"`
	Status   string     `form:"status" binding:"omitempty,oneof=DRAFT ISSUED RECEIVED"`
	FromDate *time.Time `form:"from_date" time_format:"2006-01-02"`
	ToDate   *time.Time `form:"to_date" time_format:"2006-01-02"`
}

func (f InvoiceListFilter) toDomain() localtrade.InvoiceFilter {
	domainFilter := localtrade.InvoiceFilter{
		PartyID:  f.PartyID,
		FromDate: f.FromDate,
		ToDate:   f.ToDate,
	}
	if f.Status != "" {
		status := localtrade.InvoiceStatus(f.Status)
		domainFilter.Status = &status
	}
	return domainFilter
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID        uuid.UUID `json:"id"`
	PartyID   uuid.UUID `json:"party_id"`
	Number    string    `json:"number"`
	TotalEgp  string    `json:"total_egp"`
	Status    string    `json:"status"`
	IssueDate time.Time `json:"issue_date"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToInvoiceResponse converts a domain invoice to its response form
func ToInvoiceResponse(i *localtrade.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:        i.ID,
		PartyID:   i.PartyID,
		Number:    i.Number,
		TotalEgp:  i.TotalEgp.StringFixed(2),
		Status:    string(i.Status),
		IssueDate: i.IssueDate,
		Notes:     i.Notes,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

// CreatePartyPaymentRequest records an EGP payment against a party
type CreatePartyPaymentRequest struct {
	PartyID   uuid.UUID       `json:"party_id" binding:"required"`
	AmountEgp decimal.Decimal `json:"amount_egp" binding:"required"`
	Method    string          `json:"method" binding:"required,oneof=CASH WALLET BANK_TRANSFER OTHER"`
	PaidAt    time.Time       `json:"paid_at"`
	Notes     string          `json:"notes"`
}

// PartyPaymentResponse represents a party payment in API responses
type PartyPaymentResponse struct {
	ID        uuid.UUID `json:"id"`
	PartyID   uuid.UUID `json:"party_id"`
	AmountEgp string    `json:"amount_egp"`
	Method    string    `json:"method"`
	PaidAt    time.Time `json:"paid_at"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// ToPartyPaymentResponse converts a domain party payment to its response form
func ToPartyPaymentResponse(p *localtrade.PartyPayment) PartyPaymentResponse {
	return PartyPaymentResponse{
		ID:        p.ID,
		PartyID:   p.PartyID,
		AmountEgp: p.AmountEgp.StringFixed(2),
		Method:    string(p.Method),
		PaidAt:    p.PaidAt,
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
	}
}

// CreateReturnCaseRequest opens a pending return case against an invoice
type CreateReturnCaseRequest struct {
	PartyID     uuid.UUID `json:"party_id" binding:"required"`
	InvoiceID   uuid.UUID `json:"invoice_id" binding:"required"`
	Description string    `json:"description" binding:"required,min=1,max=1000"`
}

// ResolveReturnCaseRequest closes a return case with an agreed margin
type ResolveReturnCaseRequest struct {
	MarginEgp      decimal.Decimal `json:"margin_egp"`
	ResolutionNote string          `json:"resolution_note" binding:"max=1000"`
}

// ReturnCaseListFilter represents filter options for return case lists
type ReturnCaseListFilter struct {
	PartyID   *uuid.UUID `form:"party_id"`
	InvoiceID *uuid.UUID `form:"invoice_id"`
	Status    string     `form:"status" binding:"omitempty,oneof=PENDING RESOLVED"`
}

func (f ReturnCaseListFilter) toDomain() localtrade.ReturnCaseFilter {
	domainFilter := localtrade.ReturnCaseFilter{
		PartyID:   f.PartyID,
		InvoiceID: f.InvoiceID,
	}
	if f.Status != "" {
		status := localtrade.ReturnCaseStatus(f.Status)
		domainFilter.Status = &status
	}
	return domainFilter
}

// ReturnCaseResponse represents a return case in API responses
type ReturnCaseResponse struct {
	ID             uuid.UUID  `json:"id"`
	PartyID        uuid.UUID  `json:"party_id"`
	InvoiceID      uuid.UUID  `json:"invoice_id"`
	Description    string     `json:"description"`
	Status         string     `json:"status"`
	MarginEgp      string     `json:"margin_egp"`
	ResolutionNote string     `json:"resolution_note"`
	ResolvedAt     *time.Time `json:"resolved_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ToReturnCaseResponse converts a domain return case to its response form
func ToReturnCaseResponse(r *localtrade.ReturnCase) ReturnCaseResponse {
	return ReturnCaseResponse{
		ID:             r.ID,
		PartyID:        r.PartyID,
		InvoiceID:      r.InvoiceID,
		Description:    r.Description,
		Status:         string(r.Status),
		MarginEgp:      r.MarginEgp.StringFixed(2),
		ResolutionNote: r.ResolutionNote,
		ResolvedAt:     r.ResolvedAt,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}
