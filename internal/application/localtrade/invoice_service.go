package localtrade

import (
	"context"

	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/localtrade"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InvoiceService manages local-trade invoices. Invoices start as drafts and
// only enter the party's ledger once issued.
type InvoiceService struct {
	invoices localtrade.InvoiceRepository
	parties  localtrade.PartyRepository
	logger   *zap.Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(invoices localtrade.InvoiceRepository, parties localtrade.PartyRepository, logger *zap.Logger) *InvoiceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoiceService{invoices: invoices, parties: parties, logger: logger}
}

// Create creates a draft invoice against a party
func (s *InvoiceService) Create(ctx context.Context, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	party, err := s.parties.FindByID(ctx, req.PartyID)
	if err != nil {
		return nil, err
	}
	if !party.Active {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot invoice an inactive party")
	}

	invoice, err := localtrade.NewInvoice(req.PartyID, req.Number, req.TotalEgp, req.IssueDate)
	if err != nil {
		return nil, err
	}
	invoice.Notes = req.Notes

	if err := s.invoices.Save(ctx, invoice); err != nil {
		return nil, err
	}

	s.logger.Info("invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("party_id", party.ID.String()),
		zap.String("number", invoice.Number))

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// Issue moves a draft invoice into the party's ledger
func (s *InvoiceService) Issue(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := invoice.Issue(); err != nil {
		return nil, err
	}
	if err := s.invoices.Save(ctx, invoice); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// MarkReceived confirms the goods behind an issued invoice were received
func (s *InvoiceService) MarkReceived(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := invoice.MarkReceived(); err != nil {
		return nil, err
	}
	if err := s.invoices.Save(ctx, invoice); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// GetByID retrieves an invoice by its ID
func (s *InvoiceService) GetByID(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// List retrieves invoices matching the filter
func (s *InvoiceService) List(ctx context.Context, filter InvoiceListFilter) ([]InvoiceResponse, error) {
	invoices, err := s.invoices.FindAll(ctx, filter.toDomain())
	if err != nil {
		return nil, err
	}

	responses := make([]InvoiceResponse, 0, len(invoices))
	for _, i := range invoices {
		responses = append(responses, ToInvoiceResponse(i))
	}
	return responses, nil
}
