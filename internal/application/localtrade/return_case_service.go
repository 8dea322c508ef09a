package localtrade

import (
	"context"

	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/localtrade"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReturnCaseService tracks return and defect cases against party invoices.
// Only resolved margins enter the party's ledger.
type ReturnCaseService struct {
	returns  localtrade.ReturnCaseRepository
	invoices localtrade.InvoiceRepository
	logger   *zap.Logger
}

// NewReturnCaseService creates a new ReturnCaseService
func NewReturnCaseService(returns localtrade.ReturnCaseRepository, invoices localtrade.InvoiceRepository, logger *zap.Logger) *ReturnCaseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReturnCaseService{returns: returns, invoices: invoices, logger: logger}
}

// Create opens a pending return case against one of the party's invoices
func (s *ReturnCaseService) Create(ctx context.Context, req CreateReturnCaseRequest) (*ReturnCaseResponse, error) {
	invoice, err := s.invoices.FindByID(ctx, req.InvoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.PartyID != req.PartyID {
		return nil, shared.NewValidationError("Invalid return case data", map[string]string{
			"invoice_id": "invoice does not belong to this party",
		})
	}

	returnCase, err := localtrade.NewReturnCase(req.PartyID, req.InvoiceID, req.Description)
	if err != nil {
		return nil, err
	}

	if err := s.returns.Save(ctx, returnCase); err != nil {
		return nil, err
	}

	s.logger.Info("return case opened",
		zap.String("return_case_id", returnCase.ID.String()),
		zap.String("invoice_id", invoice.ID.String()))

	response := ToReturnCaseResponse(returnCase)
	return &response, nil
}

// Resolve closes a pending case with an agreed margin deduction
func (s *ReturnCaseService) Resolve(ctx context.Context, id uuid.UUID, req ResolveReturnCaseRequest) (*ReturnCaseResponse, error) {
	returnCase, err := s.returns.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := returnCase.Resolve(req.MarginEgp, req.ResolutionNote); err != nil {
		return nil, err
	}
	if err := s.returns.Save(ctx, returnCase); err != nil {
		return nil, err
	}

	s.logger.Info("return case resolved",
		zap.String("return_case_id", returnCase.ID.String()),
		zap.String("margin_egp", returnCase.MarginEgp.StringFixed(2)))

	response := ToReturnCaseResponse(returnCase)
	return &response, nil
}

// GetByID retrieves a return case by its ID
func (s *ReturnCaseService) GetByID(ctx context.Context, id uuid.UUID) (*ReturnCaseResponse, error) {
	returnCase, err := s.returns.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToReturnCaseResponse(returnCase)
	return &response, nil
}

// List retrieves return cases matching the filter
func (s *ReturnCaseService) List(ctx context.Context, filter ReturnCaseListFilter) ([]ReturnCaseResponse, error) {
	cases, err := s.returns.FindAll(ctx, filter.toDomain())
	if err != nil {
		return nil, err
	}

	responses := make([]ReturnCaseResponse, 0, len(cases))
	for _, r := range cases {
		responses = append(responses, ToReturnCaseResponse(r))
	}
	return responses, nil
}
