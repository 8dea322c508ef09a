package localtrade

import (
	"context"

	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/localtrade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PartyPaymentService records EGP payments against local-trade parties
type PartyPaymentService struct {
	payments localtrade.PartyPaymentRepository
	parties  localtrade.PartyRepository
	logger   *zap.Logger
}

// NewPartyPaymentService creates a new PartyPaymentService
func NewPartyPaymentService(payments localtrade.PartyPaymentRepository, parties localtrade.PartyRepository, logger *zap.Logger) *PartyPaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PartyPaymentService{payments: payments, parties: parties, logger: logger}
}

// Create records a payment against a party
func (s *PartyPaymentService) Create(ctx context.Context, req CreatePartyPaymentRequest) (*PartyPaymentResponse, error) {
	party, err := s.parties.FindByID(ctx, req.PartyID)
	if err != nil {
		return nil, err
	}

	payment, err := localtrade.NewPartyPayment(
		party.ID,
		req.AmountEgp,
		localtrade.PartyPaymentMethod(req.Method),
		req.PaidAt,
		req.Notes,
	)
	if err != nil {
		return nil, err
	}

	if err := s.payments.Save(ctx, payment); err != nil {
		return nil, err
	}

	s.logger.Info("party payment recorded",
		zap.String("payment_id", payment.ID.String()),
		zap.String("party_id", party.ID.String()),
		zap.String("amount_egp", payment.AmountEgp.StringFixed(2)))

	response := ToPartyPaymentResponse(payment)
	return &response, nil
}

// GetByID retrieves a payment by its ID
func (s *PartyPaymentService) GetByID(ctx context.Context, id uuid.UUID) (*PartyPaymentResponse, error) {
	payment, err := s.payments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToPartyPaymentResponse(payment)
	return &response, nil
}

// ListByParty retrieves all payments recorded against a party
func (s *PartyPaymentService) ListByParty(ctx context.Context, partyID uuid.UUID) ([]PartyPaymentResponse, error) {
	payments, err := s.payments.FindByParty(ctx, partyID)
	if err != nil {
		return nil, err
	}

	responses := make([]PartyPaymentResponse, 0, len(payments))
	for _, p := range payments {
		responses = append(responses, ToPartyPaymentResponse(p))
	}
	return responses, nil
}
