package localtrade

import (
	"context"

	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/localtrade"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PartyService manages local-trade counterparties and their computed
// positions. Balances are never stored; every summary and timeline is
// recomputed from the party's full event history.
type PartyService struct {
	parties  localtrade.PartyRepository
	invoices localtrade.InvoiceRepository
	payments localtrade.PartyPaymentRepository
	returns  localtrade.ReturnCaseRepository
	logger   *zap.Logger
}

// NewPartyService creates a new PartyService
func NewPartyService(
	parties localtrade.PartyRepository,
	invoices localtrade.InvoiceRepository,
	payments localtrade.PartyPaymentRepository,
	returns localtrade.ReturnCaseRepository,
	logger *zap.Logger,
) *PartyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PartyService{
		parties:  parties,
		invoices: invoices,
		payments: payments,
		returns:  returns,
		logger:   logger,
	}
}

// Create registers a new party
func (s *PartyService) Create(ctx context.Context, req CreatePartyRequest) (*PartyResponse, error) {
	exists, err := s.parties.ExistsByName(ctx, req.Name, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("CONFLICT", "A party with this name already exists")
	}

	party, err := localtrade.NewParty(
		req.Name,
		localtrade.PartyType(req.Type),
		localtrade.PaymentTerms(req.PaymentTerms),
		localtrade.CreditLimitMode(req.CreditLimitMode),
		req.CreditLimitEgp,
		req.OpeningBalanceEgp,
		localtrade.OpeningBalanceType(req.OpeningBalanceType),
	)
	if err != nil {
		return nil, err
	}
	party.Phone = req.Phone
	party.Address = req.Address
	party.Notes = req.Notes

	if err := s.parties.Save(ctx, party); err != nil {
		return nil, err
	}

	s.logger.Info("party created",
		zap.String("party_id", party.ID.String()),
		zap.String("name", party.Name),
		zap.String("type", string(party.Type)))

	response := ToPartyResponse(party)
	return &response, nil
}

// GetByID retrieves a party by its ID
func (s *PartyService) GetByID(ctx context.Context, id uuid.UUID) (*PartyResponse, error) {
	party, err := s.parties.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToPartyResponse(party)
	return &response, nil
}

// List retrieves parties matching the filter
func (s *PartyService) List(ctx context.Context, filter PartyListFilter) ([]PartyResponse, int64, error) {
	domainFilter := filter.toDomain()

	parties, err := s.parties.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.parties.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PartyResponse, 0, len(parties))
	for i := range parties {
		responses = append(responses, ToPartyResponse(&parties[i]))
	}
	return responses, total, nil
}

// Update changes a party's profile, credit terms or active flag
func (s *PartyService) Update(ctx context.Context, id uuid.UUID, req UpdatePartyRequest) (*PartyResponse, error) {
	party, err := s.parties.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != party.Name {
		exists, err := s.parties.ExistsByName(ctx, *req.Name, &id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("CONFLICT", "A party with this name already exists")
		}
	}

	if req.Name != nil || req.Phone != nil || req.Address != nil || req.Notes != nil {
		err := party.UpdateProfile(
			orCurrent(req.Name, party.Name),
			orCurrent(req.Phone, party.Phone),
			orCurrent(req.Address, party.Address),
			orCurrent(req.Notes, party.Notes),
		)
		if err != nil {
			return nil, err
		}
	}

	if req.PaymentTerms != nil || req.CreditLimitMode != nil || req.CreditLimitEgp != nil {
		terms := party.PaymentTerms
		if req.PaymentTerms != nil {
			terms = localtrade.PaymentTerms(*req.PaymentTerms)
		}
		limitMode := party.CreditLimitMode
		if req.CreditLimitMode != nil {
			limitMode = localtrade.CreditLimitMode(*req.CreditLimitMode)
		}
		limit := party.CreditLimitEgp
		if req.CreditLimitEgp != nil {
			limit = *req.CreditLimitEgp
		}
		if err := party.SetCreditTerms(terms, limitMode, limit); err != nil {
			return nil, err
		}
	}

	if req.Active != nil && *req.Active != party.Active {
		if *req.Active {
			err = party.Activate()
		} else {
			err = party.Deactivate()
		}
		if err != nil {
			return nil, err
		}
	}

	if err := s.parties.Save(ctx, party); err != nil {
		return nil, err
	}

	response := ToPartyResponse(party)
	return &response, nil
}

// Summary returns the party with its recomputed balance and activity counts
func (s *PartyService) Summary(ctx context.Context, id uuid.UUID) (*PartySummaryResponse, error) {
	party, ledger, history, err := s.loadLedger(ctx, id)
	if err != nil {
		return nil, err
	}

	openReturns := 0
	for _, r := range history.returns {
		if !r.IsResolved() {
			openReturns++
		}
	}

	return &PartySummaryResponse{
		Party:             ToPartyResponse(party),
		OpeningBalanceEgp: ledger.OpeningBalanceEgp.StringFixed(2),
		CurrentBalanceEgp: ledger.CurrentBalanceEgp.StringFixed(2),
		InvoiceCount:      len(history.invoices),
		PaymentCount:      len(history.payments),
		OpenReturnCases:   openReturns,
	}, nil
}

// Timeline returns the party's chronological ledger with running balances
func (s *PartyService) Timeline(ctx context.Context, id uuid.UUID) (*TimelineResponse, error) {
	_, ledger, _, err := s.loadLedger(ctx, id)
	if err != nil {
		return nil, err
	}
	response := toTimelineResponse(ledger)
	return &response, nil
}

type partyHistory struct {
	invoices []*localtrade.Invoice
	payments []*localtrade.PartyPayment
	returns  []*localtrade.ReturnCase
}

func (s *PartyService) loadLedger(ctx context.Context, id uuid.UUID) (*localtrade.Party, *localtrade.Ledger, partyHistory, error) {
	var history partyHistory

	party, err := s.parties.FindByID(ctx, id)
	if err != nil {
		return nil, nil, history, err
	}
	history.invoices, err = s.invoices.FindByParty(ctx, id)
	if err != nil {
		return nil, nil, history, err
	}
	history.payments, err = s.payments.FindByParty(ctx, id)
	if err != nil {
		return nil, nil, history, err
	}
	history.returns, err = s.returns.FindByParty(ctx, id)
	if err != nil {
		return nil, nil, history, err
	}

	ledger := localtrade.ComputeLedger(party, history.invoices, history.payments, history.returns)
	return party, ledger, history, nil
}

// orCurrent keeps the current value when the update did not carry the field
func orCurrent(updated *string, current string) string {
	if updated != nil {
		return *updated
	}
	return current
}
