package shipment

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/partner"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shared"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shared/valueobject"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shipment"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/infrastructure/cache"
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/infrastructure/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// idempotencyTTL is how long a replayed Idempotency-Key resolves to its
// original payment
const idempotencyTTL = 24 * time.Hour

// PaymentService records payments against shipments, runs the auto-allocation
// flow, and keeps the shipment's paid total in sync.
type PaymentService struct {
	payments    shipment.PaymentRepository
	allocations shipment.AllocationRepository
	shipments   shipment.Repository
	items       shipment.ItemRepository
	suppliers   partner.SupplierRepository
	companies   partner.ShippingCompanyRepository
	idempotency cache.IdempotencyStore
	store       storage.ObjectStorage
	tx          shared.TransactionManager
	logger      *zap.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	payments shipment.PaymentRepository,
	allocations shipment.AllocationRepository,
	shipments shipment.Repository,
	items shipment.ItemRepository,
	suppliers partner.SupplierRepository,
	companies partner.ShippingCompanyRepository,
	idempotency cache.IdempotencyStore,
	store storage.ObjectStorage,
	tx shared.TransactionManager,
	logger *zap.Logger,
) *PaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{
		payments:    payments,
		allocations: allocations,
		shipments:   shipments,
		items:       items,
		suppliers:   suppliers,
		companies:   companies,
		idempotency: idempotency,
		store:       store,
		tx:          tx,
		logger:      logger,
	}
}

// Create records a payment. When auto-allocation is requested and the payment
// qualifies, the allocation rows and the payment commit in one transaction;
// the shipment's paid total is recomputed either way. A replayed
// Idempotency-Key returns the payment the first submission created; a key
// whose attempt failed before commit stays free for a retry.
func (s *PaymentService) Create(ctx context.Context, req CreatePaymentRequest) (*PaymentResponse, error) {
	if req.IdempotencyKey != "" {
		storedID, found, err := s.idempotency.Lookup(ctx, req.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if found {
			originalID, err := uuid.Parse(storedID)
			if err != nil {
				return nil, fmt.Errorf("corrupt idempotency entry %q: %w", req.IdempotencyKey, err)
			}
			s.logger.Info("payment submission replayed",
				zap.String("payment_id", storedID),
				zap.String("idempotency_key", req.IdempotencyKey))
			return s.GetByID(ctx, originalID)
		}
	}

	sh, err := s.shipments.FindByID(ctx, req.ShipmentID)
	if err != nil {
		return nil, err
	}
	if sh.Status.IsTerminal() {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot record a payment against an archived shipment")
	}

	partyType := shipment.PartyType(req.PartyType)
	if err := s.verifyParty(ctx, partyType, req.PartyID); err != nil {
		return nil, err
	}

	payment, err := shipment.NewPayment(
		req.ShipmentID,
		partyType,
		req.PartyID,
		valueobject.Currency(req.Currency),
		req.AmountOriginal,
		req.ExchangeRateToEgp,
		shipment.CostComponent(req.CostComponent),
		shipment.PaymentMethod(req.Method),
		req.PaidAt,
		req.Notes,
	)
	if err != nil {
		return nil, err
	}

	var created []shipment.PaymentAllocation
	if req.AutoAllocate {
		created, err = s.buildAllocations(ctx, payment, sh)
		if err != nil {
			return nil, err
		}
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.payments.Save(ctx, payment); err != nil {
			return err
		}
		if len(created) > 0 {
			if err := s.allocations.SaveAll(ctx, created); err != nil {
				return err
			}
		}

		all, err := s.payments.FindByShipment(ctx, sh.ID)
		if err != nil {
			return err
		}
		sh.ApplyPaymentTotal(sumPaidEgp(all))
		return s.shipments.SaveWithLock(ctx, sh)
	})
	if err != nil {
		return nil, err
	}

	if req.IdempotencyKey != "" {
		if err := s.idempotency.Remember(ctx, req.IdempotencyKey, payment.ID.String(), idempotencyTTL); err != nil {
			s.logger.Warn("failed to remember idempotency key",
				zap.String("idempotency_key", req.IdempotencyKey),
				zap.Error(err))
		}
	}

	s.logger.Info("payment recorded",
		zap.String("payment_id", payment.ID.String()),
		zap.String("shipment_id", sh.ID.String()),
		zap.String("component", req.CostComponent),
		zap.Int("allocations", len(created)))

	response := ToPaymentResponse(payment, created)
	return &response, nil
}

// GetByID retrieves a payment with its allocation rows
func (s *PaymentService) GetByID(ctx context.Context, id uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.payments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	allocations, err := s.allocations.FindByPayment(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToPaymentResponse(payment, allocations)
	return &response, nil
}

// List retrieves payments matching the filter
func (s *PaymentService) List(ctx context.Context, filter PaymentListFilter) ([]PaymentResponse, error) {
	payments, err := s.payments.FindAll(ctx, filter.toDomain())
	if err != nil {
		return nil, err
	}

	responses := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		responses = append(responses, ToPaymentResponse(p, nil))
	}
	return responses, nil
}

// AttachmentUpload carries an incoming receipt file
type AttachmentUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// AttachReceipt uploads a receipt to object storage and finalizes it on the
// payment. A payment carries at most one attachment.
func (s *PaymentService) AttachReceipt(ctx context.Context, paymentID uuid.UUID, upload AttachmentUpload) (*PaymentResponse, error) {
	payment, err := s.payments.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Attachment != nil {
		return nil, shared.NewDomainError("INVALID_STATE", "Payment already has an attachment")
	}

	key := attachmentKey(paymentID, upload.FileName)
	if err := s.store.Upload(ctx, key, upload.Body, upload.ContentType); err != nil {
		return nil, fmt.Errorf("failed to upload attachment: %w", err)
	}

	err = payment.FinalizeAttachment(shipment.Attachment{
		URL:          key,
		OriginalName: upload.FileName,
		MimeType:     upload.ContentType,
		Size:         upload.Size,
	})
	if err != nil {
		if delErr := s.store.DeleteObject(ctx, key); delErr != nil {
			s.logger.Warn("failed to clean up orphaned attachment",
				zap.String("key", key), zap.Error(delErr))
		}
		return nil, err
	}

	if err := s.payments.Save(ctx, payment); err != nil {
		return nil, err
	}

	response := ToPaymentResponse(payment, nil)
	return &response, nil
}

// AttachmentURL generates a presigned download URL for a payment's receipt
func (s *PaymentService) AttachmentURL(ctx context.Context, paymentID uuid.UUID) (string, error) {
	payment, err := s.payments.FindByID(ctx, paymentID)
	if err != nil {
		return "", err
	}
	if payment.Attachment == nil {
		return "", shared.ErrNotFound
	}

	url, _, err := s.store.GenerateDownloadURL(ctx, payment.Attachment.URL, 15*time.Minute)
	return url, err
}

func (s *PaymentService) verifyParty(ctx context.Context, partyType shipment.PartyType, partyID uuid.UUID) error {
	switch partyType {
	case shipment.PartyTypeSupplier:
		_, err := s.suppliers.FindByID(ctx, partyID)
		return err
	case shipment.PartyTypeShippingCompany:
		_, err := s.companies.FindByID(ctx, partyID)
		return err
	default:
		return shared.NewValidationError("Invalid payment data", map[string]string{
			"party_type": "party type must be SUPPLIER or SHIPPING_COMPANY",
		})
	}
}

func (s *PaymentService) buildAllocations(ctx context.Context, payment *shipment.Payment, sh *shipment.Shipment) ([]shipment.PaymentAllocation, error) {
	shipmentID := sh.ID
	if !shipment.CanAutoAllocate(payment.CostComponent, payment.PartyType, &shipmentID, sh.ShippingCompanyID, payment.Amount.Currency()) {
		return nil, shared.NewDomainError("INVALID_STATE", "Payment does not qualify for auto-allocation")
	}

	items, err := s.items.FindByShipment(ctx, sh.ID)
	if err != nil {
		return nil, err
	}
	priorPayments, err := s.payments.FindByShipment(ctx, sh.ID)
	if err != nil {
		return nil, err
	}
	priorAllocations, err := s.allocations.FindByShipment(ctx, sh.ID)
	if err != nil {
		return nil, err
	}

	return shipment.AutoAllocate(payment, items, priorPayments, priorAllocations)
}

// attachmentKey builds the storage key for a receipt, keeping only the safe
// base of the submitted file name.
func attachmentKey(paymentID uuid.UUID, fileName string) string {
	base := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "receipt"
	}
	return "attachments/" + paymentID.String() + "/" + base
}
