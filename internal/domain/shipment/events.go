package shipment

import (
	"github.com/KhaledMKhaled/FullTracker-sub002/internal/domain/shared"
)

// Event type constants
const (
	EventShipmentCreated       = "shipment.created"
	EventShipmentStatusChanged = "shipment.status_changed"
	EventPaymentRecorded       = "shipment.payment_recorded"
)

// ShipmentCreatedEvent is raised when a shipment is created at wizard step 1
type ShipmentCreatedEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
	Name string `json:"name"`
}

// NewShipmentCreatedEvent creates a new ShipmentCreatedEvent
func NewShipmentCreatedEvent(s *Shipment) *ShipmentCreatedEvent {
	return &ShipmentCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventShipmentCreated, "Shipment", s.ID),
		Code:            s.Code,
		Name:            s.Name,
	}
}

// ShipmentStatusChangedEvent is raised when a shipment advances or archives
type ShipmentStatusChangedEvent struct {
	shared.BaseDomainEvent
	PreviousStatus Status `json:"previous_status"`
	NewStatus      Status `json:"new_status"`
}

// NewShipmentStatusChangedEvent creates a new ShipmentStatusChangedEvent
func NewShipmentStatusChangedEvent(s *Shipment, previous Status) *ShipmentStatusChangedEvent {
	return &ShipmentStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventShipmentStatusChanged, "Shipment", s.ID),
		PreviousStatus:  previous,
		NewStatus:       s.Status,
	}
}

// PaymentRecordedEvent is raised when a payment is recorded for a shipment
type PaymentRecordedEvent struct {
	shared.BaseDomainEvent
	ShipmentID string `json:"shipment_id"`
	PartyType  string `json:"party_type"`
	AmountEgp  string `json:"amount_egp"`
}

// NewPaymentRecordedEvent creates a new PaymentRecordedEvent
func NewPaymentRecordedEvent(p *Payment) *PaymentRecordedEvent {
	return &PaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventPaymentRecorded, "Payment", p.ID),
		ShipmentID:      p.ShipmentID.String(),
		PartyType:       string(p.PartyType),
		AmountEgp:       p.AmountEgp.StringFixed(2),
	}
}
