package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

type PaymentGateway string

const (
	PaymentGatewaySuperpay PaymentGateway = "superpay"
)

// Callback outcomes recorded for each webhook delivery
const (
	CallbackOutcomeReservationCreated = "reservation_created"
	CallbackOutcomeReservationError   = "reservation_error"
	CallbackOutcomePaymentFailed      = "payment_failed"
	CallbackOutcomeDraftMissing       = "draft_missing"
)

// PaymentCallbackHistory is the audit record of every gateway callback.
// A payment captured by the gateway without a matching reservation
// (outcome "reservation_error") is reconciled manually from this trail.
type PaymentCallbackHistory struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	PaymentGateway    PaymentGateway  `gorm:"type:varchar(50);not null" json:"payment_gateway"`
	OrderID           string          `gorm:"type:varchar(100);index" json:"order_id"`
	TransactionStatus string          `gorm:"type:varchar(50)" json:"transaction_status"`
	Outcome           string          `gorm:"type:varchar(50)" json:"outcome"`
	Metadata          json.RawMessage `gorm:"type:jsonb" json:"metadata"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	DeletedAt         gorm.DeletedAt  `gorm:"index" json:"deleted_at,omitempty"`
}
