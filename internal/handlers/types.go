package handlers

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Time    string `json:"time"`
	Service string `json:"service"`
}

// CreateBookingResponse is returned to the checkout page on success.
type CreateBookingResponse struct {
	Success    bool   `json:"success"`
	OrderID    string `json:"orderId"`
	PaymentURL string `json:"paymentUrl"`
	Message    string `json:"message"`
}

// WebhookResponse acknowledges a gateway callback. Always sent with HTTP 200;
// the success flag carries the actual outcome.
type WebhookResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	ReservationID int64  `json:"reservationId,omitempty"`
	Error         string `json:"error,omitempty"`
}
