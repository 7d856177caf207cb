package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"travelpay_echo/internal/models"
)

// ErrInvalidInput marks client-caused validation failures. Nothing is stored
// when an error wrapping it is returned.
var ErrInvalidInput = errors.New("invalid booking input")

// tempOrderPrefix marks order ids whose reservation does not exist yet.
const tempOrderPrefix = "TMP-"

// successStatuses are the transaction statuses the gateway reports for a
// captured payment. Anything else is treated as non-success.
var successStatuses = map[string]bool{
	"SUCCESS":   true,
	"PAID":      true,
	"COMPLETED": true,
}

var listingIDPattern = regexp.MustCompile(`/checkout/(\d+)`)
var priceCleanPattern = regexp.MustCompile(`[^0-9.]`)

// PMSClient creates reservations in the property-management system.
type PMSClient interface {
	CreateReservation(ctx context.Context, req *ReservationRequest) (int64, error)
}

// PaymentGatewayClient issues hosted payment page URLs.
type PaymentGatewayClient interface {
	CreateIframeURL(ctx context.Context, req *IframeURLRequest) (string, error)
}

// BookingServiceConfig carries the broker-level settings the service needs.
type BookingServiceConfig struct {
	Currency      string
	SiteBaseURL   string
	PublicBaseURL string
}

// BookingService implements the two-phase payment flow: create-intent stashes
// a booking draft and returns a payment URL; the webhook consumes the draft
// and conditionally creates the reservation.
type BookingService struct {
	store   DraftStore
	pms     PMSClient
	gateway PaymentGatewayClient
	db      *gorm.DB // optional callback audit log
	cfg     BookingServiceConfig
}

func NewBookingService(store DraftStore, pms PMSClient, gateway PaymentGatewayClient, db *gorm.DB, cfg BookingServiceConfig) *BookingService {
	return &BookingService{
		store:   store,
		pms:     pms,
		gateway: gateway,
		db:      db,
		cfg:     cfg,
	}
}

// FlexString accepts both JSON strings and JSON numbers. The checkout page
// sends guest counts and totals in either form depending on where the DOM
// glue scraped them from.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string {
	return string(f)
}

// CreateBookingRequest is the payload scraped from the checkout page. Several
// fields arrive in more than one place; resolution order is the explicit
// field, then the page URL's query parameters, then the raw form data.
type CreateBookingRequest struct {
	URL   string `json:"url"`
	Guest struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	} `json:"guest"`
	Booking struct {
		CheckIn        string     `json:"checkIn"`
		CheckOut       string     `json:"checkOut"`
		NumberOfGuests FlexString `json:"numberOfGuests"`
	} `json:"booking"`
	Pricing struct {
		Total FlexString `json:"total"`
	} `json:"pricing"`
	FormData struct {
		FirstName      string     `json:"firstName"`
		LastName       string     `json:"lastName"`
		Phone          string     `json:"phone"`
		ArrivalDate    string     `json:"arrivalDate"`
		DepartureDate  string     `json:"departureDate"`
		NumberOfGuests FlexString `json:"numberOfGuests"`
	} `json:"formData"`
}

// CreateIntentResult is returned to the checkout page on success.
type CreateIntentResult struct {
	OrderID    string
	PaymentURL string
}

// WebhookPayload is the gateway's callback. Older gateway versions send
// merchantOrderId instead of orderId.
type WebhookPayload struct {
	OrderID           string  `json:"orderId"`
	MerchantOrderID   string  `json:"merchantOrderId"`
	TransactionStatus string  `json:"transactionStatus"`
	Amount            float64 `json:"amount"`
	TransactionID     string  `json:"transactionId"`
}

func (p *WebhookPayload) orderRef() string {
	if p.OrderID != "" {
		return p.OrderID
	}
	return p.MerchantOrderID
}

// WebhookResult reports what the webhook did. Found is false when no draft
// existed for the order id. ReservationID is zero when no reservation was
// created (non-success status).
type WebhookResult struct {
	Found         bool
	ReservationID int64
}

// CreateIntent validates the scraped booking data, stashes a draft under a
// fresh temporary order id, and returns the gateway's payment page URL.
// Validation failures create nothing. A gateway failure after the draft is
// stored leaves it to expire: no payment was initiated, so the webhook for
// that order id will never fire.
func (s *BookingService) CreateIntent(ctx context.Context, req *CreateBookingRequest) (*CreateIntentResult, error) {
	listingID, err := extractListingID(req.URL)
	if err != nil {
		return nil, err
	}

	query := pageQuery(req.URL)
	arrivalDate := firstNonEmpty(req.Booking.CheckIn, query.Get("start"), req.FormData.ArrivalDate)
	departureDate := firstNonEmpty(req.Booking.CheckOut, query.Get("end"), req.FormData.DepartureDate)
	if arrivalDate == "" || departureDate == "" {
		return nil, fmt.Errorf("%w: check-in and check-out dates are required", ErrInvalidInput)
	}

	if req.Guest.Email == "" {
		return nil, fmt.Errorf("%w: guest email is required", ErrInvalidInput)
	}

	totalPrice, err := parsePrice(req.Pricing.Total.String())
	if err != nil {
		return nil, err
	}

	numberOfGuests := parseGuests(
		req.Booking.NumberOfGuests.String(),
		query.Get("numberOfGuests"),
		req.FormData.NumberOfGuests.String(),
	)

	guestName := firstNonEmpty(
		req.Guest.Name,
		strings.TrimSpace(req.FormData.FirstName+" "+req.FormData.LastName),
		"Guest",
	)

	orderID := mintOrderID()
	draft := &models.BookingDraft{
		OrderID:        orderID,
		ListingMapID:   listingID,
		ArrivalDate:    arrivalDate,
		DepartureDate:  departureDate,
		NumberOfGuests: numberOfGuests,
		GuestName:      guestName,
		GuestEmail:     req.Guest.Email,
		GuestPhone:     firstNonEmpty(req.Guest.Phone, req.FormData.Phone),
		TotalPrice:     totalPrice,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.store.Put(ctx, draft, DraftTTL); err != nil {
		return nil, err
	}

	paymentURL, err := s.gateway.CreateIframeURL(ctx, &IframeURLRequest{
		OrderID:     orderID,
		Amount:      totalPrice,
		Currency:    s.cfg.Currency,
		Description: fmt.Sprintf("Booking %s - %s", orderID, guestName),
		ClientID:    req.Guest.Email,
		ReturnURL:   s.cfg.SiteBaseURL + "/booking-success?orderId=" + orderID,
		CallbackURL: s.cfg.PublicBaseURL + "/api/superpay-webhook",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate payment URL: %w", err)
	}

	log.Printf("Payment intent created: order=%s listing=%d total=%.2f", orderID, listingID, totalPrice)
	return &CreateIntentResult{OrderID: orderID, PaymentURL: paymentURL}, nil
}

// HandleWebhook consumes the draft for the callback's order id and, on a
// success status, creates a confirmed reservation in the PMS. The draft is
// taken atomically before any branching, so a duplicate delivery finds
// nothing and at most one reservation is created per order id.
func (s *BookingService) HandleWebhook(ctx context.Context, payload *WebhookPayload) (*WebhookResult, error) {
	orderID := payload.orderRef()

	draft, err := s.store.Take(ctx, orderID)
	if errors.Is(err, ErrDraftNotFound) {
		log.Printf("Webhook for unknown order %s: status=%s", orderID, payload.TransactionStatus)
		s.recordCallback(payload, models.CallbackOutcomeDraftMissing)
		return &WebhookResult{Found: false}, nil
	}
	if err != nil {
		return nil, err
	}

	if !successStatuses[payload.TransactionStatus] {
		log.Printf("Payment not successful for order %s: status=%s", orderID, payload.TransactionStatus)
		s.recordCallback(payload, models.CallbackOutcomePaymentFailed)
		return &WebhookResult{Found: true}, nil
	}

	reservationID, err := s.pms.CreateReservation(ctx, &ReservationRequest{
		ChannelID:      DirectBookingChannelID,
		ListingMapID:   draft.ListingMapID,
		ArrivalDate:    draft.ArrivalDate,
		DepartureDate:  draft.DepartureDate,
		NumberOfGuests: draft.NumberOfGuests,
		GuestName:      draft.GuestName,
		GuestEmail:     draft.GuestEmail,
		GuestPhone:     draft.GuestPhone,
		TotalPrice:     draft.TotalPrice,
		Status:         "confirmed",
		Notes:          fmt.Sprintf("Payment confirmed via Superpay. Transaction ID: %s. Amount: %.2f", payload.TransactionID, payload.Amount),
	})
	if err != nil {
		// The payment is already captured; the draft stays consumed so a
		// retried delivery cannot double-book. Reconciliation is manual,
		// starting from the audit trail.
		s.recordCallback(payload, models.CallbackOutcomeReservationError)
		return nil, fmt.Errorf("failed to create reservation for order %s: %w", orderID, err)
	}

	log.Printf("Reservation %d confirmed for order %s", reservationID, orderID)
	s.recordCallback(payload, models.CallbackOutcomeReservationCreated)
	return &WebhookResult{Found: true, ReservationID: reservationID}, nil
}

// recordCallback appends the delivery to the audit log, best effort.
func (s *BookingService) recordCallback(payload *WebhookPayload, outcome string) {
	if s.db == nil {
		return
	}

	metadata, _ := json.Marshal(payload)
	record := models.PaymentCallbackHistory{
		PaymentGateway:    models.PaymentGatewaySuperpay,
		OrderID:           payload.orderRef(),
		TransactionStatus: payload.TransactionStatus,
		Outcome:           outcome,
		Metadata:          metadata,
	}
	if err := s.db.Create(&record).Error; err != nil {
		log.Printf("Failed to record payment callback for order %s: %v", payload.orderRef(), err)
	}
}

// mintOrderID builds a temporary order id from a millisecond timestamp and a
// short random suffix, e.g. TMP-1717171717171-a1b2c3d4.
func mintOrderID() string {
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("%s%d-%s", tempOrderPrefix, time.Now().UnixMilli(), suffix)
}

// extractListingID pulls the numeric listing segment out of a checkout URL
// like https://site.example/checkout/248413?start=...
func extractListingID(pageURL string) (int, error) {
	match := listingIDPattern.FindStringSubmatch(pageURL)
	if match == nil {
		return 0, fmt.Errorf("%w: listing id not found in URL", ErrInvalidInput)
	}
	id, err := strconv.Atoi(match[1])
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: listing id not found in URL", ErrInvalidInput)
	}
	return id, nil
}

// parsePrice strips currency symbols and thousands separators, then parses
// the remaining amount. Zero or unparseable totals are rejected.
func parsePrice(raw string) (float64, error) {
	cleaned := priceCleanPattern.ReplaceAllString(raw, "")
	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || price <= 0 {
		return 0, fmt.Errorf("%w: valid price is required", ErrInvalidInput)
	}
	return price, nil
}

// parseGuests returns the first candidate that parses to a positive integer,
// defaulting to 1.
func parseGuests(candidates ...string) int {
	for _, candidate := range candidates {
		if n, err := strconv.Atoi(candidate); err == nil && n > 0 {
			return n
		}
	}
	return 1
}

func pageQuery(pageURL string) url.Values {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return url.Values{}
	}
	return parsed.Query()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
