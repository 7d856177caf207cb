package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"travelpay_echo/internal/services"
)

const serviceName = "Travelholic Payment Broker"

type BookingHandler struct {
	bookingService *services.BookingService
}

func NewBookingHandler(bookingService *services.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// Health reports liveness
func (h *BookingHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Time:    time.Now().UTC().Format(time.RFC3339),
		Service: serviceName,
	})
}

// CreateBooking validates the scraped checkout data and returns a payment URL
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req services.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON payload")
	}

	result, err := h.bookingService.CreateIntent(c.Request().Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, CreateBookingResponse{
		Success:    true,
		OrderID:    result.OrderID,
		PaymentURL: result.PaymentURL,
		Message:    "Booking draft created. Redirecting to payment...",
	})
}

// SuperpayWebhook handles the gateway's payment-outcome callback. It always
// answers HTTP 200: the gateway retries on non-200 responses, and a duplicate
// reservation is worse than a dropped acknowledgment.
func (h *BookingHandler) SuperpayWebhook(c echo.Context) error {
	var payload services.WebhookPayload
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusOK, WebhookResponse{
			Success: false,
			Message: "Invalid webhook payload",
			Error:   err.Error(),
		})
	}

	result, err := h.bookingService.HandleWebhook(c.Request().Context(), &payload)
	if err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusOK, WebhookResponse{
			Success: false,
			Message: "Webhook processing failed",
			Error:   err.Error(),
		})
	}

	if !result.Found {
		return c.JSON(http.StatusOK, WebhookResponse{
			Success: false,
			Message: "Booking data not found",
		})
	}

	if result.ReservationID == 0 {
		return c.JSON(http.StatusOK, WebhookResponse{
			Success: true,
			Message: "Webhook processed, no reservation created",
		})
	}

	return c.JSON(http.StatusOK, WebhookResponse{
		Success:       true,
		Message:       "Reservation confirmed",
		ReservationID: result.ReservationID,
	})
}
