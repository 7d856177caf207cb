package models

import "time"

// BookingDraft is the transient record held between payment-intent creation
// and webhook resolution. It lives in the correlation store under its order id
// with a 1-hour expiry and is consumed at most once by the webhook handler.
type BookingDraft struct {
	OrderID        string    `json:"orderId"`
	ListingMapID   int       `json:"listingMapId"`
	ArrivalDate    string    `json:"arrivalDate"`
	DepartureDate  string    `json:"departureDate"`
	NumberOfGuests int       `json:"numberOfGuests"`
	GuestName      string    `json:"guestName"`
	GuestEmail     string    `json:"guestEmail"`
	GuestPhone     string    `json:"guestPhone"`
	TotalPrice     float64   `json:"totalPrice"`
	CreatedAt      time.Time `json:"createdAt"`
}
