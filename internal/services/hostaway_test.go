package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testReservationRequest() *ReservationRequest {
	return &ReservationRequest{
		ChannelID:      DirectBookingChannelID,
		ListingMapID:   248413,
		ArrivalDate:    "2025-06-01",
		DepartureDate:  "2025-06-05",
		NumberOfGuests: 2,
		GuestName:      "Jane Smith",
		GuestEmail:     "a@b.com",
		TotalPrice:     250.00,
		Status:         "confirmed",
		Notes:          "Payment confirmed via Superpay. Transaction ID: tx1. Amount: 250.00",
	}
}

func TestCreateReservation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int64
	}{
		{
			name: "id wrapped in result",
			body: `{"result": {"id": 987}}`,
			want: 987,
		},
		{
			name: "bare id",
			body: `{"id": 555}`,
			want: 555,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured ReservationRequest
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/v1/reservations" {
					t.Errorf("request path = %q; want /v1/reservations", r.URL.Path)
				}
				if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
					t.Errorf("Authorization = %q; want Bearer test-token", got)
				}
				if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
					t.Errorf("decode request: %v", err)
				}
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			svc := NewHostawayService(server.URL, "test-token")
			id, err := svc.CreateReservation(context.Background(), testReservationRequest())
			if err != nil {
				t.Fatalf("CreateReservation() error = %v", err)
			}
			if id != tt.want {
				t.Errorf("reservation id = %d; want %d", id, tt.want)
			}
			if captured.Status != "confirmed" {
				t.Errorf("sent status = %q; want confirmed", captured.Status)
			}
			if captured.ChannelID != DirectBookingChannelID {
				t.Errorf("sent channelId = %d; want %d", captured.ChannelID, DirectBookingChannelID)
			}
		})
	}
}

func TestCreateReservationUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status": "fail", "message": "listing not available"}`, http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	svc := NewHostawayService(server.URL, "test-token")
	_, err := svc.CreateReservation(context.Background(), testReservationRequest())
	if err == nil {
		t.Fatal("CreateReservation() error = nil; want upstream failure")
	}
	if !strings.Contains(err.Error(), "listing not available") {
		t.Errorf("error = %v; want the upstream body wrapped in", err)
	}
}

func TestCreateReservationMissingID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": {}}`))
	}))
	defer server.Close()

	svc := NewHostawayService(server.URL, "test-token")
	_, err := svc.CreateReservation(context.Background(), testReservationRequest())
	if err == nil {
		t.Fatal("CreateReservation() error = nil; want missing-id failure")
	}
}
