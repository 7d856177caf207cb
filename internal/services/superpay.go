package services

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const iframeURLEndpoint = "/ordertransaction/api/1/sts/iframe/url"

// SuperpayService talks to the Superpay order-transaction API, which issues
// hosted payment page (iframe) URLs and later calls back with the outcome.
type SuperpayService struct {
	baseURL      string
	merchantCode string
	apiKey       string
	secretKey    string
	client       *http.Client
}

func NewSuperpayService(baseURL, merchantCode, apiKey, secretKey string) *SuperpayService {
	return &SuperpayService{
		baseURL:      baseURL,
		merchantCode: merchantCode,
		apiKey:       apiKey,
		secretKey:    secretKey,
		client:       &http.Client{Timeout: 30 * time.Second},
	}
}

// IframeURLRequest carries the order details for a hosted payment page.
type IframeURLRequest struct {
	OrderID     string
	Amount      float64
	Currency    string
	Description string
	ClientID    string
	ReturnURL   string
	CallbackURL string
}

type superpayMerchant struct {
	Code   string `json:"code"`
	APIKey string `json:"apiKey"`
}

type superpayOrder struct {
	MerchantOrderID string  `json:"merchantOrderId"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	Description     string  `json:"description"`
}

type superpayIframeRequest struct {
	Merchant    superpayMerchant `json:"merchant"`
	Order       superpayOrder    `json:"order"`
	ClientID    string           `json:"clientId"`
	Signature   string           `json:"signature"`
	ReturnURL   string           `json:"returnUrl"`
	CallbackURL string           `json:"callbackUrl"`
}

// IframeURLResponse covers the field names Superpay has used for the hosted
// payment page URL across gateway versions.
type IframeURLResponse struct {
	IframeURL  string `json:"iframeUrl"`
	URL        string `json:"url"`
	PaymentURL string `json:"paymentUrl"`
	Data       struct {
		IframeURL string `json:"iframeUrl"`
	} `json:"data"`
}

// iframeURLCandidates is the ordered list of response fields that may carry
// the payment page URL. The first non-empty one wins.
var iframeURLCandidates = []func(*IframeURLResponse) string{
	func(r *IframeURLResponse) string { return r.IframeURL },
	func(r *IframeURLResponse) string { return r.URL },
	func(r *IframeURLResponse) string { return r.PaymentURL },
	func(r *IframeURLResponse) string { return r.Data.IframeURL },
}

func extractIframeURL(resp *IframeURLResponse) string {
	for _, candidate := range iframeURLCandidates {
		if url := candidate(resp); url != "" {
			return url
		}
	}
	return ""
}

// Signature computes the keyed signature the gateway verifies: HMAC-SHA256
// over orderID, the amount formatted to exactly two decimals, and the
// currency code, concatenated with no separators, rendered as lowercase hex.
// The field order is a bit-exact contract with the gateway.
func Signature(orderID string, amount float64, currency, secretKey string) string {
	message := fmt.Sprintf("%s%.2f%s", orderID, amount, currency)
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}

// CreateIframeURL requests a hosted payment page URL for the given order.
func (s *SuperpayService) CreateIframeURL(ctx context.Context, req *IframeURLRequest) (string, error) {
	payload := superpayIframeRequest{
		Merchant: superpayMerchant{
			Code:   s.merchantCode,
			APIKey: s.apiKey,
		},
		Order: superpayOrder{
			MerchantOrderID: req.OrderID,
			Amount:          req.Amount,
			Currency:        req.Currency,
			Description:     req.Description,
		},
		ClientID:    req.ClientID,
		Signature:   Signature(req.OrderID, req.Amount, req.Currency, s.secretKey),
		ReturnURL:   req.ReturnURL,
		CallbackURL: req.CallbackURL,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+iframeURLEndpoint, bytes.NewBuffer(data))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := s.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode >= 400 {
		body, _ := io.ReadAll(httpResp.Body)
		return "", fmt.Errorf("request failed with status %d: %s", httpResp.StatusCode, string(body))
	}

	var resp IframeURLResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	iframeURL := extractIframeURL(&resp)
	if iframeURL == "" {
		return "", fmt.Errorf("no payment URL in Superpay response")
	}

	return iframeURL, nil
}
