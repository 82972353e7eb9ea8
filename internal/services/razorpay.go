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

	"eventbroker/internal/models"
)

// RazorpayConfig represents Razorpay payment gateway configuration
type RazorpayConfig struct {
	KeyID     string
	KeySecret string
}

// RazorpayService handles payment orders via the Razorpay Orders API
type RazorpayService struct {
	config  RazorpayConfig
	client  *http.Client
	baseURL string
}

// NewRazorpayService creates a new Razorpay payment service. It fails when
// credentials are missing so the server refuses to start misconfigured.
func NewRazorpayService(config RazorpayConfig) (*RazorpayService, error) {
	if config.KeyID == "" || config.KeySecret == "" {
		return nil, fmt.Errorf("razorpay credentials not configured")
	}

	return &RazorpayService{
		config:  config,
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: "https://api.razorpay.com",
	}, nil
}

// OrderRequest represents an order creation request. Amount is in the
// currency's minor unit (paise for INR).
type OrderRequest struct {
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	Receipt        string `json:"receipt"`
	PaymentCapture int    `json:"payment_capture"`
}

// Order represents a gateway-side payment order
type Order struct {
	ID        string `json:"id"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Receipt   string `json:"receipt"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"`
}

// RazorpayError represents an error response from Razorpay
type RazorpayError struct {
	StatusCode  int
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (e *RazorpayError) Error() string {
	return fmt.Sprintf("razorpay error (%d %s): %s", e.StatusCode, e.Code, e.Description)
}

// CreateOrder creates a gateway order for the given decimal amount. The
// gateway is called with the amount in minor units, rounded to the nearest
// integer so amounts like 99.5 become 9950 rather than a fractional paise
// value.
func (s *RazorpayService) CreateOrder(ctx context.Context, amount float64, currency, receipt string) (*Order, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", models.ErrInvalidInput)
	}
	if currency == "" {
		currency = "INR"
	}

	orderReq := OrderRequest{
		Amount:         models.MinorUnits(amount),
		Currency:       currency,
		Receipt:        receipt,
		PaymentCapture: 1,
	}

	jsonData, err := json.Marshal(orderReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/orders", bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(s.config.KeyID, s.config.KeySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("razorpay request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read razorpay response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, s.handleAPIError(resp.StatusCode, body)
	}

	var order Order
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, fmt.Errorf("failed to decode razorpay order: %w", err)
	}

	return &order, nil
}

// VerifyPaymentSignature checks the signature Razorpay returns to the client
// after checkout: HMAC-SHA256 over "orderId|paymentId" keyed with the key
// secret, hex encoded. Comparison is constant-time so the check cannot be
// used as a timing oracle.
func (s *RazorpayService) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	expected := s.computeSignature(orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (s *RazorpayService) computeSignature(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(s.config.KeySecret))
	fmt.Fprintf(mac, "%s|%s", orderID, paymentID)
	return hex.EncodeToString(mac.Sum(nil))
}

func (s *RazorpayService) handleAPIError(statusCode int, body []byte) error {
	var wrapper struct {
		Error RazorpayError `json:"error"`
	}
	if err := json.Unmarshal(body, &wrapper); err == nil && wrapper.Error.Description != "" {
		wrapper.Error.StatusCode = statusCode
		return &wrapper.Error
	}
	return &RazorpayError{StatusCode: statusCode, Description: string(body)}
}
