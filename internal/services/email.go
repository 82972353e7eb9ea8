package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"eventbroker/internal/config"
	"eventbroker/internal/models"
)

// ResendEmailService sends booking confirmation mail via the Resend API
type ResendEmailService struct {
	config config.EmailConfig
	client *http.Client
}

// NewResendEmailService creates a new Resend email service
func NewResendEmailService(cfg config.EmailConfig) *ResendEmailService {
	return &ResendEmailService{
		config: cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type resendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// SendBookingConfirmation sends the ticket confirmation with the QR code the
// venue will scan.
func (s *ResendEmailService) SendBookingConfirmation(ctx context.Context, booking *models.Booking, qrImageURL string) error {
	subject := fmt.Sprintf("Your tickets for %s", booking.EventTitle)

	html := fmt.Sprintf(`
<h2>Booking confirmed</h2>
<p>Hi %s,</p>
<p>Your booking for <strong>%s</strong> is confirmed.</p>
<ul>
  <li>Booking ID: %s</li>
  <li>Date: %s</li>
  <li>Venue: %s</li>
  <li>Tickets: %d</li>
  <li>Total paid: %.2f</li>
</ul>
<p>Show this QR code at the venue:</p>
<img src="%s" alt="Ticket QR code" />
`,
		booking.UserName,
		booking.EventTitle,
		booking.ID,
		booking.EventDate.Format("02 Jan 2006, 03:04 PM"),
		booking.EventVenue,
		booking.Quantity,
		models.MajorUnits(booking.TotalPriceCents),
		qrImageURL,
	)

	text := fmt.Sprintf(
		"Booking confirmed for %s.\nBooking ID: %s\nTickets: %d\nTotal paid: %.2f\nQR code: %s\n",
		booking.EventTitle,
		booking.ID,
		booking.Quantity,
		models.MajorUnits(booking.TotalPriceCents),
		qrImageURL,
	)

	return s.send(ctx, resendEmailRequest{
		From:    s.fromField(),
		To:      []string{booking.UserEmail},
		Subject: subject,
		HTML:    html,
		Text:    text,
	})
}

func (s *ResendEmailService) fromField() string {
	if s.config.FromName != "" {
		return fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	}
	return s.config.FromEmail
}

func (s *ResendEmailService) send(ctx context.Context, email resendEmailRequest) error {
	if s.config.APIKey == "" {
		return fmt.Errorf("resend API key not configured")
	}

	jsonData, err := json.Marshal(email)
	if err != nil {
		return fmt.Errorf("failed to marshal email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.resend.com/emails", bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("resend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("resend returned %d: %s", resp.StatusCode, body)
	}
	return nil
}
