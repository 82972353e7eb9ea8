package services

import (
	"fmt"
	"net/url"
	"strings"

	"eventbroker/internal/models"
)

// QR payloads are newline-separated Key:Value pairs. Only the BookingID line
// carries authority; the rest are display hints for the person scanning.
const qrDateLayout = "02 Jan 2006, 03:04 PM"

// BuildQRPayload renders the QR text for a booking.
func BuildQRPayload(booking *models.Booking) string {
	return fmt.Sprintf("BookingID:%s\nEvent:%s\nDate:%s\nName:%s",
		booking.ID,
		booking.EventTitle,
		booking.EventDate.Format(qrDateLayout),
		booking.UserName,
	)
}

// QRImageURL returns an external QR image API URL for the booking's payload,
// for rendering on the confirmation page and in confirmation mail.
func QRImageURL(booking *models.Booking) string {
	return "https://api.qrserver.com/v1/create-qr-code/?size=150x150&data=" +
		url.QueryEscape(BuildQRPayload(booking))
}

// ParseQRPayload extracts the booking id from a scanned QR payload. A bare
// booking id is accepted as-is so manual entry works through the same path.
// The remaining payload fields are deliberately ignored: a spoofed Event or
// Name line must not influence verification.
func ParseQRPayload(data string) (string, bool) {
	data = strings.TrimSpace(data)
	if data == "" {
		return "", false
	}

	if !strings.Contains(data, "\n") && !strings.Contains(data, ":") {
		return data, true
	}

	for _, line := range strings.Split(data, "\n") {
		if rest, ok := strings.CutPrefix(line, "BookingID:"); ok {
			id := strings.TrimSpace(rest)
			return id, id != ""
		}
	}

	return "", false
}
