package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

// RoomLine is one booked room for email display.
type RoomLine struct {
	Name   string
	Type   string
	Amount float64
}

// SendBookingReceiptEmail sends a payment receipt after a verified payment.
// Best-effort: when SMTP is not configured it logs a mock send and succeeds,
// so local/dev flows never fail on email.
func SendBookingReceiptEmail(
	recipientEmail,
	bookCode,
	guestName string,
	rooms []RoomLine,
	checkInDate,
	checkOutDate string,
	totalAmount float64,
	currency string,
) error {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USERNAME")
	smtpPass := os.Getenv("SMTP_PASSWORD")
	fromName := EnvOrDefault("SMTP_FROM_NAME", "Hotel Reservations")

	if smtpUser == "" || smtpPass == "" || smtpHost == "" || smtpPort == "" {
		log.Printf("[MOCK EMAIL] to:%s booking:%s total:%.2f %s rooms:%s",
			recipientEmail, bookCode, totalAmount, currency, roomLinesText(rooms))
		return nil
	}

	safe := func(s string) string {
		return strings.ReplaceAll(strings.TrimSpace(s), "\r\n", " ")
	}
	guestName = safe(guestName)
	bookCode = safe(bookCode)
	checkInDate = safe(checkInDate)
	checkOutDate = safe(checkOutDate)

	from := fmt.Sprintf("%s <%s>", fromName, smtpUser)
	to := []string{recipientEmail}
	auth := smtp.PlainAuth("", smtpUser, smtpPass, smtpHost)
	addr := fmt.Sprintf("%s:%s", smtpHost, smtpPort)

	subject := fmt.Sprintf("Payment Received - Booking %s", bookCode)

	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"We have received your payment. Your reservation is confirmed.\n\n"+
			"Booking Code: %s\n"+
			"Rooms:\n%s"+
			"Check-In: %s\n"+
			"Check-Out: %s\n"+
			"Total Paid: %.2f %s\n\n"+
			"We look forward to welcoming you.\n\n"+
			"Best regards,\n%s",
		guestName, bookCode, roomLinesText(rooms), checkInDate, checkOutDate,
		totalAmount, currency, fromName,
	)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", from))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", recipientEmail))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(body + "\r\n")

	if err := smtp.SendMail(addr, auth, smtpUser, to, []byte(sb.String())); err != nil {
		log.Printf("❌ Failed to send receipt email to %s: %v", recipientEmail, err)
		return err
	}

	log.Printf("📨 Receipt email sent to %s (booking %s)", recipientEmail, bookCode)
	return nil
}

func roomLinesText(rooms []RoomLine) string {
	if len(rooms) == 0 {
		return " - N/A\n"
	}
	var b strings.Builder
	for _, r := range rooms {
		if r.Type != "" {
			b.WriteString(fmt.Sprintf(" - %s (%s) @ %.2f/night\n", r.Name, r.Type, r.Amount))
		} else {
			b.WriteString(fmt.Sprintf(" - %s @ %.2f/night\n", r.Name, r.Amount))
		}
	}
	return b.String()
}
