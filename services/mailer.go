package services

import (
	"fmt"
	"os"
	"strconv"

	"github.com/gezana/restaurant-backend/models"
	"github.com/gezana/restaurant-backend/utils"
	"gopkg.in/gomail.v2"
)

// Notifier delivers booking confirmations and cancellations. Delivery is
// best-effort: implementations log failures and never surface them, and a
// booking without an email address is a no-op.
type Notifier interface {
	NotifyBookingConfirmed(booking models.Booking)
	NotifyBookingCancelled(booking models.Booking)
}

// NewNotifierFromEnv returns an SMTP-backed notifier when SMTP_HOST is
// set and a logging fallback otherwise.
func NewNotifierFromEnv() Notifier {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return LogNotifier{}
	}
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "bookings@gezana.example"
	}
	return &MailNotifier{
		dialer: gomail.NewDialer(host, port, os.Getenv("SMTP_USER"), os.Getenv("SMTP_PASS")),
		from:   from,
	}
}

// MailNotifier sends booking mail over SMTP.
type MailNotifier struct {
	dialer *gomail.Dialer
	from   string
}

func (n *MailNotifier) NotifyBookingConfirmed(b models.Booking) {
	if b.Email == nil || *b.Email == "" {
		return
	}
	body := fmt.Sprintf(
		"Dear %s,\n\nYour table for %d is booked on %s at %s.\nYour reference code is %s.\n\nGezana Restaurant",
		b.Name, b.Guests, b.Date, b.Time, b.Reference,
	)
	n.send(*b.Email, "Your booking at Gezana", body)
}

func (n *MailNotifier) NotifyBookingCancelled(b models.Booking) {
	if b.Email == nil || *b.Email == "" {
		return
	}
	body := fmt.Sprintf(
		"Dear %s,\n\nYour booking %s on %s at %s has been cancelled.\n\nGezana Restaurant",
		b.Name, b.Reference, b.Date, b.Time,
	)
	n.send(*b.Email, "Your booking at Gezana was cancelled", body)
}

func (n *MailNotifier) send(to, subject, body string) {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := n.dialer.DialAndSend(m); err != nil {
		utils.ErrorLogger.Printf("Failed to send %q to %s: %v", subject, to, err)
	}
}

// LogNotifier is used when no SMTP server is configured.
type LogNotifier struct{}

func (LogNotifier) NotifyBookingConfirmed(b models.Booking) {
	if b.Email == nil || *b.Email == "" {
		return
	}
	utils.InfoLogger.Printf("Booking %s confirmed, would mail %s", b.Reference, *b.Email)
}

func (LogNotifier) NotifyBookingCancelled(b models.Booking) {
	if b.Email == nil || *b.Email == "" {
		return
	}
	utils.InfoLogger.Printf("Booking %s cancelled, would mail %s", b.Reference, *b.Email)
}
