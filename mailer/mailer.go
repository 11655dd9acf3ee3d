package mailer

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/Dr-MAhmed/sighattirebynaseem-App-sub000/models"
)

const sendAttempts = 3

// Mailer sends order notifications over SMTP. Delivery is strictly
// best-effort: every send is retried a few times with backoff, then logged
// and dropped. A nil *Mailer is valid and sends nothing, so the store keeps
// taking orders when SMTP is not configured.
type Mailer struct {
	dialer     *gomail.Dialer
	from       string
	adminEmail string
}

// NewFromEnv builds a Mailer from SMTP_HOST, SMTP_PORT, SMTP_USER,
// SMTP_PASSWORD, SMTP_FROM and ADMIN_EMAIL. Returns nil when SMTP_HOST is
// unset.
func NewFromEnv() *Mailer {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return nil
	}
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}
	user := os.Getenv("SMTP_USER")
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = user
	}
	return &Mailer{
		dialer:     gomail.NewDialer(host, port, user, os.Getenv("SMTP_PASSWORD")),
		from:       from,
		adminEmail: os.Getenv("ADMIN_EMAIL"),
	}
}

// SendOrderConfirmation mails the buyer their order summary. Failure is
// logged and swallowed; the order stands regardless.
func (m *Mailer) SendOrderConfirmation(order *models.Order) {
	if m == nil || order.ShippingAddress.Email == "" {
		return
	}
	subject := fmt.Sprintf("Order %s received", order.OrderNumber)
	m.send(order.ShippingAddress.Email, subject, orderSummary(order, false))
}

// SendAdminAlert mails the store admin about a new order.
func (m *Mailer) SendAdminAlert(order *models.Order) {
	if m == nil || m.adminEmail == "" {
		return
	}
	subject := fmt.Sprintf("New order %s", order.OrderNumber)
	m.send(m.adminEmail, subject, orderSummary(order, true))
}

func (m *Mailer) send(to, subject, body string) {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	var err error
	for attempt := 0; attempt < sendAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(1<<attempt) * time.Second)
		}
		if err = m.dialer.DialAndSend(msg); err == nil {
			return
		}
	}
	log.Printf("❌ Failed to send %q to %s after %d attempts: %v", subject, to, sendAttempts, err)
}

func orderSummary(order *models.Order, forAdmin bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order %s\n\n", order.OrderNumber)
	for _, item := range order.Items {
		fmt.Fprintf(&b, "%d x %s @ %.0f PKR\n", item.Quantity, item.ProductName, item.UnitPrice)
	}
	fmt.Fprintf(&b, "\nSubtotal: %.0f PKR\n", order.Subtotal)
	fmt.Fprintf(&b, "Shipping: %.0f PKR\n", order.ShippingCost)
	if order.Discount > 0 {
		fmt.Fprintf(&b, "Discount: -%.0f PKR\n", order.Discount)
	}
	fmt.Fprintf(&b, "Total: %.0f PKR\n", order.TotalAmount)
	fmt.Fprintf(&b, "Advance due: %.0f PKR (%s)\n", order.AdvanceAmount, order.PaymentMethod)
	if forAdmin {
		a := order.ShippingAddress
		fmt.Fprintf(&b, "\nShip to: %s, %s, %s, %s (%s, %s)\n",
			a.Name, a.Street, a.City, a.Province, a.Phone, a.Email)
		if order.Notes != "" {
			fmt.Fprintf(&b, "Notes: %s\n", order.Notes)
		}
	}
	return b.String()
}
