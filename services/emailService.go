package services

import (
	"crypto/tls"
	"fmt"
	"os"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/uncountedbug0615/delivery-app-otp-verifier/models"
)

// Mailer sends one HTML email. OTPService only sees this interface.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// EmailService picks a provider per EMAIL_PROVIDER and forwards to it.
type EmailService struct{}

func NewEmailService() *EmailService {
	return &EmailService{}
}

func (es *EmailService) Send(to, subject, htmlBody string) error {
	return SendEmail(to, subject, htmlBody)
}

// SendEmail dispatches to the configured provider. Any service that needs to
// mail something calls this.
func SendEmail(to, subject, body string) error {
	provider := os.Getenv("EMAIL_PROVIDER")

	switch provider {
	case "sendgrid":
		return sendEmailSendGrid(to, subject, body)
	case "smtp":
		return sendEmailSMTP(to, subject, body)
	default:
		return sendEmailSMTP(to, subject, body)
	}
}

func sendEmailSMTP(to, subject, htmlBody string) error {
	host := os.Getenv("SMTP_HOST")
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")
	port := 587
	if v := os.Getenv("SMTP_PORT"); v != "" {
		fmt.Sscanf(v, "%d", &port)
	}

	if host == "" || user == "" {
		return fmt.Errorf("SMTP environment variables not fully configured")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(user, os.Getenv("SENDER_NAME")))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(host, port, user, pass)
	d.TLSConfig = &tls.Config{
		ServerName: host,
	}

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("SMTP send to %s failed: %w", to, err)
	}
	return nil
}

func sendEmailSendGrid(to, subject, body string) error {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	senderEmail := os.Getenv("SENDER_EMAIL")
	senderName := os.Getenv("SENDER_NAME")

	if apiKey == "" || senderEmail == "" {
		return fmt.Errorf("SENDGRID_API_KEY and SENDER_EMAIL must be set")
	}

	from := mail.NewEmail(senderName, senderEmail)
	toEmail := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, toEmail, body, body)
	client := sendgrid.NewSendClient(apiKey)
	response, err := client.Send(message)

	if err != nil {
		return fmt.Errorf("failed to send email via SendGrid: %w", err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return nil
	}

	return fmt.Errorf("SendGrid API error, status code: %d, body: %s", response.StatusCode, response.Body)
}

// OrderRef is the short human-readable reference used in emails and pushes:
// the last 8 characters of the order id.
func OrderRef(orderID string) string {
	if len(orderID) <= 8 {
		return orderID
	}
	return orderID[len(orderID)-8:]
}

// OTPEmailBody builds the verification mail sent when an OTP is issued.
func OTPEmailBody(orderID, otp string) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; padding: 16px;">
  <h2 style="color: #3b82f6;">🧁 Toshan Bakery - Order Verification</h2>
  <p>Hello 👋,</p>
  <p>Your OTP for order <strong>#%s</strong> is:</p>
  <div style="font-size: 24px; font-weight: bold; margin: 12px 0; color: #10b981;">%s</div>
  <p>This OTP is valid for 10 minutes.</p>
  <p style="margin-top: 24px;">Thank you for ordering with Toshan Bakery!</p>
</div>`, OrderRef(orderID), otp)
}

// DeliveryEmailBody builds the confirmation mail sent after a successful
// OTP verification, itemizing the delivered order.
func DeliveryEmailBody(order models.Order) string {
	itemHTML := "N/A"
	if len(order.Items) > 0 {
		lines := make([]string, 0, len(order.Items))
		for _, item := range order.Items {
			name := item.Name
			if name == "" {
				name = "Item"
			}
			quantity := item.Quantity
			if quantity == 0 {
				quantity = 1
			}
			lines = append(lines, fmt.Sprintf("%s ×%d", name, quantity))
		}
		itemHTML = strings.Join(lines, "<br>")
	}

	customer := order.Address.Name
	if customer == "" {
		customer = "Customer"
	}

	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; padding: 20px;">
  <h2 style="color: #16a34a;">✅ Order Delivered - Thank you from Toshan Bakery!</h2>
  <p>Hi <strong>%s</strong>,</p>
  <p>Your order <strong>#%s</strong> has been successfully delivered!</p>
  <p><strong>Items:</strong><br>%s</p>
  <p><strong>Total:</strong> ₹%.2f<br><strong>Payment Status:</strong> Confirmed</p>
  <p style="margin-top: 20px;">We appreciate your support! 🧁</p>
</div>`, customer, OrderRef(order.ID), itemHTML, order.Total)
}
