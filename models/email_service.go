package models

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/gomail.v2"
)

type EmailService struct {
	dialer *gomail.Dialer
}

func NewEmailService() (*EmailService, error) {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")

	if smtpHost == "" || smtpUser == "" || smtpPass == "" {
		return nil, fmt.Errorf("SMTP configuration missing")
	}

	port, err := strconv.Atoi(smtpPort)
	if err != nil {
		port = 587
	}

	dialer := gomail.NewDialer(smtpHost, port, smtpUser, smtpPass)

	return &EmailService{dialer: dialer}, nil
}

func (s *EmailService) SendOrderConfirmationEmail(toEmail string, order *Order) error {
	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_FROM"))
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Order Confirmation #%s - MobiCommerce", order.OrderNumber))

	var itemRows strings.Builder
	for _, item := range order.Items {
		itemRows.WriteString(fmt.Sprintf(`
        <tr>
            <td style="padding: 8px; border-bottom: 1px solid #eee;">%s</td>
            <td style="padding: 8px; border-bottom: 1px solid #eee; text-align: center;">%d</td>
            <td style="padding: 8px; border-bottom: 1px solid #eee; text-align: right;">%d</td>
        </tr>`, item.Title, item.Quantity, item.UnitPrice*int64(item.Quantity)))
	}

	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
        .header { text-align: center; margin-bottom: 30px; }
        .logo { font-size: 24px; font-weight: bold; color: #2563eb; }
        .totals td { padding: 6px 8px; }
        .grand-total { font-size: 18px; font-weight: bold; color: #2563eb; }
        .footer { text-align: center; margin-top: 30px; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <div class="logo">MobiCommerce</div>
        </div>
        <h2 style="color: #333;">Thank you for your order!</h2>
        <p>Your order <strong>#%s</strong> has been placed and is now being processed.</p>

        <table style="width:100%%; border-collapse: collapse; margin-top: 15px;">
            <tr>
                <th style="padding: 8px; text-align: left; border-bottom: 2px solid #ddd;">Item</th>
                <th style="padding: 8px; text-align: center; border-bottom: 2px solid #ddd;">Qty</th>
                <th style="padding: 8px; text-align: right; border-bottom: 2px solid #ddd;">Amount</th>
            </tr>
            %s
        </table>

        <table class="totals" style="width:100%%; margin-top: 15px;">
            <tr><td>Subtotal</td><td style="text-align: right;">%d</td></tr>
            <tr><td>Shipping</td><td style="text-align: right;">%d</td></tr>
            <tr><td>Tax</td><td style="text-align: right;">%d</td></tr>
            <tr><td>Discount</td><td style="text-align: right;">-%d</td></tr>
            <tr class="grand-total"><td>Total</td><td style="text-align: right;">%d</td></tr>
        </table>

        <p style="margin-top: 20px;">Shipping to: %s, %s, %s %s, %s</p>

        <div class="footer">
            <p>This is an automated email. Please do not reply.</p>
            <p>&copy; MobiCommerce. All rights reserved.</p>
        </div>
    </div>
</body>
</html>
	`, order.OrderNumber, itemRows.String(),
		order.Subtotal, order.ShippingCharge, order.Tax, order.Discount, order.Total,
		order.ShippingAddress.Address, order.ShippingAddress.City,
		order.ShippingAddress.State, order.ShippingAddress.PostalCode,
		order.ShippingAddress.Country)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
