package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

// sendMail builds a multipart text+HTML message and ships it over SMTP.
// Without SMTP env configured the mail is logged instead of sent, which
// keeps local development working.
func sendMail(recipient, subject, plainBody, htmlBody string) error {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USERNAME")
	smtpPass := os.Getenv("SMTP_PASSWORD")
	fromName := EnvOrDefault("SMTP_FROM_NAME", "Hotel Booking")

	if smtpUser == "" || smtpPass == "" || smtpHost == "" || smtpPort == "" {
		log.Printf("[MOCK EMAIL] to:%s subject:%s", recipient, subject)
		return nil
	}

	from := fmt.Sprintf("%s <%s>", fromName, smtpUser)
	auth := smtp.PlainAuth("", smtpUser, smtpPass, smtpHost)
	addr := fmt.Sprintf("%s:%s", smtpHost, smtpPort)
	boundary := "----=_BOOKING_EMAIL_BOUNDARY"

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", from))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", recipient))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", boundary))

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(plainBody + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	sb.WriteString(htmlBody + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s--\r\n", boundary))

	if err := smtp.SendMail(addr, auth, smtpUser, []string{recipient}, []byte(sb.String())); err != nil {
		log.Printf("Failed to send email to %s: %v", recipient, err)
		return err
	}
	return nil
}

func frontendLink(path string) string {
	frontend := EnvOrDefault("FRONTEND_URL", "http://localhost:3000")
	return strings.TrimRight(frontend, "/") + path
}

// SendVerificationEmail mails the account verification link.
func SendVerificationEmail(recipient, name, token string) error {
	link := frontendLink("/verify-email?token=" + token)

	plain := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Thanks for signing up. Please verify your email address using the link below:\n%s\n\n"+
			"The link expires in 24 hours.\n\n"+
			"If you did not create this account, you can ignore this email.\n",
		name, link,
	)

	html := fmt.Sprintf(`<!doctype html>
<html>
<body style="font-family:Arial, Helvetica, sans-serif; color:#222;">
  <h2>Verify your email</h2>
  <p>Hi %s,</p>
  <p>Thanks for signing up. Click the button below to verify your email address.</p>
  <a href="%s" style="display:inline-block; padding:12px 20px; background:#0b74ff; color:#fff; text-decoration:none; border-radius:6px;">Verify email</a>
  <p>The link expires in 24 hours.</p>
  <p>If you did not create this account, you can ignore this email.</p>
</body>
</html>`, name, link)

	return sendMail(recipient, "Verify your email address", plain, html)
}

// SendPasswordResetEmail mails the password reset link.
func SendPasswordResetEmail(recipient, name, token string) error {
	link := frontendLink("/reset-password?token=" + token)

	plain := fmt.Sprintf(
		"Hi %s,\n\n"+
			"We received a request to reset your password.\n"+
			"Use the link below to choose a new one:\n%s\n\n"+
			"The link expires in 1 hour.\n\n"+
			"If you did not request a password reset, you can ignore this email.\n",
		name, link,
	)

	html := fmt.Sprintf(`<!doctype html>
<html>
<body style="font-family:Arial, Helvetica, sans-serif; color:#222;">
  <h2>Reset your password</h2>
  <p>Hi %s,</p>
  <p>We received a request to reset your password. Click the button below to choose a new one.</p>
  <a href="%s" style="display:inline-block; padding:12px 20px; background:#ff5722; color:#fff; text-decoration:none; border-radius:6px;">Reset password</a>
  <p>The link expires in 1 hour.</p>
  <p>If you did not request a password reset, you can ignore this email.</p>
</body>
</html>`, name, link)

	return sendMail(recipient, "Reset your password", plain, html)
}

// SendBookingConfirmationEmail mails a booking summary after a successful
// reservation.
func SendBookingConfirmationEmail(recipient, name, referenceCode, hotelName, checkIn, checkOut string, amount float64) error {
	plain := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Your booking is confirmed.\n\n"+
			"Reference: %s\n"+
			"Hotel: %s\n"+
			"Check-in: %s\n"+
			"Check-out: %s\n"+
			"Total: %.2f\n\n"+
			"We look forward to your stay.\n",
		name, referenceCode, hotelName, checkIn, checkOut, amount,
	)

	html := fmt.Sprintf(`<!doctype html>
<html>
<body style="font-family:Arial, Helvetica, sans-serif; color:#222;">
  <h2>Booking confirmed</h2>
  <p>Hi %s,</p>
  <table cellpadding="6" style="border-collapse:collapse;">
    <tr><td><strong>Reference</strong></td><td>%s</td></tr>
    <tr><td><strong>Hotel</strong></td><td>%s</td></tr>
    <tr><td><strong>Check-in</strong></td><td>%s</td></tr>
    <tr><td><strong>Check-out</strong></td><td>%s</td></tr>
    <tr><td><strong>Total</strong></td><td>%.2f</td></tr>
  </table>
  <p>We look forward to your stay.</p>
</body>
</html>`, name, referenceCode, hotelName, checkIn, checkOut, amount)

	return sendMail(recipient, fmt.Sprintf("Booking %s confirmed", referenceCode), plain, html)
}
