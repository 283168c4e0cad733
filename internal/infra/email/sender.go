// internal/infra/email/sender.go
package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"rentlite/internal/domain/notify"

	"github.com/sirupsen/logrus"
)

// Sender delivers rent status notifications over SMTP. Implements
// notify.Sender.
type Sender struct {
	host     string
	port     int
	username string
	password string
	from     string
	logger   *logrus.Entry
}

func NewSender(host string, port int, username, password, from string, logger *logrus.Entry) *Sender {
	return &Sender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		logger:   logger,
	}
}

// SendRentStatus mails the landlord the check outcome, and the tenant a
// reminder when rent is missing and the property opts in.
func (s *Sender) SendRentStatus(ctx context.Context, status notify.RentStatus) error {
	landlordMsg := buildLandlordMessage(s.from, status)
	if err := s.send(ctx, status.LandlordEmail, landlordMsg); err != nil {
		return fmt.Errorf("failed to send landlord notification: %w", err)
	}
	s.logger.WithFields(logrus.Fields{
		"to":       status.LandlordEmail,
		"property": status.PropertyAddress,
		"received": status.Received,
	}).Info("Landlord notification sent")

	if status.Received || !status.NotifyTenant || status.TenantEmail == "" {
		return nil
	}

	tenantMsg := buildTenantMessage(s.from, status)
	if err := s.send(ctx, status.TenantEmail, tenantMsg); err != nil {
		return fmt.Errorf("failed to send tenant reminder: %w", err)
	}
	s.logger.WithFields(logrus.Fields{
		"to":       status.TenantEmail,
		"property": status.PropertyAddress,
	}).Info("Tenant reminder sent")
	return nil
}

func (s *Sender) send(ctx context.Context, to, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := net.JoinHostPort(s.host, strconv.Itoa(s.port))
	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	// Port 465 expects an implicit TLS session; everything else goes
	// through SendMail, which upgrades via STARTTLS when offered.
	if s.port == 465 {
		return s.sendImplicitTLS(addr, auth, to, message)
	}
	return smtp.SendMail(addr, auth, s.from, []string{to}, []byte(message))
}

func (s *Sender) sendImplicitTLS(addr string, auth smtp.Auth, to, message string) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: s.host})
	if err != nil {
		return fmt.Errorf("TLS dial failed: %w", err)
	}
	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("SMTP handshake failed: %w", err)
	}
	defer client.Close()

	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP auth failed: %w", err)
		}
	}
	if err := client.Mail(s.from); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	writer, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := writer.Write([]byte(message)); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func buildLandlordMessage(from string, status notify.RentStatus) string {
	subject := fmt.Sprintf("Rent Received - %s", status.PropertyAddress)
	statusLine := "Payment received on time"
	if !status.Received {
		subject = fmt.Sprintf("Rent NOT Received - %s", status.PropertyAddress)
		statusLine = "Payment not received"
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Property: %s\r\n", status.PropertyAddress)
	fmt.Fprintf(&body, "Tenant: %s\r\n", status.TenantName)
	fmt.Fprintf(&body, "Due Date: %s\r\n", status.DueDate.Format("2 January 2006"))
	fmt.Fprintf(&body, "Status: %s\r\n", statusLine)
	if status.Received && status.Amount != nil {
		fmt.Fprintf(&body, "Amount: $%s\r\n", status.Amount.StringFixed(2))
	}
	body.WriteString("\r\nThis is an automated notification from RentLite.\r\n")

	return buildMessage(from, status.LandlordEmail, subject, body.String())
}

func buildTenantMessage(from string, status notify.RentStatus) string {
	subject := fmt.Sprintf("Rent Payment Reminder - %s", status.PropertyAddress)

	var body strings.Builder
	fmt.Fprintf(&body, "Dear %s,\r\n\r\n", status.TenantName)
	fmt.Fprintf(&body, "This is a reminder that your rent payment for %s was due on %s and has not yet been received.\r\n\r\n",
		status.PropertyAddress, status.DueDate.Format("2 January 2006"))
	body.WriteString("Please arrange payment as soon as possible to avoid any late fees or further action.\r\n")
	body.WriteString("If you have already made the payment, please disregard this notice.\r\n")
	body.WriteString("\r\nThis is an automated reminder from your property manager via RentLite.\r\n")

	return buildMessage(from, status.TenantEmail, subject, body.String())
}

// buildMessage assembles RFC 5322 headers plus a plain-text body.
func buildMessage(from, to, subject, body string) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "From: %s\r\n", from)
	fmt.Fprintf(&builder, "To: %s\r\n", to)
	fmt.Fprintf(&builder, "Subject: %s\r\n", subject)
	builder.WriteString("MIME-Version: 1.0\r\n")
	builder.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	builder.WriteString("\r\n")
	builder.WriteString(body)
	return builder.String()
}
