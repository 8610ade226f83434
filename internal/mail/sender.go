// Package mail sends transactional email over SMTP.
package mail

import (
	"bytes"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"
)

// VerificationMailer sends the email-confirmation message.
type VerificationMailer interface {
	SendVerificationEmail(to, username, confirmURL string) error
}

var verificationTemplate = template.Must(template.New("verification").Parse(`
<html>
  <body>
    <p>Hi {{.Username}},</p>
    <p>Welcome to PhotoShare. Please confirm your email address by following the link below.</p>
    <p><a href="{{.ConfirmURL}}">Confirm email</a></p>
    <p>The link is valid for 24 hours. If you did not sign up, ignore this message.</p>
  </body>
</html>
`))

// Sender delivers mail through an SMTP dialer.
type Sender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSender creates a new SMTP sender.
func NewSender(host string, port int, username, password, from string) *Sender {
	return &Sender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// SendVerificationEmail sends the confirmation link to a fresh account.
func (s *Sender) SendVerificationEmail(to, username, confirmURL string) error {
	var body bytes.Buffer
	err := verificationTemplate.Execute(&body, map[string]string{
		"Username":   username,
		"ConfirmURL": confirmURL,
	})
	if err != nil {
		return fmt.Errorf("render verification mail: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Verify your email address")
	m.SetBody("text/html", body.String())

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send verification mail: %w", err)
	}
	return nil
}
