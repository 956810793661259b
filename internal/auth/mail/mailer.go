package mail

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/signin/pkg/slogx"
	gomail "github.com/wneessen/go-mail"
)

// DefaultSendTimeout bounds one delivery attempt.
const DefaultSendTimeout = 10 * time.Second

// Sender delivers composed messages. *gomail.Client satisfies it.
type Sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*gomail.Msg) error
}

// Mailer composes and sends sign-in code emails.
type Mailer struct {
	sender    Sender
	fromName  string
	fromEmail string
	timeout   time.Duration
	codeTTL   time.Duration
}

// Options configure a Mailer.
type Options struct {
	FromName  string
	FromEmail string

	// Timeout bounds each send. Defaults to DefaultSendTimeout.
	Timeout time.Duration

	// CodeTTL is quoted in the message body.
	CodeTTL time.Duration
}

func NewMailer(sender Sender, opts Options) *Mailer {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultSendTimeout
	}
	if opts.CodeTTL <= 0 {
		opts.CodeTTL = 5 * time.Minute
	}
	return &Mailer{
		sender:    sender,
		fromName:  opts.FromName,
		fromEmail: opts.FromEmail,
		timeout:   opts.Timeout,
		codeTTL:   opts.CodeTTL,
	}
}

// SendMail sends a message with a plain-text body and an HTML alternative.
func (m *Mailer) SendMail(ctx context.Context, to, subject, htmlBody, textBody string) error {
	if to == "" {
		return errors.New("mail: recipient required")
	}

	msg := gomail.NewMsg()
	if err := msg.FromFormat(m.fromName, m.fromEmail); err != nil {
		return fmt.Errorf("mail: set from: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("mail: set to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, textBody)
	if htmlBody != "" {
		msg.AddAlternativeString(gomail.TypeTextHTML, htmlBody)
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	if err := m.sender.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("mail: send: %w", err)
	}
	return nil
}

// Send2FACode emails code to the given address. It reports delivery success
// and never returns an error: failures are logged and surface as false.
func (m *Mailer) Send2FACode(ctx context.Context, to, code string) bool {
	log := slogx.FromContext(ctx)

	content, err := renderCode(codeData{Code: code, ValidFor: formatValidity(m.codeTTL)})
	if err != nil {
		log.Error("failed to render sign-in code email", "err", err)
		return false
	}

	if err := m.SendMail(ctx, to, content.Subject, content.HTML, content.Text); err != nil {
		log.Error("failed to send sign-in code email", "err", err)
		return false
	}

	log.Info("sign-in code email sent")
	return true
}
