package mail

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// TLSPolicy names accepted in configuration.
const (
	TLSMandatory     = "mandatory"
	TLSOpportunistic = "opportunistic"
	TLSNone          = "none"
)

// SMTPConfig describes the outbound SMTP relay.
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	TLSPolicy string
	Timeout   time.Duration
}

// ParseTLSPolicy maps a configured policy name to go-mail's policy.
func ParseTLSPolicy(name string) (gomail.TLSPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", TLSMandatory:
		return gomail.TLSMandatory, nil
	case TLSOpportunistic:
		return gomail.TLSOpportunistic, nil
	case TLSNone:
		return gomail.NoTLS, nil
	default:
		return 0, fmt.Errorf("mail: unknown TLS policy %q", name)
	}
}

// NewSMTPClient builds a go-mail client for cfg. LOGIN auth is used when a
// username is configured.
func NewSMTPClient(cfg SMTPConfig) (*gomail.Client, error) {
	policy, err := ParseTLSPolicy(cfg.TLSPolicy)
	if err != nil {
		return nil, err
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultSendTimeout
	}

	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTimeout(timeout),
		gomail.WithTLSPolicy(policy),
	}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthLogin),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("mail: create client: %w", err)
	}
	return client, nil
}

// LogSender writes the plain-text part of each message to a logger instead
// of sending it. Development use only.
type LogSender struct {
	Logger *slog.Logger
}

func (s LogSender) DialAndSendWithContext(ctx context.Context, messages ...*gomail.Msg) error {
	for _, msg := range messages {
		to, _ := msg.GetRecipients()
		s.Logger.InfoContext(ctx, "dev mail transport",
			"to", to,
			"subject", strings.Join(msg.GetGenHeader(gomail.HeaderSubject), " "),
			"body", plainText(msg),
		)
	}
	return nil
}

func plainText(msg *gomail.Msg) string {
	for _, part := range msg.GetParts() {
		if part.GetContentType() != gomail.TypeTextPlain {
			continue
		}
		body, err := part.GetContent()
		if err == nil {
			return string(body)
		}
	}
	return ""
}
