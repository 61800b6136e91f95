package mail

import (
	"context"

	gomail "github.com/wneessen/go-mail"
)

// Message is a plain-text outbound mail.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Mailer delivers a single message. Delivery is best-effort relative to
// the state change that triggered it.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type smtpMailer struct {
	client *gomail.Client
	from   string
}

func NewSMTPMailer(host string, port int, username, password, from string) (Mailer, error) {
	opts := []gomail.Option{gomail.WithPort(port)}
	if username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(username),
			gomail.WithPassword(password),
		)
	}
	client, err := gomail.NewClient(host, opts...)
	if err != nil {
		return nil, err
	}
	return &smtpMailer{client: client, from: from}, nil
}

func (m *smtpMailer) Send(ctx context.Context, msg Message) error {
	message := gomail.NewMsg()
	if err := message.From(m.from); err != nil {
		return err
	}
	if err := message.To(msg.To); err != nil {
		return err
	}
	message.Subject(msg.Subject)
	message.SetBodyString(gomail.TypeTextPlain, msg.Body)
	return m.client.DialAndSendWithContext(ctx, message)
}
