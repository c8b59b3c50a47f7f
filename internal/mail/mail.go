// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mail delivers the finished hymnal to a Kindle address over SMTP.
package mail

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"

	gomail "github.com/wneessen/go-mail"

	"github.com/pdiddy/hymnal/pkg/types"
)

// Subject is the fixed subject line of every delivery.
const Subject = "Hymnal"

const (
	portSSL      = 465
	portStartTLS = 587
)

// Mailer sends a single file as an email attachment.
type Mailer interface {
	Send(ctx context.Context, attachment string) error
}

// New returns an SMTP mailer for cfg, or a mailer that does nothing when
// cfg is nil.
func New(cfg *types.EmailConfig) Mailer {
	if cfg == nil {
		return noopMailer{}
	}
	return &SMTPMailer{cfg: *cfg, send: dialAndSend}
}

type noopMailer struct{}

func (noopMailer) Send(context.Context, string) error { return nil }

// SMTPMailer sends through the configured SMTP server.
type SMTPMailer struct {
	cfg  types.EmailConfig
	send func(ctx context.Context, c *gomail.Client, m *gomail.Msg) error
}

// Send builds the message and blocks until the server accepts or rejects it.
func (s *SMTPMailer) Send(ctx context.Context, attachment string) error {
	msg, err := s.message(attachment)
	if err != nil {
		return err
	}
	client, err := s.client()
	if err != nil {
		return err
	}
	if err := s.send(ctx, client, msg); err != nil {
		return fmt.Errorf("sending %s to %s: %w", filepath.Base(attachment), s.cfg.KindleAddress, err)
	}
	return nil
}

func (s *SMTPMailer) message(attachment string) (*gomail.Msg, error) {
	if _, err := os.Stat(attachment); err != nil {
		return nil, fmt.Errorf("attachment: %w", err)
	}

	msg := gomail.NewMsg()
	if err := msg.From(s.cfg.FromAddress); err != nil {
		return nil, fmt.Errorf("from address %q: %w", s.cfg.FromAddress, err)
	}
	if err := msg.To(s.cfg.KindleAddress); err != nil {
		return nil, fmt.Errorf("kindle address %q: %w", s.cfg.KindleAddress, err)
	}
	msg.Subject(Subject)
	msg.SetBodyString(gomail.TypeTextPlain, "The latest hymnal build is attached.")
	msg.AttachFile(attachment)
	return msg, nil
}

func (s *SMTPMailer) client() (*gomail.Client, error) {
	host, port, err := splitServer(s.cfg.SMTPServer, s.cfg.SMTPSSL)
	if err != nil {
		return nil, err
	}

	opts := []gomail.Option{gomail.WithPort(port)}
	if s.cfg.SMTPSSL {
		opts = append(opts, gomail.WithSSL())
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	}
	if s.cfg.SMTPUser != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.cfg.SMTPUser),
			gomail.WithPassword(s.cfg.SMTPPassword),
		)
	}

	c, err := gomail.NewClient(host, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating SMTP client for %s: %w", host, err)
	}
	return c, nil
}

func dialAndSend(ctx context.Context, c *gomail.Client, m *gomail.Msg) error {
	return c.DialAndSendWithContext(ctx, m)
}

// splitServer parses host or host:port, defaulting the port from ssl.
func splitServer(server string, ssl bool) (string, int, error) {
	if server == "" {
		return "", 0, fmt.Errorf("smtp server is not set")
	}
	host, portStr, err := net.SplitHostPort(server)
	if err != nil {
		if ssl {
			return server, portSSL, nil
		}
		return server, portStartTLS, nil
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 || port > 65535 {
		return "", 0, fmt.Errorf("smtp server %q: invalid port", server)
	}
	return host, port, nil
}
