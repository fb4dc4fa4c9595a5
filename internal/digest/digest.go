// Package digest mails the plain text report of a run.
package digest

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("hftrending/digest")

type SmtpConfig struct {
	Server       string `json:"server"`
	Port         int    `json:"port"`
	EmailAddress string `json:"email_address"`
	Password     string `json:"password"`
}

type Config struct {
	Smtp SmtpConfig `json:"smtp"`
	To   []string   `json:"to"`
}

func (c Config) Enabled() bool {
	return c.Smtp.Server != "" && len(c.To) > 0
}

func (c Config) address() string {
	return fmt.Sprintf("%s:%d", c.Smtp.Server, c.Smtp.Port)
}

// Send mails report to every recipient. Servers that don't support AUTH are
// retried without credentials.
func Send(ctx context.Context, config Config, subject, report string) error {
	ctx, span := tracer.Start(ctx, "Send", trace.WithAttributes(
		attribute.StringSlice("to", config.To),
	))
	defer span.End()

	if !config.Enabled() {
		err := fmt.Errorf("digest needs an smtp server and at least one recipient")
		span.RecordError(err)
		span.SetStatus(codes.Error, "digest not configured")
		return err
	}

	mail := email.NewEmail()
	mail.From = fmt.Sprintf("HF Trending <%s>", config.Smtp.EmailAddress)
	mail.To = config.To
	mail.Subject = subject
	mail.Text = []byte(report)

	err := mail.Send(
		config.address(),
		smtp.PlainAuth("", config.Smtp.EmailAddress, config.Smtp.Password, config.Smtp.Server),
	)
	if err != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
		span.AddEvent("retrying without auth")
		err = mail.Send(config.address(), nil)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to send email")
		return fmt.Errorf("send digest: %w", err)
	}
	return nil
}
