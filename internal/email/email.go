// Package email envía notificaciones transaccionales (confirmación de
// orden). Con SMTP sin configurar se usa el sender que sólo loguea.
package email

import (
	"context"
	"fmt"

	mail "github.com/go-mail/mail"
	"go.uber.org/zap"

	"github.com/kasadel/mallcore/internal/observability/logger"
)

// Message es un correo listo para despachar.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender despacha correos. Las implementaciones no deben bloquear el
// request path más de lo necesario.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Config del transporte SMTP.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// New retorna el sender SMTP si hay host configurado, o el de log.
func New(cfg Config) Sender {
	if cfg.Host == "" {
		return logSender{}
	}
	return &smtpSender{
		dialer: mail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

type smtpSender struct {
	dialer *mail.Dialer
	from   string
}

func (s *smtpSender) Send(_ context.Context, msg Message) error {
	m := mail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("email: enviar a %s: %w", msg.To, err)
	}
	return nil
}

// logSender registra el correo en lugar de enviarlo. Útil en dev y tests.
type logSender struct{}

func (logSender) Send(ctx context.Context, msg Message) error {
	logger.From(ctx).Info("email (no enviado, smtp sin configurar)",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}

// OrderConfirmation arma el correo de confirmación de una orden publicada.
func OrderConfirmation(to, orderID string, totalCents, mileage int64) Message {
	return Message{
		To:      to,
		Subject: "Tu orden fue publicada",
		Body: fmt.Sprintf(
			"Orden %s publicada.\nTotal: $%d.%02d\nMileage acreditado: %d\n",
			orderID, totalCents/100, totalCents%100, mileage),
	}
}
