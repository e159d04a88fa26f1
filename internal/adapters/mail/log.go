package mail

import (
	"context"
	"log/slog"

	"github.com/planejamais/planeja_mais/internal/core/ports/notify"
)

// LogMailer writes mails to the log. It stands in for the broker in development.
type LogMailer struct {
	logger *slog.Logger
}

var _ notify.Mailer = (*LogMailer)(nil)

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(ctx context.Context, mail notify.Mail) error {
	m.logger.InfoContext(ctx, "Mail not sent, no broker configured",
		slog.String("kind", string(mail.Kind)),
		slog.String("to", mail.To),
		slog.String("link", mail.Link),
		slog.Time("expires_at", mail.ExpiresAt),
	)
	return nil
}
