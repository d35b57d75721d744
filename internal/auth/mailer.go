package auth

import (
	"context"

	applog "github.com/BruksfildServices01/photo-studio/internal/log"
)

// Mailer entrega o token de redefinição de senha.
type Mailer interface {
	SendPasswordReset(ctx context.Context, email, token string) error
}

// LogMailer só registra o envio. É o padrão enquanto não houver SMTP.
type LogMailer struct {
	log *applog.Logger
}

func NewLogMailer(logger *applog.Logger) *LogMailer {
	return &LogMailer{log: logger.WithComponent(applog.ComponentAuth)}
}

func (m *LogMailer) SendPasswordReset(ctx context.Context, email, token string) error {
	m.log.InfoContext(ctx, "password reset requested",
		"email", email,
		"reset_token", token,
	)
	return nil
}
