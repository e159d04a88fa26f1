package notify

import (
	"context"
	"time"
)

// MailKind selects the template the mail worker renders.
type MailKind string

const (
	MailConfirmAccount MailKind = "confirm_account"
	MailResetPassword  MailKind = "reset_password"
)

// Mail is a transactional e-mail request.
type Mail struct {
	Kind      MailKind  `json:"kind"`
	To        string    `json:"to"`
	Name      string    `json:"name"`
	Link      string    `json:"link"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Mailer hands mails to the delivery pipeline.
type Mailer interface {
	Send(ctx context.Context, mail Mail) error
}
