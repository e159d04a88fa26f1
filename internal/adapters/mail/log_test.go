package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/planejamais/planeja_mais/internal/core/ports/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogMailer_Send(t *testing.T) {
	var buf bytes.Buffer
	m := NewLogMailer(slog.New(slog.NewJSONHandler(&buf, nil)))

	err := m.Send(context.Background(), notify.Mail{
		Kind:      notify.MailResetPassword,
		To:        "ana@example.com",
		Link:      "http://localhost:4200/auth/change-password/abc",
		ExpiresAt: time.Date(2026, time.March, 15, 13, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "reset_password", entry["kind"])
	assert.Equal(t, "ana@example.com", entry["to"])
	assert.Equal(t, "http://localhost:4200/auth/change-password/abc", entry["link"])
}

func TestMailJSONShape(t *testing.T) {
	body, err := json.Marshal(notify.Mail{Kind: notify.MailConfirmAccount, To: "a@b.c", Name: "Ana", Link: "l"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"confirm_account","to":"a@b.c","name":"Ana","link":"l","expiresAt":"0001-01-01T00:00:00Z"}`, string(body))
}
