package main

import (
	"errors"

	"github.com/charmbracelet/lipgloss"
	"github.com/planejamais/planeja_mais/internal/client"
	"github.com/planejamais/planeja_mais/internal/ledger"
	"github.com/spf13/viper"
)

var (
	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2E7D32"))
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4"))
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE66D"))
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	SubtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

// amountStyle colors outflows red and inflows green.
func amountStyle(t ledger.Transaction) lipgloss.Style {
	if t.Type() == ledger.Saida {
		return ErrorStyle
	}
	return SuccessStyle
}

// money masks a formatted amount when hide_values is set by flag, env or config.
func money(formatted string) string {
	return ledger.Reveal(formatted, !viper.GetBool("hide_values"))
}

// userMessage prefers the text the screens would have shown.
func userMessage(err error) string {
	var userErr *client.UserError
	if errors.As(err, &userErr) && userErr.Message != "" {
		return userErr.Message
	}
	var verr *ledger.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	return err.Error()
}
