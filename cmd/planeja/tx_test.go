package main

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/planejamais/planeja_mais/internal/client"
	"github.com/planejamais/planeja_mais/internal/ledger"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestListPatches(t *testing.T) {
	patches, err := listPatches([]string{"Mercado", "  "}, []string{"Saída"}, floatPtr(10), nil)
	require.NoError(t, err)
	require.Len(t, patches, 3)

	assert.Equal(t, ledger.CategoryPatch{Value: "Mercado", Mode: ledger.ModeToggle}, patches[0])
	assert.Equal(t, ledger.TypePatch{Value: ledger.Saida, Mode: ledger.ModeToggle}, patches[1])
	vp, ok := patches[2].(ledger.ValuePatch)
	require.True(t, ok)
	assert.Equal(t, "10", vp.Value.Min.String())
	assert.Nil(t, vp.Value.Max)
}

func TestListPatches_Rejects(t *testing.T) {
	_, err := listPatches(nil, []string{"ambos"}, nil, nil)
	assert.Error(t, err)

	_, err = listPatches(nil, nil, floatPtr(50), floatPtr(10))
	assert.Error(t, err)

	patches, err := listPatches(nil, nil, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, patches)
}

func TestParseDay(t *testing.T) {
	d, err := parseDay("", false)
	require.NoError(t, err)
	assert.Nil(t, d)

	start, err := parseDay("2026-03-01", false)
	require.NoError(t, err)
	assert.Equal(t, 0, start.Hour())

	end, err := parseDay("2026-03-31", true)
	require.NoError(t, err)
	assert.Equal(t, 31, end.Day())
	assert.Equal(t, 23, end.Hour())

	_, err = parseDay("31/03/2026", false)
	assert.Error(t, err)
}

func TestParseIndex(t *testing.T) {
	i, err := parseIndex("12")
	require.NoError(t, err)
	assert.Equal(t, 12, i)

	_, err = parseIndex("-1")
	assert.Error(t, err)
	_, err = parseIndex("x")
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelWarn, parseLevel("whatever"))
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, client.MsgInvalidLogin, userMessage(&client.UserError{Message: client.MsgInvalidLogin, Err: errors.New("401")}))
	assert.Equal(t, "Ano inválido.", userMessage(&ledger.ValidationError{Field: "Year", Message: "Ano inválido."}))
	assert.Equal(t, "boom", userMessage(errors.New("boom")))
}

func TestMoney_HideValues(t *testing.T) {
	t.Cleanup(func() { viper.Set("hide_values", false) })

	assert.Equal(t, "-R$ 230", money("-R$ 230"))
	viper.Set("hide_values", true)
	assert.Equal(t, ledger.HiddenAmount, money("-R$ 230"))
}
