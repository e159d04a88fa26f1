package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	date := time.Date(2026, 3, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(date, "0b7c-42")
	assert.NotEmpty(t, token)
	assert.NotContains(t, token, "=", "token travels in a query string")

	gotDate, gotID, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, date.Equal(gotDate))
	assert.Equal(t, "0b7c-42", gotID)
}

func TestEncodeToken_NormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	date := time.Date(2026, 3, 15, 9, 0, 0, 0, loc)

	gotDate, _, err := DecodeToken(EncodeToken(date, "x"))
	require.NoError(t, err)
	assert.True(t, date.Equal(gotDate))
	assert.Equal(t, time.UTC, gotDate.Location())
}

func TestDecodeTokenError(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	noSeparator := base64.RawURLEncoding.EncodeToString([]byte("2026-03-15T00:00:00Z"))
	_, _, err = DecodeToken(noSeparator)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	emptyID := base64.RawURLEncoding.EncodeToString([]byte("2026-03-15T00:00:00Z|"))
	_, _, err = DecodeToken(emptyID)
	require.Error(t, err)

	badDate := base64.RawURLEncoding.EncodeToString([]byte("notadate|abc"))
	_, _, err = DecodeToken(badDate)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "date parse")
}
