package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUsername(t *testing.T) {
	assert.Empty(t, validateUsername("alice"))
	assert.Empty(t, validateUsername("player_42"))
	assert.Empty(t, validateUsername("ABC"))

	assert.NotEmpty(t, validateUsername("ab"), "too short")
	assert.NotEmpty(t, validateUsername("this_username_is_way_too_long"), "too long")
	assert.NotEmpty(t, validateUsername("has space"))
	assert.NotEmpty(t, validateUsername("dash-ed"))
	assert.NotEmpty(t, validateUsername(""))
}

func TestValidateUsernameReservesBotName(t *testing.T) {
	assert.NotEmpty(t, validateUsername("BOT"))
	assert.NotEmpty(t, validateUsername("bot"))
	assert.NotEmpty(t, validateUsername("Bot"))
}

func TestWriteJSONError(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSONError(rec, 400, "bad input")

	assert.Equal(t, 400, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "bad input", body["error"])
}
