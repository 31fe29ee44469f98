package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthCookieRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	SetAuthCookie(rec, "some-jwt")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "auth_token", cookies[0].Name)
	assert.Equal(t, "some-jwt", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])

	token, err := GetTokenFromCookie(req)
	require.NoError(t, err)
	assert.Equal(t, "some-jwt", token)
}

func TestClearAuthCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	ClearAuthCookie(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "auth_token", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestGetTokenFromCookieMissing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := GetTokenFromCookie(req)
	assert.Error(t, err)
}
