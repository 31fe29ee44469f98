package utils

import (
	"errors"
	"net/http"

	"fourline/config"
)

const authCookieName = "auth_token"

// SetAuthCookie stores the JWT in an HTTP-only cookie.
func SetAuthCookie(w http.ResponseWriter, token string) {
	secure := config.GetEnv("COOKIE_SECURE", "true") == "true"
	maxAge := config.GetEnvAsInt("JWT_EXPIRATION_HOURS", 720) * 3600

	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearAuthCookie removes the auth cookie.
func ClearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// GetTokenFromCookie extracts the JWT from the request's auth cookie.
func GetTokenFromCookie(r *http.Request) (string, error) {
	cookie, err := r.Cookie(authCookieName)
	if err != nil {
		return "", errors.New("auth cookie not found")
	}
	return cookie.Value, nil
}
