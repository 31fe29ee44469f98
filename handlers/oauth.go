package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"fourline/config"
	"fourline/db"
	"fourline/utils"
)

const oauthStateCookie = "oauth_state"

type googleUserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// GoogleLogin starts the OAuth flow by redirecting to Google.
func GoogleLogin(w http.ResponseWriter, r *http.Request) {
	if config.GoogleOAuthConfig == nil {
		writeJSONError(w, http.StatusNotImplemented, "google login is not configured")
		return
	}

	state := utils.GenerateToken()
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	url := config.GoogleOAuthConfig.AuthCodeURL(state)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// GoogleCallback completes the OAuth flow, creating the user on first login.
func GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if config.GoogleOAuthConfig == nil {
		writeJSONError(w, http.StatusNotImplemented, "google login is not configured")
		return
	}

	stateCookie, err := r.Cookie(oauthStateCookie)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		writeJSONError(w, http.StatusBadRequest, "invalid oauth state")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		writeJSONError(w, http.StatusBadRequest, "missing authorization code")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	token, err := config.GoogleOAuthConfig.Exchange(ctx, code)
	if err != nil {
		log.Error().Err(err).Msg("oauth code exchange failed")
		writeJSONError(w, http.StatusBadGateway, "failed to exchange authorization code")
		return
	}

	info, err := fetchGoogleUserInfo(ctx, token.AccessToken)
	if err != nil {
		log.Error().Err(err).Msg("oauth userinfo fetch failed")
		writeJSONError(w, http.StatusBadGateway, "failed to fetch user info")
		return
	}

	user, err := db.GetUserByGoogleID(info.ID)
	if err != nil {
		log.Error().Err(err).Msg("oauth user lookup failed")
		writeJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	var userID int64
	var username string
	if user != nil {
		userID, username = user.ID, user.Username
	} else {
		username, err = uniqueUsernameFor(info)
		if err != nil {
			log.Error().Err(err).Msg("oauth username generation failed")
			writeJSONError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		userID, err = db.CreateGoogleUser(username, info.ID)
		if err != nil {
			log.Error().Err(err).Msg("oauth user creation failed")
			writeJSONError(w, http.StatusInternalServerError, "internal server error")
			return
		}
	}

	jwtToken, err := utils.GenerateJWT(userID, username)
	if err != nil {
		log.Error().Err(err).Msg("jwt generation failed")
		writeJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	utils.SetAuthCookie(w, jwtToken)

	redirect := config.GetEnv("OAUTH_SUCCESS_REDIRECT", "/")
	http.Redirect(w, r, redirect, http.StatusTemporaryRedirect)
}

func fetchGoogleUserInfo(ctx context.Context, accessToken string) (*googleUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		"https://www.googleapis.com/oauth2/v2/userinfo", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo endpoint returned %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	if info.ID == "" {
		return nil, fmt.Errorf("userinfo response missing account id")
	}
	return &info, nil
}

// uniqueUsernameFor derives a username from the Google profile, adding a
// numeric suffix until it is free.
func uniqueUsernameFor(info *googleUserInfo) (string, error) {
	base := strings.ToLower(strings.ReplaceAll(info.Name, " ", "_"))
	base = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			return r
		}
		return -1
	}, base)
	if len(base) < 3 {
		base = "player"
	}
	if len(base) > 16 {
		base = base[:16]
	}

	candidate := base
	for suffix := 1; ; suffix++ {
		existing, err := db.GetUserByUsername(candidate)
		if err != nil {
			return "", err
		}
		if existing == nil && validateUsername(candidate) == "" {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%d", base, suffix)
	}
}
