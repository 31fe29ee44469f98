package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"fourline/db"
	"fourline/models"
	"fourline/utils"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func validateUsername(username string) string {
	if !usernamePattern.MatchString(username) {
		return "username must be 3-20 characters, letters, digits and underscores only"
	}
	if strings.EqualFold(username, models.BotUsername) {
		return "username is reserved"
	}
	return ""
}

// Signup registers a new user and logs them in.
func Signup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if msg := validateUsername(creds.Username); msg != "" {
		writeJSONError(w, http.StatusBadRequest, msg)
		return
	}
	if len(creds.Password) < 8 {
		writeJSONError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	existing, err := db.GetUserByUsername(creds.Username)
	if err != nil {
		log.Error().Err(err).Msg("signup lookup failed")
		writeJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if existing != nil {
		writeJSONError(w, http.StatusConflict, "username already taken")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("password hash failed")
		writeJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	userID, err := db.CreateUser(creds.Username, string(hash))
	if err != nil {
		log.Error().Err(err).Msg("user creation failed")
		writeJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	issueSession(w, userID, creds.Username)
}

// Login authenticates an existing user.
func Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := db.GetUserByUsername(creds.Username)
	if err != nil {
		log.Error().Err(err).Msg("login lookup failed")
		writeJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if user == nil || user.PasswordHash == "" {
		writeJSONError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		writeJSONError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	issueSession(w, user.ID, user.Username)
}

// Logout clears the auth cookie.
func Logout(w http.ResponseWriter, r *http.Request) {
	utils.ClearAuthCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// Me returns the authenticated user's profile and stats.
func Me(w http.ResponseWriter, r *http.Request) {
	token, err := utils.GetTokenFromCookie(r)
	if err != nil {
		writeJSONError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	claims, err := utils.ValidateJWT(token)
	if err != nil {
		writeJSONError(w, http.StatusUnauthorized, "invalid session")
		return
	}

	user, err := db.GetUserByID(claims.UserID)
	if err != nil {
		log.Error().Err(err).Msg("profile lookup failed")
		writeJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if user == nil {
		writeJSONError(w, http.StatusUnauthorized, "user no longer exists")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user_id":      user.ID,
		"username":     user.Username,
		"games_played": user.GamesPlayed,
		"games_won":    user.GamesWon,
	})
}

func issueSession(w http.ResponseWriter, userID int64, username string) {
	token, err := utils.GenerateJWT(userID, username)
	if err != nil {
		log.Error().Err(err).Msg("jwt generation failed")
		writeJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	utils.SetAuthCookie(w, token)
	writeJSON(w, http.StatusOK, authResponse{
		UserID:   userID,
		Username: username,
		Token:    token,
	})
}
