package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/nova-properties/backend/config"
	"github.com/nova-properties/backend/middleware"
	"github.com/nova-properties/backend/models"
	"github.com/nova-properties/backend/store"
	"github.com/nova-properties/backend/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	accessCookie  = "access_token"
	refreshCookie = "refresh_token"
)

// Refresh failure codes returned alongside the 401 so the frontend can
// distinguish a forced re-login from an ordinary expiry.
const (
	codeNoToken         = "NO_TOKEN"
	codeInvalidToken    = "INVALID_TOKEN"
	codeTokenExpired    = "TOKEN_EXPIRED"
	codeInvalidUser     = "INVALID_USER"
	codePasswordChanged = "PASSWORD_CHANGED"
)

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

func Register(users store.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("Error decoding register payload: %v", err)
			writeMessage(w, http.StatusBadRequest, "Invalid request payload")
			return
		}
		if err := validate.Struct(req); err != nil {
			log.Printf("Register validation failed: %v", err)
			writeMessage(w, http.StatusBadRequest, "Invalid request payload")
			return
		}

		_, err := users.ByEmail(r.Context(), req.Email)
		if err == nil {
			log.Printf("Email already registered: %s", req.Email)
			writeMessage(w, http.StatusConflict, "Email already registered")
			return
		}
		if err != store.ErrNotFound {
			log.Printf("Error checking existing email: %v", err)
			writeMessage(w, http.StatusInternalServerError, "Server error")
			return
		}

		hashed, err := utils.HashPassword(req.Password)
		if err != nil {
			log.Printf("Error hashing password: %v", err)
			writeMessage(w, http.StatusInternalServerError, "Server error")
			return
		}

		user := &models.User{
			Name:       req.Name,
			Email:      req.Email,
			Password:   hashed,
			Role:       models.RoleUser,
			Favourites: []primitive.ObjectID{},
			CreatedAt:  time.Now(),
		}
		if _, err := users.Insert(r.Context(), user); err != nil {
			log.Printf("Error inserting user: %v", err)
			writeMessage(w, http.StatusInternalServerError, "Server error")
			return
		}

		writeMessage(w, http.StatusCreated, "Registered successfully")
	}
}

func Login(users store.UserStore, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("Error decoding login payload: %v", err)
			writeMessage(w, http.StatusBadRequest, "Invalid request payload")
			return
		}

		user, err := users.ByEmail(r.Context(), req.Email)
		if err == store.ErrNotFound {
			writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		if err != nil {
			log.Printf("Login lookup error: %v", err)
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		if !utils.CheckPasswordHash(req.Password, user.Password) {
			writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		accessToken, err := utils.GenerateAccessToken(user.ID.Hex(), user.Role, []byte(cfg.JWTSecret))
		if err != nil {
			log.Printf("Error generating access token: %v", err)
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		refreshToken, err := utils.GenerateRefreshToken(user.ID.Hex(), user.Role, user.PasswordUpdatedAt, []byte(cfg.JWTRefreshSecret))
		if err != nil {
			log.Printf("Error generating refresh token: %v", err)
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		setAuthCookie(w, cfg, accessCookie, accessToken, utils.AccessTokenTTL)
		setAuthCookie(w, cfg, refreshCookie, refreshToken, utils.RefreshTokenTTL)

		writeMessage(w, http.StatusOK, "Login successful")
	}
}

func Refresh(users store.UserStore, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(refreshCookie)
		if err != nil || cookie.Value == "" {
			writeJSON(w, http.StatusUnauthorized, refreshErrorResponse{Message: "Refresh token missing", Code: codeNoToken})
			return
		}

		claims, err := utils.ValidateRefreshToken(cookie.Value, []byte(cfg.JWTRefreshSecret))
		if err == utils.ErrTokenExpired {
			writeJSON(w, http.StatusUnauthorized, refreshErrorResponse{Message: "Refresh token expired", Code: codeTokenExpired})
			return
		}
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, refreshErrorResponse{Message: "Invalid refresh token", Code: codeInvalidToken})
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, refreshErrorResponse{Message: "Invalid refresh token", Code: codeInvalidToken})
			return
		}

		user, err := users.ByID(r.Context(), userID)
		if err == store.ErrNotFound {
			writeJSON(w, http.StatusUnauthorized, refreshErrorResponse{Message: "User not found", Code: codeInvalidUser})
			return
		}
		if err != nil {
			log.Printf("Refresh lookup error: %v", err)
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		// Reject tokens minted before the last password change.
		if claims.PasswordUpdatedAt < user.PasswordUpdatedAt.UnixMilli() {
			writeJSON(w, http.StatusUnauthorized, refreshErrorResponse{Message: "Password recently changed", Code: codePasswordChanged})
			return
		}

		accessToken, err := utils.GenerateAccessToken(user.ID.Hex(), user.Role, []byte(cfg.JWTSecret))
		if err != nil {
			log.Printf("Error generating access token: %v", err)
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		setAuthCookie(w, cfg, accessCookie, accessToken, utils.AccessTokenTTL)
		writeMessage(w, http.StatusOK, "Access token refreshed")
	}
}

func Me(users store.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authUser, ok := middleware.UserFromContext(r.Context())
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		userID, err := primitive.ObjectIDFromHex(authUser.ID)
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		user, err := users.ByID(r.Context(), userID)
		if err == store.ErrNotFound {
			writeMessage(w, http.StatusNotFound, "User not found")
			return
		}
		if err != nil {
			log.Printf("GetMe lookup error: %v", err)
			writeMessage(w, http.StatusInternalServerError, "Server error")
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}

func Logout(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clearAuthCookie(w, cfg, accessCookie)
		clearAuthCookie(w, cfg, refreshCookie)
		writeMessage(w, http.StatusOK, "Logout successful")
	}
}

func setAuthCookie(w http.ResponseWriter, cfg *config.Config, name, value string, maxAge time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: cookieSameSite(cfg),
	})
}

func clearAuthCookie(w http.ResponseWriter, cfg *config.Config, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: cookieSameSite(cfg),
	})
}

// Cross-site cookies need SameSite=None (and Secure) when frontend and API
// live on different origins in production. Lax keeps local development
// working over plain HTTP.
func cookieSameSite(cfg *config.Config) http.SameSite {
	if cfg.IsProduction() {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}
