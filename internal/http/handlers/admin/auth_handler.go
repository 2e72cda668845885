package admin

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"

	"github.com/rivieracrest/villa-bookings/internal/http/middleware"
	"github.com/rivieracrest/villa-bookings/internal/http/response"
	"github.com/rivieracrest/villa-bookings/internal/repo/postgres"
	"github.com/rivieracrest/villa-bookings/internal/utils"
	"github.com/rivieracrest/villa-bookings/pkg/config"
	"github.com/rivieracrest/villa-bookings/pkg/logger"
)

// AuthHandler issues and revokes opaque admin sessions.
type AuthHandler struct {
	Admins postgres.AdminRepo
	Config *config.Config
}

func NewAuthHandler(admins postgres.AdminRepo, cfg *config.Config) *AuthHandler {
	return &AuthHandler{Admins: admins, Config: cfg}
}

type loginIn struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginOut struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login verifies the password and issues a fresh opaque session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in loginIn
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	in.Email = utils.NormalizeEmail(in.Email)
	in.Password = strings.TrimSpace(in.Password)
	if in.Email == "" || in.Password == "" {
		response.BadRequest(w, "Email and password are required")
		return
	}

	user, err := h.Admins.FindUserByEmail(r.Context(), in.Email)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to look up admin user", "error", err)
		response.InternalError(w, "Failed to log in")
		return
	}
	if user == nil {
		response.Unauthorized(w, "Invalid email or password")
		return
	}

	match, err := argon2id.ComparePasswordAndHash(in.Password, user.PasswordHash)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to verify password hash", "error", err, "admin_id", user.ID)
		response.InternalError(w, "Failed to log in")
		return
	}
	if !match {
		response.Unauthorized(w, "Invalid email or password")
		return
	}

	token := uuid.NewString()
	expiresAt := time.Now().Add(h.Config.Admin.SessionTTL)
	if err := h.Admins.CreateSession(r.Context(), token, user.ID, expiresAt); err != nil {
		logger.ErrorContext(r.Context(), "Failed to create admin session", "error", err, "admin_id", user.ID)
		response.InternalError(w, "Failed to log in")
		return
	}

	http.SetCookie(w, h.sessionCookie(token, expiresAt))
	response.WriteJSON(w, http.StatusOK, loginOut{Token: token, ExpiresAt: expiresAt})
}

// Logout revokes the current session server-side.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session := middleware.Session(r)
	if session != nil {
		if err := h.Admins.DeleteSession(r.Context(), session.Token); err != nil {
			logger.ErrorContext(r.Context(), "Failed to delete admin session", "error", err)
			response.InternalError(w, "Failed to log out")
			return
		}
	}

	// Expire the cookie client-side as well.
	cookie := h.sessionCookie("", time.Unix(0, 0))
	cookie.MaxAge = -1
	http.SetCookie(w, cookie)

	w.WriteHeader(http.StatusNoContent)
}

// Me returns the authenticated operator profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	session := middleware.Session(r)
	if session == nil {
		response.Unauthorized(w, "authentication required")
		return
	}

	user, err := h.Admins.FindUserByID(r.Context(), session.AdminID)
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to load admin user", "error", err)
		response.InternalError(w, "Failed to load profile")
		return
	}
	if user == nil {
		response.Unauthorized(w, "session is invalid or expired")
		return
	}

	response.WriteJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) sessionCookie(token string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     h.Config.Admin.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   strings.HasPrefix(h.Config.Site.BaseURL, "https://"),
	}
}
