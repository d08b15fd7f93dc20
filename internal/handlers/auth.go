// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"encoding/base64"
	"log/slog"
	"net/http"

	"github.com/pquerna/otp/totp"
	"github.com/skip2/go-qrcode"

	"inkwell/internal/middleware"
	"inkwell/internal/session"
	"inkwell/internal/store"
)

// totpIssuer is the issuer name shown in authenticator apps.
const totpIssuer = "Inkwell"

// Auth groups the login, logout, and 2FA handlers. All staff accounts
// must complete TOTP enrollment before the admin API opens up.
type Auth struct {
	users    *store.UserStore
	sessions *session.Store
}

// NewAuth creates a new Auth handler group.
func NewAuth(users *store.UserStore, sessions *session.Store) *Auth {
	return &Auth{users: users, sessions: sessions}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse tells the client which 2FA step comes next: "setup" for
// first login, "verify" for enrolled accounts.
type loginResponse struct {
	TwoFactor string `json:"twoFactor"`
}

// Login serves POST /api/auth/login. A successful password check opens
// a session with 2FA still pending; the admin API stays closed until
// the TOTP step completes.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if !decodeJSON(w, r, &in) {
		return
	}

	user, err := h.users.FindByEmail(in.Email)
	if err != nil {
		respondError(w, err)
		return
	}
	if user == nil || !h.users.CheckPassword(user, in.Password) {
		// Same response either way so emails can't be probed.
		respondJSON(w, http.StatusUnauthorized, errorBody{Error: "invalid credentials"})
		return
	}

	_, err = h.sessions.Create(r.Context(), w, &session.Data{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        string(user.Role),
		TwoFADone:   false,
	})
	if err != nil {
		slog.Error("session create failed", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
		return
	}

	step := "verify"
	if user.Needs2FASetup() {
		step = "setup"
	}

	slog.Info("login", "user", user.Email, "two_factor", step)
	respondJSON(w, http.StatusOK, loginResponse{TwoFactor: step})
}

// Logout serves POST /api/auth/logout.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Error("session destroy failed", "error", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

// setup2FAResponse carries the TOTP secret and a QR code PNG (base64)
// for scanning with an authenticator app.
type setup2FAResponse struct {
	Secret string `json:"secret"`
	QRCode string `json:"qrCode"`
}

// Setup2FA serves POST /api/auth/2fa/setup. Generates a fresh TOTP
// secret for the logged-in user; the account is not enrolled until a
// code is verified.
func (h *Auth) Setup2FA(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		respondJSON(w, http.StatusUnauthorized, errorBody{Error: "authentication required"})
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: sess.Email,
	})
	if err != nil {
		slog.Error("totp generate failed", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
		return
	}

	if err := h.users.SetTOTPSecret(sess.UserID, key.Secret()); err != nil {
		respondError(w, err)
		return
	}

	png, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		slog.Error("qr encode failed", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
		return
	}

	var buf bytes.Buffer
	buf.WriteString("data:image/png;base64,")
	buf.WriteString(base64.StdEncoding.EncodeToString(png))

	respondJSON(w, http.StatusOK, setup2FAResponse{
		Secret: key.Secret(),
		QRCode: buf.String(),
	})
}

type verify2FARequest struct {
	Code string `json:"code"`
}

// Verify2FA serves POST /api/auth/2fa/verify. A valid code completes
// enrollment on first use and unlocks the session either way.
func (h *Auth) Verify2FA(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		respondJSON(w, http.StatusUnauthorized, errorBody{Error: "authentication required"})
		return
	}

	var in verify2FARequest
	if !decodeJSON(w, r, &in) {
		return
	}

	user, err := h.users.FindByID(sess.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	if user == nil || user.TOTPSecret == nil {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "two-factor setup has not started"})
		return
	}

	if !totp.Validate(in.Code, *user.TOTPSecret) {
		respondJSON(w, http.StatusForbidden, errorBody{Error: "invalid two-factor code"})
		return
	}

	if !user.TOTPEnabled {
		if err := h.users.EnableTOTP(user.ID); err != nil {
			respondError(w, err)
			return
		}
		slog.Info("2fa enrolled", "user", user.Email)
	}

	sess.TwoFADone = true
	if err := h.sessions.Update(r.Context(), r, sess); err != nil {
		slog.Error("session update failed", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"verified": true})
}

// Me serves GET /api/auth/me: the logged-in user's session identity plus
// the CSRF token for subsequent state-changing calls.
func (h *Auth) Me(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		respondJSON(w, http.StatusUnauthorized, errorBody{Error: "authentication required"})
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"id":          sess.UserID,
		"email":       sess.Email,
		"displayName": sess.DisplayName,
		"role":        sess.Role,
		"twoFactor":   sess.TwoFADone,
		"csrfToken":   middleware.CSRFTokenFromCtx(r.Context()),
	})
}
