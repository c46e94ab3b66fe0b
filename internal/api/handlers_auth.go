// Concierge - Hospitality Property Backend and Guest Recommendations
// Copyright 2026 Stayloop
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stayloop/concierge

package api

import (
	"errors"
	"net/http"

	"github.com/stayloop/concierge/internal/auth"
	"github.com/stayloop/concierge/internal/models"
)

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login verifies admin credentials and returns a session token. The token
// is also set as an HTTP-only cookie for browser clients.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if apiErr := decodeJSONBody(w, r, &req); apiErr != nil {
		respondValidationError(w, r, apiErr)
		return
	}

	token, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondError(w, r, http.StatusUnauthorized, "AUTHENTICATION_ERROR",
				"invalid username or password", nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR",
			"login failed", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   r.TLS != nil,
	})

	respondJSON(w, r, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   map[string]string{"token": token},
	})
}

// Logout revokes the current session token and clears the cookie.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	token := bearerOrCookieToken(r)
	if token == "" {
		respondError(w, r, http.StatusUnauthorized, "AUTHENTICATION_ERROR",
			"no session token provided", nil)
		return
	}

	if err := h.auth.Logout(token); err != nil {
		respondError(w, r, http.StatusUnauthorized, "AUTHENTICATION_ERROR",
			"invalid session token", nil)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	respondJSON(w, r, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   map[string]string{"status": "logged_out"},
	})
}

func bearerOrCookieToken(r *http.Request) string {
	const prefix = "Bearer "
	header := r.Header.Get("Authorization")
	if len(header) > len(prefix) && header[:len(prefix)] == prefix {
		return header[len(prefix):]
	}
	if cookie, err := r.Cookie(auth.SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}
