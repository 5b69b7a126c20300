package handlers

import (
	"net/http"
	"time"

	"github.com/borex256/century-music-empire/pkg/label/auth"
)

// AuthHandler serves login, logout, and the remembered session.
type AuthHandler struct {
	Auth         *auth.Service
	MaxBodyBytes int64
	Timeout      time.Duration
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

func (h AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, h.MaxBodyBytes, &req); err != nil {
		writeError(w, r, err)
		return
	}

	ctx, cancel := boundedContext(r, h.Timeout)
	defer cancel()

	user, err := h.Auth.Login(ctx, auth.Credentials{
		Email:    req.Email,
		Password: req.Password,
		Remember: req.Remember,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Auth.Logout(); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Session returns the remembered user, if any.
func (h AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	user, ok := h.Auth.Remembered()
	writeJSON(w, http.StatusOK, map[string]any{
		"logged_in": ok,
		"user": func() any {
			if !ok {
				return nil
			}
			return user
		}(),
	})
}
