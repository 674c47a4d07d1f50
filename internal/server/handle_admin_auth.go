package server

import (
	"net/http"
	"strings"
)

type AdminLoginRequest struct {
	Password string `json:"password"`
}

type AdminMeResponse struct {
	Authenticated bool `json:"authenticated"`
}

func handleAdminLogin(admin *AdminSessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AdminLoginRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if strings.TrimSpace(req.Password) == "" {
			writeError(w, http.StatusBadRequest, "password is required")
			return
		}

		sessionID, err := admin.Login(req.Password)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid password")
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     adminCookieName,
			Value:    sessionID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		writeJSON(w, http.StatusOK, AdminMeResponse{Authenticated: true})
	}
}

func handleAdminLogout(admin *AdminSessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(adminCookieName); err == nil && cookie.Value != "" {
			admin.Logout(cookie.Value)
		}

		http.SetCookie(w, &http.Cookie{
			Name:     adminCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		w.WriteHeader(http.StatusOK)
	}
}

func handleAdminMe(admin *AdminSessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(adminCookieName)
		if err != nil || cookie.Value == "" || !admin.Valid(cookie.Value) {
			writeError(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		writeJSON(w, http.StatusOK, AdminMeResponse{Authenticated: true})
	}
}
