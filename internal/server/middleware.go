package server

import (
	"context"
	"net/http"
)

type ctxKey int

const ctxKeyAdminSession ctxKey = iota

func adminAuthMiddleware(admin *AdminSessions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(adminCookieName)
			if err != nil || cookie.Value == "" || !admin.Valid(cookie.Value) {
				writeError(w, http.StatusUnauthorized, "not authenticated")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyAdminSession, cookie.Value)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func adminSessionID(r *http.Request) string {
	return r.Context().Value(ctxKeyAdminSession).(string)
}
