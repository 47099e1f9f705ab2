package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/robofest-ru/robofest/pkg/domain/model"
	"github.com/robofest-ru/robofest/pkg/usecase"
)

type ctxUserKey struct{}

// requireAuth validates the bearer token and stores the authenticated
// user in the request context
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			respondError(w, r, goerr.Wrap(usecase.ErrInvalidToken, "missing bearer token"))
			return
		}

		user, err := s.uc.Auth.ValidateAccess(r.Context(), token)
		if err != nil {
			respondError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), ctxUserKey{}, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// currentUser returns the authenticated user stored by requireAuth
func currentUser(r *http.Request) *model.AdminUser {
	user, _ := r.Context().Value(ctxUserKey{}).(*model.AdminUser)
	return user
}
