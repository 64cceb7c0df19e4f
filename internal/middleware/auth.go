package middleware

import (
	"net/http"
	"strings"

	"github.com/caiuswebs/luxe-backend/internal/auth"
	"go.uber.org/zap"
)

// ValidateOperator guards operator-only routes. The operator id recovered from
// the token is passed down in the Operator-ID header.
func ValidateOperator(secret string) Middleware {
	return func(h http.Handler, sugar *zap.SugaredLogger) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authorization header is missing", http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				http.Error(w, "Invalid token format", http.StatusUnauthorized)
				return
			}

			operatorID, err := auth.ValidateJWT(secret, tokenString)
			if err != nil {
				sugar.Errorw("Invalid token", "error", err)
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			r.Header.Set("Operator-ID", operatorID)

			h.ServeHTTP(w, r)
		})
	}
}
