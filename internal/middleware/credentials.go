package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/caiuswebs/luxe-backend/models"
	"go.uber.org/zap"
)

func ValidateCredentials(h http.Handler, sugar *zap.SugaredLogger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType := r.Header.Get("Content-Type")
		if contentType != "application/json" {
			sugar.Error("wrong content type: " + contentType)
			http.Error(w, "wrong content type", http.StatusBadRequest)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			sugar.Error("error reading body", zap.Error(err))
			http.Error(w, "error reading body", http.StatusBadRequest)
			return
		}

		var credentials models.Credentials
		if err := json.Unmarshal(body, &credentials); err != nil {
			sugar.Error("error decoding credentials", zap.Error(err))
			http.Error(w, "error decoding credentials", http.StatusBadRequest)
			return
		}

		if credentials.Login == "" || credentials.Password == "" {
			sugar.Error("login and password are required")
			http.Error(w, "login and password are required", http.StatusBadRequest)
			return
		}

		r.Body = io.NopCloser(bytes.NewReader(body))
		r.ContentLength = int64(len(body))

		h.ServeHTTP(w, r)
	})
}
