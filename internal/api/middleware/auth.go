package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/JoeyBiino/Siino-Client-Portal/internal/api/handlers"
)

// HeaderClientID заголовок с идентификатором портального клиента.
// Заполняется gateway после проверки portal code
const HeaderClientID = "X-Client-ID"

type contextKey string

const clientIDKey contextKey = "clientID"

// Auth middleware извлекает ID клиента из заголовка и кладёт его в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderClientID)
		if raw == "" {
			handlers.RespondUnauthorized(w, "missing "+HeaderClientID+" header")
			return
		}

		clientID, err := uuid.Parse(raw)
		if err != nil {
			handlers.RespondUnauthorized(w, "invalid "+HeaderClientID+" header")
			return
		}

		ctx := context.WithValue(r.Context(), clientIDKey, clientID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClientID возвращает ID клиента из контекста
func GetClientID(ctx context.Context) (uuid.UUID, bool) {
	clientID, ok := ctx.Value(clientIDKey).(uuid.UUID)
	return clientID, ok
}
