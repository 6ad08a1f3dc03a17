package middleware

import (
	"context"
	"digit_slot/internal/model"
	"digit_slot/pkg/token"
	"net/http"
	"strings"
)

type ctxKey int

const playerKey ctxKey = iota

// Auth Проверка Bearer токена. ID игрока и сам токен кладутся в контекст
func Auth(secretKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			claims, err := token.VerifyToken(raw, secretKey)
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}
			id, err := token.PlayerID(claims)
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), playerKey, model.Player{ID: id, Token: raw})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func PlayerFromContext(ctx context.Context) (model.Player, bool) {
	p, ok := ctx.Value(playerKey).(model.Player)
	return p, ok
}

func UserIDFromContext(ctx context.Context) (int, bool) {
	p, ok := PlayerFromContext(ctx)
	return p.ID, ok
}

// WithPlayer Кладет игрока в контекст в обход проверки токена
func WithPlayer(ctx context.Context, p model.Player) context.Context {
	return context.WithValue(ctx, playerKey, p)
}
