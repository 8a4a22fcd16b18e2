package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/irispredictor/internal/common"
	"github.com/dmitrijs2005/irispredictor/internal/logging"
	"github.com/go-chi/chi/v5/middleware"
)

// accessLogger logs one line per request.
func accessLogger(l logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				l.Info(r.Context(), "access",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration", time.Since(start),
					"remote", r.RemoteAddr,
					"request_id", middleware.GetReqID(r.Context()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
// An absent header or an empty token is common.ErrMissingToken; any other
// scheme is common.ErrInvalidToken.
func bearerToken(r *http.Request) (string, error) {
	h := strings.TrimSpace(r.Header.Get(common.AuthorizationHeaderName))
	if h == "" {
		return "", common.ErrMissingToken
	}
	scheme, token, _ := strings.Cut(h, " ")
	if !strings.EqualFold(scheme, common.BearerScheme) {
		return "", common.ErrInvalidToken
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", common.ErrMissingToken
	}
	return token, nil
}

type ctxKey string

const bearerTokenKey ctxKey = "bearer_token"

// authMiddleware rejects requests without a valid bearer token before any
// body or query parsing, and stores the token in the request context.
func authMiddleware(tokens Tokens, l logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r)
			if err != nil {
				writeError(w, r, l, err)
				return
			}
			if _, err := tokens.Validate(token); err != nil {
				writeError(w, r, l, err)
				return
			}

			ctx := context.WithValue(r.Context(), bearerTokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(bearerTokenKey).(string)
	return token
}
