package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/irispredictor/internal/common"
	"github.com/dmitrijs2005/irispredictor/internal/logging"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

// writeError maps a service error to its HTTP status and detail message.
func writeError(w http.ResponseWriter, r *http.Request, l logging.Logger, err error) {
	ctx := r.Context()

	switch {
	case errors.Is(err, common.ErrMissingToken):
		writeDetail(w, http.StatusUnauthorized, "Missing token")
	case errors.Is(err, common.ErrTokenExpired):
		writeDetail(w, http.StatusUnauthorized, "Token has expired")
	case errors.Is(err, common.ErrInvalidToken):
		l.Warn(ctx, "invalid token", "error", err)
		writeDetail(w, http.StatusUnauthorized, "Invalid token")
	case errors.Is(err, common.ErrInvalidCredentials):
		l.Warn(ctx, "login failed")
		writeDetail(w, http.StatusUnauthorized, "Invalid username or password")
	case errors.Is(err, common.ErrValidation):
		writeDetail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrPersistence):
		l.Error(ctx, "store failure", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Database error")
	default:
		l.Error(ctx, "internal error", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
	}
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
