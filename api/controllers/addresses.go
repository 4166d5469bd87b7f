package controllers

import (
	"net/http"

	"github.com/balasre/pharmacare-backend/api/middleware"
	"github.com/balasre/pharmacare-backend/api/responses"
	"github.com/balasre/pharmacare-backend/internal/addresses"
	pkgerrors "github.com/balasre/pharmacare-backend/pkg/errors"
	"github.com/balasre/pharmacare-backend/pkg/logger"
)

// ListAddresses returns the caller's saved delivery addresses.
func ListAddresses(repo *addresses.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		if userID <= 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		list, err := repo.ListByUser(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}
