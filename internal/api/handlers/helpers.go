package handlers

import (
	"net/http"

	"github.com/pratik-mahalle/paddock/internal/pkg/errors"
	"github.com/pratik-mahalle/paddock/internal/pkg/utils"
)

// writeServiceError maps a service error onto the HTTP response. Anything
// that is not an AppError becomes a generic 500.
func writeServiceError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*errors.AppError); ok {
		utils.WriteError(w, appErr)
		return
	}
	utils.WriteError(w, errors.Internal("Unexpected error", err))
}
