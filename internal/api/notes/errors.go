package notes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/avbelov/notekeeper/internal/entity"
	"github.com/avbelov/notekeeper/pkg/logger/slogx"
)

type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slogx.Error(context.Background(), "encode response", slogx.Err(err))
	}
}

// writeValidationError maps schema violations to 422 before any
// persistence access. Malformed JSON and malformed dates land here
// too.
func writeValidationError(w http.ResponseWriter, err error) {
	resp := errorResponse{Error: "validation failed"}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			resp.Details = append(resp.Details, fmt.Sprintf("field %s failed on %s", fe.Field(), fe.Tag()))
		}
	} else {
		resp.Details = append(resp.Details, err.Error())
	}

	writeJSON(w, http.StatusUnprocessableEntity, resp)
}

// writeError distinguishes not-found from everything else. Storage
// failures surface as a generic 500 and are logged with their cause.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, entity.ErrNoteNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "note not found"})
		return
	}

	slogx.Error(r.Context(), "handle request", slogx.Err(err))
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}
