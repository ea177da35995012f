package reservation

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"roomreserve/internal/api"
)

type Handlers struct {
	Svc *Service
}

type listResponse struct {
	Rows []Record `json:"rows"`
}

func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Svc.List(r.Context())
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "STORE_ERROR", err.Error())
		return
	}
	api.WriteJSON(w, http.StatusOK, listResponse{Rows: rows})
}

// AdminList is the unfiltered listing behind the teacher gate; same shape as
// the public list.
func (h Handlers) AdminList(w http.ResponseWriter, r *http.Request) {
	h.List(w, r)
}

func (h Handlers) Submit(w http.ResponseWriter, r *http.Request) {
	var in SubmitInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid JSON body")
		return
	}
	if in.Email == "" || in.StudentID == "" || in.Room == "" || in.Date == "" || in.Start == "" || in.End == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED",
			"email, studentId, room, date, start and end are required")
		return
	}

	res, err := h.Svc.Submit(r.Context(), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, res)
}

type decisionRequest struct {
	Decision string `json:"decision"`
}

func (h Handlers) Decide(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing id")
		return
	}

	var req decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid JSON body")
		return
	}

	actor := ""
	if ident := api.IdentityFromContext(r.Context()); ident != nil {
		actor = ident.Email
	}

	if err := h.Svc.Decide(r.Context(), id, req.Decision, actor); err != nil {
		writeServiceError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// writeServiceError maps service failures onto the wire taxonomy. Backing
// store failures keep the underlying message so sheet problems stay
// diagnosable from the response.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidDecision):
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
	case errors.Is(err, ErrSchemaIncomplete):
		api.WriteError(w, http.StatusBadRequest, "SCHEMA_INCOMPLETE", err.Error())
	case errors.Is(err, ErrNotFound):
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	default:
		api.WriteError(w, http.StatusInternalServerError, "STORE_ERROR", err.Error())
	}
}
