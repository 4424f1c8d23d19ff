package handlers

import (
	"errors"
	"net/http"

	"github.com/afercon/delivery-notifier/internal/apperr"
	"github.com/afercon/delivery-notifier/internal/logx"
)

// InboxHandler serves the per-user notification inbox.
type InboxHandler struct {
	uc     InboxUsecase
	logger logx.Logger
}

// NewInboxHandler creates a new InboxHandler.
func NewInboxHandler(uc InboxUsecase, logger logx.Logger) *InboxHandler {
	return &InboxHandler{uc: uc, logger: logger}
}

// List handles GET /users/{userID}/notifications.
func (h *InboxHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := idFromURL(r, "userID")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid user id")
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}

	recs, err := h.uc.List(r.Context(), userID, limit, offset)
	if err != nil {
		h.writeUsecaseError(w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, toNotificationDTOs(recs))
}

// MarkRead handles POST /notifications/{id}/read.
func (h *InboxHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid notification id")
		return
	}
	if err := h.uc.MarkRead(r.Context(), id); err != nil {
		h.writeUsecaseError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *InboxHandler) writeUsecaseError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "notification not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
