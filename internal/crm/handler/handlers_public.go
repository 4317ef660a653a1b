package handler

import (
	"net/http"

	"clienthub/internal/platform/middleware"
	dErrors "clienthub/pkg/domain-errors"
	"clienthub/pkg/platform/device"
	"clienthub/pkg/platform/httputil"
)

// handleSubscribe records a newsletter signup.
func (h *Handler) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeJSON[SubscribeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if _, err := h.svc.Subscribe(ctx, req.Fields()); err != nil {
		h.writeServiceError(w, r, "subscribe failed", err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, map[string]any{"success": true})
}

// handleRegister records an event registration.
func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeJSON[RegisterRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	submittedVia := device.Summarize(r.UserAgent())
	result, err := h.svc.RegisterForEvent(ctx, req.Input(submittedVia))
	if err != nil {
		h.writeServiceError(w, r, "event registration failed", err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"id":      result.Registration.ID,
	})
}

// writeServiceError logs and translates a service failure. Validation noise
// logs at warn, everything else at error.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	if dErrors.HasCode(err, dErrors.CodeValidation) || dErrors.HasCode(err, dErrors.CodeNotFound) {
		h.logger.WarnContext(ctx, msg, "request_id", requestID, "error", err.Error())
	} else {
		h.logger.ErrorContext(ctx, msg, "request_id", requestID, "error", err.Error())
	}
	httputil.WriteError(w, err)
}
