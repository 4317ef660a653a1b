package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"clienthub/internal/crm/store/registration"
	"clienthub/internal/platform/middleware"
	id "clienthub/pkg/domain"
	dErrors "clienthub/pkg/domain-errors"
	"clienthub/pkg/platform/httputil"
)

// handleAdminLogin exchanges the static admin credential for a session token.
func (h *Handler) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeJSON[LoginRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	token, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		h.logger.WarnContext(ctx, "admin login rejected", "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"token": token})
}

// handleListRegistrations lists registrations, optionally filtered by
// eventId, email, or phone query parameters.
func (h *Handler) handleListRegistrations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	q := r.URL.Query()
	filter := registration.Filter{
		EventID: id.EventID(q.Get("eventId")),
		Email:   q.Get("email"),
		Phone:   q.Get("phone"),
	}

	regs, err := h.svc.ListRegistrations(ctx, filter)
	if err != nil {
		h.writeServiceError(w, r, "failed to list registrations", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{"registrations": regs})
}

// handleListClients lists the client base, most recently updated first.
func (h *Handler) handleListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.svc.ListClients(r.Context())
	if err != nil {
		h.writeServiceError(w, r, "failed to list clients", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{"clients": clients})
}

// handleAdminCreateClient records a manual client entry, merging into an
// existing record when the contact details match one.
func (h *Handler) handleAdminCreateClient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeJSON[AdminClientRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	c, err := h.svc.AdminCreateClient(ctx, req.Fields())
	if err != nil {
		h.writeServiceError(w, r, "admin client create failed", err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, c)
}

// handleAdminEditClient overwrites a client record wholesale.
func (h *Handler) handleAdminEditClient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	clientID, err := id.ParseClientID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid client id"))
		return
	}

	req, ok := httputil.DecodeJSON[AdminClientRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	c, err := h.svc.AdminEditClient(ctx, clientID, req.Fields())
	if err != nil {
		h.writeServiceError(w, r, "admin client edit failed", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, c)
}
