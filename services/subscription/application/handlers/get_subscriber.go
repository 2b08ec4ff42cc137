package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/newsletter/pkg/errhttp"
	"github.com/ghuser/newsletter/pkg/httpx"
	appsvcs "github.com/ghuser/newsletter/services/subscription/application/services"
)

// GetSubscriberHandler handles GET /subscriptions/{id} requests.
type GetSubscriberHandler struct {
	svc  *appsvcs.Services
	errs errhttp.Responder
}

// NewGetSubscriberHandler returns a GetSubscriberHandler backed by the given services.
func NewGetSubscriberHandler(svc *appsvcs.Services, errs errhttp.Responder) *GetSubscriberHandler {
	return &GetSubscriberHandler{svc: svc, errs: errs}
}

// Execute returns one subscriber, served from the cache when possible.
//
//	@Summary		Get subscriber
//	@Tags			subscriptions
//	@Produce		json
//	@Param			id	path		string	true	"Subscriber ID"	format(uuid)
//	@Success		200	{object}	SubscriberResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/subscriptions/{id} [get]
func (h *GetSubscriberHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "id must be a UUID")
		return
	}

	sub, err := h.svc.Subscription.GetByID(r.Context(), id)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(sub))
}
