package handlers

import (
	"net/http"

	"github.com/ghuser/newsletter/pkg/errhttp"
	"github.com/ghuser/newsletter/pkg/httpx"
	appsvcs "github.com/ghuser/newsletter/services/subscription/application/services"
)

const tokenParam = "subscription_token"

// ConfirmResponse is returned once a subscription is confirmed.
type ConfirmResponse struct {
	Status string `json:"status" example:"confirmed"`
} // @name ConfirmResponse

// GetSubscriptionConfirmHandler handles GET /subscriptions/confirm requests.
type GetSubscriptionConfirmHandler struct {
	svc  *appsvcs.Services
	errs errhttp.Responder
}

// NewGetSubscriptionConfirmHandler returns a GetSubscriptionConfirmHandler backed by the given services.
func NewGetSubscriptionConfirmHandler(svc *appsvcs.Services, errs errhttp.Responder) *GetSubscriptionConfirmHandler {
	return &GetSubscriptionConfirmHandler{svc: svc, errs: errs}
}

// Execute confirms the subscription that owns the token.
//
//	@Summary		Confirm a subscription
//	@Tags			subscriptions
//	@Produce		json
//	@Param			subscription_token	query		string	true	"Token from the confirmation link"
//	@Success		200					{object}	ConfirmResponse
//	@Failure		400					{object}	ErrorResponse
//	@Failure		401					{object}	ErrorResponse
//	@Router			/subscriptions/confirm [get]
func (h *GetSubscriptionConfirmHandler) Execute(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get(tokenParam)
	if token == "" {
		httpx.JSONError(w, http.StatusBadRequest, tokenParam+" is required")
		return
	}

	if _, err := h.svc.Subscription.Confirm(r.Context(), token); err != nil {
		h.errs.Write(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, ConfirmResponse{Status: "confirmed"})
}
