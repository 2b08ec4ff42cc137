package handlers

import (
	"net/http"

	"github.com/ghuser/newsletter/pkg/errhttp"
	"github.com/ghuser/newsletter/pkg/httpx"
	pkgvalidator "github.com/ghuser/newsletter/pkg/validator"
	appsvcs "github.com/ghuser/newsletter/services/subscription/application/services"
)

// SubscribeForm is the urlencoded body of POST /subscriptions.
type SubscribeForm struct {
	Name  string `form:"name"  validate:"required"`
	Email string `form:"email" validate:"required"`
}

// PostSubscriptionHandler handles POST /subscriptions requests.
type PostSubscriptionHandler struct {
	svc  *appsvcs.Services
	errs errhttp.Responder
}

// NewPostSubscriptionHandler returns a PostSubscriptionHandler backed by the given services.
func NewPostSubscriptionHandler(svc *appsvcs.Services, errs errhttp.Responder) *PostSubscriptionHandler {
	return &PostSubscriptionHandler{svc: svc, errs: errs}
}

// Execute registers a pending subscriber.
//
//	@Summary		Subscribe to the newsletter
//	@Description	Stores a subscriber pending confirmation. The name must be non-blank, at most 256 graphemes and free of / ( ) " < > \ { }.
//	@Tags			subscriptions
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			name	formData	string	true	"Subscriber name"
//	@Param			email	formData	string	true	"Subscriber email"
//	@Success		200		{object}	SubscriberResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Router			/subscriptions [post]
func (h *PostSubscriptionHandler) Execute(w http.ResponseWriter, r *http.Request) {
	form, ok := pkgvalidator.ValidateForm[SubscribeForm](w, r)
	if !ok {
		return
	}

	res, err := h.svc.Subscription.Subscribe(r.Context(), form.Name, form.Email)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(res.Subscriber))
}
