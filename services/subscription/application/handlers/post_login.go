package handlers

import (
	"net/http"

	"github.com/ghuser/newsletter/pkg/httpx"
	"github.com/ghuser/newsletter/pkg/logger"
)

// PostLoginHandler handles POST /login. There are no accounts: every
// attempt is sent back to the home page.
type PostLoginHandler struct {
	log logger.Logger
}

// NewPostLoginHandler returns a PostLoginHandler.
func NewPostLoginHandler(log logger.Logger) *PostLoginHandler {
	return &PostLoginHandler{log: log}
}

// Execute redirects to "/".
//
//	@Summary		Log in (stub)
//	@Tags			auth
//	@Accept			x-www-form-urlencoded
//	@Param			username	formData	string	false	"Username"
//	@Param			password	formData	string	false	"Password"
//	@Success		303
//	@Header			303	{string}	Location	"/"
//	@Router			/login [post]
func (h *PostLoginHandler) Execute(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err == nil {
		h.log.InfoContext(r.Context(), "login attempt", "username", r.PostForm.Get("username"))
	}
	httpx.SeeOther(w, "/")
}
