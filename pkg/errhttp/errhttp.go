// Package errhttp maps subscription sentinel errors to HTTP status codes.
// Add a case to Status for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/newsletter/pkg/httpx"
	"github.com/ghuser/newsletter/pkg/logger"
	subdomain "github.com/ghuser/newsletter/services/subscription/domain"
)

// Responder writes JSON error responses. 5xx errors are logged, and their
// message is replaced with the status text when Production is set.
type Responder struct {
	Log        logger.Logger
	Production bool
}

// Write maps err to a status and writes {"error": "..."}.
func (rs Responder) Write(w http.ResponseWriter, r *http.Request, err error) {
	status := Status(err)
	if status >= http.StatusInternalServerError && rs.Log != nil {
		rs.Log.ErrorContext(r.Context(), "request failed", "error", err, "path", r.URL.Path)
	}
	httpx.JSONError(w, status, httpx.SafeError(err, status, rs.Production))
}

// WriteError maps err to an HTTP status code and writes a JSON error response
// carrying err's message.
func WriteError(w http.ResponseWriter, err error) {
	httpx.JSONError(w, Status(err), err.Error())
}

// Status uses errors.Is so wrapped sentinels match. Unrecognized errors are 500.
func Status(err error) int {
	switch {
	case errors.Is(err, subdomain.ErrInvalidSubscriberName),
		errors.Is(err, subdomain.ErrInvalidSubscriberEmail),
		errors.Is(err, subdomain.ErrInvalidSubscriptionToken):
		return http.StatusBadRequest
	case errors.Is(err, subdomain.ErrSubscriptionTokenNotFound):
		return http.StatusUnauthorized
	case errors.Is(err, subdomain.ErrSubscriberNotFound):
		return http.StatusNotFound
	case errors.Is(err, subdomain.ErrSubscriberAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
