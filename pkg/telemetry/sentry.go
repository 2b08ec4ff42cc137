package telemetry

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"

	"github.com/ghuser/newsletter/pkg/config"
)

// sensitiveQueryKeys are query parameters stripped from captured requests.
var sensitiveQueryKeys = []string{"subscription_token"}

// SetupSentry initializes the Sentry SDK. No-ops if DSN is empty.
// Every report is tagged with the service name and scrubbed of confirmation
// tokens and form bodies (subscriber name, email, login password).
func SetupSentry(cfg *config.Config) error {
	if cfg.SentryDSN == "" {
		return nil
	}
	if err := sentry.Init(sentryOptions(cfg)); err != nil {
		return fmt.Errorf("sentry init: %w", err)
	}
	return nil
}

func sentryOptions(cfg *config.Config) sentry.ClientOptions {
	return sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.Environment,
		Release:          cfg.ServiceName + "@" + cfg.ServiceVersion,
		ServerName:       cfg.ServiceName,
		TracesSampleRate: 0.2,
		Tags:             map[string]string{"bounded_context": "subscription"},
		BeforeSend:       scrubEvent,
	}
}

func scrubEvent(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
	if event == nil || event.Request == nil {
		return event
	}
	req := event.Request
	req.QueryString = scrubQuery(req.QueryString)
	if u, err := url.Parse(req.URL); err == nil && u.RawQuery != "" {
		u.RawQuery = scrubQuery(u.RawQuery)
		req.URL = u.String()
	}
	req.Data = ""
	req.Cookies = ""
	return event
}

func scrubQuery(raw string) string {
	if raw == "" {
		return raw
	}
	q, err := url.ParseQuery(raw)
	if err != nil {
		return ""
	}
	for _, k := range sensitiveQueryKeys {
		if q.Has(k) {
			q.Set(k, "[Filtered]")
		}
	}
	return q.Encode()
}

// SentryFlush flushes buffered events before process exit.
func SentryFlush() {
	sentry.Flush(2 * time.Second)
}

// SentryMiddleware returns a net/http middleware that captures panics and errors.
// Repanic: true so the outer Recovery middleware still handles the 500 response.
func SentryMiddleware() func(http.Handler) http.Handler {
	h := sentryhttp.New(sentryhttp.Options{Repanic: true})
	return h.Handle
}
