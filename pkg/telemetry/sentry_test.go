package telemetry

import (
	"testing"

	"github.com/getsentry/sentry-go"
)

func TestScrubSession_RemovesCookies(t *testing.T) {
	event := &sentry.Event{Request: &sentry.Request{
		URL:     "http://localhost:8080/api/customer",
		Cookies: "voiceshop_session=MTcz...",
		Headers: map[string]string{
			"cookie":     "voiceshop_session=MTcz...",
			"User-Agent": "curl/8.5",
		},
	}}

	got := scrubSession(event, nil)

	if got.Request.Cookies != "" {
		t.Errorf("expected cookies to be cleared, got %q", got.Request.Cookies)
	}
	if _, ok := got.Request.Headers["cookie"]; ok {
		t.Error("expected cookie header to be removed")
	}
	if got.Request.Headers["User-Agent"] != "curl/8.5" {
		t.Errorf("unrelated headers must survive, got %v", got.Request.Headers)
	}
}

func TestScrubSession_NoRequest(t *testing.T) {
	event := &sentry.Event{Message: "snapshot write failed"}
	if got := scrubSession(event, nil); got != event {
		t.Fatal("expected the event to pass through unchanged")
	}
}

func TestSetupSentry_NoDSNIsNoop(t *testing.T) {
	if err := SetupSentry(baseConfig()); err != nil {
		t.Fatalf("expected nil without a DSN, got %v", err)
	}
}
