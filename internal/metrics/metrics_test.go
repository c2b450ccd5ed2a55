package metrics

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"loramgr/internal/events"
)

func scrape(t *testing.T) []byte {
	t.Helper()
	rr := httptest.NewRecorder()
	promhttp.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("/metrics status=%d", rr.Code)
	}
	return rr.Body.Bytes()
}

func TestPublisher_CountsEventsAndPoolSize(t *testing.T) {
	Publisher{}.Publish(events.Event{Name: events.PoolRefreshed, Scheduler: "cycler", Fields: map[string]any{"total_count": 7}})
	body := scrape(t)
	if !bytes.Contains(body, []byte(`loramgr_scheduler_events_total{event="pool_refreshed",scheduler="cycler"}`)) {
		t.Fatalf("missing scheduler event counter")
	}
	if !bytes.Contains(body, []byte(`loramgr_scheduler_pool_size{scheduler="cycler"} 7`)) {
		t.Fatalf("missing pool size gauge")
	}
}

func TestResolverFailure_DefaultsReason(t *testing.T) {
	ResolverFailure("")
	if !bytes.Contains(scrape(t), []byte(`loramgr_resolver_failures_total{reason="unspecified"}`)) {
		t.Fatalf("missing resolver failure counter")
	}
}
