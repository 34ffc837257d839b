package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestMetrics_ExposesCounters(t *testing.T) {
	m := New()
	m.ObserveRequest("GET", "/cats/{catID}", 200, 15*time.Millisecond)
	m.ObserveRequest("POST", "", 404, time.Millisecond)
	m.PhotoUpload(UploadError)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	out := string(body)

	for _, want := range []string{
		`catcollector_http_requests_total{method="GET",route="/cats/{catID}",status="200"} 1`,
		`catcollector_http_requests_total{method="POST",route="unmatched",status="404"} 1`,
		`catcollector_photo_uploads_total{result="error"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in metrics output", want)
		}
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveRequest("GET", "/", 200, time.Second)
	m.PhotoUpload(UploadOK)
}
