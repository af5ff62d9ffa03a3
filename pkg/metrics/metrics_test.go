package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Sternrassler/geo-location-client/pkg/batch"
	"github.com/Sternrassler/geo-location-client/pkg/geo"
	"github.com/prometheus/client_golang/prometheus"
)

func TestRegistry(t *testing.T) {
	if Registry == nil {
		t.Error("Registry should not be nil")
	}

	if Registry != prometheus.DefaultRegisterer {
		t.Error("Registry should be the default Prometheus registerer")
	}
}

func TestHandler_ExposesGeoMetrics(t *testing.T) {
	// Touch the batch metrics so their label sets exist.
	_, err := batch.Execute(context.Background(), batch.Config{Operation: "MetricsTest"}, []string{"a"},
		func(id string) string { return id },
		func(_ context.Context, chunk []string) (geo.BatchResult[string], error) {
			return geo.BatchResult[string]{Successes: chunk}, nil
		})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	server := httptest.NewServer(Handler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	if err != nil {
		t.Fatalf("GET metrics failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	for _, name := range []string{"geo_batch_chunks_total", "geo_batch_items_total"} {
		if !strings.Contains(string(body), name) {
			t.Errorf("metrics output missing %s", name)
		}
	}
}
