package service

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Carlos43525/GardenNetApi/database/model"
)

const feedBody = `{
	"channel": {"id": 1877019, "name": "garden"},
	"feeds": [
		{"created_at": "2022-09-29T05:43:29Z", "entry_id": 1, "field1": "137"},
		{"created_at": "2022-09-29T05:44:00Z", "entry_id": 2, "field1": "221"}
	]
}`

func newTestFeedService(upstream *httptest.Server) *FeedService {
	return &FeedService{
		measurementService: NewMeasurementService(),
		client:             upstream.Client(),
		baseURL:            upstream.URL,
		apiKey:             "test-key",
		channel:            "1877019",
	}
}

func measurementCount(t *testing.T, svc *MeasurementService) int64 {
	t.Helper()
	var count int64
	if err := svc.DB.Model(&model.Measurement{}).Count(&count).Error; err != nil {
		t.Fatalf("count measurements: %v", err)
	}
	return count
}

func TestPollInsertsFeedEntries(t *testing.T) {
	setupTestDB(t)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept header = %q, want application/json", got)
		}
		if got := r.URL.Query().Get("api_key"); got != "test-key" {
			t.Errorf("api_key = %q, want test-key", got)
		}
		w.Write([]byte(feedBody))
	}))
	defer upstream.Close()

	svc := newTestFeedService(upstream)
	result, err := svc.Poll()
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if result.Skipped {
		t.Fatal("Poll reported Skipped for a successful upstream")
	}
	if result.Inserted != 2 {
		t.Fatalf("Inserted = %d, want 2", result.Inserted)
	}

	measurements, err := svc.measurementService.GetAll()
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(measurements) != 2 {
		t.Fatalf("stored %d measurements, want 2", len(measurements))
	}
	for _, m := range measurements {
		if m.MeasurementType != model.Moisture {
			t.Errorf("measurementType = %q, want Moisture for every feed entry", m.MeasurementType)
		}
	}
	if *measurements[0].MeasuredValue != 137 || *measurements[1].MeasuredValue != 221 {
		t.Errorf("values = %v, %v, want 137, 221", *measurements[0].MeasuredValue, *measurements[1].MeasuredValue)
	}
}

// TestPollSwallowsUpstreamFailure verifies the documented behavior: a
// non-success upstream status writes nothing and is not surfaced as an error.
func TestPollSwallowsUpstreamFailure(t *testing.T) {
	setupTestDB(t)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer upstream.Close()

	svc := newTestFeedService(upstream)
	result, err := svc.Poll()
	if err != nil {
		t.Fatalf("Poll err = %v, want nil on upstream failure", err)
	}
	if !result.Skipped {
		t.Error("Skipped = false, want true")
	}
	if result.StatusCode != http.StatusBadGateway {
		t.Errorf("StatusCode = %d, want 502", result.StatusCode)
	}
	if got := measurementCount(t, svc.measurementService); got != 0 {
		t.Errorf("measurement table has %d rows, want 0", got)
	}
}

// A single malformed entry aborts the whole batch; nothing is inserted.
func TestPollMalformedEntryAbortsBatch(t *testing.T) {
	setupTestDB(t)

	body := `{"feeds": [
		{"created_at": "2022-09-29T05:43:29Z", "entry_id": 1, "field1": "137"},
		{"created_at": "2022-09-29T05:44:00Z", "entry_id": 2, "field1": "not-a-number"}
	]}`
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer upstream.Close()

	svc := newTestFeedService(upstream)
	if _, err := svc.Poll(); err == nil {
		t.Fatal("Poll err = nil, want parse failure")
	}
	if got := measurementCount(t, svc.measurementService); got != 0 {
		t.Errorf("measurement table has %d rows, want 0", got)
	}
}

func TestPollEmptyFeed(t *testing.T) {
	setupTestDB(t)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"feeds": []}`))
	}))
	defer upstream.Close()

	svc := newTestFeedService(upstream)
	result, err := svc.Poll()
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if result.Skipped || result.Inserted != 0 {
		t.Errorf("result = %+v, want no-op success", result)
	}
}
