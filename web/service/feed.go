package service

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/Carlos43525/GardenNetApi/config"
	"github.com/Carlos43525/GardenNetApi/database/model"

	"github.com/goccy/go-json"
)

const defaultFeedBaseURL = "https://api.thingspeak.com"

// PollResult makes the outcome of a feed poll explicit. A non-success
// upstream status is swallowed rather than surfaced: Skipped is set, nothing
// is written, and the caller still reports success.
type PollResult struct {
	Skipped    bool
	StatusCode int
	Inserted   int
}

// FeedService pulls the ThingSpeak channel feed and imports its entries as
// moisture measurements.
type FeedService struct {
	measurementService *MeasurementService

	client  *http.Client
	baseURL string
	apiKey  string
	channel string
}

func NewFeedService(cfg *config.Config) *FeedService {
	return &FeedService{
		measurementService: NewMeasurementService(),
		// No timeout on purpose: the poll endpoint mirrors upstream latency.
		client:  &http.Client{},
		baseURL: defaultFeedBaseURL,
		apiKey:  cfg.ThingSpeakAPIKey,
		channel: cfg.ThingSpeakChannel,
	}
}

type feedEnvelope struct {
	Feeds []feedEntry `json:"feeds"`
}

type feedEntry struct {
	CreatedAt time.Time `json:"created_at"`
	EntryId   int       `json:"entry_id"`
	Field1    string    `json:"field1"`
}

// Poll fetches the channel feed and bulk-inserts every entry. One malformed
// entry aborts the whole batch; there is no partial import.
func (s *FeedService) Poll() (*PollResult, error) {
	url := fmt.Sprintf("%s/channels/%s/feeds.json?api_key=%s", s.baseURL, s.channel, s.apiKey)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &PollResult{Skipped: true, StatusCode: resp.StatusCode}, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var envelope feedEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}

	measurements := make([]model.Measurement, 0, len(envelope.Feeds))
	for _, entry := range envelope.Feeds {
		value, err := strconv.ParseFloat(entry.Field1, 64)
		if err != nil {
			return nil, fmt.Errorf("feed entry %d: bad field1 %q: %w", entry.EntryId, entry.Field1, err)
		}
		measurements = append(measurements, model.Measurement{
			// The channel only carries soil moisture; every entry is stored
			// as a Moisture reading whatever the field labels say.
			MeasurementType: model.Moisture,
			MeasuredValue:   &value,
			DateTime:        model.DateTime{Time: entry.CreatedAt},
		})
	}

	if err := s.measurementService.CreateBatch(measurements); err != nil {
		return nil, err
	}
	return &PollResult{StatusCode: resp.StatusCode, Inserted: len(measurements)}, nil
}
