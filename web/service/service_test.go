package service

import (
	"testing"

	"github.com/Carlos43525/GardenNetApi/config"
	"github.com/Carlos43525/GardenNetApi/database"
)

// setupTestDB opens a throwaway SQLite store under t.TempDir so each test
// starts from a freshly migrated, seeded schema.
func setupTestDB(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{
		DBFolder:          t.TempDir(),
		JWTSecret:         "test-secret",
		JWTIssuer:         "gardennet-test",
		JWTAudience:       "gardennet-test",
		ThingSpeakAPIKey:  "test-key",
		ThingSpeakChannel: "1877019",
	}
	if err := database.InitDB(cfg); err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() {
		if err := database.CloseDB(); err != nil {
			t.Logf("CloseDB: %v", err)
		}
	})
	return cfg
}
