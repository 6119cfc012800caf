// Package job contains the background jobs scheduled by the web server.
package job

import (
	"github.com/Carlos43525/GardenNetApi/logger"
	"github.com/Carlos43525/GardenNetApi/web/service"
)

// FeedPollJob periodically imports the ThingSpeak channel feed so the store
// keeps filling up even when nobody hits the manual trigger.
type FeedPollJob struct {
	feedService *service.FeedService
}

func NewFeedPollJob(feedService *service.FeedService) *FeedPollJob {
	return &FeedPollJob{feedService: feedService}
}

// Run is the cron.Job entry point.
func (j *FeedPollJob) Run() {
	result, err := j.feedService.Poll()
	if err != nil {
		logger.Warning("feed poll failed:", err)
		return
	}
	if result.Skipped {
		logger.Warningf("feed poll skipped, upstream status %d", result.StatusCode)
		return
	}
	logger.Infof("feed poll inserted %d measurements", result.Inserted)
}
