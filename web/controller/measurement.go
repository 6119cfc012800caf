package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Carlos43525/GardenNetApi/database"
	"github.com/Carlos43525/GardenNetApi/database/model"
	"github.com/Carlos43525/GardenNetApi/logger"
	"github.com/Carlos43525/GardenNetApi/web/service"

	"github.com/gin-gonic/gin"
)

type MeasurementController struct {
	svc  *service.MeasurementService
	feed *service.FeedService
}

// NewMeasurementController registers the measurement routes under the API
// group and the ThingSpeak import trigger at the server root, where the
// first deployment put it.
func NewMeasurementController(g, root *gin.RouterGroup, feed *service.FeedService, auth, admin gin.HandlerFunc) *MeasurementController {
	c := &MeasurementController{
		svc:  service.NewMeasurementService(),
		feed: feed,
	}

	measurements := g.Group("/measurements")
	{
		measurements.GET("", c.getAll)
		measurements.GET("/:id", c.getById)
		measurements.POST("", auth, admin, c.post)
		measurements.POST("/:id", auth, admin, c.testPost)
		measurements.PUT("/:id", auth, admin, c.put)
		measurements.DELETE("/:id", auth, admin, c.delete)
	}

	root.POST("/thinspeak", auth, admin, c.pollFeed)
	return c
}

func (c *MeasurementController) getAll(ctx *gin.Context) {
	measurements, err := c.svc.GetAll()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, measurements)
}

func (c *MeasurementController) getById(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	measurement, err := c.svc.GetById(id)
	if database.IsNotFound(err) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "measurement not found"})
		return
	} else if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, measurement)
}

func (c *MeasurementController) post(ctx *gin.Context) {
	var measurement model.Measurement
	if err := ctx.ShouldBindJSON(&measurement); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := c.svc.Create(&measurement); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.Header("Location", fmt.Sprintf("/api/measurements/%d", measurement.Id))
	ctx.JSON(http.StatusCreated, measurement)
}

// put updates a measurement. The id in the path must match the id in the
// body; a stale write against a since-deleted row comes back as 404.
func (c *MeasurementController) put(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var measurement model.Measurement
	if err := ctx.ShouldBindJSON(&measurement); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if id != measurement.Id {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "id mismatch"})
		return
	}

	err = c.svc.Update(&measurement)
	if database.IsNotFound(err) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "measurement not found"})
		return
	} else if errors.Is(err, service.ErrVersionConflict) {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	} else if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.Status(http.StatusNoContent)
}

// testPost inserts a fixed-value row at the given id, ignoring the request
// body. Kept for checking boards against the live API.
func (c *MeasurementController) testPost(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if _, err := c.svc.InsertTest(id); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.Status(http.StatusOK)
}

func (c *MeasurementController) delete(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	err = c.svc.Delete(id)
	if database.IsNotFound(err) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "measurement not found"})
		return
	} else if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.Status(http.StatusNoContent)
}

// pollFeed triggers a ThingSpeak import. An upstream failure is logged and
// swallowed; the endpoint still answers 200 with nothing inserted.
func (c *MeasurementController) pollFeed(ctx *gin.Context) {
	result, err := c.feed.Poll()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if result.Skipped {
		logger.Warningf("feed poll skipped, upstream status %d", result.StatusCode)
		ctx.JSON(http.StatusOK, gin.H{"inserted": 0})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"inserted": result.Inserted})
}
