package controller

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Carlos43525/GardenNetApi/database"
	"github.com/Carlos43525/GardenNetApi/database/model"
	"github.com/Carlos43525/GardenNetApi/web/service"

	"github.com/gin-gonic/gin"
)

type DeviceController struct {
	svc *service.DeviceService
}

// NewDeviceController registers the device routes. Reads are anonymous,
// writes go through the auth and admin gates.
func NewDeviceController(g *gin.RouterGroup, auth, admin gin.HandlerFunc) *DeviceController {
	c := &DeviceController{svc: service.NewDeviceService()}

	devices := g.Group("/devices")
	{
		devices.GET("", c.getAll)
		devices.GET("/:id", c.getById)
		devices.POST("", auth, admin, c.post)
		devices.DELETE("/:id", auth, admin, c.delete)
	}
	return c
}

func (c *DeviceController) getAll(ctx *gin.Context) {
	devices, err := c.svc.GetAll()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, devices)
}

func (c *DeviceController) getById(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	device, err := c.svc.GetById(id)
	if database.IsNotFound(err) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "device not found"})
		return
	} else if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, device)
}

func (c *DeviceController) post(ctx *gin.Context) {
	var device model.Device
	if err := ctx.ShouldBindJSON(&device); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := c.svc.Create(&device); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.Header("Location", fmt.Sprintf("/api/devices/%d", device.Id))
	ctx.JSON(http.StatusCreated, device)
}

func (c *DeviceController) delete(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	err = c.svc.Delete(id)
	if database.IsNotFound(err) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "device not found"})
		return
	} else if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.Status(http.StatusNoContent)
}
