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

type PlantController struct {
	svc *service.PlantService
}

func NewPlantController(g *gin.RouterGroup, auth, admin gin.HandlerFunc) *PlantController {
	c := &PlantController{svc: service.NewPlantService()}

	plants := g.Group("/plants")
	{
		plants.GET("", c.getAll)
		plants.GET("/:id", c.getById)
		plants.POST("", auth, admin, c.post)
		plants.DELETE("/:id", auth, admin, c.delete)
	}
	return c
}

func (c *PlantController) getAll(ctx *gin.Context) {
	plants, err := c.svc.GetAll()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, plants)
}

func (c *PlantController) getById(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	plant, err := c.svc.GetById(id)
	if database.IsNotFound(err) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "plant not found"})
		return
	} else if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, plant)
}

func (c *PlantController) post(ctx *gin.Context) {
	var plant model.Plant
	if err := ctx.ShouldBindJSON(&plant); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := c.svc.Create(&plant); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.Header("Location", fmt.Sprintf("/api/plants/%d", plant.Id))
	ctx.JSON(http.StatusCreated, plant)
}

func (c *PlantController) delete(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	err = c.svc.Delete(id)
	if database.IsNotFound(err) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "plant not found"})
		return
	} else if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.Status(http.StatusNoContent)
}
