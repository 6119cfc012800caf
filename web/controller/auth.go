// Package controller provides the HTTP handlers of the GardenNet API and
// wires them onto gin route groups.
package controller

import (
	"net/http"

	"github.com/Carlos43525/GardenNetApi/logger"
	"github.com/Carlos43525/GardenNetApi/web/entity"
	"github.com/Carlos43525/GardenNetApi/web/service"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	userService  *service.UserService
	tokenService *service.TokenService
}

func NewAuthController(g *gin.RouterGroup, tokens *service.TokenService, auth, admin gin.HandlerFunc) *AuthController {
	c := &AuthController{
		userService:  service.NewUserService(),
		tokenService: tokens,
	}

	authGroup := g.Group("/auth")
	{
		authGroup.POST("/login", c.login)
		authGroup.POST("/register", c.register)
		authGroup.POST("/register-admin", auth, admin, c.registerAdmin)
	}
	return c
}

func (c *AuthController) login(ctx *gin.Context) {
	var req entity.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user := c.userService.CheckUser(req.Username, req.Password)
	if user == nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, expiration, err := c.tokenService.Mint(user)
	if err != nil {
		logger.Error("mint token err:", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})
		return
	}

	ctx.JSON(http.StatusOK, entity.TokenResponse{Token: token, Expiration: expiration})
}

func (c *AuthController) register(ctx *gin.Context) {
	var req entity.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, err := c.userService.Register(req.Username, req.Password)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, user)
}

func (c *AuthController) registerAdmin(ctx *gin.Context) {
	var req entity.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if _, err := c.userService.RegisterAdmin(req.Username, req.Password); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, "User created successfully!")
}
