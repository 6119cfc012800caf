// Package web provides the GardenNet API web server: routing, middleware
// wiring and background job scheduling.
package web

import (
	"context"
	"io"
	"net"
	"net/http"

	"github.com/Carlos43525/GardenNetApi/config"
	"github.com/Carlos43525/GardenNetApi/database/model"
	"github.com/Carlos43525/GardenNetApi/logger"
	"github.com/Carlos43525/GardenNetApi/util/common"
	"github.com/Carlos43525/GardenNetApi/web/controller"
	"github.com/Carlos43525/GardenNetApi/web/job"
	"github.com/Carlos43525/GardenNetApi/web/middleware"
	"github.com/Carlos43525/GardenNetApi/web/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

// Server owns the gin engine, the controllers and the cron scheduler.
type Server struct {
	cfg *config.Config

	httpServer *http.Server
	listener   net.Listener

	auth         *controller.AuthController
	devices      *controller.DeviceController
	plants       *controller.PlantController
	measurements *controller.MeasurementController

	tokenService *service.TokenService
	feedService  *service.FeedService

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a web server for the given configuration.
func NewServer(cfg *config.Config) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		cfg:          cfg,
		tokenService: service.NewTokenService(cfg),
		feedService:  service.NewFeedService(cfg),
		ctx:          ctx,
		cancel:       cancel,
	}
}

// initRouter initializes gin, registers middleware and controllers and
// returns the configured engine.
func (s *Server) initRouter() *gin.Engine {
	if s.cfg.DebugMode {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	auth := middleware.JWTAuth(s.tokenService)
	admin := middleware.RequireRole(model.RoleAdmin)

	api := engine.Group("/api")
	s.auth = controller.NewAuthController(api, s.tokenService, auth, admin)
	s.devices = controller.NewDeviceController(api, auth, admin)
	s.plants = controller.NewPlantController(api, auth, admin)
	s.measurements = controller.NewMeasurementController(api, &engine.RouterGroup, s.feedService, auth, admin)

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	return engine
}

// startTask schedules the background jobs.
func (s *Server) startTask() {
	if s.cfg.FeedPollCron == "" {
		return
	}
	if _, err := s.cron.AddJob(s.cfg.FeedPollCron, job.NewFeedPollJob(s.feedService)); err != nil {
		logger.Warning("add feed poll job err:", err)
		return
	}
	logger.Infof("feed poll scheduled at %s", s.cfg.FeedPollCron)
}

// Start begins serving HTTP and starts the scheduler.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	s.cron = cron.New(cron.WithSeconds())
	s.cron.Start()

	engine := s.initRouter()

	listenAddr := net.JoinHostPort(s.cfg.Listen, s.cfg.Port)
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	logger.Info("web server running HTTP on", listener.Addr())

	s.listener = listener
	s.httpServer = &http.Server{Handler: engine}

	go func() {
		_ = s.httpServer.Serve(listener)
	}()

	s.startTask()
	return nil
}

// Stop gracefully shuts down the web server and the scheduler.
func (s *Server) Stop() error {
	s.cancel()
	if s.cron != nil {
		s.cron.Stop()
	}
	var err1, err2 error
	if s.httpServer != nil {
		err1 = s.httpServer.Shutdown(s.ctx)
	}
	if s.listener != nil {
		err2 = s.listener.Close()
	}
	return common.Combine(err1, err2)
}

// GetCtx returns the server's context.
func (s *Server) GetCtx() context.Context { return s.ctx }
