package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Carlos43525/GardenNetApi/config"
	"github.com/Carlos43525/GardenNetApi/database"
	"github.com/Carlos43525/GardenNetApi/logger"
	"github.com/Carlos43525/GardenNetApi/web"

	"github.com/joho/godotenv"
	"github.com/op/go-logging"
)

func main() {
	// A missing .env file is fine, plain environment variables work too.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	switch cfg.LogLevel {
	case config.Debug:
		logger.InitLogger(logging.DEBUG, cfg.LogFolder)
	case config.Info:
		logger.InitLogger(logging.INFO, cfg.LogFolder)
	case config.Notice:
		logger.InitLogger(logging.NOTICE, cfg.LogFolder)
	case config.Warn:
		logger.InitLogger(logging.WARNING, cfg.LogFolder)
	case config.Error:
		logger.InitLogger(logging.ERROR, cfg.LogFolder)
	default:
		log.Fatal("unknown log level:", cfg.LogLevel)
	}
	defer logger.CloseLogger()

	if err := database.InitDB(cfg); err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := database.CloseDB(); err != nil {
			logger.Warning("close database err:", err)
		}
	}()

	server := web.NewServer(cfg)
	if err := server.Start(); err != nil {
		log.Println(err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			logger.Info("received SIGHUP, restarting server")
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			server = web.NewServer(cfg)
			if err := server.Start(); err != nil {
				log.Println(err)
				return
			}
		default:
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			return
		}
	}
}
