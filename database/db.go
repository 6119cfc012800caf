// Package database owns the GORM connection, schema migration and initial
// seeding for the GardenNet API.
package database

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"path"

	"github.com/Carlos43525/GardenNetApi/config"
	"github.com/Carlos43525/GardenNetApi/database/model"
	"github.com/Carlos43525/GardenNetApi/util/crypto"
	"github.com/Carlos43525/GardenNetApi/util/random"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

const (
	defaultUsername = "admin"
	defaultPassword = "admin"
)

func initModels() error {
	models := []any{
		&model.User{},
		&model.Role{},
		&model.Device{},
		&model.Plant{},
		&model.Measurement{},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			log.Printf("Error auto migrating model: %v", err)
			return err
		}
	}
	return nil
}

// initUser seeds the default admin account the first time the server runs
// against an empty store, so register-admin is reachable at all.
func initUser() error {
	empty, err := isTableEmpty("users")
	if err != nil {
		log.Printf("Error checking if users table is empty: %v", err)
		return err
	}
	if !empty {
		return nil
	}

	hash, err := crypto.HashPassword(defaultPassword)
	if err != nil {
		return err
	}

	adminRole := model.Role{Name: model.RoleAdmin}
	if err := db.Where(&adminRole).FirstOrCreate(&adminRole).Error; err != nil {
		return err
	}

	user := &model.User{
		Username:      defaultUsername,
		PasswordHash:  hash,
		SecurityStamp: random.Seq(32),
		Roles:         []model.Role{adminRole},
	}
	return db.Create(user).Error
}

func isTableEmpty(tableName string) (bool, error) {
	var count int64
	err := db.Table(tableName).Count(&count).Error
	return count == 0, err
}

// InitDB opens the relational store. A configured Postgres DSN wins; without
// one the server keeps its data in a local SQLite file.
func InitDB(cfg *config.Config) error {
	var gormLogger logger.Interface
	if cfg.DebugMode {
		gormLogger = logger.Default
	} else {
		gormLogger = logger.Discard
	}

	c := &gorm.Config{
		Logger: gormLogger,
	}

	var err error
	if cfg.DatabaseURL != "" {
		db, err = gorm.Open(postgres.Open(cfg.DatabaseURL), c)
	} else {
		dbPath := cfg.DBPath()
		if err = os.MkdirAll(path.Dir(dbPath), fs.ModePerm); err != nil {
			return err
		}
		dsn := dbPath + "?cache=shared&_journal_mode=WAL&_synchronous=NORMAL"
		db, err = gorm.Open(sqlite.Open(dsn), c)
	}
	if err != nil {
		return err
	}

	if err := initModels(); err != nil {
		return err
	}
	return initUser()
}

// CloseDB closes the underlying connection pool.
func CloseDB() error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetDB returns the shared database handle.
func GetDB() *gorm.DB {
	return db
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
