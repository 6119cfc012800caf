// Package model defines the persisted entities of the GardenNet API.
package model

import (
	"database/sql/driver"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

type DeviceType string

const (
	ESP8266 DeviceType = "ESP8266"
	ESP32   DeviceType = "ESP32"
)

type PlantType string

const (
	HousePlant  PlantType = "HousePlant"
	GardenPlant PlantType = "GardenPlant"
)

type MeasurementType string

const (
	Moisture MeasurementType = "Moisture"
	Humidity MeasurementType = "Humidity"
	PAR      MeasurementType = "PAR"
)

const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// DateTime stores a timestamp while accepting both RFC 3339 values and bare
// yyyy-mm-dd dates on input. Deployed sensors send full timestamps, the
// dashboard sends dates only.
type DateTime struct {
	time.Time
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid datetime %s", s)
	}
	s = s[1 : len(s)-1]
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid datetime %q", s)
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.UTC().Format(time.RFC3339) + `"`), nil
}

func (DateTime) GormDataType() string {
	return "datetime"
}

func (DateTime) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "timestamptz"
	}
	return "datetime"
}

func (d DateTime) Value() (driver.Value, error) {
	return d.Time, nil
}

func (d *DateTime) Scan(value any) error {
	switch v := value.(type) {
	case time.Time:
		d.Time = v
		return nil
	case string:
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			t, err = time.Parse("2006-01-02 15:04:05.999999999-07:00", v)
		}
		if err != nil {
			return err
		}
		d.Time = t
		return nil
	case []byte:
		return d.Scan(string(v))
	case nil:
		d.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into DateTime", value)
	}
}

type User struct {
	Id            int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Username      string `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash  string `json:"-"`
	SecurityStamp string `json:"-"`
	Roles         []Role `json:"roles,omitempty" gorm:"many2many:user_roles"`
}

type Role struct {
	Id   int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

type Device struct {
	Id         int        `json:"id" gorm:"primaryKey;autoIncrement"`
	Name       string     `json:"name" binding:"required"`
	Location   string     `json:"location" binding:"required"`
	Status     string     `json:"status" binding:"required"`
	DeviceType DeviceType `json:"deviceType" binding:"required"`
	DeployDate DateTime   `json:"deployDate" binding:"required"`
}

type Plant struct {
	Id             int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Name           string    `json:"name" binding:"required"`
	ScientificName string    `json:"scientificName,omitempty"`
	PlantType      PlantType `json:"plantType" binding:"required"`
	Location       string    `json:"location,omitempty"`
	Date           DateTime  `json:"date" binding:"required"`
}

// Measurement rows are written three ways: direct POST, the ThingSpeak feed
// import, and the device test stub. Version backs the optimistic concurrency
// check on updates.
type Measurement struct {
	Id              int             `json:"id" gorm:"primaryKey;autoIncrement"`
	MeasurementType MeasurementType `json:"measurementType" binding:"required"`
	MeasuredValue   *float64        `json:"measuredValue"`
	DateTime        DateTime        `json:"dateTime" binding:"required"`
	Version         int             `json:"-" gorm:"not null;default:0"`
}
