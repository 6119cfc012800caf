package service

import (
	"errors"

	"github.com/Carlos43525/GardenNetApi/database"
	"github.com/Carlos43525/GardenNetApi/database/model"

	"gorm.io/gorm"
)

// ErrVersionConflict reports that an update lost the race against a
// concurrent writer: the row still exists but its version moved on.
var ErrVersionConflict = errors.New("measurement was modified concurrently")

type MeasurementService struct {
	DB *gorm.DB
}

func NewMeasurementService() *MeasurementService {
	return &MeasurementService{DB: database.GetDB()}
}

func (s *MeasurementService) GetAll() ([]model.Measurement, error) {
	measurements := make([]model.Measurement, 0)
	err := s.DB.Order("id ASC").Find(&measurements).Error
	return measurements, err
}

func (s *MeasurementService) GetById(id int) (*model.Measurement, error) {
	measurement := &model.Measurement{}
	if err := s.DB.First(measurement, id).Error; err != nil {
		return nil, err
	}
	return measurement, nil
}

func (s *MeasurementService) Create(measurement *model.Measurement) error {
	return s.DB.Create(measurement).Error
}

// CreateBatch inserts all measurements in a single transaction; either the
// whole batch lands or none of it does.
func (s *MeasurementService) CreateBatch(measurements []model.Measurement) error {
	if len(measurements) == 0 {
		return nil
	}
	return s.DB.Create(&measurements).Error
}

// Update applies a read-modify-write guarded by the version column. The
// update only lands when the version observed at read time is still current.
func (s *MeasurementService) Update(measurement *model.Measurement) error {
	current := &model.Measurement{}
	if err := s.DB.First(current, measurement.Id).Error; err != nil {
		return err
	}

	result := s.DB.Model(&model.Measurement{}).
		Where("id = ? AND version = ?", measurement.Id, current.Version).
		Updates(map[string]any{
			"measurement_type": measurement.MeasurementType,
			"measured_value":   measurement.MeasuredValue,
			"date_time":        measurement.DateTime,
			"version":          current.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := s.DB.Model(&model.Measurement{}).Where("id = ?", measurement.Id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		return ErrVersionConflict
	}
	return nil
}

func (s *MeasurementService) Delete(id int) error {
	measurement := &model.Measurement{}
	if err := s.DB.First(measurement, id).Error; err != nil {
		return err
	}
	return s.DB.Delete(measurement).Error
}

// InsertTest writes a fixed-value row at the given id. Only used when
// checking a freshly flashed board against the live API.
func (s *MeasurementService) InsertTest(id int) (*model.Measurement, error) {
	value := 33.0
	measurement := &model.Measurement{
		Id:              id,
		MeasurementType: model.Moisture,
		MeasuredValue:   &value,
		DateTime:        model.DateTime{},
	}
	if err := s.DB.Create(measurement).Error; err != nil {
		return nil, err
	}
	return measurement, nil
}
