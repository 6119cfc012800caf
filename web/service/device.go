package service

import (
	"github.com/Carlos43525/GardenNetApi/database"
	"github.com/Carlos43525/GardenNetApi/database/model"

	"gorm.io/gorm"
)

type DeviceService struct {
	DB *gorm.DB
}

func NewDeviceService() *DeviceService {
	return &DeviceService{DB: database.GetDB()}
}

func (s *DeviceService) GetAll() ([]model.Device, error) {
	devices := make([]model.Device, 0)
	err := s.DB.Order("id ASC").Find(&devices).Error
	return devices, err
}

func (s *DeviceService) GetById(id int) (*model.Device, error) {
	device := &model.Device{}
	if err := s.DB.First(device, id).Error; err != nil {
		return nil, err
	}
	return device, nil
}

func (s *DeviceService) Create(device *model.Device) error {
	return s.DB.Create(device).Error
}

func (s *DeviceService) Delete(id int) error {
	device := &model.Device{}
	if err := s.DB.First(device, id).Error; err != nil {
		return err
	}
	return s.DB.Delete(device).Error
}
