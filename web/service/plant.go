package service

import (
	"github.com/Carlos43525/GardenNetApi/database"
	"github.com/Carlos43525/GardenNetApi/database/model"

	"gorm.io/gorm"
)

type PlantService struct {
	DB *gorm.DB
}

func NewPlantService() *PlantService {
	return &PlantService{DB: database.GetDB()}
}

func (s *PlantService) GetAll() ([]model.Plant, error) {
	plants := make([]model.Plant, 0)
	err := s.DB.Order("id ASC").Find(&plants).Error
	return plants, err
}

func (s *PlantService) GetById(id int) (*model.Plant, error) {
	plant := &model.Plant{}
	if err := s.DB.First(plant, id).Error; err != nil {
		return nil, err
	}
	return plant, nil
}

func (s *PlantService) Create(plant *model.Plant) error {
	return s.DB.Create(plant).Error
}

func (s *PlantService) Delete(id int) error {
	plant := &model.Plant{}
	if err := s.DB.First(plant, id).Error; err != nil {
		return err
	}
	return s.DB.Delete(plant).Error
}
