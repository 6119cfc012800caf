// Package service implements the business logic of the GardenNet API on top
// of the shared database handle.
package service

import (
	"errors"

	"github.com/Carlos43525/GardenNetApi/database"
	"github.com/Carlos43525/GardenNetApi/database/model"
	"github.com/Carlos43525/GardenNetApi/logger"
	"github.com/Carlos43525/GardenNetApi/util/crypto"
	"github.com/Carlos43525/GardenNetApi/util/random"

	"gorm.io/gorm"
)

var (
	ErrUserExists   = errors.New("user already exists")
	ErrWeakPassword = errors.New("password does not satisfy the account policy")
)

const minPasswordLength = 6

type UserService struct {
	DB *gorm.DB
}

func NewUserService() *UserService {
	return &UserService{DB: database.GetDB()}
}

// CheckUser returns the user (with roles preloaded) when the credentials
// match, nil otherwise.
func (s *UserService) CheckUser(username, password string) *model.User {
	user := &model.User{}
	err := s.DB.Preload("Roles").
		Where("username = ?", username).
		First(user).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	} else if err != nil {
		logger.Warning("check user err:", err)
		return nil
	}

	if !crypto.CheckPassword(user.PasswordHash, password) {
		return nil
	}
	return user
}

// Register creates a user with a fresh security stamp. The password policy
// lives here, not in the handlers.
func (s *UserService) Register(username, password string) (*model.User, error) {
	if len(password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	var count int64
	if err := s.DB.Model(&model.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUserExists
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:      username,
		PasswordHash:  hash,
		SecurityStamp: random.Seq(32),
	}
	if err := s.DB.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// RegisterAdmin registers a user and grants both the Admin and User roles,
// creating either role if it does not exist yet.
//
// The guard before the User grant re-checks the Admin role. That matches the
// deployed behavior exactly and is pinned by a test; see DESIGN.md before
// changing it.
func (s *UserService) RegisterAdmin(username, password string) (*model.User, error) {
	user, err := s.Register(username, password)
	if err != nil {
		return nil, err
	}

	if err := s.ensureRole(model.RoleAdmin); err != nil {
		return nil, err
	}
	if err := s.ensureRole(model.RoleUser); err != nil {
		return nil, err
	}

	if exists, err := s.roleExists(model.RoleAdmin); err == nil && exists {
		if err := s.addToRole(user, model.RoleAdmin); err != nil {
			return nil, err
		}
	}
	if exists, err := s.roleExists(model.RoleAdmin); err == nil && exists {
		if err := s.addToRole(user, model.RoleUser); err != nil {
			return nil, err
		}
	}

	return user, nil
}

func (s *UserService) ensureRole(name string) error {
	role := model.Role{Name: name}
	return s.DB.Where(&role).FirstOrCreate(&role).Error
}

func (s *UserService) roleExists(name string) (bool, error) {
	var count int64
	err := s.DB.Model(&model.Role{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (s *UserService) addToRole(user *model.User, roleName string) error {
	role := model.Role{}
	if err := s.DB.Where("name = ?", roleName).First(&role).Error; err != nil {
		return err
	}
	return s.DB.Model(user).Association("Roles").Append(&role)
}
