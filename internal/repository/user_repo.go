package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
	"gorm.io/gorm"

	"store-pos/internal/model"
	"store-pos/pkg/e"
)

type UserRepository interface {
	FindByUsername(username string) (*model.User, error)
	FindByID(id uuid.UUID) (*model.User, error)
	FindAll() ([]model.User, error)
	Create(tx *gorm.DB, user *model.User) error
	UpdatePassword(userID uuid.UUID, hashedPassword string) error
	UpdateTokenVersion(userID uuid.UUID, version string) error
	RecordLogin(userID uuid.UUID, version string, at time.Time) error

	FindProfile(userID uuid.UUID) (*model.UserProfile, error)
	SaveProfile(tx *gorm.DB, profile *model.UserProfile) error
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db}
}

func (r *userRepo) FindByUsername(username string) (*model.User, error) {
	var user model.User
	if err := r.db.Preload("Profile").Preload("Client").Where("username = ?", username).First(&user).Error; err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), translate(err))
	}
	return &user, nil
}

func (r *userRepo) FindByID(id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.Preload("Profile").Preload("Client").First(&user, "id = ?", id).Error; err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), translate(err))
	}
	return &user, nil
}

func (r *userRepo) FindAll() ([]model.User, error) {
	var users []model.User
	if err := r.db.Preload("Profile").Preload("Client").Order("username ASC").Find(&users).Error; err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	return users, nil
}

func (r *userRepo) Create(tx *gorm.DB, user *model.User) error {
	if err := tx.Omit("Profile", "Client").Create(user).Error; err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	return nil
}

func (r *userRepo) UpdatePassword(userID uuid.UUID, hashedPassword string) error {
	res := r.db.Model(&model.User{}).Where("id = ?", userID).Update("password", hashedPassword)
	if res.Error != nil {
		return e.Wrap(whereami.WhereAmI(), res.Error)
	}
	if res.RowsAffected == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrNotFound)
	}
	return nil
}

func (r *userRepo) UpdateTokenVersion(userID uuid.UUID, version string) error {
	if err := r.db.Model(&model.User{}).Where("id = ?", userID).Update("token_version", version).Error; err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	return nil
}

func (r *userRepo) RecordLogin(userID uuid.UUID, version string, at time.Time) error {
	err := r.db.Model(&model.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{"token_version": version, "last_login_at": at}).Error
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	return nil
}

func (r *userRepo) FindProfile(userID uuid.UUID) (*model.UserProfile, error) {
	var profile model.UserProfile
	if err := r.db.First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), translate(err))
	}
	return &profile, nil
}

// SaveProfile inserts the profile or updates the existing one for the same user.
func (r *userRepo) SaveProfile(tx *gorm.DB, profile *model.UserProfile) error {
	var existing model.UserProfile
	err := tx.First(&existing, "user_id = ?", profile.UserID).Error
	switch {
	case err == nil:
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
		profile.CreatedBy = existing.CreatedBy
		err = tx.Model(&existing).
			Select("role", "department", "active", "hire_date", "updated_by").
			Updates(profile).Error
	case translate(err) == e.ErrNotFound:
		err = tx.Create(profile).Error
	}
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	return nil
}
