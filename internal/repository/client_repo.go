package repository

import (
	"strings"

	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
	"gorm.io/gorm"

	"store-pos/internal/model"
	"store-pos/pkg/e"
)

type ClientRepository interface {
	Create(client *model.Client) error
	Update(client *model.Client) error
	FindByID(id uuid.UUID) (*model.Client, error)
	FindByUserID(userID uuid.UUID) (*model.Client, error)
	List(search string) ([]model.Client, error)
	Count() (int64, error)
	Delete(id uuid.UUID, deletedBy string) error
	LinkUser(tx *gorm.DB, clientID, userID uuid.UUID) error
}

type clientRepo struct {
	db *gorm.DB
}

func NewClientRepo(db *gorm.DB) ClientRepository {
	return &clientRepo{db}
}

func (r *clientRepo) Create(client *model.Client) error {
	if err := r.db.Create(client).Error; err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	return nil
}

func (r *clientRepo) Update(client *model.Client) error {
	res := r.db.Model(&model.Client{}).
		Where("id = ?", client.ID).
		Select("first_name", "last_name", "email", "phone", "updated_by").
		Updates(client)
	if res.Error != nil {
		return e.Wrap(whereami.WhereAmI(), res.Error)
	}
	if res.RowsAffected == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrNotFound)
	}
	return nil
}

func (r *clientRepo) FindByID(id uuid.UUID) (*model.Client, error) {
	var client model.Client
	if err := r.db.First(&client, "id = ?", id).Error; err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), translate(err))
	}
	return &client, nil
}

func (r *clientRepo) FindByUserID(userID uuid.UUID) (*model.Client, error) {
	var client model.Client
	if err := r.db.First(&client, "user_id = ?", userID).Error; err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), translate(err))
	}
	return &client, nil
}

// List orders by surname then name and searches name, surname and email.
func (r *clientRepo) List(search string) ([]model.Client, error) {
	var clients []model.Client
	q := r.db.Order("last_name ASC").Order("first_name ASC")
	if strings.TrimSpace(search) != "" {
		p := likePattern(search)
		q = q.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?", p, p, p)
	}
	if err := q.Find(&clients).Error; err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	return clients, nil
}

func (r *clientRepo) Count() (int64, error) {
	var n int64
	if err := r.db.Model(&model.Client{}).Count(&n).Error; err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}
	return n, nil
}

// Delete soft-deletes the client and releases its account link. Sales keep their client_id.
func (r *clientRepo) Delete(id uuid.UUID, deletedBy string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.Client{}).Where("id = ?", id).
			Updates(map[string]interface{}{"deleted_by": deletedBy, "user_id": nil}).Error
		if err != nil {
			return e.Wrap(whereami.WhereAmI(), err)
		}
		res := tx.Delete(&model.Client{}, "id = ?", id)
		if res.Error != nil {
			return e.Wrap(whereami.WhereAmI(), res.Error)
		}
		if res.RowsAffected == 0 {
			return e.Wrap(whereami.WhereAmI(), e.ErrNotFound)
		}
		return nil
	})
}

func (r *clientRepo) LinkUser(tx *gorm.DB, clientID, userID uuid.UUID) error {
	res := tx.Model(&model.Client{}).Where("id = ?", clientID).Update("user_id", userID)
	if res.Error != nil {
		return e.Wrap(whereami.WhereAmI(), res.Error)
	}
	if res.RowsAffected == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrNotFound)
	}
	return nil
}
