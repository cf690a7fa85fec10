package repository

import (
	"strings"

	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
	"gorm.io/gorm"

	"store-pos/internal/model"
	"store-pos/pkg/e"
)

type SupplierRepository interface {
	Create(supplier *model.Supplier) error
	Update(supplier *model.Supplier) error
	FindByID(id uuid.UUID) (*model.Supplier, error)
	List(search string) ([]model.Supplier, error)
	Count() (int64, error)
	Delete(id uuid.UUID, deletedBy string) error
}

type supplierRepo struct {
	db *gorm.DB
}

func NewSupplierRepo(db *gorm.DB) SupplierRepository {
	return &supplierRepo{db}
}

func (r *supplierRepo) Create(supplier *model.Supplier) error {
	if err := r.db.Create(supplier).Error; err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	return nil
}

func (r *supplierRepo) Update(supplier *model.Supplier) error {
	res := r.db.Model(&model.Supplier{}).
		Where("id = ?", supplier.ID).
		Select("name", "company", "phone", "email", "updated_by").
		Updates(supplier)
	if res.Error != nil {
		return e.Wrap(whereami.WhereAmI(), res.Error)
	}
	if res.RowsAffected == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrNotFound)
	}
	return nil
}

func (r *supplierRepo) FindByID(id uuid.UUID) (*model.Supplier, error) {
	var supplier model.Supplier
	if err := r.db.First(&supplier, "id = ?", id).Error; err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), translate(err))
	}
	return &supplier, nil
}

// List orders by company and searches name, company and email.
func (r *supplierRepo) List(search string) ([]model.Supplier, error) {
	var suppliers []model.Supplier
	q := r.db.Order("company ASC")
	if strings.TrimSpace(search) != "" {
		p := likePattern(search)
		q = q.Where("LOWER(name) LIKE ? OR LOWER(company) LIKE ? OR LOWER(email) LIKE ?", p, p, p)
	}
	if err := q.Find(&suppliers).Error; err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	return suppliers, nil
}

func (r *supplierRepo) Count() (int64, error) {
	var n int64
	if err := r.db.Model(&model.Supplier{}).Count(&n).Error; err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}
	return n, nil
}

func (r *supplierRepo) Delete(id uuid.UUID, deletedBy string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Supplier{}).Where("id = ?", id).Update("deleted_by", deletedBy).Error; err != nil {
			return e.Wrap(whereami.WhereAmI(), err)
		}
		res := tx.Delete(&model.Supplier{}, "id = ?", id)
		if res.Error != nil {
			return e.Wrap(whereami.WhereAmI(), res.Error)
		}
		if res.RowsAffected == 0 {
			return e.Wrap(whereami.WhereAmI(), e.ErrNotFound)
		}
		return nil
	})
}
