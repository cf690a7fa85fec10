package repository

import (
	"strings"

	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"store-pos/internal/model"
	"store-pos/pkg/e"
)

type ProductRepository interface {
	Create(product *model.Product) error
	Update(product *model.Product) error
	FindByID(id uuid.UUID) (*model.Product, error)
	FindByIDs(ids []uuid.UUID) (map[uuid.UUID]model.Product, error)
	List(search string) ([]model.Product, error)
	ListAvailable() ([]model.Product, error)
	Recent(limit int) ([]model.Product, error)
	Count() (int64, error)
	Delete(id uuid.UUID, deletedBy string) error

	LockByID(tx *gorm.DB, id uuid.UUID) (*model.Product, error)
	DecrementStock(tx *gorm.DB, id uuid.UUID, quantity int, updatedBy string) error
	DeleteByCategory(tx *gorm.DB, categoryID uuid.UUID, deletedBy string) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	return nil
}

func (r *productRepo) Update(product *model.Product) error {
	res := r.db.Model(&model.Product{}).
		Where("id = ?", product.ID).
		Select("name", "description", "price", "stock", "active", "category_id", "updated_by").
		Updates(product)
	if res.Error != nil {
		return e.Wrap(whereami.WhereAmI(), res.Error)
	}
	if res.RowsAffected == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrNotFound)
	}
	return nil
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := r.db.Preload("Category").First(&product, "id = ?", id).Error; err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), translate(err))
	}
	return &product, nil
}

func (r *productRepo) FindByIDs(ids []uuid.UUID) (map[uuid.UUID]model.Product, error) {
	found := make(map[uuid.UUID]model.Product, len(ids))
	if len(ids) == 0 {
		return found, nil
	}
	var products []model.Product
	if err := r.db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	for _, p := range products {
		found[p.ID] = p
	}
	return found, nil
}

// List orders newest first and searches name and description.
func (r *productRepo) List(search string) ([]model.Product, error) {
	var products []model.Product
	q := r.db.Preload("Category").Order("created_at DESC")
	if strings.TrimSpace(search) != "" {
		p := likePattern(search)
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", p, p)
	}
	if err := q.Find(&products).Error; err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	return products, nil
}

// ListAvailable returns active products that can still be sold.
func (r *productRepo) ListAvailable() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Where("active = ? AND stock > ?", true, 0).Order("name ASC").Find(&products).Error
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	return products, nil
}

func (r *productRepo) Recent(limit int) ([]model.Product, error) {
	var products []model.Product
	if err := r.db.Preload("Category").Order("created_at DESC").Limit(limit).Find(&products).Error; err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	return products, nil
}

func (r *productRepo) Count() (int64, error) {
	var n int64
	if err := r.db.Model(&model.Product{}).Count(&n).Error; err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}
	return n, nil
}

func (r *productRepo) Delete(id uuid.UUID, deletedBy string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Product{}).Where("id = ?", id).Update("deleted_by", deletedBy).Error; err != nil {
			return e.Wrap(whereami.WhereAmI(), err)
		}
		res := tx.Delete(&model.Product{}, "id = ?", id)
		if res.Error != nil {
			return e.Wrap(whereami.WhereAmI(), res.Error)
		}
		if res.RowsAffected == 0 {
			return e.Wrap(whereami.WhereAmI(), e.ErrNotFound)
		}
		return nil
	})
}

// LockByID reads a product row with SELECT ... FOR UPDATE inside tx.
func (r *productRepo) LockByID(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, "id = ?", id).Error
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), translate(err))
	}
	return &product, nil
}

// DecrementStock subtracts quantity only while enough stock remains.
func (r *productRepo) DecrementStock(tx *gorm.DB, id uuid.UUID, quantity int, updatedBy string) error {
	res := tx.Model(&model.Product{}).
		Where("id = ? AND stock >= ?", id, quantity).
		Updates(map[string]interface{}{
			"stock":      gorm.Expr("stock - ?", quantity),
			"updated_by": updatedBy,
		})
	if res.Error != nil {
		return e.Wrap(whereami.WhereAmI(), res.Error)
	}
	if res.RowsAffected == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrInsufficientStock)
	}
	return nil
}

func (r *productRepo) DeleteByCategory(tx *gorm.DB, categoryID uuid.UUID, deletedBy string) error {
	if err := tx.Model(&model.Product{}).Where("category_id = ?", categoryID).Update("deleted_by", deletedBy).Error; err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if err := tx.Where("category_id = ?", categoryID).Delete(&model.Product{}).Error; err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	return nil
}
