package repository

import (
	"strings"

	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
	"gorm.io/gorm"

	"store-pos/internal/model"
	"store-pos/pkg/e"
)

type CategoryRepository interface {
	Create(category *model.Category) error
	Update(category *model.Category) error
	FindByID(id uuid.UUID) (*model.Category, error)
	List(search string) ([]model.Category, error)
	Count() (int64, error)
	Delete(tx *gorm.DB, id uuid.UUID, deletedBy string) error
}

type categoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db}
}

func (r *categoryRepo) Create(category *model.Category) error {
	if err := r.db.Create(category).Error; err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	return nil
}

func (r *categoryRepo) Update(category *model.Category) error {
	res := r.db.Model(&model.Category{}).
		Where("id = ?", category.ID).
		Select("name", "updated_by").
		Updates(category)
	if res.Error != nil {
		return e.Wrap(whereami.WhereAmI(), res.Error)
	}
	if res.RowsAffected == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrNotFound)
	}
	return nil
}

func (r *categoryRepo) FindByID(id uuid.UUID) (*model.Category, error) {
	var category model.Category
	if err := r.db.First(&category, "id = ?", id).Error; err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), translate(err))
	}
	return &category, nil
}

func (r *categoryRepo) List(search string) ([]model.Category, error) {
	var categories []model.Category
	q := r.db.Order("name ASC")
	if strings.TrimSpace(search) != "" {
		q = q.Where("LOWER(name) LIKE ?", likePattern(search))
	}
	if err := q.Find(&categories).Error; err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	return categories, nil
}

func (r *categoryRepo) Count() (int64, error) {
	var n int64
	if err := r.db.Model(&model.Category{}).Count(&n).Error; err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}
	return n, nil
}

// Delete soft-deletes the category row only; callers cascade to products in the same tx.
func (r *categoryRepo) Delete(tx *gorm.DB, id uuid.UUID, deletedBy string) error {
	if err := tx.Model(&model.Category{}).Where("id = ?", id).Update("deleted_by", deletedBy).Error; err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	res := tx.Delete(&model.Category{}, "id = ?", id)
	if res.Error != nil {
		return e.Wrap(whereami.WhereAmI(), res.Error)
	}
	if res.RowsAffected == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrNotFound)
	}
	return nil
}
