package service

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"store-pos/internal/access"
	"store-pos/internal/model"
	"store-pos/internal/repository"
	"store-pos/internal/ws"
	"store-pos/pkg/validator"
)

type CategoryInput struct {
	Name string `json:"name" form:"name" validate:"required,max=100"`
}

type CategoryService interface {
	List(search string) ([]model.Category, error)
	Get(id uuid.UUID) (*model.Category, error)
	Create(actor *access.Principal, in CategoryInput) (*model.Category, error)
	Update(actor *access.Principal, id uuid.UUID, in CategoryInput) (*model.Category, error)
	Delete(actor *access.Principal, id uuid.UUID) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	db           *gorm.DB
	events       EventPublisher
}

func NewCategoryService(cRepo repository.CategoryRepository, pRepo repository.ProductRepository, db *gorm.DB, events EventPublisher) CategoryService {
	if events == nil {
		events = NoopPublisher
	}
	return &categoryService{categoryRepo: cRepo, productRepo: pRepo, db: db, events: events}
}

func (s *categoryService) List(search string) ([]model.Category, error) {
	return s.categoryRepo.List(search)
}

func (s *categoryService) Get(id uuid.UUID) (*model.Category, error) {
	return s.categoryRepo.FindByID(id)
}

func (s *categoryService) Create(actor *access.Principal, in CategoryInput) (*model.Category, error) {
	if err := validator.Check(in); err != nil {
		return nil, err
	}
	category := &model.Category{Name: in.Name}
	category.CreatedBy = actorName(actor)
	category.UpdatedBy = actorName(actor)

	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Update(actor *access.Principal, id uuid.UUID, in CategoryInput) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := validator.Check(in); err != nil {
		return nil, err
	}
	category.Name = in.Name
	category.UpdatedBy = actorName(actor)

	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes the category together with its products in one transaction.
func (s *categoryService) Delete(actor *access.Principal, id uuid.UUID) error {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.productRepo.DeleteByCategory(tx, id, actorName(actor)); err != nil {
			return err
		}
		return s.categoryRepo.Delete(tx, id, actorName(actor))
	})
	if err != nil {
		return err
	}

	s.events.Publish(ws.Event{
		Type:    "stock_update",
		Action:  "category_deleted",
		Data:    map[string]interface{}{"id": category.ID, "name": category.Name},
		Actor:   actorName(actor),
		Message: actorName(actor) + " deleted category '" + category.Name + "'",
	})
	return nil
}
