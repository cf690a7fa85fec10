package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"store-pos/internal/access"
	"store-pos/internal/model"
	"store-pos/internal/repository"
	"store-pos/internal/ws"
	"store-pos/pkg/e"
	"store-pos/pkg/validator"
)

type ProductInput struct {
	Name        string      `json:"name" form:"name" validate:"required,max=200"`
	Description string      `json:"description" form:"description"`
	Price       json.Number `json:"price" form:"price" validate:"required,money"`
	Stock       *int        `json:"stock" form:"stock" validate:"required,gte=0"`
	Active      *bool       `json:"active" form:"active"`
	CategoryID  string      `json:"category_id" form:"category_id" validate:"required,uuid"`
}

type ProductService interface {
	List(search string) ([]model.Product, error)
	Get(id uuid.UUID) (*model.Product, error)
	Create(actor *access.Principal, in ProductInput) (*model.Product, error)
	Update(actor *access.Principal, id uuid.UUID, in ProductInput) (*model.Product, error)
	Delete(actor *access.Principal, id uuid.UUID) error
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	events       EventPublisher
}

func NewProductService(pRepo repository.ProductRepository, cRepo repository.CategoryRepository, events EventPublisher) ProductService {
	if events == nil {
		events = NoopPublisher
	}
	return &productService{productRepo: pRepo, categoryRepo: cRepo, events: events}
}

func (s *productService) List(search string) ([]model.Product, error) {
	return s.productRepo.List(search)
}

func (s *productService) Get(id uuid.UUID) (*model.Product, error) {
	return s.productRepo.FindByID(id)
}

func (s *productService) Create(actor *access.Principal, in ProductInput) (*model.Product, error) {
	product := &model.Product{Active: true}
	if err := s.apply(product, in); err != nil {
		return nil, err
	}
	product.CreatedBy = actorName(actor)
	product.UpdatedBy = actorName(actor)

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	s.publish("product_created", product, actor)
	return product, nil
}

func (s *productService) Update(actor *access.Principal, id uuid.UUID, in ProductInput) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(product, in); err != nil {
		return nil, err
	}
	product.UpdatedBy = actorName(actor)

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}

	s.publish("product_updated", product, actor)
	return product, nil
}

func (s *productService) Delete(actor *access.Principal, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return err
	}
	if err := s.productRepo.Delete(id, actorName(actor)); err != nil {
		return err
	}
	s.publish("product_deleted", product, actor)
	return nil
}

// apply validates in and copies it onto product.
func (s *productService) apply(product *model.Product, in ProductInput) error {
	if err := validator.Check(in); err != nil {
		return err
	}

	verr := validator.NewValidationError()
	price, err := validator.ParseMoney(in.Price.String())
	if err != nil {
		verr.Add("price", "Enter a valid amount.")
	}
	categoryID, err := uuid.Parse(in.CategoryID)
	if err == nil {
		if _, err = s.categoryRepo.FindByID(categoryID); err != nil && !errors.Is(err, e.ErrNotFound) {
			return err
		}
	}
	if err != nil {
		verr.Add("category_id", "Select a valid choice.")
	}
	if !verr.Empty() {
		return verr
	}

	product.Name = in.Name
	product.Description = in.Description
	product.Price = price
	product.Stock = *in.Stock
	product.CategoryID = categoryID
	product.Category = nil
	if in.Active != nil {
		product.Active = *in.Active
	}
	return nil
}

func (s *productService) publish(action string, p *model.Product, actor *access.Principal) {
	s.events.Publish(ws.Event{
		Type:   "stock_update",
		Action: action,
		Data: map[string]interface{}{
			"id":    p.ID,
			"name":  p.Name,
			"stock": p.Stock,
			"price": p.Price,
		},
		Actor:   actorName(actor),
		Message: fmt.Sprintf("%s changed product '%s'", actorName(actor), p.Name),
	})
}
