package service

import (
	"github.com/google/uuid"

	"store-pos/internal/access"
	"store-pos/internal/model"
	"store-pos/internal/repository"
	"store-pos/pkg/validator"
)

type SupplierInput struct {
	Name    string `json:"name" form:"name" validate:"required,max=100"`
	Company string `json:"company" form:"company" validate:"required,max=150"`
	Phone   string `json:"phone" form:"phone" validate:"max=30"`
	Email   string `json:"email" form:"email" validate:"omitempty,email"`
}

type SupplierService interface {
	List(search string) ([]model.Supplier, error)
	Get(id uuid.UUID) (*model.Supplier, error)
	Create(actor *access.Principal, in SupplierInput) (*model.Supplier, error)
	Update(actor *access.Principal, id uuid.UUID, in SupplierInput) (*model.Supplier, error)
	Delete(actor *access.Principal, id uuid.UUID) error
}

type supplierService struct {
	repo repository.SupplierRepository
}

func NewSupplierService(repo repository.SupplierRepository) SupplierService {
	return &supplierService{repo: repo}
}

func (s *supplierService) List(search string) ([]model.Supplier, error) {
	return s.repo.List(search)
}

func (s *supplierService) Get(id uuid.UUID) (*model.Supplier, error) {
	return s.repo.FindByID(id)
}

func (s *supplierService) Create(actor *access.Principal, in SupplierInput) (*model.Supplier, error) {
	if err := validator.Check(in); err != nil {
		return nil, err
	}
	supplier := &model.Supplier{}
	copySupplier(supplier, in)
	supplier.CreatedBy = actorName(actor)
	supplier.UpdatedBy = actorName(actor)

	if err := s.repo.Create(supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *supplierService) Update(actor *access.Principal, id uuid.UUID, in SupplierInput) (*model.Supplier, error) {
	supplier, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := validator.Check(in); err != nil {
		return nil, err
	}
	copySupplier(supplier, in)
	supplier.UpdatedBy = actorName(actor)

	if err := s.repo.Update(supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *supplierService) Delete(actor *access.Principal, id uuid.UUID) error {
	return s.repo.Delete(id, actorName(actor))
}

func copySupplier(dst *model.Supplier, in SupplierInput) {
	dst.Name = in.Name
	dst.Company = in.Company
	dst.Phone = in.Phone
	dst.Email = in.Email
}
