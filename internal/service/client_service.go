package service

import (
	"github.com/google/uuid"

	"store-pos/internal/access"
	"store-pos/internal/model"
	"store-pos/internal/repository"
	"store-pos/pkg/validator"
)

type ClientInput struct {
	FirstName string `json:"first_name" form:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" form:"last_name" validate:"required,max=100"`
	Email     string `json:"email" form:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" form:"phone" validate:"max=30"`
}

type ClientService interface {
	List(search string) ([]model.Client, error)
	Get(id uuid.UUID) (*model.Client, error)
	Create(actor *access.Principal, in ClientInput) (*model.Client, error)
	Update(actor *access.Principal, id uuid.UUID, in ClientInput) (*model.Client, error)
	Delete(actor *access.Principal, id uuid.UUID) error
}

type clientService struct {
	repo repository.ClientRepository
}

func NewClientService(repo repository.ClientRepository) ClientService {
	return &clientService{repo: repo}
}

func (s *clientService) List(search string) ([]model.Client, error) {
	return s.repo.List(search)
}

func (s *clientService) Get(id uuid.UUID) (*model.Client, error) {
	return s.repo.FindByID(id)
}

func (s *clientService) Create(actor *access.Principal, in ClientInput) (*model.Client, error) {
	if err := validator.Check(in); err != nil {
		return nil, err
	}
	client := &model.Client{}
	copyClient(client, in)
	client.CreatedBy = actorName(actor)
	client.UpdatedBy = actorName(actor)

	if err := s.repo.Create(client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) Update(actor *access.Principal, id uuid.UUID, in ClientInput) (*model.Client, error) {
	client, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := validator.Check(in); err != nil {
		return nil, err
	}
	copyClient(client, in)
	client.UpdatedBy = actorName(actor)

	if err := s.repo.Update(client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) Delete(actor *access.Principal, id uuid.UUID) error {
	return s.repo.Delete(id, actorName(actor))
}

func copyClient(dst *model.Client, in ClientInput) {
	dst.FirstName = in.FirstName
	dst.LastName = in.LastName
	dst.Email = in.Email
	dst.Phone = in.Phone
}
