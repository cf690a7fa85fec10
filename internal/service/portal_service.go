package service

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"store-pos/internal/model"
	"store-pos/internal/repository"
)

// ErrNoClientAccount means the principal is not linked to a client record.
var ErrNoClientAccount = errors.New("account is not associated with a client")

type ClientDashboard struct {
	Client     *model.Client   `json:"cliente"`
	Sales      []model.Sale    `json:"ventas"`
	TotalSpent decimal.Decimal `json:"total_gastado"`
}

type PortalService interface {
	Dashboard(clientID *uuid.UUID) (*ClientDashboard, error)
	SaleDetail(clientID *uuid.UUID, saleID uuid.UUID) (*model.Sale, error)
}

type portalService struct {
	clientRepo repository.ClientRepository
	saleRepo   repository.SaleRepository
}

func NewPortalService(cRepo repository.ClientRepository, sRepo repository.SaleRepository) PortalService {
	return &portalService{clientRepo: cRepo, saleRepo: sRepo}
}

func (s *portalService) Dashboard(clientID *uuid.UUID) (*ClientDashboard, error) {
	if clientID == nil {
		return nil, ErrNoClientAccount
	}
	client, err := s.clientRepo.FindByID(*clientID)
	if err != nil {
		return nil, err
	}
	sales, err := s.saleRepo.ListByClient(client.ID)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, sale := range sales {
		total = total.Add(sale.Total)
	}
	return &ClientDashboard{Client: client, Sales: sales, TotalSpent: total}, nil
}

// SaleDetail only finds sales owned by clientID.
func (s *portalService) SaleDetail(clientID *uuid.UUID, saleID uuid.UUID) (*model.Sale, error) {
	if clientID == nil {
		return nil, ErrNoClientAccount
	}
	return s.saleRepo.FindForClient(saleID, *clientID)
}
